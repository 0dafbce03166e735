package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

// ItemStore is the repository contract the lifecycle service orchestrates.
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Update(ctx context.Context, id string, patch models.ItemPatch, guardNotClaimed bool) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Item, error)
	List(ctx context.Context, filter models.ItemFilter) ([]models.Item, int, error)
}

// Publisher emits item lifecycle events for downstream services. Publishing
// is best-effort; the service never fails an operation over it.
type Publisher interface {
	PublishItemReported(ctx context.Context, event ItemEvent) error
	PublishItemClaimed(ctx context.Context, event ItemEvent) error
}

// ItemEvent is the payload published on item lifecycle events.
type ItemEvent struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"userId"`
	Name      string  `json:"name"`
	Location  string  `json:"location"`
	Category  string  `json:"category"`
	DateFound string  `json:"dateFound"`
	Image     *string `json:"image"`
	Status    string  `json:"status"`
}

// ItemService orchestrates the item repository, the authorization engine and
// the notification fan-out. Notification and event failures are isolated and
// never roll back an item mutation.
type ItemService struct {
	items    ItemStore
	notifier *Notifier
	events   Publisher // optional, may be nil
}

// NewItemService creates an ItemService. events may be nil when no broker
// is configured.
func NewItemService(items ItemStore, notifier *Notifier, events Publisher) *ItemService {
	return &ItemService{items: items, notifier: notifier, events: events}
}

// CreateItem validates and persists a new item reported by creatorID, then
// fans out "new" notifications to every other user. Returns the created item
// and the number of notifications stored (zero on fan-out failure or when no
// other users exist).
func (s *ItemService) CreateItem(ctx context.Context, draft models.ItemDraft, creatorID string) (*models.Item, int, error) {
	if missing := draft.MissingFields(); len(missing) > 0 {
		return nil, 0, &ValidationError{Missing: missing}
	}

	status := draft.Status
	if status == "" {
		status = models.StatusSearching
	}

	item := &models.Item{
		OwnerID:     creatorID,
		Name:        strings.TrimSpace(draft.Name),
		Location:    strings.TrimSpace(draft.Location),
		Description: strings.TrimSpace(draft.Description),
		Category:    strings.TrimSpace(draft.Category),
		DateFound:   draft.DateFound,
		Image:       draft.Image,
		Status:      status,
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, 0, err
	}

	notified := s.notifier.FanOutNewItem(ctx, item)
	s.publish(ctx, "item.reported", item)

	return item, notified, nil
}

// UpdateItem applies a partial update on behalf of requesterID. Non-owners
// may only claim (flip status to claimed, nothing else); owners may edit any
// field. A successful non-owner claim notifies the original owner with the
// pre-claim item snapshot.
func (s *ItemService) UpdateItem(ctx context.Context, id, requesterID string, rawPatch models.ItemPatch) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	patch := rawPatch.Filter()
	if patch.IsEmpty() {
		return ErrNoFieldsToUpdate
	}

	scope, err := Authorize(item, requesterID, patch)
	if err != nil {
		return err
	}

	// A claim carries a status precondition so two concurrent claimants
	// cannot both win: the loser matches zero rows.
	matched, err := s.items.Update(ctx, id, patch, scope == ScopeClaim)
	if err != nil {
		return err
	}
	if matched == 0 {
		if scope != ScopeClaim {
			// Item deleted between the read and the write.
			return ErrNotFound
		}
		current, err := s.items.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return ErrNotFound
		}
		// Someone else claimed first; same denial as re-claiming.
		return &ForbiddenError{Reason: ReasonNotOwner}
	}

	if scope == ScopeClaim {
		// The notification is built from the pre-claim snapshot.
		s.notifier.NotifyClaim(ctx, item)

		claimed := *item
		claimed.Status = models.StatusClaimed
		s.publish(ctx, "item.claimed", &claimed)
	}

	return nil
}

// DeleteItem removes an item. Only the owner may delete; no notification is
// emitted.
func (s *ItemService) DeleteItem(ctx context.Context, id, requesterID string) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}

	if item.OwnerID != requesterID {
		return &ForbiddenError{Reason: ReasonNotOwner}
	}

	deleted, err := s.items.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// GetItem returns a single item.
func (s *ItemService) GetItem(ctx context.Context, id string) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	return item, nil
}

// ListItemsByOwner returns all items reported by a user, newest first.
func (s *ItemService) ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	return s.items.ListByOwner(ctx, ownerID)
}

// ListItems returns a filtered page of items and the total match count.
func (s *ItemService) ListItems(ctx context.Context, filter models.ItemFilter) ([]models.Item, int, error) {
	return s.items.List(ctx, filter)
}

// publish sends an item event when a broker is configured. Failures are
// logged and swallowed.
func (s *ItemService) publish(ctx context.Context, kind string, item *models.Item) {
	if s.events == nil {
		return
	}

	event := ItemEvent{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		Name:      item.Name,
		Location:  item.Location,
		Category:  item.Category,
		DateFound: item.DateFound,
		Image:     item.Image,
		Status:    item.Status,
	}

	var err error
	switch kind {
	case "item.reported":
		err = s.events.PublishItemReported(ctx, event)
	case "item.claimed":
		err = s.events.PublishItemClaimed(ctx, event)
	}
	if err != nil {
		log.Error().Err(err).Str("event", kind).Str("item_id", item.ID).Msg("Failed to publish item event")
	}
}
