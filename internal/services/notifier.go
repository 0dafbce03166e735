package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

// NotificationStore is the subset of the notification adapter the fan-out
// needs: persistence only, no business logic.
type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	InsertMany(ctx context.Context, notifications []models.Notification) (int, error)
}

// UserDirectory supplies notification recipients.
type UserDirectory interface {
	ListIDsExcept(ctx context.Context, excludeID string) ([]string, error)
}

// Notifier fans out notification records for item events. Failures are
// logged and reported as a zero count or false, never as an error: item
// mutations must not be rolled back because a notification write failed.
type Notifier struct {
	notifications NotificationStore
	users         UserDirectory
}

// NewNotifier creates a Notifier.
func NewNotifier(notifications NotificationStore, users UserDirectory) *Notifier {
	return &Notifier{notifications: notifications, users: users}
}

// snapshot copies the item fields a notification carries. The copy is
// deliberate: notifications keep their meaning even if the item is later
// edited or deleted.
func snapshot(item *models.Item, userID, notifType string) models.Notification {
	return models.Notification{
		UserID:       userID,
		ItemID:       item.ID,
		ItemName:     item.Name,
		ItemLocation: item.Location,
		ItemImage:    item.Image,
		ItemCategory: item.Category,
		DateFound:    item.DateFound,
		Type:         notifType,
	}
}

// FanOutNewItem notifies every user except the item's reporter about a newly
// reported item. Returns the number of notifications created, zero when
// there is nobody to notify or the fan-out failed.
func (n *Notifier) FanOutNewItem(ctx context.Context, item *models.Item) int {
	userIDs, err := n.users.ListIDsExcept(ctx, item.OwnerID)
	if err != nil {
		log.Error().Err(err).Str("item_id", item.ID).Msg("Failed to list notification recipients")
		return 0
	}
	if len(userIDs) == 0 {
		log.Info().Str("item_id", item.ID).Msg("No users to notify for new item")
		return 0
	}

	notifications := make([]models.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		notifications = append(notifications, snapshot(item, userID, models.NotificationNew))
	}

	count, err := n.notifications.InsertMany(ctx, notifications)
	if err != nil {
		log.Error().Err(err).Str("item_id", item.ID).Msg("Failed to create new item notifications")
		return 0
	}

	log.Info().
		Int("count", count).
		Str("item_id", item.ID).
		Msg("Created notifications for new item")
	return count
}

// NotifyClaim notifies the item's owner that their item has been claimed,
// using the pre-claim snapshot. Returns whether the notification was stored.
func (n *Notifier) NotifyClaim(ctx context.Context, item *models.Item) bool {
	notification := snapshot(item, item.OwnerID, models.NotificationClaimed)

	if err := n.notifications.Insert(ctx, &notification); err != nil {
		log.Error().Err(err).
			Str("item_id", item.ID).
			Str("owner_id", item.OwnerID).
			Msg("Failed to create claim notification")
		return false
	}

	log.Info().
		Str("item_id", item.ID).
		Str("owner_id", item.OwnerID).
		Msg("Created claim notification for item owner")
	return true
}
