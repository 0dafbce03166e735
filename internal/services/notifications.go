package services

import (
	"context"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

// NotificationReader is the retrieval side of the notification store.
type NotificationReader interface {
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) (int64, error)
	MarkAllRead(ctx context.Context, userID string) error
}

// NotificationService exposes notification retrieval and read receipts.
// Notifications are immutable after creation except for the read flag.
type NotificationService struct {
	notifications NotificationReader
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(notifications NotificationReader) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// ListForUser returns a user's notifications, newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	return s.notifications.ListByUser(ctx, userID, unreadOnly)
}

// MarkRead flips a notification to read. Only the recipient may do so.
func (s *NotificationService) MarkRead(ctx context.Context, id, requesterID string) error {
	n, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotFound
	}
	if n.UserID != requesterID {
		return &ForbiddenError{Reason: ReasonNotOwner}
	}

	matched, err := s.notifications.MarkRead(ctx, id)
	if err != nil {
		return err
	}
	if matched == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead flips all of the user's notifications to read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.notifications.MarkAllRead(ctx, userID)
}
