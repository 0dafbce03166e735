package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sourav-02121996/project-3-LostNFound/internal/models"
)

// NotificationStore persists notification records. It carries no business
// logic beyond single and bulk inserts plus read-receipt updates.
type NotificationStore struct {
	db *sql.DB
}

// NewNotificationStore creates a NotificationStore on the given database handle.
func NewNotificationStore(db *sql.DB) *NotificationStore {
	return &NotificationStore{db: db}
}

const notificationColumns = `id, user_id, item_id, item_name, item_location,
	item_image, item_category, date_found, type, read, created_at`

// Insert persists a single notification, assigning id and created_at.
func (s *NotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notifications (`+notificationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		n.ID, n.UserID, n.ItemID, n.ItemName, n.ItemLocation,
		n.ItemImage, n.ItemCategory, n.DateFound, n.Type, n.Read, n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

// InsertMany bulk-inserts notifications in a single statement and returns
// the number inserted.
func (s *NotificationStore) InsertMany(ctx context.Context, notifications []models.Notification) (int, error) {
	if len(notifications) == 0 {
		return 0, nil
	}

	placeholders := make([]string, 0, len(notifications))
	args := make([]any, 0, len(notifications)*11)
	now := time.Now().UTC()

	for i := range notifications {
		n := &notifications[i]
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = now
		}

		base := len(args)
		placeholders = append(placeholders, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11))
		args = append(args,
			n.ID, n.UserID, n.ItemID, n.ItemName, n.ItemLocation,
			n.ItemImage, n.ItemCategory, n.DateFound, n.Type, n.Read, n.CreatedAt)
	}

	query := `INSERT INTO notifications (` + notificationColumns + `) VALUES ` +
		strings.Join(placeholders, ", ")

	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert notifications: %w", err)
	}
	return len(notifications), nil
}

// GetByID returns a notification, or (nil, nil) if absent.
func (s *NotificationStore) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	n := &models.Notification{}
	var image sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id,
	).Scan(&n.ID, &n.UserID, &n.ItemID, &n.ItemName, &n.ItemLocation,
		&image, &n.ItemCategory, &n.DateFound, &n.Type, &n.Read, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	if image.Valid {
		n.ItemImage = &image.String
	}
	return n, nil
}

// ListByUser returns all notifications for a user, newest first. When
// unreadOnly is set, read notifications are filtered out.
func (s *NotificationStore) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND NOT read`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		var image sql.NullString
		if err := rows.Scan(&n.ID, &n.UserID, &n.ItemID, &n.ItemName, &n.ItemLocation,
			&image, &n.ItemCategory, &n.DateFound, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if image.Valid {
			n.ItemImage = &image.String
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flips a single notification to read. Returns the matched count.
func (s *NotificationStore) MarkRead(ctx context.Context, id string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notification read: %w", err)
	}
	matched, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read update result: %w", err)
	}
	return matched, nil
}

// MarkAllRead flips every notification for the user to read.
func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE user_id = $1 AND NOT read`, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}
