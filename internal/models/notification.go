package models

import "time"

// Notification types.
const (
	NotificationNew     = "new"
	NotificationClaimed = "claimed"
)

// Notification is a one-way record of an event of interest to a user. The
// item fields are a snapshot taken at event time and are never re-synced if
// the item later changes, so the notification stays meaningful after the
// source item is edited or deleted.
type Notification struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ItemID       string    `json:"itemId"`
	ItemName     string    `json:"itemName"`
	ItemLocation string    `json:"itemLocation"`
	ItemImage    *string   `json:"itemImage"`
	ItemCategory string    `json:"itemCategory"`
	DateFound    string    `json:"dateFound"`
	Type         string    `json:"type"` // new, claimed
	Read         bool      `json:"read"`
	CreatedAt    time.Time `json:"createdAt"`
}
