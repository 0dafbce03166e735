package models

import (
	"strings"
	"time"
)

// Item statuses.
const (
	StatusSearching = "searching"
	StatusClaimed   = "claimed"
)

// Item represents a found item reported by a user, awaiting its owner.
type Item struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"userId"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	DateFound   string    `json:"dateFound"`
	Image       *string   `json:"image"`
	Status      string    `json:"status"` // searching, claimed
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ItemDraft carries the caller-supplied fields for a new item.
type ItemDraft struct {
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	DateFound   string  `json:"dateFound"`
	Image       *string `json:"image"`
	Status      string  `json:"status"`
}

// MissingFields returns the names of required draft fields that are empty
// after trimming.
func (d ItemDraft) MissingFields() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", d.Name},
		{"location", d.Location},
		{"description", d.Description},
		{"dateFound", d.DateFound},
		{"category", d.Category},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// ItemPatch is a partial update to an item. Empty string fields are treated
// as absent; Image is only applied when ImageSet is true, so callers can
// distinguish "leave the image alone" from "clear the image".
type ItemPatch struct {
	Name        string
	Location    string
	Description string
	Category    string
	DateFound   string
	Status      string
	Image       *string
	ImageSet    bool
}

// Filter trims the free-text fields and returns the patch. Fields that are
// empty after trimming stay absent.
func (p ItemPatch) Filter() ItemPatch {
	p.Name = strings.TrimSpace(p.Name)
	p.Location = strings.TrimSpace(p.Location)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.DateFound = strings.TrimSpace(p.DateFound)
	p.Status = strings.TrimSpace(p.Status)
	return p
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ItemPatch) IsEmpty() bool {
	return p.Name == "" &&
		p.Location == "" &&
		p.Description == "" &&
		p.Category == "" &&
		p.DateFound == "" &&
		p.Status == "" &&
		!p.ImageSet
}

// HasNonStatusFields reports whether the patch touches anything besides status.
func (p ItemPatch) HasNonStatusFields() bool {
	return p.Name != "" ||
		p.Location != "" ||
		p.Description != "" ||
		p.Category != "" ||
		p.DateFound != "" ||
		p.ImageSet
}

// ItemFilter selects and pages items for listing.
type ItemFilter struct {
	OwnerID   string
	Status    string
	Location  string
	Category  string
	DateFound string
	Search    string
	Page      int
	Limit     int
}
