package models

import "time"

// User is an account that reports items and receives notifications.
type User struct {
	ID           string    `json:"id"`
	NUID         string    `json:"nuid"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserPatch is a partial update to a user profile. Empty fields are absent.
type UserPatch struct {
	NUID  string
	Name  string
	Phone string
	Email string
}

// IsEmpty reports whether the patch carries no fields.
func (p UserPatch) IsEmpty() bool {
	return p.NUID == "" && p.Name == "" && p.Phone == "" && p.Email == ""
}
