package model

import "time"

// UserRole represents the role of a staff account
type UserRole string

const (
	UserRoleStaff UserRole = "staff" // Default: manages a single shelter's profile and applications
	UserRoleAdmin UserRole = "admin" // Full access across shelters
)

// User represents a shelter staff account
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Hash          *string   `json:"-"` // Never expose password hash
	Name          *string   `json:"name,omitempty"`
	Role          UserRole  `json:"role"`
	ShelterID     *string   `json:"shelter_id,omitempty"` // shelter this account manages
	EmailVerified bool      `json:"email_verified"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// IsAdmin returns true if the user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// ManagesShelter reports whether the account may act for the given shelter
func (u *User) ManagesShelter(shelterID string) bool {
	if u.IsAdmin() {
		return true
	}
	return u.ShelterID != nil && *u.ShelterID == shelterID
}

// TokenClaims represents extracted JWT claims
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Role      string `json:"role,omitempty"`
	ShelterID string `json:"shelter_id,omitempty"`
}
