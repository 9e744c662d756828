// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account on the platform. A user is also a channel: other users
// subscribe to it and watch the videos it owns.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email        string    // Unique login identifier.
	Username     string    // Unique, always stored lower-cased.
	FullName     string
	LastName     string
	Avatar       string // URL of the avatar asset. Required.
	CoverImage   string // URL of the cover asset, empty when absent.
	PasswordHash string // bcrypt hash, never serialized.
	RefreshToken string // The single active refresh token, empty when signed out.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns a copy of the user with secret fields cleared.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}

	clone := *u
	clone.PasswordHash = ""
	clone.RefreshToken = ""

	return &clone
}

// RefreshState reports whether the user currently holds a refresh token.
func (u *User) RefreshState() RefreshState {
	if u == nil || u.RefreshToken == "" {
		return RefreshStateNone
	}

	return RefreshStateActive
}

// UserProfile is the JSON view of a user with secrets left out.
type UserProfile struct {
	ID         uuid.UUID `json:"_id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	FullName   string    `json:"fullName"`
	LastName   string    `json:"lastName"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"coverImage"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Profile builds the public representation of the user.
func (u *User) Profile() *UserProfile {
	if u == nil {
		return nil
	}

	return &UserProfile{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		FullName:   u.FullName,
		LastName:   u.LastName,
		Avatar:     u.Avatar,
		CoverImage: u.CoverImage,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// AccountUpdate carries the editable account details.
type AccountUpdate struct {
	FullName string
	LastName string // Left unchanged when empty.
	Email    string
}
