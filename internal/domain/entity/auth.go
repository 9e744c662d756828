package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenType distinguishes the two classes of signed tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenPair is what a successful login or rotation hands back to the client.
type TokenPair struct {
	UserID           uuid.UUID
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RefreshState is the per-user state of the refresh token field.
type RefreshState string

const (
	RefreshStateNone   RefreshState = "none"
	RefreshStateActive RefreshState = "active"
)

// RefreshEvent drives a RefreshState transition.
type RefreshEvent string

const (
	RefreshEventLogin  RefreshEvent = "login"
	RefreshEventRotate RefreshEvent = "rotate"
	RefreshEventLogout RefreshEvent = "logout"
)

// Transition returns the state reached by applying ev, or false when the
// transition is not permitted. Rotation is only allowed from active; logout
// from none is a self-loop.
func (s RefreshState) Transition(ev RefreshEvent) (RefreshState, bool) {
	switch ev {
	case RefreshEventLogin:
		return RefreshStateActive, true
	case RefreshEventRotate:
		if s != RefreshStateActive {
			return s, false
		}

		return RefreshStateActive, true
	case RefreshEventLogout:
		return RefreshStateNone, true
	default:
		return s, false
	}
}
