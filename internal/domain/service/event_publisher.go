package service

import (
	"context"
	"time"
)

// AccountEventType names something that happened to an account.
type AccountEventType string

const (
	AccountEventRegistered      AccountEventType = "user.registered"
	AccountEventLoggedOut       AccountEventType = "user.logged_out"
	AccountEventPasswordChanged AccountEventType = "user.password_changed"
	AccountEventAvatarReplaced  AccountEventType = "user.avatar_replaced"
)

// AccountEvent is published after an account change has been committed.
type AccountEvent struct {
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       AccountEventType `json:"type"`
	UserID     string           `json:"user_id"`
	Username   string           `json:"username,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account event for downstream consumers
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
