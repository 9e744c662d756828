package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription links a subscriber to the channel they follow.
type Subscription struct {
	SubscriberID uuid.UUID
	ChannelID    uuid.UUID
	CreatedAt    time.Time
}

// ChannelProfile is the public page of a channel as seen by a viewer.
type ChannelProfile struct {
	ID                uuid.UUID `json:"_id"`
	FullName          string    `json:"fullName"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	Avatar            string    `json:"avatar"`
	CoverImage        string    `json:"coverImage"`
	SubscriberCount   int64     `json:"subscriberCount"`
	SubscribedToCount int64     `json:"subscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
}
