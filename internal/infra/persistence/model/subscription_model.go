package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionModel is the GORM-specific struct for the 'subscriptions' table.
// A row means SubscriberID follows the channel owned by ChannelID.
type SubscriptionModel struct {
	SubscriberID uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChannelID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

// All lists every model managed by the relational store, in migration order.
func All() []any {
	return []any{
		&UserModel{},
		&VideoModel{},
		&SubscriptionModel{},
		&WatchHistoryModel{},
	}
}
