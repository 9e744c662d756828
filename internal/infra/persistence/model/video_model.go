package model

import (
	"time"

	"github.com/google/uuid"
)

// VideoModel mirrors the 'videos' table. Videos are only read by this service.
type VideoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Thumbnail   string    `gorm:"type:text"`
	VideoFile   string    `gorm:"type:text;not null"`
	Duration    float64
	Views       int64 `gorm:"not null;default:0"`
	IsPublished bool  `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Owner *UserModel `gorm:"foreignKey:OwnerID"`
}

// TableName explicitly sets the table name for GORM.
func (VideoModel) TableName() string {
	return "videos"
}

// WatchHistoryModel mirrors the 'watch_history' table. Position orders the
// entries of one user.
type WatchHistoryModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  int       `gorm:"primaryKey;autoIncrement:false"`
	VideoID   uuid.UUID `gorm:"type:uuid;not null;index"`
	WatchedAt time.Time

	Video *VideoModel `gorm:"foreignKey:VideoID"`
}

// TableName explicitly sets the table name for GORM.
func (WatchHistoryModel) TableName() string {
	return "watch_history"
}
