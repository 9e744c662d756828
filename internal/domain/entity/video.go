package entity

import (
	"time"

	"github.com/google/uuid"
)

// Video is the read-side view of an uploaded video.
type Video struct {
	ID          uuid.UUID `json:"_id"`
	OwnerID     uuid.UUID `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail"`
	VideoFile   string    `json:"videoFile"`
	Duration    float64   `json:"duration"`
	Views       int64     `json:"views"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	Owner       *Owner    `json:"owner"`
}

// Owner is the slice of a user shown next to their videos.
type Owner struct {
	ID       uuid.UUID `json:"_id"`
	FullName string    `json:"fullName"`
	Username string    `json:"username"`
	Avatar   string    `json:"avatar"`
}
