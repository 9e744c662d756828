package mongo

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// IDs are stored as canonical UUID strings so both stores share one ID space.

type userDocument struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Username     string    `bson:"username"`
	FullName     string    `bson:"fullName"`
	LastName     string    `bson:"lastName"`
	Avatar       string    `bson:"avatar"`
	CoverImage   string    `bson:"coverImage"`
	Password     string    `bson:"password,omitempty"`
	RefreshToken string    `bson:"refreshToken"`
	WatchHistory []string  `bson:"watchHistory"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type subscriptionDocument struct {
	Subscriber string    `bson:"subscriber"`
	Channel    string    `bson:"channel"`
	CreatedAt  time.Time `bson:"createdAt"`
}

type ownerDocument struct {
	ID       string `bson:"_id"`
	FullName string `bson:"fullName"`
	Username string `bson:"username"`
	Avatar   string `bson:"avatar"`
}

type videoDocument struct {
	ID          string         `bson:"_id"`
	Owner       string         `bson:"owner,omitempty"`
	Title       string         `bson:"title"`
	Description string         `bson:"description"`
	Thumbnail   string         `bson:"thumbnail"`
	VideoFile   string         `bson:"videoFile"`
	Duration    float64        `bson:"duration"`
	Views       int64          `bson:"views"`
	IsPublished bool           `bson:"isPublished"`
	CreatedAt   time.Time      `bson:"createdAt"`
	OwnerDoc    *ownerDocument `bson:"ownerDoc,omitempty"`
}

type channelProfileDocument struct {
	ID                string `bson:"_id"`
	FullName          string `bson:"fullName"`
	Username          string `bson:"username"`
	Email             string `bson:"email"`
	Avatar            string `bson:"avatar"`
	CoverImage        string `bson:"coverImage"`
	SubscriberCount   int64  `bson:"subscriberCount"`
	SubscribedToCount int64  `bson:"subscribedToCount"`
	IsSubscribed      bool   `bson:"isSubscribed"`
}

func parseID(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}

	return parsed
}

func toUserDomain(doc *userDocument) *entity.User {
	return &entity.User{
		ID:           parseID(doc.ID),
		Email:        doc.Email,
		Username:     doc.Username,
		FullName:     doc.FullName,
		LastName:     doc.LastName,
		Avatar:       doc.Avatar,
		CoverImage:   doc.CoverImage,
		PasswordHash: doc.Password,
		RefreshToken: doc.RefreshToken,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func fromUserDomain(user *entity.User) *userDocument {
	return &userDocument{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FullName:     user.FullName,
		LastName:     user.LastName,
		Avatar:       user.Avatar,
		CoverImage:   user.CoverImage,
		Password:     user.PasswordHash,
		RefreshToken: user.RefreshToken,
		WatchHistory: []string{},
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func toVideoDomain(doc *videoDocument) *entity.Video {
	video := &entity.Video{
		ID:          parseID(doc.ID),
		OwnerID:     parseID(doc.Owner),
		Title:       doc.Title,
		Description: doc.Description,
		Thumbnail:   doc.Thumbnail,
		VideoFile:   doc.VideoFile,
		Duration:    doc.Duration,
		Views:       doc.Views,
		IsPublished: doc.IsPublished,
		CreatedAt:   doc.CreatedAt,
	}
	if doc.OwnerDoc != nil {
		video.Owner = &entity.Owner{
			ID:       parseID(doc.OwnerDoc.ID),
			FullName: doc.OwnerDoc.FullName,
			Username: doc.OwnerDoc.Username,
			Avatar:   doc.OwnerDoc.Avatar,
		}
	}

	return video
}
