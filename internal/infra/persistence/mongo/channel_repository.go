package mongo

import (
	"context"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type channelRepository struct {
	users *mongo.Collection
}

// NewChannelRepository is the constructor for the document-store channelRepository.
func NewChannelRepository(db *mongo.Database) repository.ChannelRepository {
	return &channelRepository{users: db.Collection(usersCollection)}
}

func (repo *channelRepository) FindChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*entity.ChannelProfile, error) {
	viewer := ""
	if viewerID != uuid.Nil {
		viewer = viewerID.String()
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"username": username}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         subscriptionsCollection,
			"localField":   "_id",
			"foreignField": "subscriber",
			"as":           "subscribedTo",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"subscriberCount":   bson.M{"$size": "$subscribers"},
			"subscribedToCount": bson.M{"$size": "$subscribedTo"},
			"isSubscribed":      bson.M{"$in": bson.A{viewer, "$subscribers.subscriber"}},
		}}},
		{{Key: "$project", Value: bson.M{
			"fullName":          1,
			"username":          1,
			"email":             1,
			"avatar":            1,
			"coverImage":        1,
			"subscriberCount":   1,
			"subscribedToCount": 1,
			"isSubscribed":      1,
		}}},
	}

	cursor, err := repo.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate channel profile")
	}

	var docs []channelProfileDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode channel profile")
	}
	if len(docs) == 0 {
		return nil, repository.ErrChannelNotFound
	}

	doc := docs[0]

	return &entity.ChannelProfile{
		ID:                parseID(doc.ID),
		FullName:          doc.FullName,
		Username:          doc.Username,
		Email:             doc.Email,
		Avatar:            doc.Avatar,
		CoverImage:        doc.CoverImage,
		SubscriberCount:   doc.SubscriberCount,
		SubscribedToCount: doc.SubscribedToCount,
		IsSubscribed:      doc.IsSubscribed,
	}, nil
}

// watchHistoryResult is one user with its watch history ids and the looked
// up videos. $lookup does not keep the order of localField, so the ids are
// used to restore it.
type watchHistoryResult struct {
	WatchHistory []string        `bson:"watchHistory"`
	Videos       []videoDocument `bson:"videos"`
}

func (repo *channelRepository) FindWatchHistory(ctx context.Context, userID uuid.UUID) ([]*entity.Video, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": userID.String()}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         videosCollection,
			"localField":   "watchHistory",
			"foreignField": "_id",
			"as":           "videos",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         usersCollection,
					"localField":   "owner",
					"foreignField": "_id",
					"as":           "ownerDoc",
					"pipeline": bson.A{
						bson.M{"$project": bson.M{"fullName": 1, "username": 1, "avatar": 1}},
					},
				}},
				bson.M{"$addFields": bson.M{"ownerDoc": bson.M{"$first": "$ownerDoc"}}},
			},
		}}},
		{{Key: "$project", Value: bson.M{"watchHistory": 1, "videos": 1}}},
	}

	cursor, err := repo.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to aggregate watch history")
	}

	var results []watchHistoryResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, errors.Wrap(err, "failed to decode watch history")
	}
	if len(results) == 0 {
		return nil, repository.ErrUserNotFound
	}

	byID := make(map[string]*videoDocument, len(results[0].Videos))
	for i := range results[0].Videos {
		byID[results[0].Videos[i].ID] = &results[0].Videos[i]
	}

	videos := make([]*entity.Video, 0, len(results[0].WatchHistory))
	for _, id := range results[0].WatchHistory {
		if doc, ok := byID[id]; ok {
			videos = append(videos, toVideoDomain(doc))
		}
	}

	return videos, nil
}
