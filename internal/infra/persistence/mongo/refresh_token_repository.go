package mongo

import (
	"context"
	"time"

	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type refreshTokenRepository struct {
	users *mongo.Collection
}

// NewRefreshTokenRepository is the constructor for the document-store refreshTokenRepository.
func NewRefreshTokenRepository(db *mongo.Database) repository.RefreshTokenRepository {
	return &refreshTokenRepository{users: db.Collection(usersCollection)}
}

func (repo *refreshTokenRepository) ReplaceRefreshToken(ctx context.Context, userID uuid.UUID, token string) error {
	return repo.update(ctx, bson.M{"_id": userID.String()}, token, repository.ErrUserNotFound)
}

// SwapRefreshToken matches on the expected token inside the filter, so the
// server applies at most one of several concurrent swaps.
func (repo *refreshTokenRepository) SwapRefreshToken(ctx context.Context, userID uuid.UUID, expected, next string) error {
	if expected == "" {
		return repository.ErrRefreshTokenMismatch
	}

	return repo.update(ctx, bson.M{"_id": userID.String(), "refreshToken": expected}, next, repository.ErrRefreshTokenMismatch)
}

func (repo *refreshTokenRepository) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	return repo.update(ctx, bson.M{"_id": userID.String()}, "", repository.ErrUserNotFound)
}

func (repo *refreshTokenRepository) update(ctx context.Context, filter bson.M, token string, unmatched error) error {
	res, err := repo.users.UpdateOne(ctx, filter, bson.M{"$set": bson.M{
		"refreshToken": token,
		"updatedAt":    time.Now().UTC(),
	}})
	if err != nil {
		return errors.Wrap(err, "failed to write refresh token")
	}
	if res.MatchedCount == 0 {
		return unmatched
	}

	return nil
}
