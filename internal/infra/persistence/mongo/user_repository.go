package mongo

import (
	"context"
	"time"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// sanitizedProjection drops the password hash and the refresh token.
var sanitizedProjection = bson.M{"password": 0, "refreshToken": 0, "watchHistory": 0}

type userRepository struct {
	users *mongo.Collection
}

// NewUserRepository is the constructor for the document-store userRepository.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{users: db.Collection(usersCollection)}
}

func (repo *userRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*entity.User, error) {
	var doc userDocument
	if err := repo.users.FindOne(ctx, filter, opts...).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return toUserDomain(&doc), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()})
}

func (repo *userRepository) FindSanitizedByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"_id": id.String()}, options.FindOne().SetProjection(sanitizedProjection))
}

func (repo *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	or := bson.A{}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if len(or) == 0 {
		return nil, repository.ErrUserNotFound
	}

	return repo.findOne(ctx, bson.M{"$or": or})
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return repo.findOne(ctx, bson.M{"username": username}, options.FindOne().SetProjection(sanitizedProjection))
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	id, err := uuid.NewV7()
	if err != nil {
		return errors.Wrap(err, "failed to generate user id")
	}
	now := time.Now().UTC()

	doc := fromUserDomain(user)
	doc.ID = id.String()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := repo.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrUserConflict
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now

	return nil
}

func (repo *userRepository) UpdateAccount(ctx context.Context, id uuid.UUID, update entity.AccountUpdate) error {
	fields := bson.M{
		"fullName": update.FullName,
		"email":    update.Email,
	}
	if update.LastName != "" {
		fields["lastName"] = update.LastName
	}

	return repo.set(ctx, id, fields)
}

func (repo *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return repo.set(ctx, id, bson.M{"password": passwordHash})
}

func (repo *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return repo.set(ctx, id, bson.M{"avatar": url})
}

func (repo *userRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) error {
	return repo.set(ctx, id, bson.M{"coverImage": url})
}

func (repo *userRepository) set(ctx context.Context, id uuid.UUID, fields bson.M) error {
	fields["updatedAt"] = time.Now().UTC()

	res, err := repo.users.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$set": fields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrUserConflict
		}

		return errors.Wrap(err, "failed to update user")
	}
	if res.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
