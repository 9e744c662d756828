// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/repository"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// sanitizedUserColumns excludes the password hash and the refresh token.
var sanitizedUserColumns = []string{
	"id", "email", "username", "full_name", "last_name",
	"avatar", "cover_image", "created_at", "updated_at",
}

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves the full credential record. It always reads from the
// primary so a token written a moment ago is visible.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindSanitizedByID loads the user without selecting secret columns.
func (repo *userRepository) FindSanitizedByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Select(sanitizedUserColumns).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find sanitized user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByEmailOrUsername matches either identifier; blank identifiers are ignored.
func (repo *userRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.User, error) {
	if email == "" && username == "" {
		return nil, repository.ErrUserNotFound
	}

	query := repo.db.WithContext(ctx).Clauses(dbresolver.Write)
	switch {
	case email != "" && username != "":
		query = query.Where("email = ? OR username = ?", email, username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		query = query.Where("username = ?", username)
	}

	var userM model.UserModel
	if err := query.First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email or username")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Select(sanitizedUserColumns).
		Where("username = ?", username).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user and writes the generated ID and timestamps back.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrUserConflict
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func (repo *userRepository) UpdateAccount(ctx context.Context, id uuid.UUID, update entity.AccountUpdate) error {
	columns := map[string]any{
		"full_name": update.FullName,
		"email":     update.Email,
	}
	if update.LastName != "" {
		columns["last_name"] = update.LastName
	}

	err := repo.updateColumns(ctx, id, columns)
	if isUniqueConstraintViolation(err) {
		return repository.ErrUserConflict
	}

	return err
}

func (repo *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return repo.updateColumns(ctx, id, map[string]any{"password_hash": passwordHash})
}

func (repo *userRepository) UpdateAvatar(ctx context.Context, id uuid.UUID, url string) error {
	return repo.updateColumns(ctx, id, map[string]any{"avatar": url})
}

func (repo *userRepository) UpdateCoverImage(ctx context.Context, id uuid.UUID, url string) error {
	return repo.updateColumns(ctx, id, map[string]any{"cover_image": url})
}

// updateColumns applies a single-row update and reports a missing row as
// repository.ErrUserNotFound.
func (repo *userRepository) updateColumns(ctx context.Context, id uuid.UUID, columns map[string]any) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(columns)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return result.Error
		}

		return errors.Wrap(result.Error, "failed to update user")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:           data.ID,
		Email:        data.Email,
		Username:     data.Username,
		FullName:     data.FullName,
		LastName:     data.LastName,
		Avatar:       data.Avatar,
		CoverImage:   data.CoverImage,
		PasswordHash: data.PasswordHash,
		RefreshToken: data.RefreshToken,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Email:        data.Email,
		Username:     data.Username,
		FullName:     data.FullName,
		LastName:     data.LastName,
		Avatar:       data.Avatar,
		CoverImage:   data.CoverImage,
		PasswordHash: data.PasswordHash,
		RefreshToken: data.RefreshToken,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
