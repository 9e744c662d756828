package impl

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"vidtube/config"
	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/domain/service"
	"vidtube/internal/infra/auth"
	mockSvc "vidtube/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:      8,
			RequireNumbers: true,
		},
	}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Token.AccessTTL = 15 * time.Minute
	cfg.Token.RefreshTTL = 240 * time.Hour

	return cfg
}

// memoryStore is an in-memory credential store. Every method takes the lock
// once, so each call is atomic the way a single-row UPDATE is.
type memoryStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	profiles map[string]*entity.ChannelProfile
	history  map[uuid.UUID][]*entity.Video

	// beforeSwap runs outside the lock right before SwapRefreshToken applies.
	beforeSwap func()
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users:    map[uuid.UUID]*entity.User{},
		profiles: map[string]*entity.ChannelProfile{},
		history:  map[uuid.UUID][]*entity.Video{},
	}
}

func (s *memoryStore) get(id uuid.UUID) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	clone := *u

	return &clone
}

func (s *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u := s.get(id); u != nil {
		return u, nil
	}

	return nil, repository.ErrUserNotFound
}

func (s *memoryStore) FindSanitizedByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	u, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u.Sanitized(), nil
}

func (s *memoryStore) FindByEmailOrUsername(_ context.Context, email, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if (email != "" && u.Email == email) || (username != "" && u.Username == username) {
			clone := *u

			return &clone, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (s *memoryStore) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.FindByEmailOrUsername(ctx, "", username)
}

func (s *memoryStore) Create(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return repository.ErrUserConflict
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	s.users[user.ID] = &clone

	return nil
}

func (s *memoryStore) update(id uuid.UUID, fn func(*entity.User) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	if err := fn(u); err != nil {
		return err
	}
	u.UpdatedAt = time.Now()

	return nil
}

func (s *memoryStore) UpdateAccount(_ context.Context, id uuid.UUID, update entity.AccountUpdate) error {
	s.mu.Lock()
	for otherID, u := range s.users {
		if otherID != id && u.Email == update.Email {
			s.mu.Unlock()

			return repository.ErrUserConflict
		}
	}
	s.mu.Unlock()

	return s.update(id, func(u *entity.User) error {
		u.FullName = update.FullName
		if update.LastName != "" {
			u.LastName = update.LastName
		}
		u.Email = update.Email

		return nil
	})
}

func (s *memoryStore) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	return s.update(id, func(u *entity.User) error { u.PasswordHash = hash; return nil })
}

func (s *memoryStore) UpdateAvatar(_ context.Context, id uuid.UUID, url string) error {
	return s.update(id, func(u *entity.User) error { u.Avatar = url; return nil })
}

func (s *memoryStore) UpdateCoverImage(_ context.Context, id uuid.UUID, url string) error {
	return s.update(id, func(u *entity.User) error { u.CoverImage = url; return nil })
}

func (s *memoryStore) ReplaceRefreshToken(_ context.Context, id uuid.UUID, token string) error {
	return s.update(id, func(u *entity.User) error { u.RefreshToken = token; return nil })
}

func (s *memoryStore) SwapRefreshToken(_ context.Context, id uuid.UUID, expected, next string) error {
	if s.beforeSwap != nil {
		s.beforeSwap()
	}

	return s.update(id, func(u *entity.User) error {
		if u.RefreshToken == "" || u.RefreshToken != expected {
			return repository.ErrRefreshTokenMismatch
		}
		u.RefreshToken = next

		return nil
	})
}

func (s *memoryStore) ClearRefreshToken(_ context.Context, id uuid.UUID) error {
	return s.update(id, func(u *entity.User) error { u.RefreshToken = ""; return nil })
}

func (s *memoryStore) FindChannelProfile(_ context.Context, username string, viewerID uuid.UUID) (*entity.ChannelProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[username]
	if !ok {
		return nil, repository.ErrChannelNotFound
	}
	clone := *p

	return &clone, nil
}

func (s *memoryStore) FindWatchHistory(_ context.Context, userID uuid.UUID) ([]*entity.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, repository.ErrUserNotFound
	}

	return s.history[userID], nil
}

func newUpload(name, body string) *service.MediaUpload {
	return &service.MediaUpload{
		Filename: name,
		Size:     int64(len(body)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

// testEnv wires the services over memoryStore with the real JWT and bcrypt
// implementations. Media, events and QR rendering are mocks, so every call
// to them needs an expectation.
type testEnv struct {
	cfg       *config.Config
	store     *memoryStore
	media     *mockSvc.MockMediaStorage
	publisher *mockSvc.MockEventPublisher
	qr        *mockSvc.MockQRCodeService
	tokens    service.TokenService
	hasher    service.PasswordHasher
	session   *sessionService
	users     *userService
	profiles  *profileService
	channels  *channelService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := newTestConfig()
	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	env := &testEnv{
		cfg:       cfg,
		store:     newMemoryStore(),
		media:     mockSvc.NewMockMediaStorage(t),
		publisher: mockSvc.NewMockEventPublisher(t),
		qr:        mockSvc.NewMockQRCodeService(t),
		tokens:    tokens,
		hasher:    auth.NewBcryptHasher(cfg),
	}
	logger := newDiscardLogger()

	env.session = NewSessionService(SessionServiceParams{
		UserRepo:         env.store,
		RefreshTokenRepo: env.store,
		TokenService:     env.tokens,
		Logger:           logger,
	}).(*sessionService)
	env.users = NewUserService(UserServiceParams{
		UserRepo:  env.store,
		Session:   env.session,
		Hasher:    env.hasher,
		Media:     env.media,
		Publisher: env.publisher,
		Logger:    logger,
	}).(*userService)
	env.profiles = NewProfileService(ProfileServiceParams{
		UserRepo:  env.store,
		Media:     env.media,
		Publisher: env.publisher,
		Logger:    logger,
	}).(*profileService)
	env.channels = NewChannelService(ChannelServiceParams{
		ChannelRepo: env.store,
		UserRepo:    env.store,
		QRService:   env.qr,
		Logger:      logger,
	}).(*channelService)

	return env
}

// expectUpload accepts one upload of kind and stores it at url.
func (env *testEnv) expectUpload(kind service.MediaKind, url string) *mock.Call {
	return env.media.EXPECT().
		Upload(mock.Anything, kind, mock.AnythingOfType("*service.MediaUpload")).
		Return(&service.MediaAsset{Key: url, URL: url}, nil).
		Once()
}

func (env *testEnv) expectDelete(url string) *mock.Call {
	return env.media.EXPECT().
		Delete(mock.Anything, url).
		Return(nil).
		Once()
}

// expectEvent accepts one account event of the given type.
func (env *testEnv) expectEvent(eventType service.AccountEventType) *mock.Call {
	return env.publisher.EXPECT().
		PublishAccountEvent(mock.Anything, mock.MatchedBy(func(event *service.AccountEvent) bool {
			return event.Type == eventType
		})).
		Return(nil).
		Once()
}

// seedUser stores a user with the given password and no refresh token.
func (env *testEnv) seedUser(username, password string) *entity.User {
	hash, err := env.hasher.Hash(password)
	if err != nil {
		panic(err)
	}

	user := &entity.User{
		Email:        username + "@example.com",
		Username:     username,
		FullName:     strings.ToUpper(username[:1]) + username[1:],
		LastName:     "Tester",
		Avatar:       "https://cdn.test/avatar/seed-" + username + ".png",
		PasswordHash: hash,
	}
	if err := env.store.Create(context.Background(), user); err != nil {
		panic(err)
	}

	return user
}
