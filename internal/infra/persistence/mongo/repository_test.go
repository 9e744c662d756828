package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// newTestDatabase connects to MONGO_TEST_URI and returns a throwaway database.
func newTestDatabase(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("vidtube_test_" + uuid.NewString()[:8])
	require.NoError(t, EnsureIndexes(ctx, db))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	return db
}

func newTestUser(username string) *entity.User {
	return &entity.User{
		Email:        username + "@example.com",
		Username:     username,
		FullName:     "Full " + username,
		LastName:     "Last",
		Avatar:       "https://cdn.test/avatar/" + username + ".png",
		PasswordHash: "$2a$04$hash",
	}
}

func TestUserRepository(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	alice := newTestUser("alice")
	require.NoError(t, repo.Create(ctx, alice))
	assert.Equal(t, uuid.Version(7), alice.ID.Version())

	dup := newTestUser("alice")
	dup.Email = "other@example.com"
	assert.ErrorIs(t, repo.Create(ctx, dup), repository.ErrUserConflict)

	found, err := repo.FindByEmailOrUsername(ctx, "alice@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)
	assert.NotEmpty(t, found.PasswordHash)

	sanitized, err := repo.FindSanitizedByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, sanitized.PasswordHash)

	require.NoError(t, repo.UpdateAvatar(ctx, alice.ID, "https://cdn.test/new.png"))
	assert.ErrorIs(t, repo.UpdateAvatar(ctx, uuid.New(), "x"), repository.ErrUserNotFound)
}

func TestRefreshTokenRepository(t *testing.T) {
	db := newTestDatabase(t)
	users := NewUserRepository(db)
	tokens := NewRefreshTokenRepository(db)
	ctx := context.Background()

	alice := newTestUser("alice")
	require.NoError(t, users.Create(ctx, alice))

	require.NoError(t, tokens.ReplaceRefreshToken(ctx, alice.ID, "t1"))
	require.NoError(t, tokens.SwapRefreshToken(ctx, alice.ID, "t1", "t2"))
	assert.ErrorIs(t, tokens.SwapRefreshToken(ctx, alice.ID, "t1", "t3"), repository.ErrRefreshTokenMismatch)
	require.NoError(t, tokens.ClearRefreshToken(ctx, alice.ID))

	found, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, found.RefreshToken)
}

func TestChannelRepository(t *testing.T) {
	db := newTestDatabase(t)
	users := NewUserRepository(db)
	channels := NewChannelRepository(db)
	ctx := context.Background()

	alice := newTestUser("alice")
	bob := newTestUser("bob")
	require.NoError(t, users.Create(ctx, alice))
	require.NoError(t, users.Create(ctx, bob))

	_, err := db.Collection(subscriptionsCollection).InsertOne(ctx, subscriptionDocument{
		Subscriber: bob.ID.String(), Channel: alice.ID.String(), CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	profile, err := channels.FindChannelProfile(ctx, "alice", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscriberCount)
	assert.True(t, profile.IsSubscribed)

	_, err = channels.FindChannelProfile(ctx, "nobody", bob.ID)
	assert.ErrorIs(t, err, repository.ErrChannelNotFound)

	first, second := uuid.NewString(), uuid.NewString()
	_, err = db.Collection(videosCollection).InsertMany(ctx, []any{
		videoDocument{ID: first, Owner: alice.ID.String(), Title: "first", IsPublished: true},
		videoDocument{ID: second, Owner: alice.ID.String(), Title: "second", IsPublished: true},
	})
	require.NoError(t, err)
	_, err = db.Collection(usersCollection).UpdateByID(ctx, bob.ID.String(),
		map[string]any{"$set": map[string]any{"watchHistory": []string{second, first}}})
	require.NoError(t, err)

	videos, err := channels.FindWatchHistory(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "second", videos[0].Title)
	require.NotNil(t, videos[0].Owner)
	assert.Equal(t, "alice", videos[0].Owner.Username)
}
