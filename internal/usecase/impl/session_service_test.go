package impl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vidtube/internal/domain/entity"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/errors"
	mockRepo "vidtube/internal/mocks/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSessionService_IssuePairStoresRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	pair, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, pair.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	stored := env.store.get(user.ID)
	assert.Equal(t, pair.RefreshToken, stored.RefreshToken)
	assert.Equal(t, entity.RefreshStateActive, stored.RefreshState())

	claims, err := env.session.VerifyAccess(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestSessionService_IssuePairOverwritesPreviousToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	first, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)
	second, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, second.RefreshToken, env.store.get(user.ID).RefreshToken)

	_, err = env.session.Rotate(ctx, first.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
}

func TestSessionService_IssuePairUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	pair, err := env.session.IssuePair(context.Background(), uuid.New())
	assert.Nil(t, pair)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenGenerationFailed))
}

func TestSessionService_RotateYieldsAllNewValues(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	issued, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	rotated, err := env.session.Rotate(ctx, issued.RefreshToken)
	require.NoError(t, err)

	for _, old := range []string{issued.AccessToken, issued.RefreshToken} {
		assert.NotEqual(t, old, rotated.AccessToken)
		assert.NotEqual(t, old, rotated.RefreshToken)
	}
	assert.Equal(t, rotated.RefreshToken, env.store.get(user.ID).RefreshToken)

	// Rotation is single use.
	_, err = env.session.Rotate(ctx, issued.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))

	_, err = env.session.Rotate(ctx, rotated.RefreshToken)
	assert.NoError(t, err)
}

func TestSessionService_RotateRejections(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	issued, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	signRefresh := func(secret string, sub string, exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": sub,
			"typ": "refresh",
			"jti": uuid.NewString(),
			"iat": time.Now().Add(-time.Hour).Unix(),
			"exp": exp.Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)

		return signed
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "access token", token: issued.AccessToken},
		{name: "foreign signature", token: signRefresh("other-secret", user.ID.String(), time.Now().Add(time.Hour))},
		{name: "expired", token: signRefresh(env.cfg.SecretKey.Refresh, user.ID.String(), time.Now().Add(-time.Minute))},
		{name: "valid signature but not stored", token: signRefresh(env.cfg.SecretKey.Refresh, user.ID.String(), time.Now().Add(time.Hour))},
		{name: "unknown user", token: signRefresh(env.cfg.SecretKey.Refresh, uuid.NewString(), time.Now().Add(time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := env.session.Rotate(ctx, tt.token)
			assert.Nil(t, pair)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid), "got %v", err)

			appErr, ok := errors.AsType[domainerrors.AppError](err)
			require.True(t, ok)
			assert.Empty(t, appErr.Details(), "rotation must not reveal which check failed")
		})
	}

	// None of the rejected attempts touched the stored token.
	assert.Equal(t, issued.RefreshToken, env.store.get(user.ID).RefreshToken)
}

func TestSessionService_RotateStorageFailureIsStillUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	issued, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	userRepo := mockRepo.NewMockUserRepository(t)
	userRepo.EXPECT().
		FindByID(mock.Anything, user.ID).
		Return(nil, errors.New("connection refused")).
		Once()
	env.session.userRepo = userRepo

	_, err = env.session.Rotate(ctx, issued.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))
	assert.Equal(t, issued.RefreshToken, env.store.get(user.ID).RefreshToken, "a failed lookup revokes nothing")
}

func TestSessionService_RevokeBlocksRotationButNotAccess(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	issued, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	require.NoError(t, env.session.Revoke(ctx, user.ID))
	assert.Equal(t, entity.RefreshStateNone, env.store.get(user.ID).RefreshState())

	_, err = env.session.Rotate(ctx, issued.RefreshToken)
	assert.True(t, errors.Is(err, domainerrors.ErrRefreshTokenInvalid))

	// Access tokens are not individually revocable.
	claims, err := env.session.VerifyAccess(ctx, issued.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Revoking again from none is a no-op.
	assert.NoError(t, env.session.Revoke(ctx, user.ID))

	// A fresh login reactivates rotation.
	again, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)
	_, err = env.session.Rotate(ctx, again.RefreshToken)
	assert.NoError(t, err)
}

func TestSessionService_RevokeUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	err := env.session.Revoke(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestSessionService_VerifyAccessErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.session.VerifyAccess(ctx, "")
	assert.True(t, errors.Is(err, domainerrors.ErrTokenMalformed))

	_, err = env.session.VerifyAccess(ctx, "a.b.c")
	assert.Error(t, err)
}

func TestSessionService_ConcurrentRotateExactlyOneWins(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser("alice", "password123")
	ctx := context.Background()

	issued, err := env.session.IssuePair(ctx, user.ID)
	require.NoError(t, err)

	const callers = 8

	// Hold every caller at the write until all of them have passed the
	// equality check, so they all race on the conditional update.
	var arrived sync.WaitGroup
	arrived.Add(callers)
	env.store.beforeSwap = func() {
		arrived.Done()
		arrived.Wait()
	}

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		failures  atomic.Int32
		winner    atomic.Value
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			pair, err := env.session.Rotate(ctx, issued.RefreshToken)
			if err != nil {
				if errors.Is(err, domainerrors.ErrRefreshTokenInvalid) {
					failures.Add(1)
				}

				return
			}
			successes.Add(1)
			winner.Store(pair.RefreshToken)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, successes.Load())
	assert.EqualValues(t, callers-1, failures.Load())
	assert.Equal(t, winner.Load(), env.store.get(user.ID).RefreshToken)
}
