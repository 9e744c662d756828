package context

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEchoContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	return e.NewContext(req, httptest.NewRecorder())
}

func TestCurrentUserRoundTrip(t *testing.T) {
	c := newEchoContext()

	_, ok := GetUserID(c)
	assert.False(t, ok)
	_, ok = GetCurrentUser(c)
	assert.False(t, ok)

	user := &entity.User{ID: uuid.New(), Username: "alice"}
	SetCurrentUser(c, user)

	id, ok := GetUserID(c)
	require.True(t, ok)
	assert.Equal(t, user.ID, id)

	got, ok := GetCurrentUser(c)
	require.True(t, ok)
	assert.Same(t, user, got)
}

func TestRequestIDAndLoggerInContext(t *testing.T) {
	fallback := slog.New(slog.NewTextHandler(io.Discard, nil))
	scoped := fallback.With(slog.String("request_id", "abc"))

	ctx := context.Background()
	assert.Empty(t, GetRequestIDFromContext(ctx))
	assert.Same(t, fallback, GetLoggerOrDefault(ctx, fallback))

	ctx = WithRequestID(ctx, "abc")
	ctx = WithLogger(ctx, scoped)
	assert.Equal(t, "abc", GetRequestIDFromContext(ctx))
	assert.Same(t, scoped, GetLoggerOrDefault(ctx, fallback))
}

func TestGetRequestID_GeneratesWhenMissing(t *testing.T) {
	c := newEchoContext()
	generated := GetRequestID(c)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)

	SetRequestID(c, "fixed")
	assert.Equal(t, "fixed", GetRequestID(c))
}
