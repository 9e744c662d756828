package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"vidtube/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrUnauthorized.WithDetails(ReasonTokenExpired)

	assert.NotSame(t, ErrUnauthorized, detailed)
	assert.True(t, stderrors.Is(detailed, ErrUnauthorized))
	assert.False(t, stderrors.Is(detailed, ErrTokenExpired))
	assert.Equal(t, ReasonTokenExpired, detailed.Details())
	assert.Empty(t, ErrUnauthorized.Details())
	assert.Equal(t, "Unauthorized request: TOKEN_EXPIRED", detailed.Error())
}

func TestBaseError_SurvivesWrapping(t *testing.T) {
	wrapped := errors.Wrap(ErrRefreshTokenInvalid.WithDetails("x"), "rotate")

	assert.True(t, errors.Is(wrapped, ErrRefreshTokenInvalid))

	appErr, ok := errors.AsType[AppError](wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "REFRESH_TOKEN_INVALID", appErr.ErrorCode())
}

func TestDatabaseExecuteError_Unwraps(t *testing.T) {
	cause := stderrors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "update users")

	assert.True(t, stderrors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Contains(t, err.Error(), "connection reset")
}
