package auth

import (
	"strings"
	"testing"

	"vidtube/config"
	domainerrors "vidtube/internal/domain/errors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newHasherConfig() *config.Config {
	return &config.Config{
		Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		PasswordStrength: &config.PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        64,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
			RequireSpecial:   true,
		},
	}
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig())
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEqual(t, password, hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, hasher.Check(password, hash))
	assert.False(t, hasher.Check("WrongPassword123!", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check(password, ""))
}

func TestBcryptHasher_DefaultCostWhenUnset(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: 99}})

	hash, err := hasher.Hash("anything")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_ValidatePasswordStrength(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig())

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "strong", password: "StrongPass123!"},
		{name: "empty", password: "", wantErr: true},
		{name: "too short", password: "Ab1!", wantErr: true},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", 70), wantErr: true},
		{name: "no lowercase", password: "PASSWORD123!", wantErr: true},
		{name: "no uppercase", password: "password123!", wantErr: true},
		{name: "no numbers", password: "PasswordABC!", wantErr: true},
		{name: "no special", password: "Password123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := hasher.ValidatePasswordStrength(tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}
			assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
		})
	}
}

func TestBcryptHasher_NoPolicyOnlyRequiresValue(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	assert.NoError(t, hasher.ValidatePasswordStrength("x"))
	assert.Error(t, hasher.ValidatePasswordStrength(""))
}
