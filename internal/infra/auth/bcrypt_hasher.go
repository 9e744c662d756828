// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"vidtube/config"
	domainerrors "vidtube/internal/domain/errors"
	"vidtube/internal/domain/service"
	"vidtube/internal/errors"
)

// bcrypt ignores everything past 72 bytes.
const bcryptMaxPasswordBytes = 72

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	h := &bcryptHasher{cost: bcrypt.DefaultCost}
	if cfg == nil {
		return h
	}
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		h.cost = cfg.Auth.BcryptCost
	}
	if cfg.PasswordStrength != nil {
		h.policy = *cfg.PasswordStrength
	}

	return h
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	if password == "" || hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	var problems []string

	if password == "" {
		problems = append(problems, "password is required")
	}
	if h.policy.MinLength > 0 && len([]rune(password)) < h.policy.MinLength {
		problems = append(problems, "password is too short")
	}
	maxLength := h.policy.MaxLength
	if maxLength <= 0 || maxLength > bcryptMaxPasswordBytes {
		maxLength = bcryptMaxPasswordBytes
	}
	if len(password) > maxLength {
		problems = append(problems, "password is too long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if h.policy.RequireUppercase && !hasUpper {
		problems = append(problems, "password needs an uppercase letter")
	}
	if h.policy.RequireLowercase && !hasLower {
		problems = append(problems, "password needs a lowercase letter")
	}
	if h.policy.RequireNumbers && !hasDigit {
		problems = append(problems, "password needs a number")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		problems = append(problems, "password needs a special character")
	}

	if len(problems) > 0 {
		return domainerrors.ErrPasswordStrength.WithDetails(strings.Join(problems, "; "))
	}

	return nil
}
