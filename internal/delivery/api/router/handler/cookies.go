package handler

import (
	"net/http"
	"strings"
	"time"

	"vidtube/config"
	"vidtube/internal/delivery/api/middleware"
	"vidtube/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// RefreshTokenCookie is the cookie carrying the refresh token.
const RefreshTokenCookie = "refreshToken"

// tokenCookies writes and clears the two session cookies.
type tokenCookies struct {
	cfg config.CookieConfig
}

func newTokenCookies(cfg *config.Config) *tokenCookies {
	return &tokenCookies{cfg: cfg.Cookie}
}

func (tc *tokenCookies) set(c echo.Context, pair *entity.TokenPair) {
	c.SetCookie(tc.build(middleware.AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt))
	c.SetCookie(tc.build(RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt))
}

func (tc *tokenCookies) clear(c echo.Context) {
	for _, name := range []string{middleware.AccessTokenCookie, RefreshTokenCookie} {
		cookie := tc.build(name, "", time.Unix(0, 0))
		cookie.MaxAge = -1
		c.SetCookie(cookie)
	}
}

func (tc *tokenCookies) build(name, value string, expires time.Time) *http.Cookie {
	path := tc.cfg.Path
	if path == "" {
		path = "/"
	}

	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   tc.cfg.Domain,
		Expires:  expires,
		HttpOnly: true,
		Secure:   tc.cfg.Secure,
		SameSite: parseSameSite(tc.cfg.SameSite),
	}
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
