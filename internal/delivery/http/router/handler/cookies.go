// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"zentora/config"

	"github.com/labstack/echo/v4"
)

const (
	cookieAccessToken  = "access_token"
	cookieRefreshToken = "refresh_token"
	cookieIsLoggedIn   = "is_logged_in"
)

// CookieManager writes and clears the auth cookies shared by the local
// and social sign-in flows. The token cookies are httpOnly; is_logged_in
// is the one flag frontend scripts may read.
type CookieManager struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	secure     bool
}

// NewCookieManager is the constructor for CookieManager.
func NewCookieManager(cfg *config.Config) *CookieManager {
	return &CookieManager{
		accessTTL:  cfg.JWT.AccessTokenTTL,
		refreshTTL: cfg.JWT.RefreshTokenTTL,
		secure:     !cfg.Env.Debug,
	}
}

// SetAuthCookies writes the token pair and the login flag.
func (m *CookieManager) SetAuthCookies(c echo.Context, accessToken, refreshToken string) {
	c.SetCookie(m.cookie(cookieAccessToken, accessToken, m.accessTTL, true))
	c.SetCookie(m.cookie(cookieRefreshToken, refreshToken, m.refreshTTL, true))
	c.SetCookie(m.cookie(cookieIsLoggedIn, "true", m.accessTTL, false))
}

// ClearAuthCookies expires all auth cookies.
func (m *CookieManager) ClearAuthCookies(c echo.Context) {
	c.SetCookie(m.cookie(cookieAccessToken, "", -time.Hour, true))
	c.SetCookie(m.cookie(cookieRefreshToken, "", -time.Hour, true))
	c.SetCookie(m.cookie(cookieIsLoggedIn, "", -time.Hour, false))
}

func (m *CookieManager) cookie(name, value string, ttl time.Duration, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: httpOnly,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
