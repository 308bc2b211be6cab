package middleware

import (
	"strings"

	"zentora/internal/domain/entity"
	domainerrors "zentora/internal/domain/errors"
	"zentora/internal/domain/repository"
	"zentora/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyAccessToken is the echo.Context key carrying the raw bearer
// token for handlers.
const ContextKeyAccessToken = "accessToken"

// AuthMiddleware gates protected routes on the presence of a
// non-revoked access token. Decoding the token is left to the usecase
// layer; the gate only checks presence and the revocation list.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	blacklist repository.TokenBlacklist
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, blacklist repository.TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, blacklist: blacklist}
}

// Authenticate extracts the access token from the access_token cookie,
// falling back to the Authorization header, and rejects revoked tokens.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return errors.WithStack(domainerrors.ErrMissingToken)
		}

		revoked, err := m.blacklist.Contains(c.Request().Context(), tokenString)
		if err != nil {
			return errors.Wrap(err, "failed to check token revocation")
		}
		if revoked {
			return errors.WithStack(domainerrors.ErrTokenRevoked)
		}

		c.Set(ContextKeyAccessToken, tokenString)

		return next(c)
	}
}

// RequireRole decodes the token and checks the embedded role. It must
// run after Authenticate.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := AccessToken(c)
			if tokenString == "" {
				return errors.WithStack(domainerrors.ErrMissingToken)
			}

			claims, err := m.tokenSvc.ParseAccessToken(tokenString)
			if err != nil {
				return errors.Wrap(domainerrors.ErrAccessTokenInvalid, "access token failed validation")
			}

			if claims.Role != requiredRole {
				return errors.Wrapf(domainerrors.ErrForbidden, "requires %q role", requiredRole)
			}

			return next(c)
		}
	}
}

// AccessToken returns the raw bearer token stored by Authenticate.
func AccessToken(c echo.Context) string {
	token, _ := c.Get(ContextKeyAccessToken).(string)

	return token
}

func extractToken(c echo.Context) string {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get("Authorization")
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}
