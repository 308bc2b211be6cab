package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"zentora/config"
	"zentora/internal/domain/entity"
	"zentora/internal/domain/service"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// jwtClaims is the wire shape shared by both token kinds. Email and Role
// are only set on access tokens.
type jwtClaims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     cfg.JWT.Secret,
		accessTTL:  cfg.JWT.AccessTokenTTL,
		refreshTTL: cfg.JWT.RefreshTokenTTL,
	}, nil
}

// GenerateAccessToken creates a short-lived access token carrying the
// user's identity and role.
func (s *jwtService) GenerateAccessToken(claims service.AccessClaims) (string, error) {
	return s.sign(&jwtClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		Type:  tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.accessTTL)),
		},
	})
}

// GenerateRefreshToken creates a long-lived refresh token carrying only
// the subject.
func (s *jwtService) GenerateRefreshToken(claims service.RefreshClaims) (string, error) {
	return s.sign(&jwtClaims{
		Type: tokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.refreshTTL)),
		},
	})
}

// ParseAccessToken validates and decodes an access token.
func (s *jwtService) ParseAccessToken(tokenString string) (*service.AccessClaims, error) {
	claims, err := s.parse(tokenString, tokenTypeAccess)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	return &service.AccessClaims{
		UserID: userID,
		Email:  claims.Email,
		Role:   entity.Role(claims.Role),
	}, nil
}

// ParseRefreshToken validates and decodes a refresh token.
func (s *jwtService) ParseRefreshToken(tokenString string) (*service.RefreshClaims, error) {
	claims, err := s.parse(tokenString, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, service.ErrTokenMalformed
	}

	return &service.RefreshClaims{
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

func (s *jwtService) sign(claims *jwtClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// parse validates signature, expiry and the type claim.
// A mismatched type is ErrTokenMalformed even when the token is also
// expired, so the wrong token kind never reads as merely expired.
// Expiry on the right kind is ErrTokenExpired; everything else is
// ErrTokenMalformed.
func (s *jwtService) parse(tokenString, wantType string) (*jwtClaims, error) {
	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			// The claims were decoded before expiry validation failed.
			if claims.Type != wantType {
				return nil, service.ErrTokenMalformed
			}

			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrTokenMalformed
	}

	if !token.Valid || claims.Type != wantType {
		return nil, service.ErrTokenMalformed
	}

	return claims, nil
}
