// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"time"

	"zentora/internal/domain/entity"

	"github.com/google/uuid"
)

// UserSummary is the sanitized view of an account returned to clients.
// It never carries the password digest.
type UserSummary struct {
	ID          uuid.UUID           `json:"id"`
	Email       string              `json:"email"`
	FullName    string              `json:"full_name"`
	Role        entity.Role         `json:"role"`
	Bio         string              `json:"bio,omitempty"`
	AvatarURL   string              `json:"avatar_url,omitempty"`
	IsVerified  bool                `json:"is_verified"`
	Status      entity.UserStatus   `json:"status"`
	Provider    entity.AuthProvider `json:"provider"`
	LastLoginAt *time.Time          `json:"last_login_at,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// NewUserSummary maps a domain user to its client-facing view.
func NewUserSummary(user *entity.User) *UserSummary {
	if user == nil {
		return nil
	}

	return &UserSummary{
		ID:          user.ID,
		Email:       user.Email,
		FullName:    user.FullName,
		Role:        user.Role,
		Bio:         user.Bio,
		AvatarURL:   user.AvatarURL,
		IsVerified:  user.IsVerified,
		Status:      user.Status,
		Provider:    user.Provider,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}
