package entity

import "github.com/google/uuid"

// SocialProfile is the normalized identity returned by an OAuth provider
// after a successful authorization-code exchange.
type SocialProfile struct {
	Provider   AuthProvider
	ProviderID string
	Email      string
	FullName   string
	AvatarURL  string
}

// TempAuthPayload is the short-lived record bridging an OAuth callback
// redirect and the follow-up exchange request. It carries everything the
// exchange needs so no provider round trip happens twice.
type TempAuthPayload struct {
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
}
