// Package model contains the GORM persistence models. They are kept
// separate from the domain entities so schema concerns never leak into
// the domain layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the GORM model backing the users table.
type UserModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string     `gorm:"uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password"`
	FullName     string     `gorm:"not null"`
	Role         string     `gorm:"not null;default:USER"`
	Bio          string
	AvatarURL    string
	IsVerified   bool       `gorm:"not null;default:false"`
	Status       string     `gorm:"not null;default:inactive;index"`
	Provider     string     `gorm:"not null;default:local"`
	ProviderID   string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the default GORM table name.
func (UserModel) TableName() string {
	return "users"
}
