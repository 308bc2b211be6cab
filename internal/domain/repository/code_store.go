package repository

import (
	"context"
	"errors"
)

// ErrCodeNotFound is returned when a one-time code is missing or expired.
var ErrCodeNotFound = errors.New("code not found")

// CodeStore keeps the one-time email verification and password reset codes.
//
// Verification codes are single-use: ConsumeVerificationCode removes the
// code as it reads it. Reset codes are read first and invalidated only
// after the password write succeeds, so a failed write leaves the code
// usable.
type CodeStore interface {
	// SaveVerificationCode stores code -> email with the verification TTL.
	SaveVerificationCode(ctx context.Context, code, email string) error

	// ConsumeVerificationCode returns the email bound to the code and
	// deletes it in the same call, or returns ErrCodeNotFound.
	ConsumeVerificationCode(ctx context.Context, code string) (string, error)

	// DeleteVerificationCodesForEmail removes all verification codes
	// issued for the email. Used on registration rollback and the
	// unverified sweep.
	DeleteVerificationCodesForEmail(ctx context.Context, email string) error

	// SaveResetCode stores code -> email with the reset TTL.
	SaveResetCode(ctx context.Context, code, email string) error

	// FindResetCode returns the email bound to the code without
	// consuming it, or ErrCodeNotFound.
	FindResetCode(ctx context.Context, code string) (string, error)

	// InvalidateResetCode removes the reset code.
	InvalidateResetCode(ctx context.Context, code string) error
}
