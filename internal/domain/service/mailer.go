package service

import "context"

// Mailer defines the interface for transactional email delivery.
type Mailer interface {
	// SendVerificationEmail delivers the email verification code.
	SendVerificationEmail(ctx context.Context, to, code string) error

	// SendPasswordResetEmail delivers the password reset code.
	SendPasswordResetEmail(ctx context.Context, to, code string) error
}
