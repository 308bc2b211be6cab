package usecase

import "context"

// ChangePasswordInput defines the data required to change a password.
type ChangePasswordInput struct {
	AccessToken     string
	CurrentPassword string
	NewPassword     string
}

// ResetPasswordInput defines the data required to finish a password reset.
type ResetPasswordInput struct {
	Code        string
	NewPassword string
}

// ReactivateInput defines the data required to restore a deleted account.
type ReactivateInput struct {
	Email    string
	Password string
}

// AccountUsecase defines account lifecycle and credential operations.
type AccountUsecase interface {
	// Me returns the account owning the presented access token.
	Me(ctx context.Context, accessToken string) (*UserSummary, error)

	// ChangePassword verifies the current password, writes a new digest
	// and ends the session.
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error

	// ForgotPassword issues and mails a reset code for existing,
	// verified, password-backed accounts. The outcome is identical for
	// every input so account existence cannot be probed.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword validates the reset code, writes the new digest,
	// then invalidates the code and ends the session.
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error

	// RevokeAll ends the session and revokes the presented access
	// token after re-verifying the password.
	RevokeAll(ctx context.Context, accessToken, password string) error

	// DeleteAccount soft-deletes the account after re-verifying the
	// password and ends the session.
	DeleteAccount(ctx context.Context, accessToken, password string) error

	// Reactivate restores a soft-deleted account with the correct
	// password and starts a session.
	Reactivate(ctx context.Context, input *ReactivateInput) (*AuthOutput, error)

	// CleanupUnverified deletes unverified accounts older than the
	// verification window and their outstanding codes. Returns the
	// number of accounts removed.
	CleanupUnverified(ctx context.Context) (int, error)
}
