package usecase

import "context"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FullName  string
	Bio       string
	AvatarURL string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the presented refresh token.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's basic information.
type RegisterOutput struct {
	User *UserSummary
}

// AuthOutput returns a freshly minted token pair with the account view.
type AuthOutput struct {
	AccessToken  string
	RefreshToken string
	User         *UserSummary
}

// RefreshOutput returns the rotated token pair. Warning is set when the
// presented refresh token was close to expiry.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
	Warning      string
	User         *UserSummary
}

// AuthUsecase defines the registration, verification and session
// operations. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	// Register creates an unverified inactive account and emails a
	// verification code. The account is removed again if the code
	// cannot be issued or delivered.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// VerifyEmail consumes a single-use verification code, activates
	// the account and starts a session.
	VerifyEmail(ctx context.Context, code string) (*AuthOutput, error)

	// ResendVerification reissues the verification code for an
	// unverified account.
	ResendVerification(ctx context.Context, email string) error

	// Login authenticates a local account and starts a session,
	// replacing any previous one.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh rotates the token pair bound to the presented refresh
	// token and revokes the old one.
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)

	// Logout ends the session owned by the presented access token and
	// revokes the token.
	Logout(ctx context.Context, accessToken string) error
}
