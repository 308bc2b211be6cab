// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"zentora/config"
	deliverycontext "zentora/internal/delivery/context"
	"zentora/internal/domain/entity"
	domainerrors "zentora/internal/domain/errors"
	"zentora/internal/domain/repository"
	"zentora/internal/domain/service"
	"zentora/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo          repository.UserRepository
	sessions          repository.SessionStore
	codes             repository.CodeStore
	blacklist         repository.TokenBlacklist
	hasher            service.PasswordHasher
	tokens            service.TokenService
	mailer            service.Mailer
	refreshWarnWindow time.Duration
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Sessions  repository.SessionStore
	Codes     repository.CodeStore
	Blacklist repository.TokenBlacklist
	Hasher    service.PasswordHasher
	Tokens    service.TokenService
	Mailer    service.Mailer
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	refreshWarnWindow := 24 * time.Hour
	if params.Config != nil && params.Config.JWT != nil && params.Config.JWT.RefreshWarnWindow > 0 {
		refreshWarnWindow = params.Config.JWT.RefreshWarnWindow
	}

	return &authService{
		userRepo:          params.UserRepo,
		sessions:          params.Sessions,
		codes:             params.Codes,
		blacklist:         params.Blacklist,
		hasher:            params.Hasher,
		tokens:            params.Tokens,
		mailer:            params.Mailer,
		refreshWarnWindow: refreshWarnWindow,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an unverified inactive account and emails a
// verification code. The write order is create-then-send; if issuing or
// delivering the code fails, the account row and any issued code are
// removed so no account exists without a deliverable code.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	user := &entity.User{
		Email:        input.Email,
		PasswordHash: hashedPassword,
		FullName:     input.FullName,
		Bio:          input.Bio,
		AvatarURL:    input.AvatarURL,
		Role:         entity.RoleUser,
		IsVerified:   false,
		Status:       entity.StatusInactive,
		Provider:     entity.ProviderLocal,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user during registration")
	}

	code, err := generateNumericCode(verificationCodeDigits)
	if err != nil {
		srv.rollbackRegistration(ctx, user, false)

		return nil, errors.Wrap(err, "failed to issue verification code")
	}

	if err := srv.codes.SaveVerificationCode(ctx, code, user.Email); err != nil {
		srv.rollbackRegistration(ctx, user, false)

		return nil, errors.Wrap(err, "failed to store verification code")
	}

	if err := srv.mailer.SendVerificationEmail(ctx, user.Email, code); err != nil {
		srv.log(ctx).Error("Verification email delivery failed", slog.String("email", user.Email), slog.Any("error", err))
		srv.rollbackRegistration(ctx, user, true)

		return nil, domainerrors.ErrMailDeliveryFailed.WrapMessage("verification email delivery failed")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return &usecase.RegisterOutput{User: usecase.NewUserSummary(user)}, nil
}

// rollbackRegistration undoes a partial registration. Failures here are
// logged, not surfaced; the caller already has the primary error.
func (srv *authService) rollbackRegistration(ctx context.Context, user *entity.User, dropCodes bool) {
	if dropCodes {
		if err := srv.codes.DeleteVerificationCodesForEmail(ctx, user.Email); err != nil {
			srv.log(ctx).Error("Failed to roll back verification codes", slog.String("email", user.Email), slog.Any("error", err))
		}
	}

	if err := srv.userRepo.Delete(ctx, user.ID); err != nil {
		srv.log(ctx).Error("Failed to roll back registered user", slog.Any("userID", user.ID), slog.Any("error", err))
	}
}

// VerifyEmail consumes a single-use verification code, activates the
// account and starts a session.
func (srv *authService) VerifyEmail(ctx context.Context, code string) (*usecase.AuthOutput, error) {
	email, err := srv.codes.ConsumeVerificationCode(ctx, code)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return nil, errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "verification code not found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to consume verification code")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		// The account was removed after the code was issued.
		return nil, errors.Wrap(domainerrors.ErrVerificationCodeInvalid, "no account for verification code")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for verification")
	}

	if user.IsVerified {
		return nil, errors.WithStack(domainerrors.ErrAlreadyVerified)
	}

	user.IsVerified = true

	output, err := srv.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Email verified", slog.Any("userID", user.ID))

	return output, nil
}

// ResendVerification reissues the verification code for an unverified account.
func (srv *authService) ResendVerification(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(domainerrors.ErrUserNotFound, "no account for verification resend")
	}
	if err != nil {
		return errors.Wrap(err, "failed to load user for verification resend")
	}

	if user.IsVerified {
		return errors.WithStack(domainerrors.ErrAlreadyVerified)
	}

	// Drop outstanding codes so only the newest one works.
	if err := srv.codes.DeleteVerificationCodesForEmail(ctx, user.Email); err != nil {
		return errors.Wrap(err, "failed to drop previous verification codes")
	}

	code, err := generateNumericCode(verificationCodeDigits)
	if err != nil {
		return errors.Wrap(err, "failed to issue verification code")
	}

	if err := srv.codes.SaveVerificationCode(ctx, code, user.Email); err != nil {
		return errors.Wrap(err, "failed to store verification code")
	}

	if err := srv.mailer.SendVerificationEmail(ctx, user.Email, code); err != nil {
		srv.log(ctx).Error("Verification email delivery failed", slog.String("email", user.Email), slog.Any("error", err))

		return domainerrors.ErrMailDeliveryFailed.WrapMessage("verification email delivery failed")
	}

	return nil
}

// Login authenticates a local account and starts a session, replacing
// any previous one. Unknown emails and wrong passwords produce the same
// error; social accounts are rejected with a provider-naming error
// instead, since they have no password to check.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for login")
	}

	if !user.IsLocal() {
		return nil, errors.WithStack(domainerrors.NewSocialAccountError(user.Provider))
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch during login", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	if !user.IsVerified {
		return nil, errors.WithStack(domainerrors.ErrEmailNotVerified)
	}

	if err := checkStatusGate(user.Status); err != nil {
		return nil, err
	}

	output, err := srv.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return output, nil
}

// Refresh rotates the token pair bound to the presented refresh token.
// The token must decode as a refresh token, the session record must
// exist and the stored string must match exactly; the rotation replaces
// the record wholesale and revokes the old token.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokens.ParseRefreshToken(input.RefreshToken)
	if errors.Is(err, service.ErrTokenExpired) {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenExpired, "refresh token expired")
	}
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh token failed validation")
	}

	session, err := srv.sessions.Find(ctx, claims.UserID)
	if errors.Is(err, repository.ErrSessionNotFound) {
		return nil, errors.Wrap(domainerrors.ErrRefreshSessionInvalid, "no session for refresh token")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session for refresh")
	}

	if session.RefreshToken != input.RefreshToken {
		// A newer login or refresh replaced the session.
		return nil, errors.Wrap(domainerrors.ErrRefreshSessionInvalid, "refresh token superseded")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrRefreshSessionInvalid, "no account for refresh token")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for refresh")
	}

	if err := checkStatusGate(user.Status); err != nil {
		return nil, err
	}

	accessToken, refreshToken, err := srv.mintTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := srv.sessions.Save(ctx, newSessionRecord(user, refreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to rotate session")
	}

	if err := srv.blacklist.Add(ctx, input.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to revoke rotated refresh token")
	}

	output := &usecase.RefreshOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         usecase.NewUserSummary(user),
	}
	if remaining := time.Until(claims.ExpiresAt); remaining < srv.refreshWarnWindow {
		output.Warning = "refresh token was close to expiry, consider logging in again"
	}

	return output, nil
}

// Logout ends the session owned by the presented access token, marks
// the account inactive and revokes the token.
func (srv *authService) Logout(ctx context.Context, accessToken string) error {
	claims, err := srv.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return errors.Wrap(domainerrors.ErrAccessTokenInvalid, "access token failed validation")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(domainerrors.ErrUserNotFound, "no account for access token")
	}
	if err != nil {
		return errors.Wrap(err, "failed to load user for logout")
	}

	user.Status = entity.StatusInactive
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to deactivate user on logout")
	}

	if err := srv.sessions.Delete(ctx, user.ID); err != nil {
		return errors.Wrap(err, "failed to delete session on logout")
	}

	if err := srv.blacklist.Add(ctx, accessToken); err != nil {
		return errors.Wrap(err, "failed to revoke access token on logout")
	}

	srv.log(ctx).Info("Logout completed", slog.Any("userID", user.ID))

	return nil
}

// startSession activates the account, mints a token pair and writes the
// session record, replacing any previous one.
func (srv *authService) startSession(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	now := time.Now()
	user.Status = entity.StatusActive
	user.LastLoginAt = &now

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to activate user")
	}

	accessToken, refreshToken, err := srv.mintTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := srv.sessions.Save(ctx, newSessionRecord(user, refreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         usecase.NewUserSummary(user),
	}, nil
}

func (srv *authService) mintTokenPair(user *entity.User) (accessToken, refreshToken string, err error) {
	accessToken, err = srv.tokens.GenerateAccessToken(service.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err = srv.tokens.GenerateRefreshToken(service.RefreshClaims{UserID: user.ID})
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate refresh token")
	}

	return accessToken, refreshToken, nil
}

func newSessionRecord(user *entity.User, refreshToken string) *entity.Session {
	return &entity.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role,
		Status:       user.Status,
		CreatedAt:    time.Now(),
	}
}
