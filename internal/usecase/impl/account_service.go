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

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager          repository.TransactionManager
	userRepo           repository.UserRepository
	sessions           repository.SessionStore
	codes              repository.CodeStore
	blacklist          repository.TokenBlacklist
	hasher             service.PasswordHasher
	tokens             service.TokenService
	mailer             service.Mailer
	verificationWindow time.Duration
	logger             *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
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

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	verificationWindow := 24 * time.Hour
	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.VerificationCodeTTL > 0 {
		verificationWindow = params.Config.Auth.VerificationCodeTTL
	}

	return &accountService{
		txManager:          params.TxManager,
		userRepo:           params.UserRepo,
		sessions:           params.Sessions,
		codes:              params.Codes,
		blacklist:          params.Blacklist,
		hasher:             params.Hasher,
		tokens:             params.Tokens,
		mailer:             params.Mailer,
		verificationWindow: verificationWindow,
		logger:             params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// resolveUser loads the account owning the presented access token and
// runs it through the status gate.
func (srv *accountService) resolveUser(ctx context.Context, accessToken string) (*entity.User, error) {
	claims, err := srv.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrAccessTokenInvalid, "access token failed validation")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrAccessTokenInvalid, "no account for access token")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for access token")
	}

	if err := checkStatusGate(user.Status); err != nil {
		return nil, err
	}

	return user, nil
}

// Me returns the profile of the account owning the presented access token.
func (srv *accountService) Me(ctx context.Context, accessToken string) (*usecase.UserSummary, error) {
	user, err := srv.resolveUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	return usecase.NewUserSummary(user), nil
}

// ChangePassword verifies the current password, writes the new digest
// and ends the session so both tokens must be re-obtained.
func (srv *accountService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	user, err := srv.resolveUser(ctx, input.AccessToken)
	if err != nil {
		return err
	}

	if !user.IsLocal() {
		return errors.WithStack(domainerrors.NewSocialAccountError(user.Provider))
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return errors.Wrap(domainerrors.ErrInvalidCredentials, "current password mismatch")
	}

	if srv.hasher.Check(input.NewPassword, user.PasswordHash) {
		return errors.WithStack(domainerrors.ErrSamePassword)
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	user.PasswordHash = hashedPassword
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to persist new password")
	}

	if err := srv.endSession(ctx, user.ID, input.AccessToken); err != nil {
		return err
	}

	srv.log(ctx).Info("Password changed", slog.Any("userID", user.ID))

	return nil
}

// ForgotPassword issues and mails a reset code. It returns nil for
// unknown, social and unverified accounts so the response never reveals
// whether an email is registered.
func (srv *accountService) ForgotPassword(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Debug("Reset requested for unknown email")

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to load user for password reset")
	}

	if !user.IsLocal() || !user.IsVerified {
		return nil
	}

	code, err := generateNumericCode(verificationCodeDigits)
	if err != nil {
		return errors.Wrap(err, "failed to issue reset code")
	}

	if err := srv.codes.SaveResetCode(ctx, code, user.Email); err != nil {
		return errors.Wrap(err, "failed to store reset code")
	}

	if err := srv.mailer.SendPasswordResetEmail(ctx, user.Email, code); err != nil {
		// Invalidate the undeliverable code but keep the response
		// indistinguishable from the success path.
		srv.log(ctx).Error("Reset email delivery failed", slog.String("email", user.Email), slog.Any("error", err))

		if invErr := srv.codes.InvalidateResetCode(ctx, code); invErr != nil {
			srv.log(ctx).Error("Failed to invalidate undeliverable reset code", slog.Any("error", invErr))
		}
	}

	return nil
}

// ResetPassword validates the reset code, writes the new digest, then
// invalidates the code and ends the session. The code stays valid until
// the password write succeeds so a failed attempt can be retried.
func (srv *accountService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	email, err := srv.codes.FindResetCode(ctx, input.Code)
	if errors.Is(err, repository.ErrCodeNotFound) {
		return errors.Wrap(domainerrors.ErrResetCodeInvalid, "reset code not found")
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up reset code")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return errors.Wrap(domainerrors.ErrResetCodeInvalid, "no account for reset code")
	}
	if err != nil {
		return errors.Wrap(err, "failed to load user for password reset")
	}

	if !user.IsLocal() {
		return errors.Wrap(domainerrors.ErrResetCodeInvalid, "reset code for social account")
	}

	hashedPassword, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	user.PasswordHash = hashedPassword
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to persist new password")
	}

	if err := srv.codes.InvalidateResetCode(ctx, input.Code); err != nil {
		return errors.Wrap(err, "failed to invalidate reset code")
	}

	if err := srv.sessions.Delete(ctx, user.ID); err != nil {
		return errors.Wrap(err, "failed to delete session after password reset")
	}

	srv.log(ctx).Info("Password reset", slog.Any("userID", user.ID))

	return nil
}

// RevokeAll re-verifies the password, ends the session and revokes the
// presented access token.
func (srv *accountService) RevokeAll(ctx context.Context, accessToken, password string) error {
	user, err := srv.verifyPasswordGate(ctx, accessToken, password)
	if err != nil {
		return err
	}

	user.Status = entity.StatusInactive
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to deactivate user")
	}

	if err := srv.endSession(ctx, user.ID, accessToken); err != nil {
		return err
	}

	srv.log(ctx).Info("All sessions revoked", slog.Any("userID", user.ID))

	return nil
}

// DeleteAccount soft-deletes the account after re-verifying the
// password, then ends the session. The row survives so Reactivate can
// restore it.
func (srv *accountService) DeleteAccount(ctx context.Context, accessToken, password string) error {
	user, err := srv.verifyPasswordGate(ctx, accessToken, password)
	if err != nil {
		return err
	}

	user.Status = entity.StatusDeleted
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to soft-delete user")
	}

	if err := srv.endSession(ctx, user.ID, accessToken); err != nil {
		return err
	}

	srv.log(ctx).Info("Account soft-deleted", slog.Any("userID", user.ID))

	return nil
}

// Reactivate restores a soft-deleted local account and starts a session.
func (srv *accountService) Reactivate(ctx context.Context, input *usecase.ReactivateInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "unknown email")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for reactivation")
	}

	if user.Status != entity.StatusDeleted {
		return nil, errors.WithStack(domainerrors.ErrAccountNotDeleted)
	}

	if !user.IsLocal() {
		return nil, errors.WithStack(domainerrors.NewSocialAccountError(user.Provider))
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	now := time.Now()
	user.Status = entity.StatusActive
	user.LastLoginAt = &now
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to reactivate user")
	}

	accessToken, err := srv.tokens.GenerateAccessToken(service.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokens.GenerateRefreshToken(service.RefreshClaims{UserID: user.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	if err := srv.sessions.Save(ctx, newSessionRecord(user, refreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	srv.log(ctx).Info("Account reactivated", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         usecase.NewUserSummary(user),
	}, nil
}

// CleanupUnverified removes unverified accounts older than the
// verification window in a single transaction, then drops their
// outstanding codes best-effort.
func (srv *accountService) CleanupUnverified(ctx context.Context) (int, error) {
	cutoff := time.Now().Add(-srv.verificationWindow)

	stale, err := srv.userRepo.FindUnverifiedBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to list stale unverified accounts")
	}
	if len(stale) == 0 {
		return 0, nil
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		repo := factory.NewUserRepository()
		for _, user := range stale {
			if err := repo.Delete(ctx, user.ID); err != nil {
				return errors.Wrapf(err, "failed to delete unverified user %s", user.ID)
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, user := range stale {
		if err := srv.codes.DeleteVerificationCodesForEmail(ctx, user.Email); err != nil {
			srv.log(ctx).Warn("Failed to drop verification codes for removed account",
				slog.String("email", user.Email), slog.Any("error", err))
		}
	}

	srv.log(ctx).Info("Unverified accounts removed", slog.Int("count", len(stale)))

	return len(stale), nil
}

// verifyPasswordGate resolves the token owner and re-verifies the
// password for destructive operations.
func (srv *accountService) verifyPasswordGate(ctx context.Context, accessToken, password string) (*entity.User, error) {
	user, err := srv.resolveUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !user.IsLocal() {
		return nil, errors.WithStack(domainerrors.NewSocialAccountError(user.Provider))
	}

	if !srv.hasher.Check(password, user.PasswordHash) {
		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "password mismatch")
	}

	return user, nil
}

// endSession deletes the session record and revokes the presented
// access token.
func (srv *accountService) endSession(ctx context.Context, userID uuid.UUID, accessToken string) error {
	if err := srv.sessions.Delete(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	if err := srv.blacklist.Add(ctx, accessToken); err != nil {
		return errors.Wrap(err, "failed to revoke access token")
	}

	return nil
}
