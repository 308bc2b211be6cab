package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "zentora/internal/delivery/context"
	"zentora/internal/domain/entity"
	domainerrors "zentora/internal/domain/errors"
	"zentora/internal/domain/repository"
	"zentora/internal/domain/service"
	"zentora/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// socialService implements the SocialUsecase interface.
type socialService struct {
	userRepo  repository.UserRepository
	sessions  repository.SessionStore
	states    repository.OAuthStateStore
	temps     repository.TempAuthStore
	tokens    service.TokenService
	providers service.OAuthProviders
	logger    *slog.Logger
}

// SocialServiceParams holds dependencies for socialService, injected by Fx.
type SocialServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Sessions  repository.SessionStore
	States    repository.OAuthStateStore
	Temps     repository.TempAuthStore
	Tokens    service.TokenService
	Providers service.OAuthProviders
	Logger    *slog.Logger
}

// NewSocialService is the constructor for socialService.
func NewSocialService(params SocialServiceParams) usecase.SocialUsecase {
	return &socialService{
		userRepo:  params.UserRepo,
		sessions:  params.Sessions,
		states:    params.States,
		temps:     params.Temps,
		tokens:    params.Tokens,
		providers: params.Providers,
		logger:    params.Logger,
	}
}

func (srv *socialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// AuthorizationURL builds the provider consent URL with a freshly
// stored CSRF state.
func (srv *socialService) AuthorizationURL(ctx context.Context, provider entity.AuthProvider) (string, error) {
	p, ok := srv.providers.Get(provider)
	if !ok {
		return "", errors.Wrapf(domainerrors.ErrOAuthProviderUnknown, "provider %q not configured", provider)
	}

	state, err := generateOpaqueCode(opaqueCodeBytes)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate state")
	}

	if err := srv.states.Save(ctx, state, provider); err != nil {
		return "", errors.Wrap(err, "failed to store state")
	}

	return p.AuthorizationURL(state), nil
}

// HandleCallback validates the CSRF state, exchanges the authorization
// code for a profile, links or creates the account and returns a
// single-use exchange code carrying the stashed token pair.
func (srv *socialService) HandleCallback(ctx context.Context, input *usecase.CallbackInput) (string, error) {
	p, ok := srv.providers.Get(input.Provider)
	if !ok {
		return "", errors.Wrapf(domainerrors.ErrOAuthProviderUnknown, "provider %q not configured", input.Provider)
	}

	stateProvider, err := srv.states.Take(ctx, input.State)
	if errors.Is(err, repository.ErrStateNotFound) {
		return "", errors.Wrap(domainerrors.ErrOAuthStateInvalid, "state not found")
	}
	if err != nil {
		return "", errors.Wrap(err, "failed to look up state")
	}
	if stateProvider != input.Provider {
		return "", errors.Wrap(domainerrors.ErrOAuthStateInvalid, "state issued for another provider")
	}

	profile, err := p.ExchangeCode(ctx, input.Code)
	if errors.Is(err, service.ErrNoVerifiedEmail) {
		return "", errors.Wrap(domainerrors.ErrOAuthEmailMissing, "provider returned no verified email")
	}
	if err != nil {
		srv.log(ctx).Warn("Authorization code exchange failed",
			slog.String("provider", string(input.Provider)), slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrOAuthCodeInvalid, "authorization code exchange failed")
	}

	user, err := srv.linkOrCreate(ctx, profile)
	if err != nil {
		return "", err
	}

	accessToken, err := srv.tokens.GenerateAccessToken(service.AccessClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, err := srv.tokens.GenerateRefreshToken(service.RefreshClaims{UserID: user.ID})
	if err != nil {
		return "", errors.Wrap(err, "failed to generate refresh token")
	}

	code, err := generateOpaqueCode(opaqueCodeBytes)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate exchange code")
	}

	payload := &entity.TempAuthPayload{
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if err := srv.temps.Save(ctx, code, payload); err != nil {
		return "", errors.Wrap(err, "failed to stash token pair")
	}

	srv.log(ctx).Info("OAuth callback completed",
		slog.String("provider", string(input.Provider)), slog.Any("userID", user.ID))

	return code, nil
}

// linkOrCreate finds the account for the provider profile or creates a
// pre-verified one. An account registered through a different provider
// is never silently relinked.
func (srv *socialService) linkOrCreate(ctx context.Context, profile *entity.SocialProfile) (*entity.User, error) {
	now := time.Now()

	user, err := srv.userRepo.FindByEmail(ctx, profile.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		user = &entity.User{
			Email:       profile.Email,
			FullName:    profile.FullName,
			AvatarURL:   profile.AvatarURL,
			Role:        entity.RoleUser,
			IsVerified:  true,
			Status:      entity.StatusInactive,
			Provider:    profile.Provider,
			ProviderID:  profile.ProviderID,
			LastLoginAt: &now,
		}
		if err := srv.userRepo.Create(ctx, user); err != nil {
			return nil, errors.Wrap(err, "failed to create social user")
		}

		return user, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for social sign-in")
	}

	if user.Provider != profile.Provider {
		return nil, errors.WithStack(domainerrors.NewProviderConflictError(user.Provider))
	}

	if err := checkStatusGate(user.Status); err != nil {
		return nil, err
	}

	if user.FullName == "" && profile.FullName != "" {
		user.FullName = profile.FullName
	}
	if user.AvatarURL == "" && profile.AvatarURL != "" {
		user.AvatarURL = profile.AvatarURL
	}
	if user.ProviderID == "" {
		user.ProviderID = profile.ProviderID
	}

	// The sign-in itself is recorded even if the exchange is abandoned;
	// the account stays inactive until the exchange completes.
	user.Status = entity.StatusInactive
	user.LastLoginAt = &now
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update social user")
	}

	return user, nil
}

// Exchange redeems the single-use exchange code for the stashed token
// pair, activates the account and writes the session record.
func (srv *socialService) Exchange(ctx context.Context, code string) (*usecase.ExchangeOutput, error) {
	payload, err := srv.temps.Take(ctx, code)
	if errors.Is(err, repository.ErrTempAuthNotFound) {
		return nil, errors.Wrap(domainerrors.ErrExchangeCodeInvalid, "exchange code not found")
	}
	if errors.Is(err, repository.ErrTempAuthCorrupted) {
		srv.log(ctx).Error("Stashed auth payload unreadable", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrExchangeCodeInvalid, "stashed payload unreadable")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to redeem exchange code")
	}

	user, err := srv.userRepo.FindByID(ctx, payload.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(domainerrors.ErrExchangeCodeInvalid, "no account for exchange code")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user for exchange")
	}

	now := time.Now()
	user.Status = entity.StatusActive
	user.LastLoginAt = &now
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to activate user")
	}

	if err := srv.sessions.Save(ctx, newSessionRecord(user, payload.RefreshToken)); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	srv.log(ctx).Info("Exchange completed", slog.Any("userID", user.ID))

	return &usecase.ExchangeOutput{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		User:         usecase.NewUserSummary(user),
	}, nil
}
