package impl

import (
	"context"
	"testing"

	"zentora/internal/domain/entity"
	domainerrors "zentora/internal/domain/errors"
	"zentora/internal/domain/repository"
	"zentora/internal/domain/service"
	"zentora/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type socialServiceMocks struct {
	userRepo *mockUserRepository
	sessions *mockSessionStore
	states   *mockOAuthStateStore
	temps    *mockTempAuthStore
	tokens   *mockTokenService
	github   *mockOAuthProvider
}

func newSocialService(t *testing.T) (usecase.SocialUsecase, *socialServiceMocks) {
	t.Helper()

	m := &socialServiceMocks{
		userRepo: &mockUserRepository{},
		sessions: &mockSessionStore{},
		states:   &mockOAuthStateStore{},
		temps:    &mockTempAuthStore{},
		tokens:   &mockTokenService{},
		github:   &mockOAuthProvider{},
	}

	svc := NewSocialService(SocialServiceParams{
		UserRepo: m.userRepo,
		Sessions: m.sessions,
		States:   m.states,
		Temps:    m.temps,
		Tokens:   m.tokens,
		Providers: service.OAuthProviders{
			entity.ProviderGitHub: m.github,
		},
		Logger: newDiscardLogger(),
	})

	return svc, m
}

func githubProfile(email string) *entity.SocialProfile {
	return &entity.SocialProfile{
		Provider:   entity.ProviderGitHub,
		ProviderID: "12345",
		Email:      email,
		FullName:   "Social User",
		AvatarURL:  "https://example.com/avatar.png",
	}
}

func TestSocialService_AuthorizationURL_Success(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	m.states.On("Save", ctx, mock.AnythingOfType("string"), entity.ProviderGitHub).Return(nil)
	m.github.On("AuthorizationURL", mock.AnythingOfType("string")).Return("https://github.com/login/oauth/authorize?state=x")

	url, err := svc.AuthorizationURL(ctx, entity.ProviderGitHub)

	require.NoError(t, err)
	assert.Contains(t, url, "github.com")
	m.states.AssertCalled(t, "Save", ctx, mock.AnythingOfType("string"), entity.ProviderGitHub)
}

func TestSocialService_AuthorizationURL_UnknownProvider(t *testing.T) {
	svc, _ := newSocialService(t)
	ctx := context.Background()

	_, err := svc.AuthorizationURL(ctx, entity.ProviderGoogle)

	require.ErrorIs(t, err, domainerrors.ErrOAuthProviderUnknown)
}

func TestSocialService_HandleCallback_CreatesUser(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	m.states.On("Take", ctx, "state-1").Return(entity.ProviderGitHub, nil)
	m.github.On("ExchangeCode", ctx, "auth-code").Return(githubProfile("new@example.com"), nil)
	m.userRepo.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	m.tokens.On("GenerateAccessToken", mock.AnythingOfType("service.AccessClaims")).Return("access-token", nil)
	m.tokens.On("GenerateRefreshToken", mock.AnythingOfType("service.RefreshClaims")).Return("refresh-token", nil)
	m.temps.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*entity.TempAuthPayload")).Return(nil)

	code, err := svc.HandleCallback(ctx, &usecase.CallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "state-1",
		Code:     "auth-code",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, code)

	created := m.userRepo.Calls[1].Arguments.Get(1).(*entity.User)
	assert.True(t, created.IsVerified)
	assert.Equal(t, entity.StatusInactive, created.Status)
	assert.Equal(t, entity.ProviderGitHub, created.Provider)
	assert.Equal(t, "12345", created.ProviderID)
	require.NotNil(t, created.LastLoginAt)

	payload := m.temps.Calls[0].Arguments.Get(2).(*entity.TempAuthPayload)
	assert.Equal(t, "access-token", payload.AccessToken)
	assert.Equal(t, "refresh-token", payload.RefreshToken)
}

func TestSocialService_HandleCallback_BadState(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	m.states.On("Take", ctx, "forged").Return(entity.AuthProvider(""), repository.ErrStateNotFound)

	_, err := svc.HandleCallback(ctx, &usecase.CallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "forged",
		Code:     "auth-code",
	})

	require.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
	m.github.AssertNotCalled(t, "ExchangeCode", mock.Anything, mock.Anything)
}

func TestSocialService_HandleCallback_StateProviderMismatch(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	m.states.On("Take", ctx, "state-1").Return(entity.ProviderGoogle, nil)

	_, err := svc.HandleCallback(ctx, &usecase.CallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "state-1",
		Code:     "auth-code",
	})

	require.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
}

func TestSocialService_HandleCallback_NoVerifiedEmail(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	m.states.On("Take", ctx, "state-1").Return(entity.ProviderGitHub, nil)
	m.github.On("ExchangeCode", ctx, "auth-code").Return(nil, service.ErrNoVerifiedEmail)

	_, err := svc.HandleCallback(ctx, &usecase.CallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "state-1",
		Code:     "auth-code",
	})

	require.ErrorIs(t, err, domainerrors.ErrOAuthEmailMissing)
}

func TestSocialService_HandleCallback_ProviderConflict(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	existing := localUser("taken@example.com")

	m.states.On("Take", ctx, "state-1").Return(entity.ProviderGitHub, nil)
	m.github.On("ExchangeCode", ctx, "auth-code").Return(githubProfile("taken@example.com"), nil)
	m.userRepo.On("FindByEmail", ctx, "taken@example.com").Return(existing, nil)

	_, err := svc.HandleCallback(ctx, &usecase.CallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "state-1",
		Code:     "auth-code",
	})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "PROVIDER_CONFLICT", appErr.ErrorCode())
}

func TestSocialService_HandleCallback_BackfillsProfile(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	existing := localUser("social@example.com")
	existing.Provider = entity.ProviderGitHub
	existing.ProviderID = ""
	existing.FullName = ""
	existing.AvatarURL = ""

	m.states.On("Take", ctx, "state-1").Return(entity.ProviderGitHub, nil)
	m.github.On("ExchangeCode", ctx, "auth-code").Return(githubProfile("social@example.com"), nil)
	m.userRepo.On("FindByEmail", ctx, "social@example.com").Return(existing, nil)
	m.userRepo.On("Update", ctx, existing).Return(nil)
	m.tokens.On("GenerateAccessToken", mock.AnythingOfType("service.AccessClaims")).Return("access-token", nil)
	m.tokens.On("GenerateRefreshToken", mock.AnythingOfType("service.RefreshClaims")).Return("refresh-token", nil)
	m.temps.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*entity.TempAuthPayload")).Return(nil)

	_, err := svc.HandleCallback(ctx, &usecase.CallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "state-1",
		Code:     "auth-code",
	})

	require.NoError(t, err)
	assert.Equal(t, "Social User", existing.FullName)
	assert.Equal(t, "12345", existing.ProviderID)
	m.userRepo.AssertCalled(t, "Update", ctx, existing)
}

func TestSocialService_HandleCallback_MarksExistingAccountPendingExchange(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	existing := localUser("social@example.com")
	existing.Provider = entity.ProviderGitHub
	existing.ProviderID = "12345"
	existing.FullName = "Social User"
	existing.AvatarURL = "https://example.com/avatar.png"
	existing.Status = entity.StatusActive
	existing.LastLoginAt = nil

	m.states.On("Take", ctx, "state-1").Return(entity.ProviderGitHub, nil)
	m.github.On("ExchangeCode", ctx, "auth-code").Return(githubProfile("social@example.com"), nil)
	m.userRepo.On("FindByEmail", ctx, "social@example.com").Return(existing, nil)
	m.userRepo.On("Update", ctx, existing).Return(nil)
	m.tokens.On("GenerateAccessToken", mock.AnythingOfType("service.AccessClaims")).Return("access-token", nil)
	m.tokens.On("GenerateRefreshToken", mock.AnythingOfType("service.RefreshClaims")).Return("refresh-token", nil)
	m.temps.On("Save", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*entity.TempAuthPayload")).Return(nil)

	_, err := svc.HandleCallback(ctx, &usecase.CallbackInput{
		Provider: entity.ProviderGitHub,
		State:    "state-1",
		Code:     "auth-code",
	})

	require.NoError(t, err)
	m.userRepo.AssertCalled(t, "Update", ctx, existing)
	assert.Equal(t, entity.StatusInactive, existing.Status)
	require.NotNil(t, existing.LastLoginAt)
}

func TestSocialService_Exchange_Success(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	user := localUser("social@example.com")
	user.Provider = entity.ProviderGitHub
	user.Status = entity.StatusInactive

	payload := &entity.TempAuthPayload{
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		Role:         user.Role,
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}

	m.temps.On("Take", ctx, "exchange-code").Return(payload, nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	m.userRepo.On("Update", ctx, user).Return(nil)
	m.sessions.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)

	output, err := svc.Exchange(ctx, "exchange-code")

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, entity.StatusActive, user.Status)
	require.NotNil(t, user.LastLoginAt)

	saved := m.sessions.Calls[0].Arguments.Get(1).(*entity.Session)
	assert.Equal(t, "refresh-token", saved.RefreshToken)
}

func TestSocialService_Exchange_UnknownCode(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	m.temps.On("Take", ctx, "stale").Return(nil, repository.ErrTempAuthNotFound)

	_, err := svc.Exchange(ctx, "stale")

	require.ErrorIs(t, err, domainerrors.ErrExchangeCodeInvalid)
}

func TestSocialService_Exchange_CorruptedPayload(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	m.temps.On("Take", ctx, "broken").Return(nil, repository.ErrTempAuthCorrupted)

	_, err := svc.Exchange(ctx, "broken")

	require.ErrorIs(t, err, domainerrors.ErrExchangeCodeInvalid)
}

func TestSocialService_Exchange_UserGone(t *testing.T) {
	svc, m := newSocialService(t)
	ctx := context.Background()

	userID := uuid.New()
	m.temps.On("Take", ctx, "exchange-code").Return(&entity.TempAuthPayload{UserID: userID}, nil)
	m.userRepo.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := svc.Exchange(ctx, "exchange-code")

	require.ErrorIs(t, err, domainerrors.ErrExchangeCodeInvalid)
}
