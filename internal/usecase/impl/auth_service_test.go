package impl

import (
	"context"
	"testing"
	"time"

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

type authServiceMocks struct {
	userRepo  *mockUserRepository
	sessions  *mockSessionStore
	codes     *mockCodeStore
	blacklist *mockTokenBlacklist
	hasher    *mockPasswordHasher
	tokens    *mockTokenService
	mailer    *mockMailer
}

func newAuthService(t *testing.T) (usecase.AuthUsecase, *authServiceMocks) {
	t.Helper()

	m := &authServiceMocks{
		userRepo:  &mockUserRepository{},
		sessions:  &mockSessionStore{},
		codes:     &mockCodeStore{},
		blacklist: &mockTokenBlacklist{},
		hasher:    &mockPasswordHasher{},
		tokens:    &mockTokenService{},
		mailer:    &mockMailer{},
	}

	svc := NewAuthService(AuthServiceParams{
		UserRepo:  m.userRepo,
		Sessions:  m.sessions,
		Codes:     m.codes,
		Blacklist: m.blacklist,
		Hasher:    m.hasher,
		Tokens:    m.tokens,
		Mailer:    m.mailer,
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	return svc, m
}

func localUser(email string) *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: "hashed-password",
		FullName:     "Test User",
		Role:         entity.RoleUser,
		IsVerified:   true,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderLocal,
	}
}

func expectTokenPair(m *authServiceMocks, access, refresh string) {
	m.tokens.On("GenerateAccessToken", mock.AnythingOfType("service.AccessClaims")).Return(access, nil)
	m.tokens.On("GenerateRefreshToken", mock.AnythingOfType("service.RefreshClaims")).Return(refresh, nil)
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.hasher.On("Hash", "password123").Return("hashed-password", nil)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	m.codes.On("SaveVerificationCode", ctx, mock.AnythingOfType("string"), "new@example.com").Return(nil)
	m.mailer.On("SendVerificationEmail", ctx, "new@example.com", mock.AnythingOfType("string")).Return(nil)

	output, err := svc.Register(ctx, &usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", output.User.Email)
	assert.Equal(t, entity.StatusInactive, output.User.Status)
	assert.False(t, output.User.IsVerified)

	created := m.userRepo.Calls[0].Arguments.Get(1).(*entity.User)
	assert.Equal(t, "hashed-password", created.PasswordHash)
	assert.Equal(t, entity.ProviderLocal, created.Provider)
	assert.Equal(t, entity.RoleUser, created.Role)
}

func TestAuthService_Register_MailFailureRollsBack(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.hasher.On("Hash", "password123").Return("hashed-password", nil)
	m.userRepo.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)
	m.codes.On("SaveVerificationCode", ctx, mock.AnythingOfType("string"), "new@example.com").Return(nil)
	m.mailer.On("SendVerificationEmail", ctx, "new@example.com", mock.AnythingOfType("string")).
		Return(assert.AnError)
	m.codes.On("DeleteVerificationCodesForEmail", ctx, "new@example.com").Return(nil)
	m.userRepo.On("Delete", ctx, mock.AnythingOfType("uuid.UUID")).Return(nil)

	_, err := svc.Register(ctx, &usecase.RegisterInput{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New User",
	})

	require.ErrorIs(t, err, domainerrors.ErrMailDeliveryFailed)
	m.codes.AssertCalled(t, "DeleteVerificationCodesForEmail", ctx, "new@example.com")
	m.userRepo.AssertCalled(t, "Delete", ctx, mock.AnythingOfType("uuid.UUID"))
}

func TestAuthService_VerifyEmail_Success(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("verify@example.com")
	user.IsVerified = false
	user.Status = entity.StatusInactive

	m.codes.On("ConsumeVerificationCode", ctx, "123456").Return("verify@example.com", nil)
	m.userRepo.On("FindByEmail", ctx, "verify@example.com").Return(user, nil)
	m.userRepo.On("Update", ctx, user).Return(nil)
	expectTokenPair(m, "access-token", "refresh-token")
	m.sessions.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)

	output, err := svc.VerifyEmail(ctx, "123456")

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.True(t, user.IsVerified)
	assert.Equal(t, entity.StatusActive, user.Status)
	require.NotNil(t, user.LastLoginAt)
}

func TestAuthService_VerifyEmail_UnknownCode(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.codes.On("ConsumeVerificationCode", ctx, "000000").Return("", repository.ErrCodeNotFound)

	_, err := svc.VerifyEmail(ctx, "000000")

	require.ErrorIs(t, err, domainerrors.ErrVerificationCodeInvalid)
}

func TestAuthService_VerifyEmail_AlreadyVerified(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("done@example.com")

	m.codes.On("ConsumeVerificationCode", ctx, "123456").Return("done@example.com", nil)
	m.userRepo.On("FindByEmail", ctx, "done@example.com").Return(user, nil)

	_, err := svc.VerifyEmail(ctx, "123456")

	require.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
}

func TestAuthService_ResendVerification_AlreadyVerified(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.userRepo.On("FindByEmail", ctx, "done@example.com").Return(localUser("done@example.com"), nil)

	err := svc.ResendVerification(ctx, "done@example.com")

	require.ErrorIs(t, err, domainerrors.ErrAlreadyVerified)
}

func TestAuthService_ResendVerification_ReplacesCode(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("pending@example.com")
	user.IsVerified = false

	m.userRepo.On("FindByEmail", ctx, "pending@example.com").Return(user, nil)
	m.codes.On("DeleteVerificationCodesForEmail", ctx, "pending@example.com").Return(nil)
	m.codes.On("SaveVerificationCode", ctx, mock.AnythingOfType("string"), "pending@example.com").Return(nil)
	m.mailer.On("SendVerificationEmail", ctx, "pending@example.com", mock.AnythingOfType("string")).Return(nil)

	err := svc.ResendVerification(ctx, "pending@example.com")

	require.NoError(t, err)
	m.codes.AssertCalled(t, "DeleteVerificationCodesForEmail", ctx, "pending@example.com")
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("user@example.com")
	user.Status = entity.StatusInactive

	m.userRepo.On("FindByEmail", ctx, "user@example.com").Return(user, nil)
	m.hasher.On("Check", "password123", "hashed-password").Return(true)
	m.userRepo.On("Update", ctx, user).Return(nil)
	expectTokenPair(m, "access-token", "refresh-token")
	m.sessions.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)

	output, err := svc.Login(ctx, &usecase.LoginInput{Email: "user@example.com", Password: "password123"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, entity.StatusActive, user.Status)

	saved := m.sessions.Calls[0].Arguments.Get(1).(*entity.Session)
	assert.Equal(t, user.ID, saved.UserID)
	assert.Equal(t, "refresh-token", saved.RefreshToken)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.userRepo.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	_, err := svc.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "whatever"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.userRepo.On("FindByEmail", ctx, "user@example.com").Return(localUser("user@example.com"), nil)
	m.hasher.On("Check", "wrong", "hashed-password").Return(false)

	_, err := svc.Login(ctx, &usecase.LoginInput{Email: "user@example.com", Password: "wrong"})

	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_SocialAccount(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("social@example.com")
	user.Provider = entity.ProviderGoogle
	user.PasswordHash = ""

	m.userRepo.On("FindByEmail", ctx, "social@example.com").Return(user, nil)

	_, err := svc.Login(ctx, &usecase.LoginInput{Email: "social@example.com", Password: "whatever"})

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "SOCIAL_ACCOUNT", appErr.ErrorCode())
	m.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Unverified(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("pending@example.com")
	user.IsVerified = false

	m.userRepo.On("FindByEmail", ctx, "pending@example.com").Return(user, nil)
	m.hasher.On("Check", "password123", "hashed-password").Return(true)

	_, err := svc.Login(ctx, &usecase.LoginInput{Email: "pending@example.com", Password: "password123"})

	require.ErrorIs(t, err, domainerrors.ErrEmailNotVerified)
}

func TestAuthService_Login_Suspended(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("banned@example.com")
	user.Status = entity.StatusSuspended

	m.userRepo.On("FindByEmail", ctx, "banned@example.com").Return(user, nil)
	m.hasher.On("Check", "password123", "hashed-password").Return(true)

	_, err := svc.Login(ctx, &usecase.LoginInput{Email: "banned@example.com", Password: "password123"})

	require.ErrorIs(t, err, domainerrors.ErrAccountSuspended)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("user@example.com")
	claims := &service.RefreshClaims{UserID: user.ID, ExpiresAt: time.Now().Add(6 * 24 * time.Hour)}

	m.tokens.On("ParseRefreshToken", "old-refresh").Return(claims, nil)
	m.sessions.On("Find", ctx, user.ID).Return(&entity.Session{UserID: user.ID, RefreshToken: "old-refresh"}, nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	expectTokenPair(m, "new-access", "new-refresh")
	m.sessions.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)
	m.blacklist.On("Add", ctx, "old-refresh").Return(nil)

	output, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "old-refresh"})

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, "new-refresh", output.RefreshToken)
	assert.Empty(t, output.Warning)
	m.blacklist.AssertCalled(t, "Add", ctx, "old-refresh")
}

func TestAuthService_Refresh_WarnsNearExpiry(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("user@example.com")
	claims := &service.RefreshClaims{UserID: user.ID, ExpiresAt: time.Now().Add(2 * time.Hour)}

	m.tokens.On("ParseRefreshToken", "old-refresh").Return(claims, nil)
	m.sessions.On("Find", ctx, user.ID).Return(&entity.Session{UserID: user.ID, RefreshToken: "old-refresh"}, nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	expectTokenPair(m, "new-access", "new-refresh")
	m.sessions.On("Save", ctx, mock.AnythingOfType("*entity.Session")).Return(nil)
	m.blacklist.On("Add", ctx, "old-refresh").Return(nil)

	output, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "old-refresh"})

	require.NoError(t, err)
	assert.NotEmpty(t, output.Warning)
}

func TestAuthService_Refresh_Malformed(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.tokens.On("ParseRefreshToken", "garbage").Return(nil, service.ErrTokenMalformed)

	_, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "garbage"})

	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_Expired(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.tokens.On("ParseRefreshToken", "stale").Return(nil, service.ErrTokenExpired)

	_, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "stale"})

	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenExpired)
}

func TestAuthService_Refresh_SupersededToken(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	userID := uuid.New()
	claims := &service.RefreshClaims{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}

	m.tokens.On("ParseRefreshToken", "old-refresh").Return(claims, nil)
	m.sessions.On("Find", ctx, userID).Return(&entity.Session{UserID: userID, RefreshToken: "newer-refresh"}, nil)

	_, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "old-refresh"})

	require.ErrorIs(t, err, domainerrors.ErrRefreshSessionInvalid)
	m.blacklist.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_NoSession(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	userID := uuid.New()
	claims := &service.RefreshClaims{UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}

	m.tokens.On("ParseRefreshToken", "orphan").Return(claims, nil)
	m.sessions.On("Find", ctx, userID).Return(nil, repository.ErrSessionNotFound)

	_, err := svc.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "orphan"})

	require.ErrorIs(t, err, domainerrors.ErrRefreshSessionInvalid)
}

func TestAuthService_Logout_Success(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	user := localUser("user@example.com")

	m.tokens.On("ParseAccessToken", "access-token").Return(&service.AccessClaims{UserID: user.ID}, nil)
	m.userRepo.On("FindByID", ctx, user.ID).Return(user, nil)
	m.userRepo.On("Update", ctx, user).Return(nil)
	m.sessions.On("Delete", ctx, user.ID).Return(nil)
	m.blacklist.On("Add", ctx, "access-token").Return(nil)

	err := svc.Logout(ctx, "access-token")

	require.NoError(t, err)
	assert.Equal(t, entity.StatusInactive, user.Status)
}

func TestAuthService_Logout_InvalidToken(t *testing.T) {
	svc, m := newAuthService(t)
	ctx := context.Background()

	m.tokens.On("ParseAccessToken", "garbage").Return(nil, service.ErrTokenMalformed)

	err := svc.Logout(ctx, "garbage")

	require.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}
