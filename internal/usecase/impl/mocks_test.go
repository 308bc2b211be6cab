package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"zentora/config"
	"zentora/internal/domain/entity"
	"zentora/internal/domain/repository"
	"zentora/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			AccessTokenTTL:    30 * time.Minute,
			RefreshTokenTTL:   7 * 24 * time.Hour,
			RefreshWarnWindow: 24 * time.Hour,
		},
		Auth: &config.AuthConfig{
			BcryptCost:          12,
			VerificationCodeTTL: 24 * time.Hour,
		},
	}
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepository) FindUnverifiedBefore(ctx context.Context, cutoff time.Time) ([]*entity.User, error) {
	args := m.Called(ctx, cutoff)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Save(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *mockSessionStore) Find(ctx context.Context, userID uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, userID)
	if session, ok := args.Get(0).(*entity.Session); ok {
		return session, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockCodeStore struct {
	mock.Mock
}

func (m *mockCodeStore) SaveVerificationCode(ctx context.Context, code, email string) error {
	return m.Called(ctx, code, email).Error(0)
}

func (m *mockCodeStore) ConsumeVerificationCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)

	return args.String(0), args.Error(1)
}

func (m *mockCodeStore) DeleteVerificationCodesForEmail(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockCodeStore) SaveResetCode(ctx context.Context, code, email string) error {
	return m.Called(ctx, code, email).Error(0)
}

func (m *mockCodeStore) FindResetCode(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)

	return args.String(0), args.Error(1)
}

func (m *mockCodeStore) InvalidateResetCode(ctx context.Context, code string) error {
	return m.Called(ctx, code).Error(0)
}

type mockTokenBlacklist struct {
	mock.Mock
}

func (m *mockTokenBlacklist) Add(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockTokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)

	return args.Bool(0), args.Error(1)
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateAccessToken(claims service.AccessClaims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) GenerateRefreshToken(claims service.RefreshClaims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ParseAccessToken(tokenString string) (*service.AccessClaims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.AccessClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) ParseRefreshToken(tokenString string) (*service.RefreshClaims, error) {
	args := m.Called(tokenString)
	if claims, ok := args.Get(0).(*service.RefreshClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) AccessTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

func (m *mockTokenService) RefreshTokenDuration() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendVerificationEmail(ctx context.Context, to, code string) error {
	return m.Called(ctx, to, code).Error(0)
}

func (m *mockMailer) SendPasswordResetEmail(ctx context.Context, to, code string) error {
	return m.Called(ctx, to, code).Error(0)
}

type mockTransactionManager struct {
	mock.Mock
}

func (m *mockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.Called(ctx, fn).Error(0)
}

type mockRepositoryFactory struct {
	mock.Mock
}

func (m *mockRepositoryFactory) NewUserRepository() repository.UserRepository {
	return m.Called().Get(0).(repository.UserRepository)
}

type mockTempAuthStore struct {
	mock.Mock
}

func (m *mockTempAuthStore) Save(ctx context.Context, code string, payload *entity.TempAuthPayload) error {
	return m.Called(ctx, code, payload).Error(0)
}

func (m *mockTempAuthStore) Take(ctx context.Context, code string) (*entity.TempAuthPayload, error) {
	args := m.Called(ctx, code)
	if payload, ok := args.Get(0).(*entity.TempAuthPayload); ok {
		return payload, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockOAuthStateStore struct {
	mock.Mock
}

func (m *mockOAuthStateStore) Save(ctx context.Context, state string, provider entity.AuthProvider) error {
	return m.Called(ctx, state, provider).Error(0)
}

func (m *mockOAuthStateStore) Take(ctx context.Context, state string) (entity.AuthProvider, error) {
	args := m.Called(ctx, state)

	return args.Get(0).(entity.AuthProvider), args.Error(1)
}

type mockOAuthProvider struct {
	mock.Mock
}

func (m *mockOAuthProvider) Name() entity.AuthProvider {
	return m.Called().Get(0).(entity.AuthProvider)
}

func (m *mockOAuthProvider) AuthorizationURL(state string) string {
	return m.Called(state).String(0)
}

func (m *mockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*entity.SocialProfile, error) {
	args := m.Called(ctx, code)
	if profile, ok := args.Get(0).(*entity.SocialProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}
