package impl

import (
	"context"
	"time"

	"habitly/internal/domain/entity"
	"habitly/internal/domain/repository"
	"habitly/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// --- repository mocks ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	args := m.Called(ctx, nickname)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

// fakeTxManager runs the callback directly against the given repository,
// standing in for a real database transaction.
type fakeTxManager struct {
	userRepo repository.UserRepository
}

func (f *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(f)
}

func (f *fakeTxManager) UserRepo() repository.UserRepository {
	return f.userRepo
}

// --- service mocks ---

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenCodec struct {
	mock.Mock
}

func (m *mockTokenCodec) Mint(category service.TokenCategory, username string, role entity.Role, ttl time.Duration) (string, error) {
	args := m.Called(category, username, role, ttl)

	return args.String(0), args.Error(1)
}

func (m *mockTokenCodec) Parse(encoded string) (*service.Claims, error) {
	args := m.Called(encoded)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *mockTokenCodec) IsExpired(encoded string) (bool, error) {
	args := m.Called(encoded)

	return args.Bool(0), args.Error(1)
}

func (m *mockTokenCodec) Category(encoded string) (service.TokenCategory, error) {
	args := m.Called(encoded)

	return args.Get(0).(service.TokenCategory), args.Error(1)
}

func (m *mockTokenCodec) Subject(encoded string) (string, error) {
	args := m.Called(encoded)

	return args.String(0), args.Error(1)
}

func (m *mockTokenCodec) Role(encoded string) (entity.Role, error) {
	args := m.Called(encoded)

	return args.Get(0).(entity.Role), args.Error(1)
}

func (m *mockTokenCodec) AccessTokenTTL() time.Duration {
	return 15 * time.Minute
}

func (m *mockTokenCodec) RefreshTokenTTL() time.Duration {
	return 7 * 24 * time.Hour
}

type mockFederationProvider struct {
	mock.Mock
}

func (m *mockFederationProvider) BuildAuthorizationURL(state string) string {
	args := m.Called(state)

	return args.String(0)
}

func (m *mockFederationProvider) ValidateState(state string) bool {
	args := m.Called(state)

	return args.Bool(0)
}

func (m *mockFederationProvider) Exchange(ctx context.Context, code string) (*entity.FederatedIdentity, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.FederatedIdentity), args.Error(1)
}

func (m *mockFederationProvider) VerifyIDToken(ctx context.Context, idToken string) (*entity.FederatedIdentity, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.FederatedIdentity), args.Error(1)
}

func (m *mockFederationProvider) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}
