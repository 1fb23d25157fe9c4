package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/repository"
	"habitly/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceFixture struct {
	userRepo *mockUserRepository
	hasher   *mockPasswordHasher
	svc      usecase.AccountUsecase
}

func newAccountServiceFixture() *accountServiceFixture {
	f := &accountServiceFixture{
		userRepo: &mockUserRepository{},
		hasher:   &mockPasswordHasher{},
	}
	f.svc = NewAccountService(AccountServiceParams{
		UserRepo: f.userRepo,
		Hasher:   f.hasher,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return f
}

func TestAccountService_Signup_Success(t *testing.T) {
	f := newAccountServiceFixture()

	f.hasher.On("Hash", "secret123").Return("$2a$10$hashed", nil)
	f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alice" &&
			u.PasswordHash == "$2a$10$hashed" &&
			u.Role == entity.RoleUser &&
			u.Provider == entity.ProviderTypeLocal
	})).Return(nil)

	output, err := f.svc.Signup(context.Background(), &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Nickname: "Allie",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", output.User.Username)
}

func TestAccountService_Signup_Duplicate(t *testing.T) {
	f := newAccountServiceFixture()

	f.hasher.On("Hash", "secret123").Return("$2a$10$hashed", nil)
	f.userRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateUser)

	_, err := f.svc.Signup(context.Background(), &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestAccountService_Availability(t *testing.T) {
	f := newAccountServiceFixture()

	f.userRepo.On("ExistsByUsername", mock.Anything, "taken").Return(true, nil)
	f.userRepo.On("ExistsByUsername", mock.Anything, "free").Return(false, nil)
	f.userRepo.On("ExistsByNickname", mock.Anything, "Allie").Return(true, nil)

	available, err := f.svc.UsernameAvailable(context.Background(), "taken")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = f.svc.UsernameAvailable(context.Background(), "free")
	require.NoError(t, err)
	assert.True(t, available)

	available, err = f.svc.NicknameAvailable(context.Background(), "Allie")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestAccountService_GetProfile_NotFound(t *testing.T) {
	f := newAccountServiceFixture()

	f.userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := f.svc.GetProfile(context.Background(), "ghost")
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestAccountService_ListAccounts(t *testing.T) {
	f := newAccountServiceFixture()
	accounts := []*entity.User{
		{Username: "newer"},
		{Username: "older"},
	}

	f.userRepo.On("List", mock.Anything).Return(accounts, nil)

	listed, err := f.svc.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "newer", listed[0].Username)
}
