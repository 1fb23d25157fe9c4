package impl

import (
	"context"
	"log/slog"

	deliverycontext "habitly/internal/delivery/context"
	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/repository"
	"habitly/internal/domain/service"
	"habitly/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	logger   *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Logger   *slog.Logger
}

// NewAccountService is the constructor for accountService.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		logger:   params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a local account with a bcrypt-hashed password.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("username", input.Username))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	newUser := &entity.User{
		Username:     input.Username,
		Email:        input.Email,
		Nickname:     input.Nickname,
		PasswordHash: hashedPassword,
		Role:         entity.RoleUser,
		Provider:     entity.ProviderTypeLocal,
	}

	// Single insert, no transaction needed; the uniqueness constraints
	// on username and email reject duplicates atomically.
	if err := srv.userRepo.Create(ctx, newUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			srv.log(ctx).Warn("Signup rejected, account already exists", slog.String("username", input.Username))

			return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("signup failed")
		}

		return nil, errors.Wrap(err, "failed to create account during signup")
	}
	srv.log(ctx).Debug("Signup completed", slog.Any("userID", newUser.ID))

	return &usecase.SignupOutput{User: newUser}, nil
}

// UsernameAvailable reports whether the username is free to register.
func (srv *accountService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	exists, err := srv.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, errors.Wrap(err, "failed to check username availability")
	}

	return !exists, nil
}

// NicknameAvailable reports whether the nickname is free to register.
func (srv *accountService) NicknameAvailable(ctx context.Context, nickname string) (bool, error) {
	exists, err := srv.userRepo.ExistsByNickname(ctx, nickname)
	if err != nil {
		return false, errors.Wrap(err, "failed to check nickname availability")
	}

	return !exists, nil
}

// GetProfile loads the account behind an authenticated principal.
func (srv *accountService) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// ListAccounts returns all accounts, newest first.
func (srv *accountService) ListAccounts(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return users, nil
}
