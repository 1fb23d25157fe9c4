// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "habitly/internal/delivery/context"
	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/repository"
	"habitly/internal/domain/service"
	"habitly/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager  repository.TransactionManager
	userRepo   repository.UserRepository
	hasher     service.PasswordHasher
	codec      service.TokenCodec
	federation service.FederationProvider
	logger     *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	UserRepo   repository.UserRepository
	Hasher     service.PasswordHasher
	Codec      service.TokenCodec
	Federation service.FederationProvider
	Logger     *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:  params.TxManager,
		userRepo:   params.UserRepo,
		hasher:     params.Hasher,
		codec:      params.Codec,
		federation: params.Federation,
		logger:     params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Login verifies a local credentials pair and mints both tokens.
// Unknown username, federated account and wrong password all collapse
// into the same invalid-credentials error.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("username", input.Username))

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	// Federated accounts carry no password hash and have no local login path.
	if user.IsFederated() || user.PasswordHash == "" {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// Check password outside any transaction (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("username", input.Username))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	output, err := srv.mintTokenPair(user)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("User logged in successfully", slog.String("username", user.Username))

	return output, nil
}

// Reissue mints a new access token from a valid refresh token. The
// checks run in a fixed order so each failure mode keeps its own error:
// malformed first, then expired, then category.
func (srv *authService) Reissue(ctx context.Context, input *usecase.ReissueInput) (*usecase.ReissueOutput, error) {
	srv.log(ctx).Debug("Attempting to reissue access token")

	claims, err := srv.codec.Parse(input.RefreshToken)
	if err != nil {
		return nil, errors.Wrap(err, "reissue failed")
	}

	if time.Now().After(claims.ExpiresAt) {
		return nil, errors.Wrap(domainerrors.ErrExpiredToken, "reissue failed")
	}

	if claims.Category != service.CategoryRefresh {
		return nil, errors.Wrap(domainerrors.ErrWrongTokenCategory, "reissue failed")
	}

	// The refresh token itself is not rotated; its claims are trusted as
	// minted, without a database round trip.
	accessToken, err := srv.codec.Mint(service.CategoryAccess, claims.Username, claims.Role, srv.codec.AccessTokenTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint access token during reissue")
	}
	srv.log(ctx).Debug("Access token reissued", slog.String("username", claims.Username))

	return &usecase.ReissueOutput{AccessToken: accessToken}, nil
}

// FederatedExchange completes the browser authorization-code flow.
func (srv *authService) FederatedExchange(ctx context.Context, code string) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Handling federated code exchange", slog.String("provider", string(srv.federation.Provider())))

	identity, err := srv.federation.Exchange(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("Federated code exchange failed", slog.Any("error", err))

		return nil, domainerrors.ErrFederationFailed.WrapMessage("code exchange failed")
	}

	return srv.loginFederatedIdentity(ctx, identity)
}

// FederatedIDTokenLogin completes the API-style flow from a provider-issued ID token.
func (srv *authService) FederatedIDTokenLogin(ctx context.Context, idToken string) (*usecase.LoginOutput, error) {
	srv.log(ctx).Info("Handling federated ID token login", slog.String("provider", string(srv.federation.Provider())))

	identity, err := srv.federation.VerifyIDToken(ctx, idToken)
	if err != nil {
		srv.log(ctx).Warn("Federated ID token verification failed", slog.Any("error", err))

		return nil, domainerrors.ErrFederationFailed.WrapMessage("ID token verification failed")
	}

	return srv.loginFederatedIdentity(ctx, identity)
}

// loginFederatedIdentity resolves the provider identity to exactly one
// local account and mints tokens for it.
func (srv *authService) loginFederatedIdentity(ctx context.Context, identity *entity.FederatedIdentity) (*usecase.LoginOutput, error) {
	var account *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		user, err := srv.findOrCreateFederatedUser(ctx, repoFactory.UserRepo(), identity)
		if err != nil {
			return err
		}
		account = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute federated login transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute federated login transaction")
	}

	output, err := srv.mintTokenPair(account)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("Federated login completed", slog.String("username", account.Username))

	return output, nil
}

// findOrCreateFederatedUser maps the provider email onto a local account.
// Two concurrent first sign-ins may both observe a missing account; the
// uniqueness constraint rejects the loser, which then re-reads exactly
// once. A second miss means the winner's row vanished mid-flight and is
// treated as a storage anomaly, not retried further.
func (srv *authService) findOrCreateFederatedUser(ctx context.Context, userRepo repository.UserRepository, identity *entity.FederatedIdentity) (*entity.User, error) {
	user, err := userRepo.FindByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find account for federated login")
	}

	srv.log(ctx).Info("Federated account not found, creating new account", slog.String("email", identity.Email))

	newUser := &entity.User{
		Username: identity.Email,
		Email:    identity.Email,
		Nickname: identity.DisplayName,
		Role:     entity.RoleUser,
		Provider: identity.Provider,
	}

	createErr := userRepo.Create(ctx, newUser)
	if createErr == nil {
		return newUser, nil
	}
	if !errors.Is(createErr, repository.ErrDuplicateUser) {
		return nil, errors.Wrap(createErr, "failed to create account for federated login")
	}

	// Lost the creation race. The winner's row must exist now.
	existing, reErr := userRepo.FindByEmail(ctx, identity.Email)
	if reErr != nil {
		srv.log(ctx).Error("Re-read after duplicate-key failed", slog.String("email", identity.Email), slog.Any("error", reErr))

		return nil, domainerrors.ErrDuplicateAccountRace.WrapMessage("re-read after duplicate key found no account")
	}

	return existing, nil
}

// mintTokenPair mints the access/refresh pair for an authenticated account.
func (srv *authService) mintTokenPair(user *entity.User) (*usecase.LoginOutput, error) {
	accessToken, err := srv.codec.Mint(service.CategoryAccess, user.Username, user.Role, srv.codec.AccessTokenTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint access token")
	}

	refreshToken, err := srv.codec.Mint(service.CategoryRefresh, user.Username, user.Role, srv.codec.RefreshTokenTTL())
	if err != nil {
		return nil, errors.Wrap(err, "failed to mint refresh token")
	}

	return &usecase.LoginOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Role:         user.Role,
		Username:     user.Username,
	}, nil
}
