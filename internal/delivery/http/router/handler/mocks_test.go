package handler

import (
	"context"

	"habitly/internal/domain/entity"
	"habitly/internal/usecase"

	"github.com/stretchr/testify/mock"
)

type mockAuthUsecase struct {
	mock.Mock
}

func (m *mockAuthUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *mockAuthUsecase) Reissue(ctx context.Context, input *usecase.ReissueInput) (*usecase.ReissueOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.ReissueOutput), args.Error(1)
}

func (m *mockAuthUsecase) FederatedExchange(ctx context.Context, code string) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *mockAuthUsecase) FederatedIDTokenLogin(ctx context.Context, idToken string) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

type mockAccountUsecase struct {
	mock.Mock
}

func (m *mockAccountUsecase) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.SignupOutput), args.Error(1)
}

func (m *mockAccountUsecase) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Error(1)
}

func (m *mockAccountUsecase) NicknameAvailable(ctx context.Context, nickname string) (bool, error) {
	args := m.Called(ctx, nickname)

	return args.Bool(0), args.Error(1)
}

func (m *mockAccountUsecase) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockAccountUsecase) ListAccounts(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}
