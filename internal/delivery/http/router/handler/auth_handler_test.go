package handler

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"habitly/config"
	"habitly/internal/delivery/http/validator"
	"habitly/internal/domain/entity"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/service"
	"habitly/internal/infra/auth"
	"habitly/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func handlerCodec(t *testing.T) service.TokenCodec {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Signing = "handler_test_signing_secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	codec, err := auth.NewJWTCodec(cfg)
	require.NoError(t, err)

	return codec
}

type authHandlerFixture struct {
	authUC    *mockAuthUsecase
	accountUC *mockAccountUsecase
	handler   *AuthHandler
	echo      *echo.Echo
}

func newAuthHandlerFixture(t *testing.T) *authHandlerFixture {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	f := &authHandlerFixture{
		authUC:    &mockAuthUsecase{},
		accountUC: &mockAccountUsecase{},
		echo:      e,
	}
	f.handler = NewAuthHandler(f.authUC, f.accountUC, handlerCodec(t),
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	return f
}

func aliceLoginOutput() *usecase.LoginOutput {
	return &usecase.LoginOutput{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		Role:         entity.RoleUser,
		Username:     "alice",
	}
}

func TestAuthHandler_Login_JSON(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.authUC.On("Login", mock.Anything, &usecase.LoginInput{Username: "alice", Password: "secret"}).
		Return(aliceLoginOutput(), nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"alice","password":"secret"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	require.NoError(t, f.handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer access-token", rec.Header().Get(echo.HeaderAuthorization))
	assert.Contains(t, rec.Body.String(), `"role":"user"`)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	assert.NotContains(t, rec.Body.String(), "secret")

	setCookie := strings.Join(rec.Header().Values(echo.HeaderSetCookie), "; ")
	assert.Contains(t, setCookie, "refresh=refresh-token")
	assert.Contains(t, setCookie, "HttpOnly")
	assert.Contains(t, setCookie, "Path=/")
	assert.Contains(t, setCookie, "Max-Age=604800")
}

func TestAuthHandler_Login_Form(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.authUC.On("Login", mock.Anything, &usecase.LoginInput{Username: "alice", Password: "secret"}).
		Return(aliceLoginOutput(), nil)

	form := url.Values{}
	form.Set("username", "alice")
	form.Set("password", "secret")
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	// Form and JSON bodies converge on the same credentials pair.
	require.NoError(t, f.handler.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer access-token", rec.Header().Get(echo.HeaderAuthorization))
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.authUC.On("Login", mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"))

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"alice","password":"wrong"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	err := f.handler.Login(c)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	assert.Empty(t, rec.Header().Get(echo.HeaderAuthorization))
	assert.Empty(t, rec.Header().Values(echo.HeaderSetCookie))
}

func TestAuthHandler_Reissue_MissingCookie(t *testing.T) {
	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/reissue", nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	err := f.handler.Reissue(c)
	assert.True(t, errors.Is(err, domainerrors.ErrMissingRefreshToken))
	f.authUC.AssertNotCalled(t, "Reissue", mock.Anything, mock.Anything)
}

func TestAuthHandler_Reissue_Success(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.authUC.On("Reissue", mock.Anything, &usecase.ReissueInput{RefreshToken: "refresh-token"}).
		Return(&usecase.ReissueOutput{AccessToken: "new-access"}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/reissue", nil)
	req.AddCookie(&http.Cookie{Name: "refresh", Value: "refresh-token"})
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	require.NoError(t, f.handler.Reissue(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer new-access", rec.Header().Get(echo.HeaderAuthorization))
	// The refresh cookie is never rotated on reissue.
	assert.Empty(t, rec.Header().Values(echo.HeaderSetCookie))
}

func TestAuthHandler_Reissue_ErrorPassThrough(t *testing.T) {
	for name, target := range map[string]error{
		"expired":        domainerrors.ErrExpiredToken,
		"wrong category": domainerrors.ErrWrongTokenCategory,
		"malformed":      domainerrors.ErrMalformedToken,
	} {
		t.Run(name, func(t *testing.T) {
			f := newAuthHandlerFixture(t)
			f.authUC.On("Reissue", mock.Anything, mock.Anything).
				Return(nil, errors.Wrap(target, "reissue failed"))

			req := httptest.NewRequest(http.MethodPost, "/auth/reissue", nil)
			req.AddCookie(&http.Cookie{Name: "refresh", Value: "some-token"})
			rec := httptest.NewRecorder()
			c := f.echo.NewContext(req, rec)

			err := f.handler.Reissue(c)
			assert.True(t, errors.Is(err, target))
			assert.Empty(t, rec.Header().Get(echo.HeaderAuthorization))
		})
	}
}

func TestAuthHandler_Logout_Idempotent(t *testing.T) {
	f := newAuthHandlerFixture(t)

	for range 2 {
		req := httptest.NewRequest(http.MethodDelete, "/auth/logout", nil)
		rec := httptest.NewRecorder()
		c := f.echo.NewContext(req, rec)

		// Succeeds whether or not a session ever existed.
		require.NoError(t, f.handler.Logout(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		setCookie := strings.Join(rec.Header().Values(echo.HeaderSetCookie), "; ")
		assert.Contains(t, setCookie, "refresh=")
		assert.Contains(t, setCookie, "Max-Age=0")
	}
}

func TestAuthHandler_Signup_ValidationFailure(t *testing.T) {
	f := newAuthHandlerFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"al","email":"not-an-email","password":"short"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	err := f.handler.Signup(c)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	f.accountUC.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	f := newAuthHandlerFixture(t)
	created := &entity.User{
		Username: "alice",
		Email:    "alice@example.com",
		Nickname: "Allie",
		Role:     entity.RoleUser,
		Provider: entity.ProviderTypeLocal,
	}
	f.accountUC.On("Signup", mock.Anything, &usecase.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
		Nickname: "Allie",
	}).Return(&usecase.SignupOutput{User: created}, nil)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		strings.NewReader(`{"username":"alice","email":"alice@example.com","password":"secret123","nickname":"Allie"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	require.NoError(t, f.handler.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "secret123")
}

func TestAuthHandler_Availability(t *testing.T) {
	f := newAuthHandlerFixture(t)
	f.accountUC.On("UsernameAvailable", mock.Anything, "alice").Return(false, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/exists/username?value=alice", nil)
	rec := httptest.NewRecorder()
	c := f.echo.NewContext(req, rec)

	require.NoError(t, f.handler.UsernameExists(c))
	assert.Contains(t, rec.Body.String(), `"available":false`)

	req = httptest.NewRequest(http.MethodGet, "/auth/exists/username", nil)
	rec = httptest.NewRecorder()
	c = f.echo.NewContext(req, rec)

	err := f.handler.UsernameExists(c)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
