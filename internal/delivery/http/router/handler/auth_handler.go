// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"habitly/internal/delivery/http/response"
	domainerrors "habitly/internal/domain/errors"
	"habitly/internal/domain/service"
	"habitly/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// refreshCookieName is the cookie carrying the refresh token between
// login and reissue. HttpOnly keeps it out of script reach.
const refreshCookieName = "refresh"

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	authUC    usecase.AuthUsecase
	accountUC usecase.AccountUsecase
	codec     service.TokenCodec
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUC usecase.AuthUsecase, accountUC usecase.AccountUsecase, codec service.TokenCodec, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUC:    authUC,
		accountUC: accountUC,
		codec:     codec,
		logger:    logger,
	}
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	Role string `json:"role"`
}

// Login handles the local login request. Clients send either a JSON
// body or form fields; the content type decides which parser runs, and
// both converge on the same credentials pair.
func (h *AuthHandler) Login(c echo.Context) error {
	input, err := parseCredentials(c)
	if err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+output.AccessToken)
	setRefreshCookie(c, output.RefreshToken, h.codec.RefreshTokenTTL())

	return response.Success(c, http.StatusOK, loginResponse{Role: string(output.Role)}, "Login successful")
}

// parseCredentials resolves the request body into one credentials pair.
func parseCredentials(c echo.Context) (*usecase.LoginInput, error) {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if strings.HasPrefix(contentType, echo.MIMEApplicationJSON) {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid login payload")
		}

		return &usecase.LoginInput{Username: req.Username, Password: req.Password}, nil
	}

	return &usecase.LoginInput{
		Username: c.FormValue("username"),
		Password: c.FormValue("password"),
	}, nil
}

// Reissue mints a new access token from the refresh cookie. The cookie
// itself is left untouched.
func (h *AuthHandler) Reissue(c echo.Context) error {
	cookie, err := c.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		return domainerrors.ErrMissingRefreshToken.WrapMessage("reissue requires the refresh cookie")
	}

	output, err := h.authUC.Reissue(c.Request().Context(), &usecase.ReissueInput{RefreshToken: cookie.Value})
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+output.AccessToken)

	return response.Success(c, http.StatusOK, nil, "Access token reissued")
}

// Logout clears the refresh cookie. There is no server-side session to
// destroy, so the operation always succeeds and repeating it is harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Nickname string `json:"nickname" validate:"max=100"`
}

// Signup handles local account creation.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.accountUC.Signup(c.Request().Context(), &usecase.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Nickname: req.Nickname,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toAccountResponse(output.User), "Account created")
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

// UsernameExists handles the public username availability check.
func (h *AuthHandler) UsernameExists(c echo.Context) error {
	value := c.QueryParam("value")
	if value == "" {
		return domainerrors.ErrValidationFailed.WithDetails("value query parameter is required")
	}

	available, err := h.accountUC.UsernameAvailable(c.Request().Context(), value)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, availabilityResponse{Available: available}, "")
}

// NicknameExists handles the public nickname availability check.
func (h *AuthHandler) NicknameExists(c echo.Context) error {
	value := c.QueryParam("value")
	if value == "" {
		return domainerrors.ErrValidationFailed.WithDetails("value query parameter is required")
	}

	available, err := h.accountUC.NicknameAvailable(c.Request().Context(), value)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, availabilityResponse{Available: available}, "")
}

// setRefreshCookie attaches the refresh token as an HttpOnly cookie
// valid for the whole site, living as long as the token itself.
func setRefreshCookie(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(ttl.Seconds()),
	})
}

// clearRefreshCookie expires the refresh cookie immediately.
func clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
