package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"habitly/config"
	"habitly/internal/delivery/http/response"
	"habitly/internal/domain/service"
	"habitly/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// federationErrorCode is the only failure detail a browser redirect
// carries back to the front end. Provider internals stay server-side.
const federationErrorCode = "FEDERATION_FAILED"

// OAuthHandler holds dependencies for the federation endpoints.
type OAuthHandler struct {
	authUC     usecase.AuthUsecase
	federation service.FederationProvider
	codec      service.TokenCodec
	cfg        *config.Config
	logger     *slog.Logger
}

// NewOAuthHandler is the constructor for OAuthHandler, injected by Fx.
func NewOAuthHandler(authUC usecase.AuthUsecase, federation service.FederationProvider, codec service.TokenCodec, cfg *config.Config, logger *slog.Logger) *OAuthHandler {
	return &OAuthHandler{
		authUC:     authUC,
		federation: federation,
		codec:      codec,
		cfg:        cfg,
		logger:     logger,
	}
}

// GoogleLogin initiates the Google Sign-In flow. Browsers get a redirect
// to the provider; API clients get the authorization URL as JSON.
func (h *OAuthHandler) GoogleLogin(c echo.Context) error {
	state := uuid.New().String()
	oauthURL := h.federation.BuildAuthorizationURL(state)

	if c.QueryParam("redirect") == "true" {
		return c.Redirect(http.StatusTemporaryRedirect, oauthURL)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"oauth_url":    oauthURL,
		"redirect_url": "/oauth/google?redirect=true",
	}, "Google OAuth URL generated")
}

// GoogleCallback handles the browser leg of the flow. The provider
// redirects here with a code; on success the browser is sent to the
// front end with both tokens as query parameters, on any failure to the
// configured failure URL with a generic error code and no tokens.
func (h *OAuthHandler) GoogleCallback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		h.logger.Warn("Provider returned an error on callback", slog.String("error", errParam))

		return h.failureRedirect(c)
	}

	if !h.federation.ValidateState(c.QueryParam("state")) {
		h.logger.Warn("Callback state validation failed")

		return h.failureRedirect(c)
	}

	code := c.QueryParam("code")
	if code == "" {
		return h.failureRedirect(c)
	}

	output, err := h.authUC.FederatedExchange(c.Request().Context(), code)
	if err != nil {
		h.logger.Warn("Federated exchange failed", slog.Any("error", err))

		return h.failureRedirect(c)
	}

	target, err := url.Parse(h.cfg.Federation.SuccessRedirectURL)
	if err != nil {
		return errors.Wrap(err, "invalid federation success redirect URL")
	}
	query := target.Query()
	query.Set("access_token", output.AccessToken)
	query.Set("refresh_token", output.RefreshToken)
	target.RawQuery = query.Encode()

	return c.Redirect(http.StatusFound, target.String())
}

func (h *OAuthHandler) failureRedirect(c echo.Context) error {
	target, err := url.Parse(h.cfg.Federation.FailureRedirectURL)
	if err != nil {
		return errors.Wrap(err, "invalid federation failure redirect URL")
	}
	query := target.Query()
	query.Set("error", federationErrorCode)
	target.RawQuery = query.Encode()

	return c.Redirect(http.StatusFound, target.String())
}

type googleTokenRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// GoogleToken handles the API-style flow: the client verified with
// Google directly and presents the ID token. Tokens are delivered the
// same way as a local login, header plus cookie plus JSON body.
func (h *OAuthHandler) GoogleToken(c echo.Context) error {
	var req googleTokenRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid Google token input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.authUC.FederatedIDTokenLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+output.AccessToken)
	setRefreshCookie(c, output.RefreshToken, h.codec.RefreshTokenTTL())

	return response.Success(c, http.StatusOK, loginResponse{Role: string(output.Role)}, "Google sign-in successful")
}
