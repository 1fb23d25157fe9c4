package handler

import (
	"log/slog"
	"net/http"
	"time"

	"habitly/internal/delivery/http/middleware"
	"habitly/internal/delivery/http/response"
	"habitly/internal/domain/entity"
	"habitly/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler serves the authenticated account surfaces: the user
// profile and the admin account listing.
type AccountHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(accountUC usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountUC: accountUC,
		logger:    logger,
	}
}

type accountResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Nickname  string    `json:"nickname"`
	Role      string    `json:"role"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAccountResponse(user *entity.User) accountResponse {
	return accountResponse{
		Username:  user.Username,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Role:      string(user.Role),
		Provider:  string(user.Provider),
		CreatedAt: user.CreatedAt,
	}
}

// GetProfile returns the account behind the authenticated principal.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "MALFORMED_TOKEN", "No authenticated principal on request")
	}

	user, err := h.accountUC.GetProfile(c.Request().Context(), principal.Username)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(user), "Profile retrieved")
}

// ListAccounts returns every account, newest first. The gate admits
// only admins to this path.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	users, err := h.accountUC.ListAccounts(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	accounts := make([]accountResponse, 0, len(users))
	for _, user := range users {
		accounts = append(accounts, toAccountResponse(user))
	}

	return response.Success(c, http.StatusOK, accounts, "Accounts listed")
}
