package handler

import (
	"net/http"

	"habitly/config"
	"habitly/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// SystemHandler serves the public liveness and runtime config endpoints.
type SystemHandler struct {
	cfg *config.Config
}

// NewSystemHandler is the constructor for SystemHandler, injected by Fx.
func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// RuntimeConfig exposes the non-secret runtime settings a front end
// needs before any user is authenticated.
func (h *SystemHandler) RuntimeConfig(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"env":             h.cfg.Env.Env,
		"serviceName":     h.cfg.Env.ServiceName,
		"federationEntry": "/oauth/google",
	}, "Runtime config")
}
