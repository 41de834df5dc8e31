package handlers

import (
	"net/http"

	"github.com/waellejmi/pos-app/internal/common"
	"github.com/waellejmi/pos-app/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles registration, login, and the current-user endpoint.
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Register handles POST /v1/auth/register
func (h *AuthHandlers) Register(c echo.Context) error {
	var req services.RegisterInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	token, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, token)
}

// Login handles POST /v1/auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req services.LoginInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	token, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, token)
}

// Me handles GET /v1/auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateMe handles PUT /v1/auth/me
func (h *AuthHandlers) UpdateMe(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var req services.ProfileInput
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	user, err := h.authService.UpdateProfile(ctx, userID, &req)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
