package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"hrdocs-api/internal/adapters/http/middleware"
	"hrdocs-api/internal/config"
	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/core/services"
	"hrdocs-api/internal/pkg/response"
	"hrdocs-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required" example:"alice"`
	Password   string `json:"password" validate:"required" example:"password1"`
}

// RefreshRequest carries a refresh token. The refresh_token cookie is used when it is empty.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by email or username and return an access/refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} response.Response{data=domain.TokenPair}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validator.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	tokens, err := h.authService.Login(c.UserContext(), &services.LoginInput{
		Identifier: strings.TrimSpace(req.Identifier),
		Password:   req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid credentials")
		case errors.Is(err, domain.ErrUserInactive):
			return response.Forbidden(c, "User account is inactive")
		default:
			log.Printf("❌ Login failed: %v", err)
			return response.InternalServerError(c, "Failed to login")
		}
	}

	h.setAuthCookies(c, tokens)
	return response.Success(c, "Login successful", tokens)
}

// Refresh handles refresh token rotation
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new pair. The presented token can be used only once.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token (falls back to the refresh_token cookie)"
// @Success 200 {object} response.Response{data=domain.TokenPair}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken, err := h.refreshTokenFrom(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tokens, err := h.authService.Refresh(c.UserContext(), refreshToken)
	if err != nil {
		return h.sessionError(c, err, "Failed to refresh token")
	}

	h.setAuthCookies(c, tokens)
	return response.Success(c, "Token refreshed successfully", tokens)
}

// Logout handles user logout
// @Summary Logout
// @Description Revoke one refresh token. When called with an access token, the refresh token must belong to the caller.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest false "Refresh token (falls back to the refresh_token cookie)"
// @Success 200 {object} response.Response{data=domain.Revocation}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	refreshToken, err := h.refreshTokenFrom(c)
	if err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var requestingUserID *uint
	if principal := middleware.CurrentPrincipal(c); principal != nil {
		requestingUserID = &principal.ID
	}

	result, err := h.authService.Logout(c.UserContext(), refreshToken, requestingUserID)
	if err != nil {
		return h.sessionError(c, err, "Failed to logout")
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Logged out successfully", result)
}

// LogoutAll handles logout from all devices
// @Summary Logout from all devices
// @Description Revoke every active refresh token of the current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/logout-all [post]
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	n, err := h.authService.LogoutAll(c.UserContext(), principal.ID)
	if err != nil {
		log.Printf("❌ Logout all failed: %v", err)
		return response.InternalServerError(c, "Failed to logout from all devices")
	}

	h.clearAuthCookies(c)
	return response.Success(c, "Logged out from all devices", fiber.Map{
		"revoked": n,
	})
}

// Me returns the current user
// @Summary Get current user
// @Description Get the authenticated user with its resolved role
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=domain.Principal}
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal := middleware.CurrentPrincipal(c)
	if principal == nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "User retrieved successfully", principal)
}

// refreshTokenFrom reads the refresh token from the body, then from the cookie
func (h *AuthHandler) refreshTokenFrom(c *fiber.Ctx) (string, error) {
	var req RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return "", err
		}
	}

	if strings.TrimSpace(req.RefreshToken) != "" {
		return req.RefreshToken, nil
	}
	return c.Cookies("refresh_token"), nil
}

// sessionError maps refresh/logout errors to responses
func (h *AuthHandler) sessionError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, domain.ErrMissingInput):
		return response.BadRequest(c, "Refresh token is required")
	case errors.Is(err, domain.ErrCallerMismatch):
		return response.Unauthorized(c, "Refresh token does not belong to the current user")
	case errors.Is(err, domain.ErrInvalidOrExpiredToken):
		h.clearAuthCookies(c)
		return response.Unauthorized(c, "Invalid or expired refresh token")
	case errors.Is(err, domain.ErrUnknownIdentity):
		h.clearAuthCookies(c)
		return response.Unauthorized(c, "User not found")
	case errors.Is(err, domain.ErrTokenNotFound):
		h.clearAuthCookies(c)
		return response.Unauthorized(c, "Refresh token not found or already used")
	case errors.Is(err, domain.ErrUserInactive):
		h.clearAuthCookies(c)
		return response.Forbidden(c, "User account is inactive")
	default:
		log.Printf("❌ %s: %v", fallback, err)
		return response.InternalServerError(c, fallback)
	}
}

// setAuthCookies sets access and refresh token cookies
func (h *AuthHandler) setAuthCookies(c *fiber.Ctx, tokens *domain.TokenPair) {
	h.setCookie(c, "access_token", tokens.AccessToken, h.cfg.JWT.AccessTokenMins*60)
	h.setCookie(c, "refresh_token", tokens.RefreshToken, h.cfg.JWT.RefreshTokenDays*24*60*60)
}

// clearAuthCookies clears auth cookies
func (h *AuthHandler) clearAuthCookies(c *fiber.Ctx) {
	h.setCookie(c, "access_token", "", -1)
	h.setCookie(c, "refresh_token", "", -1)
}

func (h *AuthHandler) setCookie(c *fiber.Ctx, name, value string, maxAge int) {
	cookie := &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	}
	if maxAge < 0 {
		cookie.Expires = time.Now().Add(-1 * time.Hour)
	}
	c.Cookie(cookie)
}
