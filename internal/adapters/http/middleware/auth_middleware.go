package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"hrdocs-api/internal/core/domain"
	"hrdocs-api/internal/core/services"
	"hrdocs-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const principalKey = "principal"

// IdentityResolver turns an access token into the current principal
type IdentityResolver interface {
	CurrentIdentity(ctx context.Context, accessToken string) (*domain.Principal, error)
}

// AuthMiddleware requires a valid access token and stores the principal in the context
func AuthMiddleware(identities IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		accessToken := extractAccessToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		principal, err := identities.CurrentIdentity(c.UserContext(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrInvalidOrExpiredToken):
				return response.Unauthorized(c, "Invalid or expired access token")
			case errors.Is(err, domain.ErrUnknownIdentity):
				return response.Unauthorized(c, "User not found")
			default:
				log.Printf("❌ Failed to resolve identity: %v", err)
				return response.InternalServerError(c, "Failed to authenticate")
			}
		}

		if !principal.IsActive {
			return response.Forbidden(c, "User account is inactive")
		}

		setPrincipal(c, principal)
		return c.Next()
	}
}

// OptionalAuth sets the principal when a valid token is present but never rejects the request
func OptionalAuth(identities IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if accessToken := extractAccessToken(c); accessToken != "" {
			principal, err := identities.CurrentIdentity(c.UserContext(), accessToken)
			if err == nil && principal.IsActive {
				setPrincipal(c, principal)
			}
		}

		return c.Next()
	}
}

// RequireRoles allows the request only when the principal holds one of roles.
// It must run after AuthMiddleware.
func RequireRoles(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := CurrentPrincipal(c)
		if principal == nil {
			return response.Unauthorized(c, "Unauthorized")
		}

		if !services.Authorize(roles, principal) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// CurrentPrincipal returns the authenticated principal, or nil
func CurrentPrincipal(c *fiber.Ctx) *domain.Principal {
	principal, _ := c.Locals(principalKey).(*domain.Principal)
	return principal
}

func setPrincipal(c *fiber.Ctx, principal *domain.Principal) {
	c.Locals(principalKey, principal)
	c.Locals("userID", principal.ID)
}

// extractAccessToken reads the bearer header first, then the access_token cookie
func extractAccessToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Cookies("access_token")
}
