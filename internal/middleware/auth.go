// Package middleware provides authentication, authorization, logging, metrics,
// and rate limiting middleware for the application.
package middleware

import (
	"context"
	"strings"

	"pressroom/internal/auth"
	"pressroom/internal/models"

	"github.com/gofiber/fiber/v2"
)

// IdentityLocal is the Fiber locals key under which the authenticated
// identity is stored.
const IdentityLocal = "identity"

// AuthRequired enforces a valid bearer credential on protected routes. The
// resolved identity is stored in locals and the request context; missing,
// malformed, expired, and badly-signed tokens all produce the same 401.
func AuthRequired(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := IdentityFromRequest(tokens, c)
		if err != nil {
			AuthFailures.WithLabelValues("unauthenticated").Inc()
			return models.RespondWithError(c, err)
		}

		c.Locals(IdentityLocal, identity)
		c.Locals("userID", identity.UserID)

		// Sync identity into the user context for logging and services.
		ctx := context.WithValue(c.UserContext(), UserIDKey, identity.UserID)
		ctx = context.WithValue(ctx, RoleKey, identity.Role.String())
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// IdentityFromRequest extracts and verifies the bearer credential on c.
func IdentityFromRequest(tokens *auth.TokenService, c *fiber.Ctx) (auth.Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return auth.Identity{}, models.NewUnauthenticatedError("Authorization header required")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return auth.Identity{}, models.NewUnauthenticatedError("Invalid authorization header format")
	}

	return tokens.Verify(parts[1])
}

// Identity returns the identity stored by AuthRequired. The boolean is false
// on routes that did not pass through the middleware.
func Identity(c *fiber.Ctx) (auth.Identity, bool) {
	identity, ok := c.Locals(IdentityLocal).(auth.Identity)
	return identity, ok
}
