package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/services"
)

const userContextKey = "currentUser"

// AuthMiddleware resolves the bearer token to a live user and stores it in the request locals.
func AuthMiddleware(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		user, err := auth.ResolveCurrentUser(c.UserContext(), token)
		if err != nil {
			return err
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// RequireAdmin rejects authenticated users without the admin role. It must run after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, _ := CurrentUser(c)
		if _, err := services.RequireAdmin(user); err != nil {
			return err
		}
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userContextKey).(*models.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", apperr.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", apperr.ErrTokenInvalid
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", apperr.ErrMissingToken
	}
	return token, nil
}
