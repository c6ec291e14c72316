package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/grocery/internal/middleware"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/services"
)

const tokenTypeBearer = "bearer"

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// Register creates a new customer account and signs it in.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Register(c.UserContext(), req)
	if err != nil {
		return err
	}

	return ok(c, "User registered successfully", tokenResponse{AccessToken: token, TokenType: tokenTypeBearer, User: user})
}

// Login exchanges credentials for a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return err
	}

	return ok(c, "Login successful", tokenResponse{AccessToken: token, TokenType: tokenTypeBearer, User: user})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)
	return ok(c, "User information retrieved successfully", user)
}

// UpdateMe updates the caller's profile fields.
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	user, _ := middleware.CurrentUser(c)

	var req models.UserUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.auth.UpdateProfile(c.UserContext(), user, req)
	if err != nil {
		return err
	}
	return ok(c, "User updated successfully", updated)
}
