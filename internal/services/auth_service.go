package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

const minPasswordLength = 6

// RegisterInput is the payload for creating a customer account.
type RegisterInput struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Phone    string          `json:"phone"`
	Password string          `json:"password"`
	Address  *models.Address `json:"address"`
}

// AuthService verifies credentials, issues bearer tokens and resolves them back to live users.
type AuthService struct {
	users  repository.UserRepository
	secret string
	ttl    time.Duration
	now    func() time.Time
	log    *slog.Logger
}

// NewAuthService constructs AuthService. ttl is the default token lifetime.
func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration, log *slog.Logger) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl, now: time.Now, log: log}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// Authenticate returns the active user owning email when password matches.
// Unknown email, wrong password and inactive account are indistinguishable.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.BurnPasswordCheck(password)
			return nil, apperr.ErrInvalidCredentials
		}
		return nil, apperr.Upstream("Failed to load user", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) || !user.IsActive {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a token with the default lifetime.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.IssueToken(user.Email, 0)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken signs a token for email. A non-positive ttl uses the configured default.
func (s *AuthService) IssueToken(email string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.ttl
	}
	token, err := utils.GenerateToken(s.secret, email, s.now(), ttl)
	if err != nil {
		return "", apperr.Internal(fmt.Errorf("sign token: %w", err))
	}
	return token, nil
}

// ResolveCurrentUser validates token and re-reads the user it names.
func (s *AuthService) ResolveCurrentUser(ctx context.Context, token string) (*models.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, apperr.ErrMissingToken
	}

	email, err := utils.ParseToken(s.secret, token, s.now)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrTokenInvalid
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.ErrTokenInvalid
		}
		return nil, apperr.Upstream("Failed to load user", err)
	}
	if !user.IsActive {
		return nil, apperr.ErrTokenInvalid
	}
	return user, nil
}

// RequireAdmin passes user through when it holds the admin role.
func RequireAdmin(user *models.User) (*models.User, error) {
	if !user.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	return user, nil
}

// Register creates a customer account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if name == "" {
		return nil, "", apperr.Validation("Name is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, "", apperr.Validation("Invalid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", apperr.Validation(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, "", apperr.Internal(fmt.Errorf("hash password: %w", err))
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(in.Phone),
		Role:         models.RoleCustomer,
		Preferences:  models.DefaultPreferences(),
		PasswordHash: hash,
		IsActive:     true,
	}
	if in.Address != nil {
		user.Address = *in.Address
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", apperr.ErrEmailTaken
		}
		return nil, "", apperr.Upstream("Failed to create user", err)
	}

	s.log.InfoContext(ctx, "user registered", "user_id", user.ID)

	token, err := s.IssueToken(user.Email, 0)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// UpdateProfile merges upd into the caller's own record.
func (s *AuthService) UpdateProfile(ctx context.Context, user *models.User, upd models.UserUpdate) (*models.User, error) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, apperr.Validation("Name cannot be empty")
	}

	if !upd.Apply(user) {
		return user, nil
	}
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("User")
		}
		return nil, apperr.Upstream("Failed to update profile", err)
	}
	return user, nil
}
