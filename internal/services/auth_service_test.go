package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/models"
)

func newAuth(t *testing.T) (*AuthService, func(time.Duration)) {
	store := newTestStore(t)
	clock := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := NewAuthService(store.Users, testSecret, 30*time.Minute, discard).
		WithClock(func() time.Time { return clock })
	return svc, func(d time.Duration) { clock = clock.Add(d) }
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)

	user, token, err := svc.Register(ctx, RegisterInput{
		Name: "Ann", Email: "ann@example.com", Password: "secret123",
		Address: &models.Address{City: "Springfield"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.RoleCustomer, user.Role)
	assert.True(t, user.IsActive)
	assert.True(t, user.Preferences.Notifications)
	assert.Equal(t, "Springfield", user.Address.City)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	resolved, err := svc.ResolveCurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, _, err = svc.Register(ctx, RegisterInput{Name: "Dup", Email: "ann@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperr.ErrEmailTaken)
	assert.Equal(t, 400, apperr.HTTPStatus(apperr.KindOf(err)))

	logged, loginToken, err := svc.Login(ctx, "ann@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)

	cases := map[string]RegisterInput{
		"missing name":   {Email: "a@example.com", Password: "secret123"},
		"bad email":      {Name: "A", Email: "not-an-email", Password: "secret123"},
		"display name":   {Name: "A", Email: "A <a@example.com>", Password: "secret123"},
		"short password": {Name: "A", Email: "a@example.com", Password: "12345"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.Register(ctx, in)
			requireKind(t, err, apperr.KindValidation)
		})
	}
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)

	_, _, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ann@example.com", "wrong-password")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "ANN@example.com", "secret123")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	user, err := svc.Authenticate(ctx, "ann@example.com", "secret123")
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, svc.users.Update(ctx, user))

	_, err = svc.Authenticate(ctx, "ann@example.com", "secret123")
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestResolveCurrentUser(t *testing.T) {
	ctx := context.Background()
	svc, advance := newAuth(t)

	user, token, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Password: "secret123"})
	require.NoError(t, err)

	advance(29 * time.Minute)
	_, err = svc.ResolveCurrentUser(ctx, token)
	require.NoError(t, err)

	advance(2 * time.Minute)
	_, err = svc.ResolveCurrentUser(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrTokenExpired)

	_, err = svc.ResolveCurrentUser(ctx, "garbage")
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)

	_, err = svc.ResolveCurrentUser(ctx, "")
	assert.ErrorIs(t, err, apperr.ErrMissingToken)

	ghost, err := svc.IssueToken("ghost@example.com", time.Hour)
	require.NoError(t, err)
	_, err = svc.ResolveCurrentUser(ctx, ghost)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)

	fresh, err := svc.IssueToken(user.Email, 0)
	require.NoError(t, err)
	user.IsActive = false
	require.NoError(t, svc.users.Update(ctx, user))
	_, err = svc.ResolveCurrentUser(ctx, fresh)
	assert.ErrorIs(t, err, apperr.ErrTokenInvalid)
}

func TestRequireAdmin(t *testing.T) {
	_, err := RequireAdmin(&models.User{Role: models.RoleCustomer})
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = RequireAdmin(nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	admin := &models.User{Role: models.RoleAdmin}
	got, err := RequireAdmin(admin)
	require.NoError(t, err)
	assert.Same(t, admin, got)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t)

	user, _, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "ann@example.com", Phone: "1", Password: "secret123"})
	require.NoError(t, err)

	phone := "555-0100"
	prefs := models.Preferences{DarkMode: true}
	updated, err := svc.UpdateProfile(ctx, user, models.UserUpdate{Phone: &phone, Preferences: &prefs})
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)

	stored, err := svc.users.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored.Name)
	assert.Equal(t, "555-0100", stored.Phone)
	assert.Equal(t, prefs, stored.Preferences)

	blank := "  "
	_, err = svc.UpdateProfile(ctx, stored, models.UserUpdate{Name: &blank})
	requireKind(t, err, apperr.KindValidation)
}
