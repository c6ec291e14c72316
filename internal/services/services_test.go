package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/example/grocery/internal/apperr"
	"github.com/example/grocery/internal/database"
	slogger "github.com/example/grocery/internal/logger"
	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

const testSecret = "test-secret-test-secret-test-secret"

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	conn, err := database.OpenGorm("sqlite://:memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(conn))

	store := repository.NewGormStore(conn)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func createUser(t *testing.T, store *repository.Store, email string, role models.Role) *models.User {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)

	user := &models.User{Name: "User " + email, Email: email, Role: role, PasswordHash: hash, IsActive: true}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func firstPage(t *testing.T) utils.Pagination {
	t.Helper()
	pg, err := utils.NewPagination(1, 10)
	require.NoError(t, err)
	return pg
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "unexpected error: %v", err)
}

var discard = slogger.Discard()

type fakeProvider struct {
	created   []CheckoutRequest
	status    CheckoutStatus
	createErr error
	getErr    error
	gets      int
}

func (f *fakeProvider) CreateSession(_ context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, req)
	id := "cs_test_" + string(rune('a'+len(f.created)-1))
	return &CheckoutSession{ID: id, URL: "https://checkout.example/" + id}, nil
}

func (f *fakeProvider) GetSession(_ context.Context, sessionID string) (*CheckoutStatus, error) {
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	st := f.status
	st.SessionID = sessionID
	return &st, nil
}

var errProviderDown = errors.New("provider unavailable")
