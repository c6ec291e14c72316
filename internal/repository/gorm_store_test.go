package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/example/grocery/internal/database"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/repository/repotest"
)

func TestGormStore(t *testing.T) {
	repotest.Run(t, func(t *testing.T) *repository.Store {
		conn, err := database.OpenGorm("sqlite://:memory:", logger.Silent)
		require.NoError(t, err)
		require.NoError(t, database.Migrate(conn))

		store := repository.NewGormStore(conn)
		t.Cleanup(func() { _ = store.Close(context.Background()) })
		return store
	})
}
