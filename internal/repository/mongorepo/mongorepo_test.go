package mongorepo_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/repository/mongorepo"
	"github.com/example/grocery/internal/repository/repotest"
)

func TestUUIDRoundTrip(t *testing.T) {
	id := uuid.New()
	tx := models.PaymentTransaction{BaseModel: models.BaseModel{ID: id}, UserID: &id, SessionID: "cs_1"}

	raw, err := bson.MarshalWithRegistry(mongorepo.Registry(), tx)
	require.NoError(t, err)
	assert.Equal(t, id.String(), bson.Raw(raw).Lookup("_id").StringValue())
	assert.Equal(t, bson.TypeNull, bson.Raw(raw).Lookup("order_id").Type)

	var decoded models.PaymentTransaction
	require.NoError(t, bson.UnmarshalWithRegistry(mongorepo.Registry(), raw, &decoded))
	assert.Equal(t, id, decoded.ID)
	require.NotNil(t, decoded.UserID)
	assert.Equal(t, id, *decoded.UserID)
	assert.Nil(t, decoded.OrderID)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URL")
	if uri == "" {
		t.Skip("MONGO_TEST_URL not set")
	}

	repotest.Run(t, func(t *testing.T) *repository.Store {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		client, err := mongorepo.Connect(ctx, uri)
		require.NoError(t, err)

		name := fmt.Sprintf("grocery_test_%d", time.Now().UnixNano())
		require.NoError(t, mongorepo.EnsureIndexes(ctx, client.Database(name)))

		store := mongorepo.NewStore(client, name)
		t.Cleanup(func() {
			_ = client.Database(name).Drop(context.Background())
			_ = store.Close(context.Background())
		})
		return store
	})
}
