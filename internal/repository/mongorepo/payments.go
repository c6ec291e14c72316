package mongorepo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/utils"
)

type payments struct {
	col *mongo.Collection
}

func (r *payments) Create(ctx context.Context, tx *models.PaymentTransaction) error {
	tx.Stamp(now())
	return insert(ctx, r.col, tx)
}

func (r *payments) FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentTransaction, error) {
	return findOne[models.PaymentTransaction](ctx, r.col, bson.M{"_id": id})
}

func (r *payments) FindBySession(ctx context.Context, sessionID string) (*models.PaymentTransaction, error) {
	return findOne[models.PaymentTransaction](ctx, r.col, bson.M{"session_id": sessionID})
}

func (r *payments) Update(ctx context.Context, tx *models.PaymentTransaction) error {
	tx.UpdatedAt = now()
	return replaceByID(ctx, r.col, tx.ID, tx)
}

func (r *payments) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.PaymentTransaction, error) {
	return findAll[models.PaymentTransaction](ctx, r.col, bson.M{"user_id": userID},
		options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func (r *payments) List(ctx context.Context, pg utils.Pagination) ([]models.PaymentTransaction, int64, error) {
	return findPage[models.PaymentTransaction](ctx, r.col, bson.M{}, newestFirst, pg)
}
