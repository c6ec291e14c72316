package mongorepo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/grocery/internal/models"
)

type categories struct {
	col *mongo.Collection
}

func (r *categories) Create(ctx context.Context, category *models.Category) error {
	category.Stamp(now())
	return insert(ctx, r.col, category)
}

func (r *categories) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Category, error) {
	query := bson.M{"_id": id}
	if !includeInactive {
		query["is_active"] = true
	}
	return findOne[models.Category](ctx, r.col, query)
}

func (r *categories) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = now()
	return replaceByID(ctx, r.col, category.ID, category)
}

func (r *categories) List(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	query := bson.M{}
	if !includeInactive {
		query["is_active"] = true
	}
	return findAll[models.Category](ctx, r.col, query, options.Find().SetSort(oldestFirst))
}
