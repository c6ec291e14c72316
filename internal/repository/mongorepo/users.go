package mongorepo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

type users struct {
	col *mongo.Collection
}

func (r *users) Create(ctx context.Context, user *models.User) error {
	user.Stamp(now())
	return insert(ctx, r.col, user)
}

func (r *users) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"_id": id})
}

func (r *users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, r.col, bson.M{"email": email})
}

func (r *users) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = now()
	return replaceByID(ctx, r.col, user.ID, user)
}

func (r *users) List(ctx context.Context, filter repository.UserFilter, pg utils.Pagination) ([]models.User, int64, error) {
	return findPage[models.User](ctx, r.col, userQuery(filter), newestFirst, pg)
}

func (r *users) Count(ctx context.Context, filter repository.UserFilter) (int64, error) {
	return r.col.CountDocuments(ctx, userQuery(filter))
}

func userQuery(filter repository.UserFilter) bson.M {
	query := bson.M{}
	if !filter.IncludeInactive {
		query["is_active"] = true
	}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if !filter.CreatedSince.IsZero() {
		query["created_at"] = bson.M{"$gte": filter.CreatedSince}
	}
	return query
}
