package mongorepo

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

type products struct {
	col *mongo.Collection
}

func (r *products) Create(ctx context.Context, product *models.Product) error {
	product.Stamp(now())
	return insert(ctx, r.col, product)
}

func (r *products) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*models.Product, error) {
	query := bson.M{"_id": id}
	if !includeInactive {
		query["is_active"] = true
	}
	return findOne[models.Product](ctx, r.col, query)
}

func (r *products) Update(ctx context.Context, product *models.Product) error {
	product.UpdatedAt = now()
	return replaceByID(ctx, r.col, product.ID, product)
}

func (r *products) List(ctx context.Context, filter repository.ProductFilter, pg utils.Pagination) ([]models.Product, int64, error) {
	sort := oldestFirst
	if filter.NewestFirst {
		sort = newestFirst
	}
	return findPage[models.Product](ctx, r.col, productQuery(filter), sort, pg)
}

func (r *products) Count(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	return r.col.CountDocuments(ctx, productQuery(filter))
}

func productQuery(filter repository.ProductFilter) bson.M {
	query := bson.M{}
	if !filter.IncludeInactive {
		query["is_active"] = true
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.CategoryID != nil {
		query["category_id"] = *filter.CategoryID
	}
	if filter.InStock != nil {
		query["in_stock"] = *filter.InStock
	}
	if filter.StockBelow != nil {
		query["stock_count"] = bson.M{"$lt": *filter.StockBelow}
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": search},
		}
	}
	return query
}
