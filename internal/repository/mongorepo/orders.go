package mongorepo

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/example/grocery/internal/models"
	"github.com/example/grocery/internal/repository"
	"github.com/example/grocery/internal/utils"
)

type orders struct {
	col *mongo.Collection
}

func (r *orders) Create(ctx context.Context, order *models.Order) error {
	order.Stamp(now())
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	return insert(ctx, r.col, order)
}

func (r *orders) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return findOne[models.Order](ctx, r.col, bson.M{"_id": id})
}

func (r *orders) Update(ctx context.Context, order *models.Order) error {
	order.UpdatedAt = now()
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.M{"$set": bson.M{
		"status":     order.Status,
		"notes":      order.Notes,
		"updated_at": order.UpdatedAt,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *orders) List(ctx context.Context, filter repository.OrderFilter, pg utils.Pagination) ([]models.Order, int64, error) {
	return findPage[models.Order](ctx, r.col, orderQuery(filter), newestFirst, pg)
}

func (r *orders) Count(ctx context.Context, filter repository.OrderFilter) (int64, error) {
	return r.col.CountDocuments(ctx, orderQuery(filter))
}

func (r *orders) Revenue(ctx context.Context, filter repository.OrderFilter) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: orderQuery(filter)}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_price"}}}},
	}

	rows, err := aggregate[struct {
		Total float64 `bson:"total"`
	}](ctx, r.col, pipeline)
	if err != nil || len(rows) == 0 {
		return 0, err
	}
	return rows[0].Total, nil
}

func (r *orders) TopProducts(ctx context.Context, limit int) ([]models.ProductSales, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$items.product_id",
			"name":           bson.M{"$first": "$items.name"},
			"total_quantity": bson.M{"$sum": "$items.quantity"},
			"total_revenue":  bson.M{"$sum": bson.M{"$multiply": bson.A{"$items.price", "$items.quantity"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_quantity", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	return aggregate[models.ProductSales](ctx, r.col, pipeline)
}

func (r *orders) Recent(ctx context.Context, limit int) ([]models.Order, error) {
	return findAll[models.Order](ctx, r.col, bson.M{}, options.Find().SetSort(newestFirst).SetLimit(int64(limit)))
}

func orderQuery(filter repository.OrderFilter) bson.M {
	query := bson.M{}
	if filter.UserID != nil {
		query["user_id"] = *filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	created := bson.M{}
	if !filter.CreatedFrom.IsZero() {
		created["$gte"] = filter.CreatedFrom
	}
	if !filter.CreatedTo.IsZero() {
		created["$lt"] = filter.CreatedTo
	}
	if len(created) > 0 {
		query["created_at"] = created
	}
	return query
}

func aggregate[T any](ctx context.Context, col *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
