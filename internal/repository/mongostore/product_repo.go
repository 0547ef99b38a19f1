package mongostore

import (
	"context"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type productRepo struct {
	coll    *mongo.Collection
	session mongo.Session
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = product.CreatedAt
	}
	_, err := r.coll.InsertOne(bind(ctx, r.session), fromProduct(product))
	return translateError(err, "product")
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode int64) (*model.Product, error) {
	return r.findOne(ctx, bson.M{"barcode": barcode})
}

func (r *productRepo) findOne(ctx context.Context, filter bson.M) (*model.Product, error) {
	var doc productDoc
	if err := r.coll.FindOne(bind(ctx, r.session), filter).Decode(&doc); err != nil {
		return nil, translateError(err, "product")
	}
	product, err := doc.toModel()
	if err != nil {
		return nil, apperr.Store(err)
	}
	return &product, nil
}

func (r *productRepo) FindAll(ctx context.Context, archived bool) ([]model.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return r.find(ctx, bson.M{"isDeleted": archived}, opts)
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": keys}})
}

func (r *productRepo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]model.Product, error) {
	ctx = bind(ctx, r.session)
	cursor, err := r.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, translateError(err, "product")
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, translateError(err, "product")
	}

	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := doc.toModel()
		if err != nil {
			return nil, apperr.Store(err)
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *productRepo) UpdateDetails(ctx context.Context, id uuid.UUID, expectedStocks int64, changes repository.ProductChanges) (bool, error) {
	filter := bson.M{"_id": id.String(), "stocks": expectedStocks, "isDeleted": false}
	update := bson.M{"$set": bson.M{
		"brand":       changes.Brand,
		"description": changes.Description,
		"category":    changes.Category,
		"stocks":      changes.Stocks,
		"updatedBy":   changes.UpdatedBy,
		"updatedAt":   changes.UpdatedAt,
	}}
	return r.updateOne(ctx, filter, update)
}

func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int64, updatedBy string, at time.Time) (bool, error) {
	filter := bson.M{
		"_id":       id.String(),
		"isDeleted": false,
		"stocks":    bson.M{"$gte": -delta, "$lte": model.MaxStock - delta},
	}
	update := bson.M{
		"$inc": bson.M{"stocks": delta},
		"$set": bson.M{"updatedBy": updatedBy, "updatedAt": at},
	}
	return r.updateOne(ctx, filter, update)
}

func (r *productRepo) SetArchived(ctx context.Context, id uuid.UUID, archived bool, updatedBy string, at time.Time) (bool, error) {
	filter := bson.M{"_id": id.String(), "isDeleted": !archived}
	update := bson.M{"$set": bson.M{"isDeleted": archived, "updatedBy": updatedBy, "updatedAt": at}}
	return r.updateOne(ctx, filter, update)
}

func (r *productRepo) updateOne(ctx context.Context, filter, update bson.M) (bool, error) {
	result, err := r.coll.UpdateOne(bind(ctx, r.session), filter, update)
	if err != nil {
		return false, translateError(err, "product")
	}
	return result.MatchedCount == 1, nil
}
