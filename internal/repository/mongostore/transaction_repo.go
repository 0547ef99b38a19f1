package mongostore

import (
	"context"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type transactionRepo struct {
	coll     *mongo.Collection
	products *mongo.Collection
	session  mongo.Session
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	_, err := r.coll.InsertOne(bind(ctx, r.session), fromTransaction(tx))
	return translateError(err, "transaction")
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	return r.find(ctx, bson.M{})
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var doc transactionDoc
	if err := r.coll.FindOne(bind(ctx, r.session), bson.M{"_id": id.String()}).Decode(&doc); err != nil {
		return nil, translateError(err, "transaction")
	}
	tx, err := doc.toModel()
	if err != nil {
		return nil, apperr.Store(err)
	}
	resolved, err := r.resolve(ctx, []model.Transaction{tx})
	if err != nil {
		return nil, err
	}
	return &resolved[0], nil
}

func (r *transactionRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.Transaction, error) {
	return r.find(ctx, bson.M{"productId": productID.String()})
}

func (r *transactionRepo) find(ctx context.Context, filter bson.M) ([]model.Transaction, error) {
	bound := bind(ctx, r.session)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(bound, filter, opts)
	if err != nil {
		return nil, translateError(err, "transaction")
	}
	defer cursor.Close(bound)

	var docs []transactionDoc
	if err := cursor.All(bound, &docs); err != nil {
		return nil, translateError(err, "transaction")
	}

	txs := make([]model.Transaction, 0, len(docs))
	for _, doc := range docs {
		tx, err := doc.toModel()
		if err != nil {
			return nil, apperr.Store(err)
		}
		txs = append(txs, tx)
	}
	return r.resolve(ctx, txs)
}

// resolve loads the referenced products in one query; missing ones stay nil
func (r *transactionRepo) resolve(ctx context.Context, txs []model.Transaction) ([]model.Transaction, error) {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, tx := range txs {
		if !seen[tx.ProductID] {
			seen[tx.ProductID] = true
			ids = append(ids, tx.ProductID)
		}
	}

	products, err := (&productRepo{coll: r.products, session: r.session}).FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for i := range txs {
		txs[i].Product = byID[txs[i].ProductID]
	}
	return txs, nil
}

func (r *transactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.coll.DeleteOne(bind(ctx, r.session), bson.M{"_id": id.String()})
	if err != nil {
		return translateError(err, "transaction")
	}
	if result.DeletedCount == 0 {
		return apperr.NotFound("transaction not found")
	}
	return nil
}

func (r *transactionRepo) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.coll.DeleteMany(bind(ctx, r.session), bson.M{})
	if err != nil {
		return 0, translateError(err, "transaction")
	}
	return result.DeletedCount, nil
}
