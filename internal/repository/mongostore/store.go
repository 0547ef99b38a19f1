// Package mongostore keeps the product catalog and the transaction log in MongoDB.
package mongostore

import (
	"context"
	"errors"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	productsCollection     = "products"
	transactionsCollection = "transactions"
)

type store struct {
	client       *mongo.Client
	products     *mongo.Collection
	transactions *mongo.Collection
	// session is set on the store handed to WithinTx callbacks
	session mongo.Session
}

// New returns a repository.Store over the given database
func New(client *mongo.Client, dbName string) repository.Store {
	db := client.Database(dbName)
	return &store{
		client:       client,
		products:     db.Collection(productsCollection),
		transactions: db.Collection(transactionsCollection),
	}
}

// EnsureIndexes creates the unique barcode index and the listing indexes
func EnsureIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	_, err := db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "barcode", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "isDeleted", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return apperr.Store(err)
	}
	_, err = db.Collection(transactionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "productId", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return apperr.Store(err)
}

func (s *store) Products() repository.ProductRepository {
	return &productRepo{coll: s.products, session: s.session}
}

func (s *store) Transactions() repository.TransactionRepository {
	return &transactionRepo{coll: s.transactions, products: s.products, session: s.session}
}

func (s *store) WithinTx(ctx context.Context, fn func(tx repository.Store) error) error {
	if s.session != nil {
		return fn(s)
	}

	session, err := s.client.StartSession()
	if err != nil {
		return apperr.Store(err)
	}
	defer session.EndSession(ctx)

	txStore := &store{
		client:       s.client,
		products:     s.products,
		transactions: s.transactions,
		session:      session,
	}
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(txStore)
	})
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return err
		}
		return translateError(err, "product")
	}
	return nil
}

func (s *store) Close(ctx context.Context) error {
	if s.session != nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// bind attaches the transaction session, if any, to ctx
func bind(ctx context.Context, session mongo.Session) context.Context {
	if session == nil {
		return ctx
	}
	return mongo.NewSessionContext(ctx, session)
}

func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.NotFound("%s not found", entity)
	case mongo.IsDuplicateKeyError(err):
		return apperr.Conflict("%s already exists", entity)
	default:
		return apperr.Store(err)
	}
}
