package repository

import (
	"context"
	"errors"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductChanges carries the mutable product fields written by an edit
type ProductChanges struct {
	Brand       string
	Description string
	Category    string
	Stocks      int64
	UpdatedBy   string
	UpdatedAt   time.Time
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByBarcode(ctx context.Context, barcode int64) (*model.Product, error)
	FindAll(ctx context.Context, archived bool) ([]model.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// UpdateDetails writes changes only if the product is active and still holds expectedStocks.
	UpdateDetails(ctx context.Context, id uuid.UUID, expectedStocks int64, changes ProductChanges) (bool, error)
	// AdjustStock adds delta to an active product only if the result stays within [0, MaxStock].
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64, updatedBy string, at time.Time) (bool, error)
	// SetArchived flips isDeleted; it reports false when the product was already in that state or is missing.
	SetArchived(ctx context.Context, id uuid.UUID, archived bool, updatedBy string, at time.Time) (bool, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	// FindAll returns every transaction newest first with Product resolved where it still exists.
	FindAll(ctx context.Context) ([]model.Transaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.Transaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Store groups the inventory repositories behind one unit of work.
type Store interface {
	Products() ProductRepository
	Transactions() TransactionRepository
	// WithinTx runs fn atomically: any error rolls back every write made through the tx store.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Close(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore returns the relational Store backed by db
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Products() ProductRepository {
	return NewProductRepo(s.db)
}

func (s *gormStore) Transactions() TransactionRepository {
	return NewTransactionRepo(s.db)
}

func (s *gormStore) WithinTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// Close is a no-op: the *gorm.DB is shared with the user repositories and closed by its owner.
func (s *gormStore) Close(ctx context.Context) error {
	return nil
}

// translateError maps gorm errors onto the apperr taxonomy
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound("%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("%s already exists", entity)
	default:
		return apperr.Store(err)
	}
}
