package mongostore

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/pkg/database"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductDocumentConversion(t *testing.T) {
	p := model.Product{Brand: "Acme", Barcode: 42, Category: "bearing", Stocks: 7, IsDeleted: true}
	p.ID = uuid.New()
	p.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.CreatedBy = "u1"

	back, err := fromProduct(&p).toModel()
	require.NoError(t, err)
	assert.Equal(t, p, back)

	_, err = productDoc{ID: "not-a-uuid"}.toModel()
	assert.Error(t, err)
}

func TestTransactionDocumentRejectsBadProductID(t *testing.T) {
	_, err := transactionDoc{ID: uuid.NewString(), ProductID: "x"}.toModel()
	assert.Error(t, err)
}

// openStore needs a replica set for transactions, e.g. MONGO_TEST_URI=mongodb://localhost:27017/?replicaSet=rs0
func openStore(t *testing.T) repository.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, uri, zerolog.Nop())
	require.NoError(t, err)

	dbName := fmt.Sprintf("inventory_test_%d", time.Now().UnixNano())
	require.NoError(t, EnsureIndexes(ctx, client, dbName))
	t.Cleanup(func() {
		_ = client.Database(dbName).Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return New(client, dbName)
}

func newProduct(barcode, stocks int64) *model.Product {
	return &model.Product{Brand: "Acme", Barcode: barcode, Category: "bearing", Stocks: stocks}
}

func TestMongoAdjustStockIsConditional(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	p := newProduct(1, 5)
	require.NoError(t, s.Products().Create(ctx, p))

	ok, err := s.Products().AdjustStock(ctx, p.ID, -6, "u1", time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.Products().AdjustStock(ctx, p.ID, -5, "u1", time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := s.Products().FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Stocks)
}

func TestMongoDuplicateBarcodeIsConflict(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Products().Create(ctx, newProduct(9, 1)))
	err := s.Products().Create(ctx, newProduct(9, 1))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestMongoWithinTxRollsBack(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	p := newProduct(3, 1)
	err := s.WithinTx(ctx, func(tx repository.Store) error {
		if err := tx.Products().Create(ctx, p); err != nil {
			return err
		}
		return apperr.Validation("abort")
	})
	require.Error(t, err)

	_, err = s.Products().FindByID(ctx, p.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestMongoTransactionsResolveProducts(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	p := newProduct(4, 2)
	require.NoError(t, s.Products().Create(ctx, p))
	require.NoError(t, s.Transactions().Create(ctx, &model.Transaction{ProductID: p.ID, Quantity: 2, Action: model.ActionProductAdded}))
	require.NoError(t, s.Transactions().Create(ctx, &model.Transaction{ProductID: uuid.New(), Quantity: 1, Action: model.ActionStockIn}))

	txs, err := s.Transactions().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)

	resolved := 0
	for _, tx := range txs {
		if tx.Product != nil {
			resolved++
			assert.Equal(t, p.ID, tx.Product.ID)
		}
	}
	assert.Equal(t, 1, resolved)

	n, err := s.Transactions().DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
