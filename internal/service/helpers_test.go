package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/pkg/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testActor = Actor{ID: "user-1", Name: "Tester", Email: "tester@example.com"}

// fakeClock advances one second per reading so creation order is deterministic
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Publish(e Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) Events() []Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Event(nil), n.events...)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectSQLite(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, true))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

type fixture struct {
	db       *gorm.DB
	store    repository.Store
	svc      InventoryService
	notifier *recordingNotifier
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := openTestDB(t)
	store := repository.NewStore(db)
	notifier := &recordingNotifier{}
	clock := newFakeClock()
	return &fixture{
		db:       db,
		store:    store,
		svc:      NewInventoryService(store, notifier, zerolog.Nop(), WithClock(clock.Now)),
		notifier: notifier,
		clock:    clock,
	}
}

func stocks(n int64) *int64 { return &n }

func str(s string) *string { return &s }

func (f *fixture) addProduct(t *testing.T, brand string, barcode, qty int64) *model.Product {
	t.Helper()
	p, err := f.svc.AddProduct(ctxT(t), AddProductRequest{
		Brand:    brand,
		Barcode:  barcode,
		Category: "bearing",
		Stocks:   stocks(qty),
	}, testActor)
	require.NoError(t, err)
	return p
}

func (f *fixture) countTransactions(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Transaction{}).Count(&n).Error)
	return n
}

func (f *fixture) countProducts(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Product{}).Count(&n).Error)
	return n
}

func ctxT(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
