package service

import (
	"context"
	"fmt"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type InventoryService interface {
	AddProduct(ctx context.Context, req AddProductRequest, actor Actor) (*model.Product, error)
	EditProduct(ctx context.Context, id uuid.UUID, req EditProductRequest, actor Actor) (*model.Product, error)
	StockIn(ctx context.Context, id uuid.UUID, quantity int64, actor Actor) (*model.Product, error)
	StockOut(ctx context.Context, id uuid.UUID, quantity int64, actor Actor) (*model.Product, error)
	ArchiveProduct(ctx context.Context, id uuid.UUID, actor Actor) (*model.Product, error)
	RestoreProduct(ctx context.Context, id uuid.UUID, actor Actor) (*model.Product, error)
	ArchiveAllProducts(ctx context.Context, actor Actor) (int, error)

	ListProducts(ctx context.Context, archived bool) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)

	RecordTransaction(ctx context.Context, req RecordTransactionRequest, actor Actor) (*model.TransactionView, error)
	ListTransactions(ctx context.Context) ([]model.TransactionView, error)
	GetTransaction(ctx context.Context, id uuid.UUID) (*model.TransactionView, error)
	ProductHistory(ctx context.Context, productID uuid.UUID) ([]model.TransactionView, error)
	PurgeTransaction(ctx context.Context, id uuid.UUID, actor Actor) error
	PurgeAllTransactions(ctx context.Context, actor Actor) (int64, error)
}

type Option func(*inventoryService)

// WithClock replaces time.Now, mainly so tests get a deterministic order
func WithClock(now func() time.Time) Option {
	return func(s *inventoryService) { s.now = now }
}

type inventoryService struct {
	store    repository.Store
	notifier Notifier
	log      zerolog.Logger
	now      func() time.Time
}

func NewInventoryService(store repository.Store, notifier Notifier, log zerolog.Logger, opts ...Option) InventoryService {
	if notifier == nil {
		notifier = NopNotifier
	}
	s := &inventoryService{
		store:    store,
		notifier: notifier,
		log:      log.With().Str("component", "inventory").Logger(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *inventoryService) clock() time.Time {
	return s.now().UTC()
}

// mutation is the outcome of one unit of work, published after commit
type mutation struct {
	product *model.Product
	tx      *model.Transaction
}

func (s *inventoryService) AddProduct(ctx context.Context, req AddProductRequest, actor Actor) (*model.Product, error) {
	// 1. Validate input
	req.normalize()
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	// 2. Persist product + log inside one unit of work
	var out mutation
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		_, err := tx.Products().FindByBarcode(ctx, req.Barcode)
		if err == nil {
			return apperr.Conflict("barcode %d already exists", req.Barcode)
		}
		if !apperr.Is(err, apperr.KindNotFound) {
			return err
		}

		now := s.clock()
		product := &model.Product{
			Brand:       req.Brand,
			Barcode:     req.Barcode,
			Description: req.Description,
			Category:    req.Category,
			Stocks:      *req.Stocks,
		}
		product.ID = uuid.New()
		product.CreatedAt = now
		product.UpdatedAt = now
		product.CreatedBy = actor.ID
		product.UpdatedBy = actor.ID
		if err := tx.Products().Create(ctx, product); err != nil {
			if apperr.Is(err, apperr.KindConflict) {
				return apperr.Conflict("barcode %d already exists", req.Barcode)
			}
			return err
		}

		logEntry, err := s.appendLog(ctx, tx, product.ID, model.ActionProductAdded, product.Stocks, actor, now)
		if err != nil {
			return err
		}
		out = mutation{product: product, tx: logEntry}
		return nil
	})
	if err != nil {
		return nil, s.fail(err, "add product", uuid.Nil)
	}

	// 3. Notify realtime clients
	s.committed(out, actor, fmt.Sprintf("%s added product '%s'", actor.Name, out.product.Brand))
	return out.product, nil
}

func (s *inventoryService) EditProduct(ctx context.Context, id uuid.UUID, req EditProductRequest, actor Actor) (*model.Product, error) {
	req.normalize()
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	if req.empty() {
		return nil, apperr.Validation("no fields to update")
	}

	var out mutation
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		current, err := tx.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if current.IsDeleted {
			return apperr.Validation("product is archived")
		}
		if req.Barcode != nil && *req.Barcode != current.Barcode {
			return apperr.Validation("barcode is immutable")
		}

		updated := *current
		if req.Brand != nil {
			updated.Brand = *req.Brand
		}
		if req.Description != nil {
			updated.Description = *req.Description
		}
		if req.Category != nil {
			updated.Category = *req.Category
		}
		if req.Stocks != nil {
			updated.Stocks = *req.Stocks
		}

		action, quantity := editAction(current.Stocks, updated.Stocks)
		now := s.clock()
		updated.UpdatedAt = now
		updated.UpdatedBy = actor.ID

		ok, err := tx.Products().UpdateDetails(ctx, id, current.Stocks, repository.ProductChanges{
			Brand:       updated.Brand,
			Description: updated.Description,
			Category:    updated.Category,
			Stocks:      updated.Stocks,
			UpdatedBy:   actor.ID,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Conflict("product was modified concurrently, retry the edit")
		}

		logEntry, err := s.appendLog(ctx, tx, id, action, quantity, actor, now)
		if err != nil {
			return err
		}
		out = mutation{product: &updated, tx: logEntry}
		return nil
	})
	if err != nil {
		return nil, s.fail(err, "edit product", id)
	}

	s.committed(out, actor, fmt.Sprintf("%s updated product '%s'", actor.Name, out.product.Brand))
	return out.product, nil
}

// editAction labels an edit by the stock change it carries
func editAction(oldStocks, newStocks int64) (model.Action, int64) {
	switch {
	case newStocks > oldStocks:
		return model.ActionStockIn, newStocks - oldStocks
	case newStocks < oldStocks:
		return model.ActionStockOut, oldStocks - newStocks
	default:
		return model.ActionProductUpdate, 0
	}
}

func (s *inventoryService) StockIn(ctx context.Context, id uuid.UUID, quantity int64, actor Actor) (*model.Product, error) {
	out, err := s.adjust(ctx, id, model.ActionStockIn, quantity, actor)
	if err != nil {
		return nil, err
	}
	return out.product, nil
}

func (s *inventoryService) StockOut(ctx context.Context, id uuid.UUID, quantity int64, actor Actor) (*model.Product, error) {
	out, err := s.adjust(ctx, id, model.ActionStockOut, quantity, actor)
	if err != nil {
		return nil, err
	}
	return out.product, nil
}

// adjust applies a stock delta as one conditional update, so concurrent callers
// can never push stocks below zero or above MaxStock.
func (s *inventoryService) adjust(ctx context.Context, id uuid.UUID, action model.Action, quantity int64, actor Actor) (mutation, error) {
	if quantity <= 0 {
		return mutation{}, apperr.Validation("quantity must be a positive integer")
	}
	if quantity > model.MaxStock {
		return mutation{}, apperr.Validation("quantity must be at most %d", model.MaxStock)
	}
	delta := quantity
	if action == model.ActionStockOut {
		delta = -quantity
	}

	var out mutation
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		now := s.clock()
		ok, err := tx.Products().AdjustStock(ctx, id, delta, actor.ID, now)
		if err != nil {
			return err
		}

		product, err := tx.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			switch {
			case product.IsDeleted:
				return apperr.Validation("product is archived")
			case action == model.ActionStockOut:
				return apperr.Validation("insufficient stock: requested %d, available %d", quantity, product.Stocks)
			default:
				return apperr.Validation("stock would exceed the maximum of %d", model.MaxStock)
			}
		}

		logEntry, err := s.appendLog(ctx, tx, id, action, quantity, actor, now)
		if err != nil {
			return err
		}
		out = mutation{product: product, tx: logEntry}
		return nil
	})
	if err != nil {
		return mutation{}, s.fail(err, string(action), id)
	}

	verb := "added"
	if action == model.ActionStockOut {
		verb = "removed"
	}
	s.committed(out, actor, fmt.Sprintf("%s %s %d units of '%s'", actor.Name, verb, quantity, out.product.Brand))
	return out, nil
}

func (s *inventoryService) ArchiveProduct(ctx context.Context, id uuid.UUID, actor Actor) (*model.Product, error) {
	return s.setArchived(ctx, id, true, actor)
}

func (s *inventoryService) RestoreProduct(ctx context.Context, id uuid.UUID, actor Actor) (*model.Product, error) {
	return s.setArchived(ctx, id, false, actor)
}

// setArchived is idempotent: a product already in the requested state is returned without a log entry
func (s *inventoryService) setArchived(ctx context.Context, id uuid.UUID, archived bool, actor Actor) (*model.Product, error) {
	action := model.ActionProductRestored
	if archived {
		action = model.ActionProductArchived
	}

	var out mutation
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		out = mutation{}
		now := s.clock()
		changed, err := tx.Products().SetArchived(ctx, id, archived, actor.ID, now)
		if err != nil {
			return err
		}
		product, err := tx.Products().FindByID(ctx, id)
		if err != nil {
			return err
		}
		out.product = product
		if !changed {
			return nil
		}
		out.tx, err = s.appendLog(ctx, tx, id, action, 0, actor, now)
		return err
	})
	if err != nil {
		return nil, s.fail(err, string(action), id)
	}

	if out.tx != nil {
		verb := "restored"
		if archived {
			verb = "archived"
		}
		s.committed(out, actor, fmt.Sprintf("%s %s product '%s'", actor.Name, verb, out.product.Brand))
	}
	return out.product, nil
}

func (s *inventoryService) ArchiveAllProducts(ctx context.Context, actor Actor) (int, error) {
	var archived []mutation
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		// the document store may re-run this callback on a transient error
		archived = archived[:0]
		products, err := tx.Products().FindAll(ctx, false)
		if err != nil {
			return err
		}
		now := s.clock()
		for i := range products {
			product := &products[i]
			changed, err := tx.Products().SetArchived(ctx, product.ID, true, actor.ID, now)
			if err != nil {
				return err
			}
			if !changed {
				continue
			}
			logEntry, err := s.appendLog(ctx, tx, product.ID, model.ActionProductArchived, 0, actor, now)
			if err != nil {
				return err
			}
			product.IsDeleted = true
			product.UpdatedAt = now
			product.UpdatedBy = actor.ID
			archived = append(archived, mutation{product: product, tx: logEntry})
		}
		return nil
	})
	if err != nil {
		return 0, s.fail(err, "archive all products", uuid.Nil)
	}

	s.log.Info().Str("user_id", actor.ID).Int("count", len(archived)).Msg("archived all products")
	if len(archived) > 0 {
		s.notifier.Publish(Event{
			Type:    EventStockUpdate,
			Action:  model.ActionProductArchived,
			Count:   int64(len(archived)),
			User:    actor,
			Message: fmt.Sprintf("%s archived %d products", actor.Name, len(archived)),
			At:      s.clock(),
		})
	}
	return len(archived), nil
}

func (s *inventoryService) ListProducts(ctx context.Context, archived bool) ([]model.Product, error) {
	products, err := s.store.Products().FindAll(ctx, archived)
	if err != nil {
		return nil, s.fail(err, "list products", uuid.Nil)
	}
	return products, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.store.Products().FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(err, "get product", id)
	}
	return product, nil
}

// RecordTransaction only accepts stock movements and routes them through StockIn / StockOut,
// so a direct log write can never leave stocks and the log out of step.
func (s *inventoryService) RecordTransaction(ctx context.Context, req RecordTransactionRequest, actor Actor) (*model.TransactionView, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}
	action, ok := model.ParseStockAction(req.Action)
	if !ok {
		return nil, apperr.Validation("action must be one of: Stock In, Stock Out")
	}

	out, err := s.adjust(ctx, req.ProductID, action, req.Quantity, actor)
	if err != nil {
		return nil, err
	}
	view := out.tx.View(out.product)
	return &view, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context) ([]model.TransactionView, error) {
	txs, err := s.store.Transactions().FindAll(ctx)
	if err != nil {
		return nil, s.fail(err, "list transactions", uuid.Nil)
	}
	return views(txs), nil
}

func (s *inventoryService) GetTransaction(ctx context.Context, id uuid.UUID) (*model.TransactionView, error) {
	tx, err := s.store.Transactions().FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(err, "get transaction", uuid.Nil)
	}
	view := tx.View(tx.Product)
	return &view, nil
}

func (s *inventoryService) ProductHistory(ctx context.Context, productID uuid.UUID) ([]model.TransactionView, error) {
	if _, err := s.store.Products().FindByID(ctx, productID); err != nil {
		return nil, s.fail(err, "product history", productID)
	}
	txs, err := s.store.Transactions().FindByProduct(ctx, productID)
	if err != nil {
		return nil, s.fail(err, "product history", productID)
	}
	return views(txs), nil
}

func (s *inventoryService) PurgeTransaction(ctx context.Context, id uuid.UUID, actor Actor) error {
	if err := s.store.Transactions().Delete(ctx, id); err != nil {
		return s.fail(err, "purge transaction", uuid.Nil)
	}
	s.log.Warn().Str("transaction_id", id.String()).Str("user_id", actor.ID).Msg("transaction purged")
	s.notifier.Publish(Event{
		Type:    EventTransactionsPurged,
		Count:   1,
		User:    actor,
		Message: fmt.Sprintf("%s purged a transaction", actor.Name),
		At:      s.clock(),
	})
	return nil
}

func (s *inventoryService) PurgeAllTransactions(ctx context.Context, actor Actor) (int64, error) {
	count, err := s.store.Transactions().DeleteAll(ctx)
	if err != nil {
		return 0, s.fail(err, "purge all transactions", uuid.Nil)
	}
	s.log.Warn().Int64("count", count).Str("user_id", actor.ID).Msg("all transactions purged")
	s.notifier.Publish(Event{
		Type:    EventTransactionsPurged,
		Count:   count,
		User:    actor,
		Message: fmt.Sprintf("%s purged %d transactions", actor.Name, count),
		At:      s.clock(),
	})
	return count, nil
}

func (s *inventoryService) appendLog(ctx context.Context, tx repository.Store, productID uuid.UUID, action model.Action, quantity int64, actor Actor, at time.Time) (*model.Transaction, error) {
	entry := &model.Transaction{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  quantity,
		Action:    action,
		CreatedAt: at,
		CreatedBy: actor.ID,
	}
	if err := tx.Transactions().Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *inventoryService) committed(out mutation, actor Actor, message string) {
	s.log.Info().
		Str("product_id", out.product.ID.String()).
		Str("action", string(out.tx.Action)).
		Int64("quantity", out.tx.Quantity).
		Str("user_id", actor.ID).
		Msg("inventory mutation committed")

	s.notifier.Publish(Event{
		Type:     EventStockUpdate,
		Action:   out.tx.Action,
		Product:  out.product,
		Quantity: out.tx.Quantity,
		User:     actor,
		Message:  message,
		At:       out.tx.CreatedAt,
	})
}

// fail logs store failures; domain errors pass through untouched
func (s *inventoryService) fail(err error, op string, productID uuid.UUID) error {
	if apperr.KindOf(err) == apperr.KindStore {
		event := s.log.Error().Err(err).Str("op", op)
		if productID != uuid.Nil {
			event = event.Str("product_id", productID.String())
		}
		event.Msg("inventory store failure")
		return apperr.Store(err)
	}
	return err
}

func views(txs []model.Transaction) []model.TransactionView {
	out := make([]model.TransactionView, len(txs))
	for i := range txs {
		out[i] = txs[i].View(txs[i].Product)
	}
	return out
}
