package service

import (
	"context"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/internal/stats"
)

const (
	DefaultMovementDays = 7
	MaxMovementDays     = 366
)

type DashboardService interface {
	GetDashboard(ctx context.Context) (*stats.Dashboard, error)
	GetStockMovement(ctx context.Context, days int) ([]stats.DailyMovement, error)
	GetTopStockOut(ctx context.Context, limit int) ([]stats.StockOutTotal, error)
	GetRecentProducts(ctx context.Context, limit int) ([]model.Product, error)
}

// dashboardService reads fresh snapshots on every call; nothing is cached
type dashboardService struct {
	store repository.Store
	now   func() time.Time
	loc   *time.Location
}

func NewDashboardService(store repository.Store, opts ...DashboardOption) DashboardService {
	s := &dashboardService{store: store, now: time.Now, loc: time.UTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type DashboardOption func(*dashboardService)

func WithDashboardClock(now func() time.Time) DashboardOption {
	return func(s *dashboardService) { s.now = now }
}

// WithLocation sets the time zone used to bucket the stock movement chart by day
func WithLocation(loc *time.Location) DashboardOption {
	return func(s *dashboardService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func (s *dashboardService) snapshot(ctx context.Context) ([]model.Product, []model.Transaction, error) {
	products, err := s.store.Products().FindAll(ctx, false)
	if err != nil {
		return nil, nil, apperr.Store(err)
	}
	txs, err := s.store.Transactions().FindAll(ctx)
	if err != nil {
		return nil, nil, apperr.Store(err)
	}
	return products, txs, nil
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*stats.Dashboard, error) {
	products, txs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	dashboard := stats.Summarize(products, txs, s.now().UTC())
	return &dashboard, nil
}

// GetStockMovement covers the last `days` calendar days including today
func (s *dashboardService) GetStockMovement(ctx context.Context, days int) ([]stats.DailyMovement, error) {
	if days <= 0 {
		days = DefaultMovementDays
	}
	if days > MaxMovementDays {
		return nil, apperr.Validation("days must be at most %d", MaxMovementDays)
	}
	txs, err := s.store.Transactions().FindAll(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	end := s.now().In(s.loc)
	start := end.AddDate(0, 0, -(days - 1))
	return stats.StockMovement(txs, start, end, s.loc), nil
}

func (s *dashboardService) GetTopStockOut(ctx context.Context, limit int) ([]stats.StockOutTotal, error) {
	products, txs, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return stats.TopStockOut(products, txs, limit), nil
}

func (s *dashboardService) GetRecentProducts(ctx context.Context, limit int) ([]model.Product, error) {
	products, err := s.store.Products().FindAll(ctx, false)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return stats.RecentProducts(products, limit), nil
}
