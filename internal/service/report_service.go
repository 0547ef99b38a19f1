package service

import (
	"context"
	"io"
	"time"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/report"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/internal/stats"
)

type ReportService interface {
	// ExportInventory writes every product (archived included), the resolved log and the dashboard figures
	ExportInventory(ctx context.Context, w io.Writer) error
}

type reportService struct {
	store repository.Store
	now   func() time.Time
}

func NewReportService(store repository.Store) ReportService {
	return &reportService{store: store, now: time.Now}
}

func (s *reportService) ExportInventory(ctx context.Context, w io.Writer) error {
	active, err := s.store.Products().FindAll(ctx, false)
	if err != nil {
		return apperr.Store(err)
	}
	archived, err := s.store.Products().FindAll(ctx, true)
	if err != nil {
		return apperr.Store(err)
	}
	txs, err := s.store.Transactions().FindAll(ctx)
	if err != nil {
		return apperr.Store(err)
	}

	all := make([]model.Product, 0, len(active)+len(archived))
	all = append(all, active...)
	all = append(all, archived...)

	return report.Write(w, report.Inventory{
		Products:     all,
		Transactions: views(txs),
		Dashboard:    stats.Summarize(active, txs, s.now().UTC()),
	})
}
