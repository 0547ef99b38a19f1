package stats

import (
	"time"

	"go-inventory-tracker/internal/model"
)

const dashboardRecentLimit = 5

// Dashboard is the overview served by GET /dashboard/stats
type Dashboard struct {
	TotalProducts     int                `json:"totalProducts"`
	TotalStock        int64              `json:"totalStock"`
	TotalTransactions int                `json:"totalTransactions"`
	StockStatus       StockStatusSummary `json:"stockStatus"`
	Categories        []CategoryCount    `json:"categories"`
	RecentProducts    []model.Product    `json:"recentProducts"`
	LowStock          []model.Product    `json:"lowStock"`
	OutOfStock        []model.Product    `json:"outOfStock"`
	TopStockOut       []StockOutTotal    `json:"topStockOut"`
	GeneratedAt       time.Time          `json:"generatedAt"`
}

func Summarize(products []model.Product, transactions []model.Transaction, now time.Time) Dashboard {
	var totalStock int64
	for i := range products {
		totalStock += products[i].Stocks
	}
	return Dashboard{
		TotalProducts:     len(products),
		TotalStock:        totalStock,
		TotalTransactions: len(transactions),
		StockStatus:       StockStatus(products),
		Categories:        CategoryBreakdown(products),
		RecentProducts:    RecentProducts(products, dashboardRecentLimit),
		LowStock:          LowStockList(products),
		OutOfStock:        OutOfStockList(products),
		TopStockOut:       TopStockOut(products, transactions, DefaultTopN),
		GeneratedAt:       now,
	}
}
