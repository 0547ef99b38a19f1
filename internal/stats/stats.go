// Package stats derives dashboard figures from product and transaction snapshots.
// Every function is pure: inputs are never modified and nothing is cached.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"

	"go-inventory-tracker/internal/model"

	"github.com/google/uuid"
)

const (
	// DefaultTopN is used by TopStockOut when the caller passes topN <= 0
	DefaultTopN = 10
	// MaxCategories caps CategoryBreakdown
	MaxCategories = 5
)

type StockStatusSummary struct {
	Total                int `json:"total"`
	InStock              int `json:"inStock"`
	LowStock             int `json:"lowStock"`
	OutOfStock           int `json:"outOfStock"`
	InStockPercentage    int `json:"inStockPercentage"`
	LowStockPercentage   int `json:"lowStockPercentage"`
	OutOfStockPercentage int `json:"outOfStockPercentage"`
}

type CategoryCount struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type StockOutTotal struct {
	ProductID uuid.UUID `json:"productId"`
	Brand     string    `json:"brand"`
	Barcode   int64     `json:"barcode"`
	Category  string    `json:"category"`
	Total     int64     `json:"total"`
}

type DailyMovement struct {
	Date     string `json:"date"`
	StockIn  int64  `json:"stockIn"`
	StockOut int64  `json:"stockOut"`
}

// percentage rounds count/total*100 half away from zero; total 0 yields 0
func percentage(count, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(count) / float64(total) * 100))
}

func StockStatus(products []model.Product) StockStatusSummary {
	summary := StockStatusSummary{Total: len(products)}
	for i := range products {
		switch products[i].State() {
		case model.StateInStock:
			summary.InStock++
		case model.StateLowStock:
			summary.LowStock++
		default:
			summary.OutOfStock++
		}
	}
	summary.InStockPercentage = percentage(summary.InStock, summary.Total)
	summary.LowStockPercentage = percentage(summary.LowStock, summary.Total)
	summary.OutOfStockPercentage = percentage(summary.OutOfStock, summary.Total)
	return summary
}

// CategoryBreakdown groups by category, most populated first. Ties keep first-seen order.
func CategoryBreakdown(products []model.Product) []CategoryCount {
	counts := []CategoryCount{}
	index := make(map[string]int)
	for i := range products {
		category := products[i].Category
		if pos, ok := index[category]; ok {
			counts[pos].Count++
			continue
		}
		index[category] = len(counts)
		counts = append(counts, CategoryCount{Category: category, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > MaxCategories {
		counts = counts[:MaxCategories]
	}
	for i := range counts {
		counts[i].Percentage = percentage(counts[i].Count, len(products))
	}
	return counts
}

// RecentProducts returns the newest products first. limit <= 0 returns all of them.
func RecentProducts(products []model.Product, limit int) []model.Product {
	recent := make([]model.Product, len(products))
	copy(recent, products)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}
	return recent
}

func LowStockList(products []model.Product) []model.Product {
	return filterByState(products, model.StateLowStock)
}

func OutOfStockList(products []model.Product) []model.Product {
	return filterByState(products, model.StateOutOfStock)
}

func filterByState(products []model.Product, state model.StockState) []model.Product {
	out := []model.Product{}
	for i := range products {
		if products[i].State() == state {
			out = append(out, products[i])
		}
	}
	return out
}

func isStockOut(action model.Action) bool {
	a := strings.ToLower(strings.TrimSpace(string(action)))
	return a == "stock out" || a == "out"
}

// TopStockOut ranks products by their summed stock-out quantity. Transactions whose
// product is not in products are skipped. Equal totals keep the products' input order.
func TopStockOut(products []model.Product, transactions []model.Transaction, topN int) []StockOutTotal {
	if topN <= 0 {
		topN = DefaultTopN
	}

	sums := make(map[uuid.UUID]int64, len(products))
	for i := range products {
		sums[products[i].ID] = 0
	}
	for i := range transactions {
		tx := &transactions[i]
		if !isStockOut(tx.Action) {
			continue
		}
		if _, ok := sums[tx.ProductID]; !ok {
			continue
		}
		sums[tx.ProductID] += tx.Quantity
	}

	totals := []StockOutTotal{}
	for i := range products {
		p := &products[i]
		total := sums[p.ID]
		if total <= 0 {
			continue
		}
		totals = append(totals, StockOutTotal{
			ProductID: p.ID,
			Brand:     p.Brand,
			Barcode:   p.Barcode,
			Category:  p.Category,
			Total:     total,
		})
		// a product listed twice is counted once
		sums[p.ID] = 0
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total > totals[j].Total
	})
	if len(totals) > topN {
		totals = totals[:topN]
	}
	return totals
}

// StockMovement sums inbound (Stock In, Product Added) and outbound (Stock Out)
// quantities per calendar day in loc, one entry per day from..to inclusive.
func StockMovement(transactions []model.Transaction, from, to time.Time, loc *time.Location) []DailyMovement {
	if loc == nil {
		loc = time.UTC
	}
	start := truncateDay(from.In(loc))
	end := truncateDay(to.In(loc))
	if end.Before(start) {
		return []DailyMovement{}
	}

	days := []DailyMovement{}
	index := make(map[string]int)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		index[key] = len(days)
		days = append(days, DailyMovement{Date: key})
	}

	for i := range transactions {
		tx := &transactions[i]
		pos, ok := index[tx.CreatedAt.In(loc).Format("2006-01-02")]
		if !ok {
			continue
		}
		switch {
		case tx.Action == model.ActionStockIn || tx.Action == model.ActionProductAdded:
			days[pos].StockIn += tx.Quantity
		case isStockOut(tx.Action):
			days[pos].StockOut += tx.Quantity
		}
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
