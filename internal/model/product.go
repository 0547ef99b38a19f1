package model

const (
	// MaxStock bounds stock quantities so increments can never overflow
	MaxStock int64 = 2147483647

	// LowStockThreshold is the highest stock level still reported as low stock
	LowStockThreshold int64 = 10
)

// Product is a tracked inventory item. Archived products keep IsDeleted=true and are never removed.
type Product struct {
	BaseModel
	Brand       string `gorm:"type:varchar(50);not null" json:"brand"`
	Barcode     int64  `gorm:"uniqueIndex;not null" json:"barcode"`
	Description string `gorm:"type:varchar(500)" json:"description"`
	Category    string `gorm:"type:varchar(50);not null;index" json:"category"`
	Stocks      int64  `gorm:"not null;default:0;check:chk_products_stocks,stocks >= 0" json:"stocks"`
	IsDeleted   bool   `gorm:"not null;default:false;index" json:"isDeleted"`
}

// StockState is the dashboard classification of a stock level
type StockState string

const (
	StateInStock    StockState = "in_stock"
	StateLowStock   StockState = "low_stock"
	StateOutOfStock StockState = "out_of_stock"
)

// State classifies the product by its current stock level
func (p *Product) State() StockState {
	switch {
	case p.Stocks == 0:
		return StateOutOfStock
	case p.Stocks <= LowStockThreshold:
		return StateLowStock
	default:
		return StateInStock
	}
}
