package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Action is the fixed vocabulary of transaction log entries
type Action string

const (
	ActionProductAdded    Action = "Product Added"
	ActionStockIn         Action = "Stock In"
	ActionStockOut        Action = "Stock Out"
	ActionProductUpdate   Action = "Product Update"
	ActionProductArchived Action = "Product Archived"
	ActionProductRestored Action = "Product Restored"
)

var Actions = []Action{
	ActionProductAdded,
	ActionStockIn,
	ActionStockOut,
	ActionProductUpdate,
	ActionProductArchived,
	ActionProductRestored,
}

// ParseStockAction accepts "Stock In"/"Stock Out" and the short "in"/"out" forms, case-insensitively
func ParseStockAction(s string) (Action, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stock in", "in":
		return ActionStockIn, true
	case "stock out", "out":
		return ActionStockOut, true
	}
	return "", false
}

// Transaction is an immutable log entry. Product is a reference resolved at read time.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"productId"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	Action    Action    `gorm:"type:varchar(30);not null;index" json:"action"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	CreatedBy string    `gorm:"type:varchar(255)" json:"createdBy"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// NotAvailable is shown for fields of a product that no longer resolves
const NotAvailable = "N/A"

// ProductSnapshot is the current state of the referenced product at read time
type ProductSnapshot struct {
	ID          uuid.UUID `json:"id"`
	Brand       string    `json:"brand"`
	Barcode     int64     `json:"barcode"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Stocks      int64     `json:"stocks"`
	IsDeleted   bool      `json:"isDeleted"`
	Resolved    bool      `json:"resolved"`
}

// TransactionView is a transaction with its product reference resolved for display
type TransactionView struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Product   ProductSnapshot `json:"product"`
	Quantity  int64           `json:"quantity"`
	Action    Action          `json:"action"`
	CreatedAt time.Time       `json:"createdAt"`
	CreatedBy string          `json:"createdBy"`
}

// View resolves the transaction against p, which may be nil for a dangling reference
func (t *Transaction) View(p *Product) TransactionView {
	view := TransactionView{
		ID:        t.ID,
		ProductID: t.ProductID,
		Quantity:  t.Quantity,
		Action:    t.Action,
		CreatedAt: t.CreatedAt,
		CreatedBy: t.CreatedBy,
	}
	if p == nil {
		view.Product = ProductSnapshot{
			ID:          t.ProductID,
			Brand:       NotAvailable,
			Description: NotAvailable,
			Category:    NotAvailable,
		}
		return view
	}
	view.Product = ProductSnapshot{
		ID:          p.ID,
		Brand:       p.Brand,
		Barcode:     p.Barcode,
		Description: p.Description,
		Category:    p.Category,
		Stocks:      p.Stocks,
		IsDeleted:   p.IsDeleted,
		Resolved:    true,
	}
	return view
}
