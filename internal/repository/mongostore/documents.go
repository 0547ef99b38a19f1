package mongostore

import (
	"fmt"
	"time"

	"go-inventory-tracker/internal/model"

	"github.com/google/uuid"
)

type productDoc struct {
	ID          string    `bson:"_id"`
	Brand       string    `bson:"brand"`
	Barcode     int64     `bson:"barcode"`
	Description string    `bson:"description"`
	Category    string    `bson:"category"`
	Stocks      int64     `bson:"stocks"`
	IsDeleted   bool      `bson:"isDeleted"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
	CreatedBy   string    `bson:"createdBy"`
	UpdatedBy   string    `bson:"updatedBy"`
}

type transactionDoc struct {
	ID        string    `bson:"_id"`
	ProductID string    `bson:"productId"`
	Quantity  int64     `bson:"quantity"`
	Action    string    `bson:"action"`
	CreatedAt time.Time `bson:"createdAt"`
	CreatedBy string    `bson:"createdBy"`
}

func fromProduct(p *model.Product) productDoc {
	return productDoc{
		ID:          p.ID.String(),
		Brand:       p.Brand,
		Barcode:     p.Barcode,
		Description: p.Description,
		Category:    p.Category,
		Stocks:      p.Stocks,
		IsDeleted:   p.IsDeleted,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
	}
}

func (d productDoc) toModel() (model.Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.Product{}, fmt.Errorf("product %q: %w", d.ID, err)
	}
	p := model.Product{
		Brand:       d.Brand,
		Barcode:     d.Barcode,
		Description: d.Description,
		Category:    d.Category,
		Stocks:      d.Stocks,
		IsDeleted:   d.IsDeleted,
	}
	p.ID = id
	p.CreatedAt = d.CreatedAt
	p.UpdatedAt = d.UpdatedAt
	p.CreatedBy = d.CreatedBy
	p.UpdatedBy = d.UpdatedBy
	return p, nil
}

func fromTransaction(t *model.Transaction) transactionDoc {
	return transactionDoc{
		ID:        t.ID.String(),
		ProductID: t.ProductID.String(),
		Quantity:  t.Quantity,
		Action:    string(t.Action),
		CreatedAt: t.CreatedAt,
		CreatedBy: t.CreatedBy,
	}
}

func (d transactionDoc) toModel() (model.Transaction, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %q: %w", d.ID, err)
	}
	productID, err := uuid.Parse(d.ProductID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %q product: %w", d.ID, err)
	}
	return model.Transaction{
		ID:        id,
		ProductID: productID,
		Quantity:  d.Quantity,
		Action:    model.Action(d.Action),
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}, nil
}
