package repository

import (
	"context"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(ctx context.Context, tx *model.Transaction) error {
	return translateError(r.db.WithContext(ctx).Omit("Product").Create(tx).Error, "transaction")
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	// Preload leaves Product nil when the referenced row is gone
	err := r.db.WithContext(ctx).Preload("Product").Order("created_at DESC").Find(&transactions).Error
	return transactions, translateError(err, "transaction")
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var transaction model.Transaction
	if err := r.db.WithContext(ctx).Preload("Product").First(&transaction, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "transaction")
	}
	return &transaction, nil
}

func (r *transactionRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.Transaction, error) {
	transactions := []model.Transaction{}
	err := r.db.WithContext(ctx).Preload("Product").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, translateError(err, "transaction")
}

func (r *transactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return translateError(result.Error, "transaction")
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("transaction not found")
	}
	return nil
}

func (r *transactionRepo) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Transaction{})
	return result.RowsAffected, translateError(result.Error, "transaction")
}
