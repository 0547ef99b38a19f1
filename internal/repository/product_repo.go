package repository

import (
	"context"
	"time"

	"go-inventory-tracker/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return translateError(r.db.WithContext(ctx).Create(product).Error, "product")
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "product")
	}
	return &product, nil
}

func (r *productRepo) FindByBarcode(ctx context.Context, barcode int64) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "barcode = ?", barcode).Error; err != nil {
		return nil, translateError(err, "product")
	}
	return &product, nil
}

func (r *productRepo) FindAll(ctx context.Context, archived bool) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", archived).
		Order("created_at DESC").
		Find(&products).Error
	return products, translateError(err, "product")
}

func (r *productRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	products := []model.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, translateError(err, "product")
}

func (r *productRepo) UpdateDetails(ctx context.Context, id uuid.UUID, expectedStocks int64, changes ProductChanges) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stocks = ? AND is_deleted = ?", id, expectedStocks, false).
		Updates(map[string]interface{}{
			"brand":       changes.Brand,
			"description": changes.Description,
			"category":    changes.Category,
			"stocks":      changes.Stocks,
			"updated_by":  changes.UpdatedBy,
			"updated_at":  changes.UpdatedAt,
		})
	if result.Error != nil {
		return false, translateError(result.Error, "product")
	}
	return result.RowsAffected == 1, nil
}

// AdjustStock is a single conditional UPDATE so concurrent stock-outs can never drive stocks below zero
func (r *productRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int64, updatedBy string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Where("stocks >= ? AND stocks <= ?", -delta, model.MaxStock-delta).
		Updates(map[string]interface{}{
			"stocks":     gorm.Expr("stocks + ?", delta),
			"updated_by": updatedBy,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, translateError(result.Error, "product")
	}
	return result.RowsAffected == 1, nil
}

func (r *productRepo) SetArchived(ctx context.Context, id uuid.UUID, archived bool, updatedBy string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND is_deleted = ?", id, !archived).
		Updates(map[string]interface{}{
			"is_deleted": archived,
			"updated_by": updatedBy,
			"updated_at": at,
		})
	if result.Error != nil {
		return false, translateError(result.Error, "product")
	}
	return result.RowsAffected == 1, nil
}
