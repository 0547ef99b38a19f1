package repository

import (
	"context"
	"errors"

	"go-inventory-tracker/internal/model"

	"gorm.io/gorm"
)

type PrivilegeRepository interface {
	FindByCodes(ctx context.Context, codes []string) ([]model.Privilege, error)
	FindAll(ctx context.Context) ([]model.Privilege, error)
	SeedDefaults(ctx context.Context) error
}

type privilegeRepo struct {
	db *gorm.DB
}

func NewPrivilegeRepo(db *gorm.DB) PrivilegeRepository {
	return &privilegeRepo{db}
}

func (r *privilegeRepo) FindByCodes(ctx context.Context, codes []string) ([]model.Privilege, error) {
	privileges := []model.Privilege{}
	if len(codes) == 0 {
		return privileges, nil
	}
	err := r.db.WithContext(ctx).Where("code IN ?", codes).Order("id").Find(&privileges).Error
	return privileges, translateError(err, "privilege")
}

func (r *privilegeRepo) FindAll(ctx context.Context) ([]model.Privilege, error) {
	privileges := []model.Privilege{}
	err := r.db.WithContext(ctx).Order("id").Find(&privileges).Error
	return privileges, translateError(err, "privilege")
}

// SeedDefaults creates default privileges if they don't exist
func (r *privilegeRepo) SeedDefaults(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, p := range model.DefaultPrivileges {
		var existing model.Privilege
		err := db.Where("code = ?", p.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			privilege := p
			if err := db.Create(&privilege).Error; err != nil {
				return translateError(err, "privilege")
			}
		} else if err != nil {
			return translateError(err, "privilege")
		}
	}
	return nil
}
