package database

import (
	"fmt"

	"go-inventory-tracker/internal/model"

	"gorm.io/gorm"
)

// Migrate creates the relational schema. Inventory tables are skipped when the
// catalog lives in the document store.
func Migrate(db *gorm.DB, withInventory bool) error {
	models := []interface{}{&model.Privilege{}, &model.Role{}, &model.User{}}
	if withInventory {
		models = append(models, &model.Product{}, &model.Transaction{})
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Close releases the pool behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
