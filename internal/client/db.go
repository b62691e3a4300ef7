package client

import (
	"fmt"

	"novapanel/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitSqliteClient opens the order store at the given path and migrates the
// schema. The store is a single local file; every mutation goes through it.
func InitSqliteClient(storePath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(storePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open order store: %w", err)
	}

	if err := db.AutoMigrate(&model.Order{}); err != nil {
		return nil, fmt.Errorf("migrate order store: %w", err)
	}

	return db, nil
}
