// Package db contains things related to SQLite
package db

import (
	"fmt"

	"sharepile/file-api/internal/model"

	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func New() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(viper.GetString("db.path")))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.File{}, model.ShareLink{}, model.AccessRecord{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
