// db/db.go
package db

import (
	"fmt"

	"github.com/spf13/viper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"

	logger "github.com/nmhung1294/INT3505E-02-demo/logging"
	"github.com/nmhung1294/INT3505E-02-demo/model"
)

var DB *gorm.DB

func InitDB() error {
	path := viper.GetString("database.path")

	database, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gorm_logger.Default.LogMode(gorm_logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.AutoMigrate(
		&model.User{},
		&model.BookTitle{},
		&model.BookCopy{},
		&model.Borrowing{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	DB = database
	logger.Info("Successfully connected to database")
	return nil
}

func CloseDB() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection")
	}
}
