package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"

	"foodgram/internal/domain"
)

// Connect opens PostgreSQL for postgres:// DSNs and falls back to the pure-Go
// SQLite driver for everything else (local development and tests).
func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Warn)},
	)
}

// Migrate creates or updates the schema for every domain entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Ingredient{},
		&domain.Tag{},
		&domain.Recipe{},
		&domain.RecipeIngredient{},
		&domain.Favorite{},
		&domain.ShoppingCart{},
		&domain.Follow{},
	)
}
