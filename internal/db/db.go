package db

import (
	"fmt"

	"noticeboard/internal/storage"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to Postgres and migrates the key-value table backing the posts collection.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("database connection established")

	// Auto Migrate
	if err := conn.AutoMigrate(&storage.Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info("database migration completed")

	return conn, nil
}
