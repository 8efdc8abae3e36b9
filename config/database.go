package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// inMemoryDSN is used when SKIP_DB is set; nothing survives a restart
const inMemoryDSN = "file::memory:?cache=shared"

// ConnectDatabase opens the document store described by cfg.
// Postgres URLs use the postgres driver; anything else is treated as a SQLite DSN.
func ConnectDatabase(cfg *Config, logger zerolog.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}

	if cfg.SkipDB {
		logger.Warn().Msg("SKIP_DB is set, using a throwaway in-memory store (use a real database in production)")
		db, err := gorm.Open(sqlite.Open(inMemoryDSN), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open in-memory database: %w", err)
		}
		return db, singleConnection(db)
	}

	dsn := cfg.DatabaseURL
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info().Str("driver", "postgres").Msg("Database connection established successfully")
		return db, nil
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	logger.Info().Str("driver", "sqlite").Str("dsn", dsn).Msg("Database connection established successfully")
	return db, singleConnection(db)
}

// singleConnection pins SQLite to one connection so writes never race on the file lock
func singleConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	return nil
}

// Ping verifies the store is reachable
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
