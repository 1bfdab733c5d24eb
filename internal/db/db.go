// Package db owns the database connection and schema management. The
// returned handle is passed down into services; nothing here is a package
// global.
package db

import (
	"errors"
	"fmt"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/didasmbalanya/Quotation-invoice-system/internal/config"
	"github.com/didasmbalanya/Quotation-invoice-system/internal/models"
)

const (
	connectRetries = 10
	retryDelay     = 2 * time.Second
)

// Connect opens the postgres connection and brings the schema up to date.
// With MIGRATIONS enabled the SQL files under ./migrations run via
// golang-migrate; otherwise, outside production, gorm AutoMigrate syncs the
// two tables directly.
func Connect(cfg config.Config, log *zap.Logger) (*gorm.DB, error) {
	dsn := BuildDSN(cfg)

	logLevel := logger.Silent
	if cfg.DBDebug {
		logLevel = logger.Info
	}
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	}

	var conn *gorm.DB
	var err error
	for i := 0; i < connectRetries; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), gormCfg)
		if err == nil {
			break
		}
		log.Warn("db connection failed, retrying", zap.Int("attempt", i+1), zap.Error(err))
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database after %d retries: %w", connectRetries, err)
	}
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping: %w", pingErr)
	}
	log.Info("db connected", zap.String("dsn", MaskDSN(dsn)))

	if cfg.Migrations {
		if err := runSQLMigrations(ToURLDSN(dsn)); err != nil {
			return nil, fmt.Errorf("sql migrations: %w", err)
		}
	} else if !cfg.Production() {
		if err := conn.AutoMigrate(&models.Quotation{}, &models.Invoice{}); err != nil {
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}

	for _, table := range []string{"quotations", "invoices"} {
		if !conn.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	return conn, nil
}

func runSQLMigrations(urlDSN string) error {
	m, err := migrate.New("file://migrations", urlDSN)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
