// Package persistence implements the domain repositories on GORM.
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is an open Postgres pool. DB is handed to the repositories.
type Database struct {
	DB  *gorm.DB
	sql *sql.DB
}

// NewDatabase opens the pool with GORM logging silenced
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	return NewDatabaseWithLogger(cfg, logger.Default.LogMode(logger.Silent))
}

// NewDatabaseWithLogger opens the pool described by cfg, sizes it and pings
// it once. Statements are prepared and cached per connection.
func NewDatabaseWithLogger(cfg *config.DatabaseConfig, gormLogger logger.Interface) (*Database, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	d, err := wrap(gdb)
	if err != nil {
		return nil, err
	}
	d.sizePool(cfg)

	if err := d.sql.Ping(); err != nil {
		_ = d.sql.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return d, nil
}

func wrap(gdb *gorm.DB) (*Database, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	return &Database{DB: gdb, sql: sqlDB}, nil
}

func (d *Database) sizePool(cfg *config.DatabaseConfig) {
	d.sql.SetMaxOpenConns(cfg.MaxOpenConns)
	d.sql.SetMaxIdleConns(cfg.MaxIdleConns)
	d.sql.SetConnMaxLifetime(minutes(cfg.ConnMaxLifetime))
	d.sql.SetConnMaxIdleTime(minutes(cfg.ConnMaxIdleTime))
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

// Ping reports whether the pool can reach the server. Backs GET /ready.
func (d *Database) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

// Stats is a snapshot of the pool counters
func (d *Database) Stats() sql.DBStats {
	return d.sql.Stats()
}

// Close releases every pooled connection
func (d *Database) Close() error {
	return d.sql.Close()
}
