// Package db provides database connection and schema migration
package db

import (
	"database/sql"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx driver for PostgreSQL
	_ "modernc.org/sqlite"             // register sqlite driver

	"creme-menu/internal/config"
	"creme-menu/internal/logx"
)

var dbLogger = logx.GetScope("db")

var baseDB *sql.DB

// Open opens the configured database and returns an ent SQL driver.
func Open(cfg *config.Config) (*entsql.Driver, func(), error) {
	driverName, dialectName, err := driverFor(cfg.DB.Driver)
	if err != nil {
		return nil, func() {}, err
	}
	sqldb, err := sql.Open(driverName, cfg.DB.URL)
	if err != nil {
		return nil, func() {}, err
	}
	sqldb.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	baseDB = sqldb

	drv := entsql.OpenDB(dialectName, sqldb)
	closer := func() {
		baseDB = nil
		if err := drv.Close(); err != nil {
			dbLogger.Sugar().Errorf("close db: %v", err)
		}
	}
	return drv, closer, nil
}

func driverFor(name string) (driverName, dialectName string, err error) {
	switch name {
	case "", "postgres", "pgx":
		return "pgx", dialect.Postgres, nil
	case "sqlite", "sqlite3":
		return "sqlite", dialect.SQLite, nil
	default:
		return "", "", fmt.Errorf("unsupported DB_DRIVER %q", name)
	}
}

// UpdatePool updates DB pool settings at runtime.
func UpdatePool(maxOpen, maxIdle int) {
	if baseDB == nil {
		return
	}
	if maxOpen > 0 {
		baseDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle >= 0 {
		baseDB.SetMaxIdleConns(maxIdle)
	}
}
