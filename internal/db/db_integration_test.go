//go:build integration
// +build integration

package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"creme-menu/internal/config"
)

func Test_Open_With_PostgresContainer(t *testing.T) {
	ctx := context.Background()

	// 启动 PostgreSQL 容器，添加等待策略
	pg, err := postgres.RunContainer(ctx,
		postgres.WithDatabase("app"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithSQLDriver("pgx"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	host, err := pg.Host(ctx)
	if err != nil {
		t.Fatalf("get container host: %v", err)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("get container port: %v", err)
	}

	cfg := &config.Config{}
	cfg.DB.Driver = "postgres"
	cfg.DB.URL = fmt.Sprintf("postgres://postgres:postgres@%s:%s/app?sslmode=disable", host, port.Port())
	cfg.DB.MaxOpenConns = 5
	cfg.DB.MaxIdleConns = 2

	drv, closeFn, err := Open(cfg)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer closeFn()

	ctx2, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// 运行数据库模式迁移
	if err := Migrate(ctx2, drv); err != nil {
		t.Fatalf("create schema: %v", err)
	}

	b := entsql.Dialect(dialect.Postgres)
	query, args := b.Insert(MenuConfigItemsTableName).
		Columns(ColumnEntryID, ColumnOrder, ColumnName).
		Values("creme_core-creme", 0, "").
		Returning(ColumnID).
		Query()
	rows := &entsql.Rows{}
	if err := drv.Query(ctx2, query, args, rows); err != nil {
		t.Fatalf("insert record: %v", err)
	}
	id, err := entsql.ScanInt(rows)
	_ = rows.Close()
	if err != nil {
		t.Fatalf("scan id: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected a generated id, got %d", id)
	}

	query, args = b.Select(entsql.Count("*")).From(b.Table(MenuConfigItemsTableName)).Query()
	rows = &entsql.Rows{}
	if err := drv.Query(ctx2, query, args, rows); err != nil {
		t.Fatalf("count records: %v", err)
	}
	count, err := entsql.ScanInt(rows)
	_ = rows.Close()
	if err != nil {
		t.Fatalf("scan count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 record, got %d", count)
	}
}
