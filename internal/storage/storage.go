package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

type Storage struct {
	db bob.DB
}

// NewStorage opens the connection pool with the configured driver: "postgres" uses
// lib/pq and "pgx" uses the pgx stdlib adapter.
func NewStorage(cfg *config.Config) (*Storage, error) {
	return Open(cfg.DatabaseDriver, cfg.ConnectionString())
}

// Open connects to dsn with the named database/sql driver.
func Open(driver, dsn string) (*Storage, error) {
	sqlDB, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	return &Storage{
		db: bob.NewDB(sqlDB),
	}, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Read returns a Reader over the pool. Reads never take row locks.
func (s *Storage) Read() *Reader {
	return NewReader(s.db)
}

// Write begins a unit of work. The caller must Commit or Rollback the returned Writer.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return NewWriter(tx), nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
