// Package sqlite provides a pure-Go SQLite database adapter.
//
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/mathias-mike/arrow/pkg/adapters/sqlite"
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mathias-mike/arrow/pkg/adapter"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"

	_ "modernc.org/sqlite" // sqlite driver
)

// typeNames follows SQLite affinity: integer and real storage classes are
// always 64-bit.
var typeNames = sqlarrow.TypeNames{
	"INT":     sqlarrow.BigInt,
	"INTEGER": sqlarrow.BigInt,
	"REAL":    sqlarrow.Double,
	"FLOAT":   sqlarrow.Double,
	"DOUBLE":  sqlarrow.Double,
	"TEXT":    sqlarrow.VarChar,
	"BLOB":    sqlarrow.Blob,
}

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, Names: typeNames},
	}
}

// Connect opens the database file named by cfg.DSN.
// An empty DSN opens an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = ":memory:"
	}
	a.Logger.Debug("connecting to sqlite", slog.String("path", dsn))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite connection: %w", err)
	}
	// Every connection to :memory: is a separate database.
	if isMemory(dsn) {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

func isMemory(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
