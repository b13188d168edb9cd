// Package adapter provides the database adapter contract used to describe
// query result sets as sqlarrow column descriptors.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves from init().
package adapter

import (
	"context"

	"github.com/mathias-mike/arrow/pkg/sqlarrow"
)

// Config holds configuration for connecting to a database.
type Config struct {
	// Type selects the registered adapter (sqlite, postgres, duckdb).
	Type string
	// DSN is passed to the driver as is. File-based adapters treat an empty
	// DSN as an in-memory database.
	DSN string
	// Params holds adapter-specific settings.
	Params map[string]any
}

// Adapter defines the interface that all database adapters must implement.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Describe runs a query and reports one descriptor per result column,
	// without reading any row.
	Describe(ctx context.Context, query string) ([]sqlarrow.FieldInfo, error)

	// TypeNames returns the driver-specific type name table, consulted
	// before sqlarrow.CommonTypeNames.
	TypeNames() sqlarrow.TypeNames
}
