// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	_ "modernc.org/sqlite" // sqlite driver
)

// SetupTestDatabase creates a SQLite database file holding an orders table
// and returns its path.
func SetupTestDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "shop.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer func() { _ = db.Close() }()

	stmts := []string{
		`CREATE TABLE orders (
			id INTEGER NOT NULL,
			customer TEXT,
			amount DECIMAL(12, 2),
			placed DATETIME
		)`,
		`INSERT INTO orders VALUES (1, 'Alice', 10.50, '2024-01-02 03:04:05')`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(context.Background(), stmt); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}
	return path
}

// Output captures stdout and stderr of a command run.
type Output struct {
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// Execute runs cmd with args and captured output.
func Execute(cmd *cobra.Command, args ...string) (*Output, error) {
	out := &Output{Out: &bytes.Buffer{}, ErrOut: &bytes.Buffer{}}
	cmd.SetOut(out.Out)
	cmd.SetErr(out.ErrOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out, err
}
