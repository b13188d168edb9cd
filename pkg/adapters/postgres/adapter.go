// Package postgres provides a PostgreSQL database adapter backed by pgx.
//
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/mathias-mike/arrow/pkg/adapters/postgres"
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mathias-mike/arrow/pkg/adapter"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
)

// Params holds connection settings used when no DSN is given.
type Params struct {
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Database   string `mapstructure:"database"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	SSLMode    string `mapstructure:"sslmode"`
	SearchPath string `mapstructure:"search_path"`
}

// typeNames covers PostgreSQL types the common table does not know.
var typeNames = sqlarrow.TypeNames{
	"JSON":    sqlarrow.VarChar,
	"JSONB":   sqlarrow.VarChar,
	"UUID":    sqlarrow.VarChar,
	"CITEXT":  sqlarrow.VarChar,
	"INET":    sqlarrow.VarChar,
	"CIDR":    sqlarrow.VarChar,
	"MACADDR": sqlarrow.VarChar,
	"OID":     sqlarrow.BigInt,
	"XID":     sqlarrow.BigInt,
	"VARBIT":  sqlarrow.VarBinary,
}

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, Names: typeNames},
	}
}

// Connect establishes a connection to PostgreSQL. cfg.DSN accepts both URL
// and key=value forms; when empty the DSN is built from cfg.Params.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := cfg.DSN
	if dsn == "" {
		var params Params
		if err := adapter.DecodeParams(cfg.Params, &params); err != nil {
			return err
		}
		dsn = buildPostgresDSN(params)
	}

	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("invalid postgres dsn: %w", err)
	}
	a.Logger.Debug("connecting to postgres",
		slog.String("host", connCfg.Host),
		slog.String("database", connCfg.Database))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildPostgresDSN constructs a key=value connection string.
func buildPostgresDSN(p Params) string {
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port == 0 {
		port = 5432
	}
	sslmode := p.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	parts := []string{
		"host=" + quoteValue(host),
		fmt.Sprintf("port=%d", port),
	}
	if p.Database != "" {
		parts = append(parts, "dbname="+quoteValue(p.Database))
	}
	parts = append(parts, "sslmode="+quoteValue(sslmode))
	if p.User != "" {
		parts = append(parts, "user="+quoteValue(p.User))
	}
	if p.Password != "" {
		parts = append(parts, "password="+quoteValue(p.Password))
	}
	if p.SearchPath != "" {
		parts = append(parts, "search_path="+quoteValue(p.SearchPath))
	}
	return strings.Join(parts, " ")
}

// quoteValue quotes a key=value DSN value when it contains spaces or quotes.
func quoteValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
