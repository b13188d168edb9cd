package duckdb

import "github.com/mathias-mike/arrow/pkg/sqlarrow"

// Params holds DuckDB-specific configuration.
// Parsed from adapter.Config.Params using mapstructure.
type Params struct {
	// Extensions to install and load before describing (e.g. "json", "spatial").
	Extensions []string `mapstructure:"extensions"`

	// Settings applied with SET after connecting (e.g. threads, memory_limit).
	Settings map[string]string `mapstructure:"settings"`
}

// typeNames maps DuckDB logical type names that CommonTypeNames lacks or
// sizes differently. Unsigned integers widen to the next signed type and
// 128-bit integers become decimals.
var typeNames = sqlarrow.TypeNames{
	"FLOAT":        sqlarrow.Real,
	"UTINYINT":     sqlarrow.SmallInt,
	"USMALLINT":    sqlarrow.Integer,
	"UINTEGER":     sqlarrow.BigInt,
	"UBIGINT":      sqlarrow.Numeric,
	"HUGEINT":      sqlarrow.Numeric,
	"UHUGEINT":     sqlarrow.Numeric,
	"TIMESTAMP_S":  sqlarrow.Timestamp,
	"TIMESTAMP_MS": sqlarrow.Timestamp,
	"TIMESTAMP_NS": sqlarrow.Timestamp,
	"UUID":         sqlarrow.VarChar,
	"JSON":         sqlarrow.VarChar,
	"ENUM":         sqlarrow.VarChar,
	"BLOB":         sqlarrow.Blob,
}
