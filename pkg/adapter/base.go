package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/mathias-mike/arrow/pkg/sqlarrow"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close and Describe implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
	Names  sqlarrow.TypeNames
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// TypeNames returns the adapter's type name table.
func (b *BaseSQLAdapter) TypeNames() sqlarrow.TypeNames {
	return b.Names
}

// Describe runs the query and converts its column types to descriptors.
// The cursor is closed before any row is read.
func (b *BaseSQLAdapter) Describe(ctx context.Context, query string) ([]sqlarrow.FieldInfo, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	rows, err := b.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types: %w", err)
	}

	fields := make([]sqlarrow.FieldInfo, len(columnTypes))
	for i, ct := range columnTypes {
		fields[i] = ColumnFieldInfo(i+1, ct, b.Names)
		if b.Logger != nil {
			b.Logger.Debug("described column",
				slog.Int("index", fields[i].Index),
				slog.String("name", fields[i].Name),
				slog.String("database_type", fields[i].TypeName),
				slog.String("native_type", fields[i].Type.String()))
		}
	}
	return fields, nil
}

// ColumnFieldInfo converts a database/sql column type at the given 1-based
// index to a descriptor. The database type name is resolved through names
// and sqlarrow.CommonTypeNames; when the driver reports no usable name the
// Go scan type decides.
func ColumnFieldInfo(index int, ct *sql.ColumnType, names sqlarrow.TypeNames) sqlarrow.FieldInfo {
	info, ok := sqlarrow.ParseTypeName(ct.DatabaseTypeName(), names)
	if !ok {
		info.Type = nativeTypeForScanType(ct.ScanType())
	}
	info.Index = index
	info.Name = ct.Name()
	info.TypeName = ct.DatabaseTypeName()

	if precision, scale, ok := ct.DecimalSize(); ok {
		info.Precision = int32(precision)
		info.Scale = int32(scale)
	}
	if nullable, ok := ct.Nullable(); ok {
		if nullable {
			info.Nullability = sqlarrow.NullabilityNullable
		} else {
			info.Nullability = sqlarrow.NullabilityNoNulls
		}
	}
	return info
}

var scanTypes = map[reflect.Type]sqlarrow.NativeType{
	reflect.TypeOf(time.Time{}):       sqlarrow.Timestamp,
	reflect.TypeOf([]byte(nil)):       sqlarrow.VarBinary,
	reflect.TypeOf(sql.RawBytes(nil)): sqlarrow.VarBinary,
	reflect.TypeOf(sql.NullBool{}):    sqlarrow.Boolean,
	reflect.TypeOf(sql.NullByte{}):    sqlarrow.SmallInt,
	reflect.TypeOf(sql.NullInt16{}):   sqlarrow.SmallInt,
	reflect.TypeOf(sql.NullInt32{}):   sqlarrow.Integer,
	reflect.TypeOf(sql.NullInt64{}):   sqlarrow.BigInt,
	reflect.TypeOf(sql.NullFloat64{}): sqlarrow.Double,
	reflect.TypeOf(sql.NullString{}):  sqlarrow.VarChar,
	reflect.TypeOf(sql.NullTime{}):    sqlarrow.Timestamp,
}

func nativeTypeForScanType(t reflect.Type) sqlarrow.NativeType {
	if t == nil {
		return sqlarrow.Other
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if native, ok := scanTypes[t]; ok {
		return native
	}
	switch t.Kind() {
	case reflect.Bool:
		return sqlarrow.Boolean
	case reflect.Int8:
		return sqlarrow.TinyInt
	case reflect.Int16, reflect.Uint8:
		return sqlarrow.SmallInt
	case reflect.Int32, reflect.Uint16:
		return sqlarrow.Integer
	case reflect.Int, reflect.Int64, reflect.Uint32:
		return sqlarrow.BigInt
	case reflect.Float32:
		return sqlarrow.Real
	case reflect.Float64:
		return sqlarrow.Double
	case reflect.String:
		return sqlarrow.VarChar
	default:
		return sqlarrow.Other
	}
}
