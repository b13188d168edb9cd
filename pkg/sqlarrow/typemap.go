package sqlarrow

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
)

// DefaultDecimalPrecision is used for decimal columns whose driver does not
// report a precision.
const DefaultDecimalPrecision = 38

const (
	maxDecimal128Precision = 38
	maxDecimal256Precision = 76
)

// DefaultArrowType is the built-in mapping from a column descriptor to an
// Arrow type. Timestamps carry the zone of loc; a nil loc leaves plain
// timestamps zone-less. Array columns map to lists whose element type is
// inferred from the descriptor's TypeName.
func DefaultArrowType(field FieldInfo, loc *time.Location) (arrow.DataType, error) {
	switch field.Type {
	case Boolean, Bit:
		return arrow.FixedWidthTypes.Boolean, nil
	case TinyInt:
		return arrow.PrimitiveTypes.Int8, nil
	case SmallInt:
		return arrow.PrimitiveTypes.Int16, nil
	case Integer:
		return arrow.PrimitiveTypes.Int32, nil
	case BigInt:
		return arrow.PrimitiveTypes.Int64, nil
	case Numeric, Decimal:
		return decimalType(field)
	case Real, Float:
		return arrow.PrimitiveTypes.Float32, nil
	case Double:
		return arrow.PrimitiveTypes.Float64, nil
	case Char, NChar, VarChar, NVarChar, LongVarChar, LongNVarChar, Clob, NClob, SQLXML:
		return arrow.BinaryTypes.String, nil
	case Date:
		return arrow.FixedWidthTypes.Date32, nil
	case Time, TimeWithTimezone:
		return arrow.FixedWidthTypes.Time32ms, nil
	case Timestamp:
		ts := &arrow.TimestampType{Unit: arrow.Millisecond}
		if loc != nil {
			ts.TimeZone = loc.String()
		}
		return ts, nil
	case TimestampWithTimezone:
		ts := &arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"}
		if loc != nil {
			ts.TimeZone = loc.String()
		}
		return ts, nil
	case Binary, VarBinary, LongVarBinary, Blob:
		return arrow.BinaryTypes.Binary, nil
	case Null:
		return arrow.Null, nil
	case Array:
		elem, ok := InferElementType(field.TypeName)
		if !ok {
			return nil, ErrNoArraySubType
		}
		elemType, err := DefaultArrowType(elem, loc)
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(elemType), nil
	default:
		return nil, &UnsupportedTypeError{Type: field.Type, TypeName: field.TypeName}
	}
}

func decimalType(field FieldInfo) (arrow.DataType, error) {
	precision := field.Precision
	if precision <= 0 {
		precision = DefaultDecimalPrecision
	}
	if precision > maxDecimal256Precision {
		return nil, fmt.Errorf("%w: precision %d exceeds %d",
			&UnsupportedTypeError{Type: field.Type, TypeName: field.TypeName}, precision, maxDecimal256Precision)
	}
	if precision > maxDecimal128Precision {
		return &arrow.Decimal256Type{Precision: precision, Scale: field.Scale}, nil
	}
	return &arrow.Decimal128Type{Precision: precision, Scale: field.Scale}, nil
}

// =============================================================================
// Type names
// =============================================================================

// TypeNames maps upper-case database type names, without size arguments,
// to native types.
type TypeNames map[string]NativeType

// CommonTypeNames covers the type names reported by the common drivers.
// Driver-specific tables passed to ParseTypeName take precedence.
var CommonTypeNames = TypeNames{
	"BIT":                         Bit,
	"BOOL":                        Boolean,
	"BOOLEAN":                     Boolean,
	"TINYINT":                     TinyInt,
	"INT1":                        TinyInt,
	"SMALLINT":                    SmallInt,
	"INT2":                        SmallInt,
	"INT":                         Integer,
	"INTEGER":                     Integer,
	"INT4":                        Integer,
	"MEDIUMINT":                   Integer,
	"BIGINT":                      BigInt,
	"INT8":                        BigInt,
	"REAL":                        Real,
	"FLOAT4":                      Real,
	"FLOAT":                       Float,
	"DOUBLE":                      Double,
	"DOUBLE PRECISION":            Double,
	"FLOAT8":                      Double,
	"NUMERIC":                     Numeric,
	"DECIMAL":                     Decimal,
	"CHAR":                        Char,
	"CHARACTER":                   Char,
	"BPCHAR":                      Char,
	"NCHAR":                       NChar,
	"VARCHAR":                     VarChar,
	"CHARACTER VARYING":           VarChar,
	"NVARCHAR":                    NVarChar,
	"TEXT":                        LongVarChar,
	"STRING":                      VarChar,
	"NAME":                        VarChar,
	"CLOB":                        Clob,
	"NCLOB":                       NClob,
	"XML":                         SQLXML,
	"DATE":                        Date,
	"TIME":                        Time,
	"TIMETZ":                      TimeWithTimezone,
	"TIME WITH TIME ZONE":         TimeWithTimezone,
	"TIMESTAMP":                   Timestamp,
	"DATETIME":                    Timestamp,
	"TIMESTAMP WITHOUT TIME ZONE": Timestamp,
	"TIMESTAMPTZ":                 TimestampWithTimezone,
	"TIMESTAMP WITH TIME ZONE":    TimestampWithTimezone,
	"BINARY":                      Binary,
	"VARBINARY":                   VarBinary,
	"BYTEA":                       LongVarBinary,
	"BLOB":                        Blob,
	"NULL":                        Null,
}

// ParseTypeName converts a database type name such as "DECIMAL(10,2)",
// "int4" or "INTEGER[]" into a descriptor carrying Type, TypeName and,
// for decimals, Precision and Scale. Tables are consulted in order before
// CommonTypeNames.
func ParseTypeName(name string, tables ...TypeNames) (FieldInfo, bool) {
	info := FieldInfo{TypeName: name}
	upper := strings.ToUpper(strings.TrimSpace(name))
	if upper == "" {
		return info, false
	}
	if isArrayTypeName(upper) {
		info.Type = Array
		return info, true
	}

	base, args := splitTypeArgs(upper)
	t, ok := lookupTypeName(base, tables)
	if !ok {
		return info, false
	}
	info.Type = t
	if (t == Decimal || t == Numeric) && len(args) > 0 {
		if p, err := strconv.ParseInt(args[0], 10, 32); err == nil {
			info.Precision = int32(p)
		}
		if len(args) > 1 {
			if s, err := strconv.ParseInt(args[1], 10, 32); err == nil {
				info.Scale = int32(s)
			}
		}
	}
	return info, true
}

// InferElementType derives the element descriptor of an array type name:
// "INTEGER[]" and the PostgreSQL form "_int4" are understood.
func InferElementType(typeName string, tables ...TypeNames) (FieldInfo, bool) {
	upper := strings.ToUpper(strings.TrimSpace(typeName))
	var elem string
	switch {
	case strings.HasSuffix(upper, "[]"):
		elem = strings.TrimSuffix(upper, "[]")
	case strings.HasPrefix(upper, "_"):
		elem = strings.TrimPrefix(upper, "_")
	default:
		return FieldInfo{}, false
	}
	return ParseTypeName(elem, tables...)
}

func isArrayTypeName(upper string) bool {
	return upper == "ARRAY" || strings.HasSuffix(upper, "[]") || strings.HasPrefix(upper, "_")
}

func splitTypeArgs(upper string) (string, []string) {
	open := strings.IndexByte(upper, '(')
	if open < 0 {
		return upper, nil
	}
	base := strings.TrimSpace(upper[:open])
	rest := upper[open+1:]
	if end := strings.IndexByte(rest, ')'); end >= 0 {
		rest = rest[:end]
	}
	parts := strings.Split(rest, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return base, parts
}

func lookupTypeName(base string, tables []TypeNames) (NativeType, bool) {
	for _, table := range tables {
		if t, ok := table[base]; ok {
			return t, true
		}
	}
	t, ok := CommonTypeNames[base]
	return t, ok
}
