package sqlarrow

import (
	"strconv"
	"strings"
)

// =============================================================================
// NativeType
// =============================================================================

// NativeType identifies the source type of a column.
// Values follow the SQL type codes of java.sql.Types so that type tags
// exchanged with other SQL tooling keep their meaning.
type NativeType int32

// Native type codes.
const (
	Bit                   NativeType = -7
	TinyInt               NativeType = -6
	SmallInt              NativeType = 5
	Integer               NativeType = 4
	BigInt                NativeType = -5
	Float                 NativeType = 6
	Real                  NativeType = 7
	Double                NativeType = 8
	Numeric               NativeType = 2
	Decimal               NativeType = 3
	Char                  NativeType = 1
	VarChar               NativeType = 12
	LongVarChar           NativeType = -1
	Date                  NativeType = 91
	Time                  NativeType = 92
	Timestamp             NativeType = 93
	Binary                NativeType = -2
	VarBinary             NativeType = -3
	LongVarBinary         NativeType = -4
	Null                  NativeType = 0
	Other                 NativeType = 1111
	JavaObject            NativeType = 2000
	Distinct              NativeType = 2001
	Struct                NativeType = 2002
	Array                 NativeType = 2003
	Blob                  NativeType = 2004
	Clob                  NativeType = 2005
	Ref                   NativeType = 2006
	DataLink              NativeType = 70
	Boolean               NativeType = 16
	RowID                 NativeType = -8
	NChar                 NativeType = -15
	NVarChar              NativeType = -9
	LongNVarChar          NativeType = -16
	NClob                 NativeType = 2011
	SQLXML                NativeType = 2009
	RefCursor             NativeType = 2012
	TimeWithTimezone      NativeType = 2013
	TimestampWithTimezone NativeType = 2014
)

var nativeTypeNames = map[NativeType]string{
	Bit:                   "BIT",
	TinyInt:               "TINYINT",
	SmallInt:              "SMALLINT",
	Integer:               "INTEGER",
	BigInt:                "BIGINT",
	Float:                 "FLOAT",
	Real:                  "REAL",
	Double:                "DOUBLE",
	Numeric:               "NUMERIC",
	Decimal:               "DECIMAL",
	Char:                  "CHAR",
	VarChar:               "VARCHAR",
	LongVarChar:           "LONGVARCHAR",
	Date:                  "DATE",
	Time:                  "TIME",
	Timestamp:             "TIMESTAMP",
	Binary:                "BINARY",
	VarBinary:             "VARBINARY",
	LongVarBinary:         "LONGVARBINARY",
	Null:                  "NULL",
	Other:                 "OTHER",
	JavaObject:            "JAVA_OBJECT",
	Distinct:              "DISTINCT",
	Struct:                "STRUCT",
	Array:                 "ARRAY",
	Blob:                  "BLOB",
	Clob:                  "CLOB",
	Ref:                   "REF",
	DataLink:              "DATALINK",
	Boolean:               "BOOLEAN",
	RowID:                 "ROWID",
	NChar:                 "NCHAR",
	NVarChar:              "NVARCHAR",
	LongNVarChar:          "LONGNVARCHAR",
	NClob:                 "NCLOB",
	SQLXML:                "SQLXML",
	RefCursor:             "REF_CURSOR",
	TimeWithTimezone:      "TIME_WITH_TIMEZONE",
	TimestampWithTimezone: "TIMESTAMP_WITH_TIMEZONE",
}

// String returns the canonical upper-case name of the type code.
func (t NativeType) String() string {
	if name, ok := nativeTypeNames[t]; ok {
		return name
	}
	return "NativeType(" + strconv.Itoa(int(t)) + ")"
}

// ParseNativeType converts a canonical type name (case-insensitive) or a
// numeric type code to a NativeType.
func ParseNativeType(s string) (NativeType, bool) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for t, n := range nativeTypeNames {
		if n == name {
			return t, true
		}
	}
	if code, err := strconv.Atoi(name); err == nil {
		if _, ok := nativeTypeNames[NativeType(code)]; ok {
			return NativeType(code), true
		}
	}
	return Null, false
}

// =============================================================================
// Nullability
// =============================================================================

// Nullability reports whether a column may contain NULL values.
type Nullability int

// Nullability values. The zero value means the driver did not say.
const (
	NullabilityUnknown Nullability = iota
	NullabilityNullable
	NullabilityNoNulls
)

// String returns the string representation of the nullability.
func (n Nullability) String() string {
	switch n {
	case NullabilityNullable:
		return "nullable"
	case NullabilityNoNulls:
		return "no_nulls"
	default:
		return "unknown"
	}
}

// =============================================================================
// FieldInfo
// =============================================================================

// FieldInfo describes one source column of a result set.
//
// Index is 1-based to match the positional numbering of SQL result sets.
// Name is not guaranteed to be unique and may be empty. A zero Precision
// means the driver did not report a decimal size.
type FieldInfo struct {
	Index       int
	Name        string
	Type        NativeType
	TypeName    string
	Precision   int32
	Scale       int32
	Nullability Nullability
}

// HasDecimalSize reports whether precision information is available.
func (f FieldInfo) HasDecimalSize() bool {
	return f.Precision > 0
}
