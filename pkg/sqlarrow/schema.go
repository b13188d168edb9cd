package sqlarrow

import (
	"fmt"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
)

// Metadata keys written to Arrow fields when metadata is included.
const (
	MetaKeyColumnName       = "sql.column_name"
	MetaKeyDatabaseTypeName = "sql.database_type_name"
	MetaKeyType             = "sql.type"
	MetaKeyPrecision        = "sql.precision"
	MetaKeyScale            = "sql.scale"
)

// Schema builds the Arrow schema for a result set described by fields,
// one Arrow field per column in the given order.
func (c *Config) Schema(fields []FieldInfo) (*arrow.Schema, error) {
	out := make([]arrow.Field, 0, len(fields))
	for _, f := range fields {
		dt, err := c.ResolveTargetType(f)
		if err != nil {
			return nil, fmt.Errorf("column %d (%q): %w", f.Index, f.Name, err)
		}
		af := arrow.Field{
			Name:     f.Name,
			Type:     dt,
			Nullable: f.Nullability != NullabilityNoNulls,
		}
		if c.includeMetadata {
			af.Metadata = FieldMetadata(f)
		}
		out = append(out, af)
	}
	return arrow.NewSchema(out, nil), nil
}

// FieldMetadata describes the source column as Arrow field metadata.
func FieldMetadata(f FieldInfo) arrow.Metadata {
	m := map[string]string{
		MetaKeyColumnName: f.Name,
		MetaKeyType:       f.Type.String(),
	}
	if f.TypeName != "" {
		m[MetaKeyDatabaseTypeName] = f.TypeName
	}
	if f.HasDecimalSize() {
		m[MetaKeyPrecision] = strconv.Itoa(int(f.Precision))
		m[MetaKeyScale] = strconv.Itoa(int(f.Scale))
	}
	return arrow.MetadataFrom(m)
}
