package sqlarrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaColumns = []FieldInfo{
	{Index: 1, Name: "id", Type: BigInt, TypeName: "INT8", Nullability: NullabilityNoNulls},
	{Index: 2, Name: "amount", Type: Numeric, TypeName: "NUMERIC", Precision: 12, Scale: 2, Nullability: NullabilityNullable},
	{Index: 3, Name: "tags", Type: Array, TypeName: "_text"},
	{Index: 4, Name: "id", Type: VarChar, TypeName: "TEXT"},
}

func TestSchema(t *testing.T) {
	cfg, err := newBuilder().Build()
	require.NoError(t, err)

	schema, err := cfg.Schema(schemaColumns)
	require.NoError(t, err)
	require.Equal(t, 4, schema.NumFields())

	want := []arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64, Nullable: false},
		{Name: "amount", Type: &arrow.Decimal128Type{Precision: 12, Scale: 2}, Nullable: true},
		{Name: "tags", Type: arrow.ListOf(arrow.BinaryTypes.String), Nullable: true},
		{Name: "id", Type: arrow.BinaryTypes.String, Nullable: true},
	}
	for i, f := range schema.Fields() {
		assert.Equal(t, want[i].Name, f.Name)
		assert.Equal(t, want[i].Nullable, f.Nullable, f.Name)
		assertType(t, want[i].Type, f.Type)
		assert.Equal(t, 0, f.Metadata.Len(), "metadata must be off by default")
	}
}

func TestSchema_IncludeMetadata(t *testing.T) {
	cfg, err := newBuilder().SetIncludeMetadata(true).Build()
	require.NoError(t, err)

	schema, err := cfg.Schema(schemaColumns[:2])
	require.NoError(t, err)

	id := schema.Field(0).Metadata
	v, ok := id.GetValue(MetaKeyColumnName)
	assert.True(t, ok)
	assert.Equal(t, "id", v)
	v, _ = id.GetValue(MetaKeyDatabaseTypeName)
	assert.Equal(t, "INT8", v)
	v, _ = id.GetValue(MetaKeyType)
	assert.Equal(t, "BIGINT", v)
	_, ok = id.GetValue(MetaKeyPrecision)
	assert.False(t, ok)

	amount := schema.Field(1).Metadata
	v, _ = amount.GetValue(MetaKeyPrecision)
	assert.Equal(t, "12", v)
	v, _ = amount.GetValue(MetaKeyScale)
	assert.Equal(t, "2", v)
}

func TestSchema_ErrorNamesColumn(t *testing.T) {
	cfg, err := newBuilder().Build()
	require.NoError(t, err)

	_, err = cfg.Schema([]FieldInfo{
		{Index: 1, Name: "ok", Type: Integer},
		{Index: 2, Name: "shape", Type: Other, TypeName: "GEOMETRY"},
	})
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), `column 2 ("shape")`)
}

func TestSchema_Empty(t *testing.T) {
	cfg, err := newBuilder().Build()
	require.NoError(t, err)

	schema, err := cfg.Schema(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, schema.NumFields())
}
