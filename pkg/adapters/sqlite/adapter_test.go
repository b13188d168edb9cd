package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/mathias-mike/arrow/internal/testutil"
	"github.com/mathias-mike/arrow/pkg/adapter"
	"github.com/mathias-mike/arrow/pkg/sqlarrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connect(t *testing.T, dsn string) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), adapter.Config{Type: "sqlite", DSN: dsn}))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestAdapter_Connect(t *testing.T) {
	t.Run("in-memory", func(t *testing.T) {
		adp := connect(t, "")
		assert.True(t, adp.IsConnected())
	})

	t.Run("file-based", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.db")
		adp := connect(t, path)
		_, err := adp.DB.ExecContext(context.Background(), "CREATE TABLE t (x INTEGER)")
		require.NoError(t, err)

		_, err = os.Stat(path)
		assert.NoError(t, err, "database file was not created")
	})
}

func createOrders(t *testing.T, adp *Adapter) {
	t.Helper()
	_, err := adp.DB.ExecContext(context.Background(), `CREATE TABLE orders (
		id INTEGER NOT NULL,
		customer TEXT,
		total REAL,
		amount DECIMAL(12, 2),
		receipt BLOB,
		placed DATETIME,
		shipped BOOLEAN
	)`)
	require.NoError(t, err)
}

func TestAdapter_Describe(t *testing.T) {
	adp := connect(t, "")
	createOrders(t, adp)

	fields, err := adp.Describe(context.Background(), "SELECT * FROM orders")
	require.NoError(t, err)
	require.Len(t, fields, 7)

	want := []struct {
		name   string
		native sqlarrow.NativeType
	}{
		{"id", sqlarrow.BigInt},
		{"customer", sqlarrow.VarChar},
		{"total", sqlarrow.Double},
		{"amount", sqlarrow.Decimal},
		{"receipt", sqlarrow.Blob},
		{"placed", sqlarrow.Timestamp},
		{"shipped", sqlarrow.Boolean},
	}
	for i, w := range want {
		assert.Equal(t, i+1, fields[i].Index)
		assert.Equal(t, w.name, fields[i].Name)
		assert.Equal(t, w.native, fields[i].Type, "column %s (%s)", w.name, fields[i].TypeName)
	}
	assert.Equal(t, int32(12), fields[3].Precision)
	assert.Equal(t, int32(2), fields[3].Scale)
}

func TestAdapter_SchemaWithOverrides(t *testing.T) {
	adp := connect(t, "")
	createOrders(t, adp)

	fields, err := adp.Describe(context.Background(), "SELECT id, customer, total, amount, placed FROM orders")
	require.NoError(t, err)

	utc := time.UTC
	cfg, err := sqlarrow.NewConfigBuilderFor(testutil.NewCheckedAllocator(t), utc).
		SetIncludeMetadata(true).
		SetExplicitTypesByColumnIndex(map[int]sqlarrow.FieldInfo{3: {Type: sqlarrow.Real}}).
		SetExplicitTypesByColumnName(map[string]sqlarrow.FieldInfo{"id": {Type: sqlarrow.Integer}}).
		Build()
	require.NoError(t, err)

	schema, err := cfg.Schema(fields)
	require.NoError(t, err)

	wantTypes := []arrow.DataType{
		arrow.PrimitiveTypes.Int32,
		arrow.BinaryTypes.String,
		arrow.PrimitiveTypes.Float32,
		&arrow.Decimal128Type{Precision: 12, Scale: 2},
		&arrow.TimestampType{Unit: arrow.Millisecond, TimeZone: "UTC"},
	}
	for i, want := range wantTypes {
		got := schema.Field(i).Type
		assert.True(t, arrow.TypeEqual(want, got), "field %d: want %s, got %s", i, want, got)
	}

	v, ok := schema.Field(0).Metadata.GetValue(sqlarrow.MetaKeyDatabaseTypeName)
	require.True(t, ok)
	assert.Equal(t, "INTEGER", v)
}

func TestAdapter_DescribeInvalidQuery(t *testing.T) {
	adp := connect(t, "")

	_, err := adp.Describe(context.Background(), "SELECT * FROM missing_table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to execute query")
}
