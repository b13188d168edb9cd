package sqlarrow

import (
	"fmt"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// DefaultTargetBatchSize is the number of rows per record batch used when
// no batch size is configured.
const DefaultTargetBatchSize = 1024

// TypeConverter maps a column descriptor straight to an Arrow type.
// When configured it replaces every other resolution rule for top-level
// columns. It must be safe for concurrent use if the Config is shared.
type TypeConverter func(field FieldInfo) (arrow.DataType, error)

// Config is the immutable set of policies a conversion engine applies to
// every result set of a session. Build one with a ConfigBuilder.
//
// A Config is safe for concurrent use as long as its TypeConverter is.
type Config struct {
	allocator            memory.Allocator
	location             *time.Location
	includeMetadata      bool
	reuseOutputContainer bool
	arraySubTypes        TypeOverrides
	explicitTypes        TypeOverrides
	targetBatchSize      int
	typeConverter        TypeConverter
	roundingMode         RoundingMode
}

// NewConfig builds a Config from an allocator and an optional location
// with every other setting at its default.
func NewConfig(allocator memory.Allocator, loc *time.Location) (*Config, error) {
	return NewConfigBuilderFor(allocator, loc).Build()
}

// NewConfigWithMetadata is NewConfig with an explicit metadata flag.
func NewConfigWithMetadata(allocator memory.Allocator, loc *time.Location, includeMetadata bool) (*Config, error) {
	return NewConfigBuilderWithMetadata(allocator, loc, includeMetadata).Build()
}

// Allocator returns the allocator the engine builds output buffers with.
// The Config holds it but never allocates from it.
func (c *Config) Allocator() memory.Allocator {
	return c.allocator
}

// Location returns the configured time zone, or nil when none was set.
func (c *Config) Location() *time.Location {
	return c.location
}

// EffectiveLocation returns the configured time zone, falling back to the
// process local zone.
func (c *Config) EffectiveLocation() *time.Location {
	if c.location == nil {
		return time.Local
	}
	return c.location
}

// IncludeMetadata reports whether column metadata is copied into the Arrow schema.
func (c *Config) IncludeMetadata() bool {
	return c.includeMetadata
}

// ReuseOutputContainer reports whether the engine may reuse one output
// record container across batches.
func (c *Config) ReuseOutputContainer() bool {
	return c.reuseOutputContainer
}

// TargetBatchSize returns the configured rows per batch as set, without validation.
func (c *Config) TargetBatchSize() int {
	return c.targetBatchSize
}

// ResolveBatchSize returns the target batch size for consumers that batch,
// rejecting non-positive values.
func (c *Config) ResolveBatchSize() (int, error) {
	if c.targetBatchSize <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidBatchSize, c.targetBatchSize)
	}
	return c.targetBatchSize, nil
}

// ArraySubTypeOverrides returns the element type overrides for array columns.
func (c *Config) ArraySubTypeOverrides() TypeOverrides {
	return c.arraySubTypes
}

// ExplicitTypeOverrides returns the column type overrides.
func (c *Config) ExplicitTypeOverrides() TypeOverrides {
	return c.explicitTypes
}

// ArraySubTypeByColumnIndex returns the element override for a 1-based column index.
func (c *Config) ArraySubTypeByColumnIndex(index int) (FieldInfo, bool) {
	info, ok := c.arraySubTypes.ByIndex[index]
	return info, ok
}

// ArraySubTypeByColumnName returns the element override for a column name.
func (c *Config) ArraySubTypeByColumnName(name string) (FieldInfo, bool) {
	info, ok := c.arraySubTypes.ByName[name]
	return info, ok
}

// ExplicitTypeByColumnIndex returns the type override for a 1-based column index.
func (c *Config) ExplicitTypeByColumnIndex(index int) (FieldInfo, bool) {
	info, ok := c.explicitTypes.ByIndex[index]
	return info, ok
}

// ExplicitTypeByColumnName returns the type override for a column name.
func (c *Config) ExplicitTypeByColumnName(name string) (FieldInfo, bool) {
	info, ok := c.explicitTypes.ByName[name]
	return info, ok
}

// TypeConverter returns the escape hatch converter, or nil.
func (c *Config) TypeConverter() TypeConverter {
	return c.typeConverter
}

// RoundingMode returns the decimal rounding mode; RoundingUnset when none was set.
func (c *Config) RoundingMode() RoundingMode {
	return c.roundingMode
}

// RescaleDecimal changes the scale of a decimal value using the configured
// rounding mode. Without a rounding mode, dropping non-zero digits fails
// with ErrPrecisionLoss.
func (c *Config) RescaleDecimal(n decimal128.Num, fromScale, toScale int32) (decimal128.Num, error) {
	return c.roundingMode.Rescale(n, fromScale, toScale)
}
