package sqlarrow

import (
	"reflect"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// ConfigBuilder stages settings for a Config. Setters store their argument
// verbatim and return the builder for chaining; only Build validates.
//
// A ConfigBuilder is not safe for concurrent use. It stays usable after
// Build, whether Build succeeded or not.
type ConfigBuilder struct {
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

// NewConfigBuilder returns a builder with every setting at its default.
// The allocator must be set before Build.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		targetBatchSize: DefaultTargetBatchSize,
	}
}

// NewConfigBuilderFor returns a builder with the allocator and location set.
func NewConfigBuilderFor(allocator memory.Allocator, loc *time.Location) *ConfigBuilder {
	return NewConfigBuilder().
		SetAllocator(allocator).
		SetLocation(loc)
}

// NewConfigBuilderWithMetadata is NewConfigBuilderFor with an explicit metadata flag.
func NewConfigBuilderWithMetadata(allocator memory.Allocator, loc *time.Location, includeMetadata bool) *ConfigBuilder {
	return NewConfigBuilderFor(allocator, loc).
		SetIncludeMetadata(includeMetadata)
}

// SetAllocator sets the allocator used by the conversion engine.
func (b *ConfigBuilder) SetAllocator(allocator memory.Allocator) *ConfigBuilder {
	b.allocator = allocator
	return b
}

// SetLocation sets the time zone used for temporal columns. Nil means the
// process local zone.
func (b *ConfigBuilder) SetLocation(loc *time.Location) *ConfigBuilder {
	b.location = loc
	return b
}

// SetIncludeMetadata controls whether column metadata is copied into the Arrow schema.
func (b *ConfigBuilder) SetIncludeMetadata(include bool) *ConfigBuilder {
	b.includeMetadata = include
	return b
}

// SetReuseOutputContainer controls whether one output container is reused across batches.
func (b *ConfigBuilder) SetReuseOutputContainer(reuse bool) *ConfigBuilder {
	b.reuseOutputContainer = reuse
	return b
}

// SetTargetBatchSize sets the rows per batch. Non-positive values are
// accepted here and rejected by Config.ResolveBatchSize.
func (b *ConfigBuilder) SetTargetBatchSize(size int) *ConfigBuilder {
	b.targetBatchSize = size
	return b
}

// SetArraySubTypeByColumnIndex sets element types of array columns by
// 1-based column index. A nil map clears them.
func (b *ConfigBuilder) SetArraySubTypeByColumnIndex(m map[int]FieldInfo) *ConfigBuilder {
	b.arraySubTypes.ByIndex = m
	return b
}

// SetArraySubTypeByColumnName sets element types of array columns by column name.
func (b *ConfigBuilder) SetArraySubTypeByColumnName(m map[string]FieldInfo) *ConfigBuilder {
	b.arraySubTypes.ByName = m
	return b
}

// SetExplicitTypesByColumnIndex sets forced column descriptors by 1-based column index.
func (b *ConfigBuilder) SetExplicitTypesByColumnIndex(m map[int]FieldInfo) *ConfigBuilder {
	b.explicitTypes.ByIndex = m
	return b
}

// SetExplicitTypesByColumnName sets forced column descriptors by column name.
func (b *ConfigBuilder) SetExplicitTypesByColumnName(m map[string]FieldInfo) *ConfigBuilder {
	b.explicitTypes.ByName = m
	return b
}

// SetTypeConverter sets the escape hatch converter. Nil removes it.
func (b *ConfigBuilder) SetTypeConverter(fn TypeConverter) *ConfigBuilder {
	b.typeConverter = fn
	return b
}

// SetRoundingMode sets the rounding rule for decimal scale reduction.
func (b *ConfigBuilder) SetRoundingMode(mode RoundingMode) *ConfigBuilder {
	b.roundingMode = mode
	return b
}

// Build validates the staged settings and returns an immutable Config.
func (b *ConfigBuilder) Build() (*Config, error) {
	if isNilAllocator(b.allocator) {
		return nil, &MissingFieldError{Field: "allocator"}
	}
	return &Config{
		allocator:            b.allocator,
		location:             b.location,
		includeMetadata:      b.includeMetadata,
		reuseOutputContainer: b.reuseOutputContainer,
		arraySubTypes:        b.arraySubTypes,
		explicitTypes:        b.explicitTypes,
		targetBatchSize:      b.targetBatchSize,
		typeConverter:        b.typeConverter,
		roundingMode:         b.roundingMode,
	}, nil
}

// isNilAllocator also catches typed nils such as a nil *memory.GoAllocator
// stored in the interface.
func isNilAllocator(a memory.Allocator) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
