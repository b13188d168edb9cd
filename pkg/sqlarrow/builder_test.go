package sqlarrow

import (
	"errors"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RequiresAllocator(t *testing.T) {
	tests := []struct {
		name  string
		build func() *ConfigBuilder
	}{
		{
			name:  "never set",
			build: NewConfigBuilder,
		},
		{
			name: "explicitly nil",
			build: func() *ConfigBuilder {
				return NewConfigBuilder().SetAllocator(nil)
			},
		},
		{
			name: "every other field set",
			build: func() *ConfigBuilder {
				return NewConfigBuilder().
					SetLocation(time.UTC).
					SetIncludeMetadata(true).
					SetReuseOutputContainer(true).
					SetTargetBatchSize(10).
					SetArraySubTypeByColumnIndex(map[int]FieldInfo{1: {Type: Integer}}).
					SetArraySubTypeByColumnName(map[string]FieldInfo{"a": {Type: Integer}}).
					SetExplicitTypesByColumnIndex(map[int]FieldInfo{1: {Type: BigInt}}).
					SetExplicitTypesByColumnName(map[string]FieldInfo{"a": {Type: BigInt}}).
					SetTypeConverter(func(FieldInfo) (arrow.DataType, error) { return arrow.Null, nil }).
					SetRoundingMode(RoundHalfUp)
			},
		},
		{
			name: "typed nil",
			build: func() *ConfigBuilder {
				var alloc *memory.GoAllocator
				return NewConfigBuilder().SetAllocator(alloc)
			},
		},
		{
			name: "typed nil checked allocator",
			build: func() *ConfigBuilder {
				var alloc *memory.CheckedAllocator
				return NewConfigBuilderFor(alloc, time.UTC)
			},
		},
		{
			name: "sugar constructor with nil allocator",
			build: func() *ConfigBuilder {
				return NewConfigBuilderWithMetadata(nil, time.UTC, true)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.build().Build()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.True(t, errors.Is(err, ErrMissingRequiredField))

			var missing *MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, "allocator", missing.Field)
			assert.Contains(t, err.Error(), "allocator required")
		})
	}
}

func TestBuild_BuilderReusableAfterFailure(t *testing.T) {
	b := NewConfigBuilder().SetIncludeMetadata(true)

	_, err := b.Build()
	require.ErrorIs(t, err, ErrMissingRequiredField)

	alloc := memory.NewGoAllocator()
	cfg, err := b.SetAllocator(alloc).Build()
	require.NoError(t, err)
	assert.Same(t, alloc, cfg.Allocator())
	assert.True(t, cfg.IncludeMetadata())

	again, err := b.SetIncludeMetadata(false).Build()
	require.NoError(t, err)
	assert.False(t, again.IncludeMetadata())
	assert.True(t, cfg.IncludeMetadata(), "built config must not see later builder changes")
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := NewConfigBuilder().SetAllocator(memory.NewGoAllocator()).Build()
	require.NoError(t, err)

	assert.Nil(t, cfg.Location())
	assert.Equal(t, time.Local, cfg.EffectiveLocation())
	assert.False(t, cfg.IncludeMetadata())
	assert.False(t, cfg.ReuseOutputContainer())
	assert.Equal(t, DefaultTargetBatchSize, cfg.TargetBatchSize())
	assert.Equal(t, 1024, cfg.TargetBatchSize())
	assert.True(t, cfg.ArraySubTypeOverrides().IsEmpty())
	assert.True(t, cfg.ExplicitTypeOverrides().IsEmpty())
	assert.Nil(t, cfg.TypeConverter())
	assert.Equal(t, RoundingUnset, cfg.RoundingMode())
}

func TestSugarConstructorsMatchSetterChain(t *testing.T) {
	alloc := memory.NewGoAllocator()
	locations := []struct {
		name string
		loc  *time.Location
	}{
		{"no location", nil},
		{"utc", time.UTC},
		{"fixed zone", time.FixedZone("UTC+3", 3*60*60)},
	}

	for _, tt := range locations {
		t.Run(tt.name, func(t *testing.T) {
			chained, err := NewConfigBuilder().
				SetAllocator(alloc).
				SetLocation(tt.loc).
				Build()
			require.NoError(t, err)

			fromBuilder, err := NewConfigBuilderFor(alloc, tt.loc).Build()
			require.NoError(t, err)
			assert.Equal(t, chained, fromBuilder)

			direct, err := NewConfig(alloc, tt.loc)
			require.NoError(t, err)
			assert.Equal(t, chained, direct)

			for _, include := range []bool{false, true} {
				chainedMeta, err := NewConfigBuilder().
					SetAllocator(alloc).
					SetLocation(tt.loc).
					SetIncludeMetadata(include).
					Build()
				require.NoError(t, err)

				metaBuilder, err := NewConfigBuilderWithMetadata(alloc, tt.loc, include).Build()
				require.NoError(t, err)
				assert.Equal(t, chainedMeta, metaBuilder)

				metaDirect, err := NewConfigWithMetadata(alloc, tt.loc, include)
				require.NoError(t, err)
				assert.Equal(t, chainedMeta, metaDirect)
			}
		})
	}
}

func TestTargetBatchSize_ValidatedLazily(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{name: "default", size: DefaultTargetBatchSize},
		{name: "one", size: 1},
		{name: "zero", size: 0, wantErr: true},
		{name: "negative", size: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigBuilder().
				SetAllocator(memory.NewGoAllocator()).
				SetTargetBatchSize(tt.size).
				Build()
			require.NoError(t, err, "builder must accept any batch size")
			assert.Equal(t, tt.size, cfg.TargetBatchSize())

			got, err := cfg.ResolveBatchSize()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBatchSize)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.size, got)
		})
	}
}

func TestBuild_OverridesHeldByReference(t *testing.T) {
	byName := map[string]FieldInfo{}
	cfg, err := NewConfigBuilder().
		SetAllocator(memory.NewGoAllocator()).
		SetExplicitTypesByColumnName(byName).
		Build()
	require.NoError(t, err)

	_, ok := cfg.ExplicitTypeByColumnName("id")
	assert.False(t, ok)

	byName["id"] = FieldInfo{Type: BigInt}
	info, ok := cfg.ExplicitTypeByColumnName("id")
	assert.True(t, ok)
	assert.Equal(t, BigInt, info.Type)
}

func TestBuild_Accessors(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	arrayByIndex := map[int]FieldInfo{2: {Type: Integer}}
	arrayByName := map[string]FieldInfo{"tags": {Type: VarChar}}
	explicitByIndex := map[int]FieldInfo{1: {Type: BigInt}}
	explicitByName := map[string]FieldInfo{"amount": {Type: Decimal, Precision: 10, Scale: 2}}

	cfg, err := NewConfigBuilder().
		SetAllocator(memory.NewGoAllocator()).
		SetLocation(loc).
		SetReuseOutputContainer(true).
		SetArraySubTypeByColumnIndex(arrayByIndex).
		SetArraySubTypeByColumnName(arrayByName).
		SetExplicitTypesByColumnIndex(explicitByIndex).
		SetExplicitTypesByColumnName(explicitByName).
		SetRoundingMode(RoundHalfEven).
		Build()
	require.NoError(t, err)

	assert.Equal(t, loc, cfg.Location())
	assert.Equal(t, loc, cfg.EffectiveLocation())
	assert.True(t, cfg.ReuseOutputContainer())
	assert.Equal(t, RoundHalfEven, cfg.RoundingMode())

	info, ok := cfg.ArraySubTypeByColumnIndex(2)
	assert.True(t, ok)
	assert.Equal(t, Integer, info.Type)
	info, ok = cfg.ArraySubTypeByColumnName("tags")
	assert.True(t, ok)
	assert.Equal(t, VarChar, info.Type)
	info, ok = cfg.ExplicitTypeByColumnIndex(1)
	assert.True(t, ok)
	assert.Equal(t, BigInt, info.Type)
	info, ok = cfg.ExplicitTypeByColumnName("amount")
	assert.True(t, ok)
	assert.Equal(t, int32(10), info.Precision)

	_, ok = cfg.ExplicitTypeByColumnIndex(7)
	assert.False(t, ok)
	_, ok = cfg.ArraySubTypeByColumnName("missing")
	assert.False(t, ok)
}
