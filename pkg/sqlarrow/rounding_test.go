package sqlarrow

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundingMode_Rescale(t *testing.T) {
	// Values are unscaled integers at scale 2, rescaled to scale 0.
	tests := []struct {
		value int64
		mode  RoundingMode
		want  int64
	}{
		{250, RoundUp, 3},
		{-250, RoundUp, -3},
		{259, RoundDown, 2},
		{-259, RoundDown, -2},
		{201, RoundCeiling, 3},
		{-201, RoundCeiling, -2},
		{299, RoundFloor, 2},
		{-201, RoundFloor, -3},
		{250, RoundHalfUp, 3},
		{249, RoundHalfUp, 2},
		{-250, RoundHalfUp, -3},
		{250, RoundHalfDown, 2},
		{251, RoundHalfDown, 3},
		{-251, RoundHalfDown, -3},
		{250, RoundHalfEven, 2},
		{350, RoundHalfEven, 4},
		{-350, RoundHalfEven, -4},
		{351, RoundHalfEven, 4},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			got, err := tt.mode.Rescale(decimal128.FromI64(tt.value), 2, 0)
			require.NoError(t, err)
			assert.Equal(t, decimal128.FromI64(tt.want), got, "%d at scale 2 with %s", tt.value, tt.mode)
		})
	}
}

func TestRoundingMode_RescaleExact(t *testing.T) {
	for _, mode := range []RoundingMode{RoundingUnset, RoundUnnecessary, RoundHalfEven} {
		got, err := mode.Rescale(decimal128.FromI64(1200), 2, 0)
		require.NoError(t, err)
		assert.Equal(t, decimal128.FromI64(12), got)

		got, err = mode.Rescale(decimal128.FromI64(12), 0, 3)
		require.NoError(t, err)
		assert.Equal(t, decimal128.FromI64(12000), got)
	}
}

func TestRoundingMode_RescalePrecisionLoss(t *testing.T) {
	for _, mode := range []RoundingMode{RoundingUnset, RoundUnnecessary} {
		_, err := mode.Rescale(decimal128.FromI64(1234), 2, 1)
		assert.ErrorIs(t, err, ErrPrecisionLoss)
		assert.Contains(t, err.Error(), "12.34")
	}

	_, err := RoundHalfUp.Rescale(decimal128.FromI64(1), 0, 40)
	assert.Error(t, err)
}

func TestConfig_RescaleDecimal(t *testing.T) {
	strict, err := newBuilder().Build()
	require.NoError(t, err)
	_, err = strict.RescaleDecimal(decimal128.FromI64(105), 1, 0)
	assert.ErrorIs(t, err, ErrPrecisionLoss)

	rounding, err := NewConfigBuilder().
		SetAllocator(memory.NewGoAllocator()).
		SetRoundingMode(RoundHalfUp).
		Build()
	require.NoError(t, err)
	got, err := rounding.RescaleDecimal(decimal128.FromI64(105), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, decimal128.FromI64(11), got)
}

func TestParseRoundingMode(t *testing.T) {
	tests := []struct {
		input string
		want  RoundingMode
		ok    bool
	}{
		{"", RoundingUnset, true},
		{"unset", RoundingUnset, true},
		{"HALF_EVEN", RoundHalfEven, true},
		{"half-up", RoundHalfUp, true},
		{"ceiling", RoundCeiling, true},
		{"unnecessary", RoundUnnecessary, true},
		{"bankers", RoundingUnset, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseRoundingMode(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "half_even", RoundHalfEven.String())
	assert.Equal(t, "unset", RoundingUnset.String())
	assert.Equal(t, "unknown", RoundingMode(99).String())
}
