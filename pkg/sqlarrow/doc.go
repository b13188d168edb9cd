// Package sqlarrow defines the policy surface for converting database/sql
// result sets into Apache Arrow columnar data.
//
// This package contains:
//   - Column descriptors (FieldInfo, NativeType, Nullability)
//   - Type override maps keyed by 1-based column index and by column name
//   - The immutable Config and its ConfigBuilder
//   - Target type resolution (escape hatch, overrides, default mapping)
//   - Decimal rounding rules used when a value's scale must be reduced
//
// The package never allocates from the configured allocator, never iterates
// rows and never encodes values. Those belong to the conversion engine that
// consumes a Config.
package sqlarrow
