package sqlarrow

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to match them; typed errors below
// report Is() against the matching sentinel.
var (
	// ErrMissingRequiredField is returned by Build when a required setting was never provided.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidBatchSize is returned when a non-positive target batch size reaches a consumer.
	ErrInvalidBatchSize = errors.New("target batch size must be positive")

	// ErrPrecisionLoss is returned when a decimal rescale would drop digits and no rounding mode allows it.
	ErrPrecisionLoss = errors.New("decimal rescale loses precision")

	// ErrUnsupportedType is returned when no Arrow type exists for a native type.
	ErrUnsupportedType = errors.New("unsupported native type")

	// ErrNotArray is returned when an array element type is requested for a non-array column.
	ErrNotArray = errors.New("column is not an array")

	// ErrNoArraySubType is returned when the element type of an array column cannot be determined.
	ErrNoArraySubType = errors.New("no array sub-type configured or inferable")
)

// MissingFieldError reports a required builder field that was never set.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s required", e.Field)
}

// Is matches ErrMissingRequiredField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingRequiredField
}

// UnsupportedTypeError reports a native type with no Arrow counterpart.
type UnsupportedTypeError struct {
	Type     NativeType
	TypeName string
}

func (e *UnsupportedTypeError) Error() string {
	if e.TypeName != "" {
		return fmt.Sprintf("unsupported native type %s (%s)", e.Type, e.TypeName)
	}
	return fmt.Sprintf("unsupported native type %s", e.Type)
}

// Is matches ErrUnsupportedType.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}
