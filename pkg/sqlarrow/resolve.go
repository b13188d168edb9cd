package sqlarrow

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
)

// ResolveTargetType determines the Arrow type of a column.
//
// Precedence:
//  1. The TypeConverter, when configured, decides alone; its result and error are returned as is.
//  2. An explicit override keyed by the column's 1-based index.
//  3. An explicit override keyed by the column's name.
//  4. The column's own descriptor.
//
// Steps 2-4 select the descriptor that DefaultArrowType maps. Array columns
// become lists of ResolveArraySubType's result.
func (c *Config) ResolveTargetType(field FieldInfo) (arrow.DataType, error) {
	if c.typeConverter != nil {
		return c.typeConverter(field)
	}
	info := c.ResolveFieldInfo(field)
	if info.Type == Array {
		elem, err := c.elementType(field, info)
		if err != nil {
			return nil, err
		}
		return arrow.ListOf(elem), nil
	}
	return DefaultArrowType(info, c.location)
}

// ResolveFieldInfo returns the explicit override for the column, or the
// column itself when there is none.
func (c *Config) ResolveFieldInfo(field FieldInfo) FieldInfo {
	if info, ok := c.explicitTypes.Lookup(field); ok {
		return info
	}
	return field
}

// ResolveArraySubType determines the element type of an array column from
// the array sub-type overrides (index first, then name), falling back to
// inference from the type name. A column is an array when its descriptor,
// after explicit overrides, is one; this keeps it in step with
// ResolveTargetType. The TypeConverter is not consulted.
func (c *Config) ResolveArraySubType(field FieldInfo) (arrow.DataType, error) {
	info := c.ResolveFieldInfo(field)
	if info.Type != Array {
		return nil, fmt.Errorf("%w: column %d has type %s", ErrNotArray, field.Index, info.Type)
	}
	return c.elementType(field, info)
}

// elementType looks overrides up by the identity of column and infers from
// the type name of info, which differs from column when an explicit
// override replaced the descriptor.
func (c *Config) elementType(column, info FieldInfo) (arrow.DataType, error) {
	if sub, ok := c.arraySubTypes.Lookup(column); ok {
		return DefaultArrowType(sub, c.location)
	}
	elem, ok := InferElementType(info.TypeName)
	if !ok {
		return nil, fmt.Errorf("%w: column %d (%q)", ErrNoArraySubType, column.Index, column.Name)
	}
	return DefaultArrowType(elem, c.location)
}
