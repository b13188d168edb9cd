package sqlarrow

// TypeOverrides forces the descriptor used for a column, keyed either by
// the column's 1-based index or by its exact (case-sensitive) name.
//
// Both maps may be nil. The maps are held by reference; callers must not
// mutate them once they have been handed to a ConfigBuilder.
type TypeOverrides struct {
	ByIndex map[int]FieldInfo
	ByName  map[string]FieldInfo
}

// Lookup returns the override for the column, trying the index first and
// the name second.
func (o TypeOverrides) Lookup(field FieldInfo) (FieldInfo, bool) {
	if info, ok := o.ByIndex[field.Index]; ok {
		return info, true
	}
	if info, ok := o.ByName[field.Name]; ok {
		return info, true
	}
	return FieldInfo{}, false
}

// IsEmpty reports whether no override of either kind is configured.
func (o TypeOverrides) IsEmpty() bool {
	return len(o.ByIndex) == 0 && len(o.ByName) == 0
}
