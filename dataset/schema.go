package dataset

import "github.com/arloliu/dta/format"

// Variable describes one column of the dataset.
type Variable struct {
	// Index is the column position in every record.
	Index int
	// Type is the on-disk column type.
	Type format.ColumnType
	// Name is the variable name.
	Name string
	// SortOrder is the stored sort list entry for this position.
	SortOrder int16
	// Format is the display format, e.g. "%9.0g".
	Format string
	// ValueLabel names the value label table attached to the variable, if any.
	ValueLabel string
	// Label is the variable label, if any.
	Label string
}

// String returns the variable name.
func (v Variable) String() string {
	return v.Name
}
