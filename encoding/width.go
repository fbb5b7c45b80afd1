package encoding

import (
	"github.com/arloliu/dta/endian"
	"github.com/arloliu/dta/format"
)

// WidthResolver derives the on-disk byte width of every column and the record stride.
//
// The width table is computed on first use and cached. String columns are as wide as
// their declared length; numeric columns use the fixed size of their kind (1, 2, 4, 4
// and 8 bytes). Widths do not depend on the byte order, which is kept only so the
// resolver fully describes a record layout.
//
// Note: WidthResolver is NOT thread-safe.
type WidthResolver struct {
	types   []format.ColumnType
	engine  endian.EndianEngine
	widths  []int
	offsets []int
	stride  int
}

// NewWidthResolver creates a resolver for the given column types.
//
// Parameters:
//   - types: column types in on-disk order; the slice is retained, not copied
//   - engine: byte order of the file
func NewWidthResolver(types []format.ColumnType, engine endian.EndianEngine) *WidthResolver {
	return &WidthResolver{types: types, engine: engine}
}

func (w *WidthResolver) resolve() {
	if w.widths != nil {
		return
	}

	widths := make([]int, len(w.types))
	offsets := make([]int, len(w.types))
	stride := 0
	for i, typ := range w.types {
		offsets[i] = stride
		widths[i] = typ.Width()
		stride += widths[i]
	}

	w.widths, w.offsets, w.stride = widths, offsets, stride
}

// Width returns the byte width of column i. It panics if i is out of range.
func (w *WidthResolver) Width(i int) int {
	w.resolve()
	return w.widths[i]
}

// Widths returns the byte widths of all columns in order.
// The returned slice is shared and must not be modified.
func (w *WidthResolver) Widths() []int {
	w.resolve()
	return w.widths
}

// Offsets returns the byte offset of every column within a record.
// The returned slice is shared and must not be modified.
func (w *WidthResolver) Offsets() []int {
	w.resolve()
	return w.offsets
}

// Stride returns the size of one record in bytes, the sum of all column widths.
func (w *WidthResolver) Stride() int {
	w.resolve()
	return w.stride
}

// Types returns the column types the resolver was built from.
func (w *WidthResolver) Types() []format.ColumnType {
	return w.types
}

// Engine returns the byte order engine of the record layout.
func (w *WidthResolver) Engine() endian.EndianEngine {
	return w.engine
}
