// Package dataset provides the high-level Reader for dataset files in format
// versions 113 and 114.
//
// # Core Types
//
//   - Reader: parses the header once and decodes observations on demand
//   - Variable: one column descriptor (name, type, format, labels, sort entry)
//   - Record: one decoded observation, a []any with one value per column
//
// # Access Patterns
//
// Sequential access through Rows or RowMaps restarts from the first observation on
// every call:
//
//	reader, err := dataset.NewReader(f, dataset.WithMissingValues(true))
//	if err != nil {
//	    return err
//	}
//	for rec, err := range reader.Rows() {
//	    if err != nil {
//	        return err
//	    }
//	    // use rec
//	}
//
// Random access through At computes the offset of observation k as
// DataOffset() + Stride()*k and seeks only when needed:
//
//	rec, err := reader.At(41)
//	if errors.Is(err, errs.ErrIndexOutOfRange) {
//	    // k >= reader.Len()
//	}
//
// # Field Values
//
// String columns decode to string with leading and trailing NUL bytes removed.
// Numeric columns decode to int8, int16, int32, float32 or float64. Numeric fields
// holding a missing-value sentinel decode to nil, or to format.MissingValue when
// WithMissingValues(true) is set.
//
// # Thread Safety
//
// A Reader owns the cursor of its stream and is NOT safe for concurrent use. An
// in-progress Rows iteration and At calls on the same Reader must not be
// interleaved; the Reader does not guard against it.
package dataset
