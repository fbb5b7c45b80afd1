// Package encoding decodes the row data of a dataset file.
//
// Row data is a sequence of fixed-size records. Every record stores one field per
// column, back to back in column order, with no separators or per-record metadata:
//
//	┌────────────┬────────────┬─────┬────────────┐
//	│ column 0   │ column 1   │ ... │ column C-1 │   stride = sum of widths
//	└────────────┴────────────┴─────┴────────────┘
//
// WidthResolver computes the widths and the stride once per layout. RecordDecoder
// turns a stride of bytes into a Record.
//
// # Missing Values
//
// Each numeric kind reserves the values above (and, for integers, below) its valid
// range as missing-value sentinels; see format.ValidRange. Fields holding a sentinel
// decode to nil by default, or to a format.MissingValue when WithMissingValues(true)
// is set.
//
// # Usage
//
//	widths := encoding.NewWidthResolver(layout.Descriptors.Types, layout.Header.Engine())
//	dec, err := encoding.NewRecordDecoder(widths, encoding.WithMissingValues(true))
//	if err != nil {
//	    return err
//	}
//	rec, err := dec.ReadRecord(r)
//
// # Thread Safety
//
// RecordDecoder values are safe for concurrent Decode calls once created. ReadRecord
// is as safe as the reader passed to it. WidthResolver is not thread-safe until its
// table has been computed.
package encoding
