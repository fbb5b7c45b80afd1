package dataset

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"slices"

	"github.com/arloliu/dta/encoding"
	"github.com/arloliu/dta/errs"
	"github.com/arloliu/dta/format"
	"github.com/arloliu/dta/internal/hash"
	"github.com/arloliu/dta/internal/options"
	"github.com/arloliu/dta/section"
)

// Record is one decoded observation, see encoding.Record.
type Record = encoding.Record

// unknownPos marks the cursor position as unknown after a failed read.
const unknownPos = -1

// Reader decodes a dataset from a seekable stream.
//
// The header and descriptors are parsed once by NewReader and are immutable afterwards.
// Observations are decoded on demand by Rows, RowMaps and At; no record is retained.
//
// Note: The Reader is NOT thread-safe. Every decode moves the cursor of the underlying
// stream, so Rows, RowMaps and At must not be interleaved: calling At while a Rows
// iteration is in progress moves the cursor under the iterator.
type Reader struct {
	rs         io.ReadSeeker
	layout     section.Layout
	dataOffset int64
	pos        int64
	widths     *encoding.WidthResolver
	decoder    encoding.RecordDecoder
	names      *hash.NameIndex
	logger     *slog.Logger
}

// NewReader parses the dataset header at the current position of rs.
//
// On return rs is positioned at the first observation.
//
// Parameters:
//   - rs: seekable stream positioned at the start of a dataset file
//   - opts: missing value, charset and logging options
//
// Returns:
//   - *Reader: reader ready for Rows, RowMaps and At
//   - error: invalid option, I/O error, errs.ErrTruncatedStream,
//     errs.ErrUnsupportedColumnType or errs.ErrCorruptHeader
func NewReader(rs io.ReadSeeker, opts ...ReaderOption) (*Reader, error) {
	cfg := newReaderConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	start, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating header start: %w", err)
	}

	layout, err := section.Parse(rs,
		section.WithTextDecoder(cfg.text),
		section.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}

	widths := encoding.NewWidthResolver(layout.Descriptors.Types, layout.Header.Engine())
	decoder, err := encoding.NewRecordDecoder(widths,
		encoding.WithMissingValues(cfg.emitMissing),
		encoding.WithTextDecoder(cfg.text),
	)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		rs:         rs,
		layout:     layout,
		dataOffset: start + layout.Size,
		widths:     widths,
		decoder:    decoder,
		names:      hash.NewNameIndex(layout.Descriptors.Names),
		logger:     cfg.logger,
	}
	r.pos = r.dataOffset

	if dups := r.names.Duplicates(); len(dups) > 0 {
		r.logger.Warn("duplicate variable names, RowMaps keeps the rightmost column", "names", dups)
	}
	r.logger.Debug("dataset reader ready",
		"stride", decoder.Stride(),
		"string_columns", decoder.HasStrings(),
		"missing_values", cfg.emitMissing,
	)

	return r, nil
}

// Header returns the parsed file header.
func (r *Reader) Header() section.Header {
	return r.layout.Header
}

// FormatVersion returns the file format version (113 or 114).
func (r *Reader) FormatVersion() format.Version {
	return r.layout.Header.FormatVersion
}

// Label returns the dataset label.
func (r *Reader) Label() string {
	return r.layout.Header.Label
}

// Timestamp returns the timestamp recorded when the file was saved.
func (r *Reader) Timestamp() string {
	return r.layout.Header.Timestamp
}

// Schema returns the variables in column order.
func (r *Reader) Schema() []Variable {
	d := r.layout.Descriptors
	vars := make([]Variable, len(d.Types))
	for i := range vars {
		vars[i] = Variable{
			Index:      i,
			Type:       d.Types[i],
			Name:       d.Names[i],
			SortOrder:  d.SortOrder[i],
			Format:     d.Formats[i],
			ValueLabel: d.ValueLabels[i],
			Label:      d.VariableLabels[i],
		}
	}

	return vars
}

// Names returns the variable names in column order.
func (r *Reader) Names() []string {
	return slices.Clone(r.layout.Descriptors.Names)
}

// ColumnIndex returns the column position of the named variable. When the name
// occurs more than once, the leftmost column is returned.
func (r *Reader) ColumnIndex(name string) (int, bool) {
	return r.names.Lookup(name)
}

// Len returns the number of observations stored in the header.
//
// The value is returned as stored, including observations whose fields are all
// missing; it is not checked against the size of the stream.
func (r *Reader) Len() int {
	return r.layout.Header.RowCount
}

// Widths returns the on-disk width of every column in bytes.
func (r *Reader) Widths() []int {
	return slices.Clone(r.widths.Widths())
}

// Stride returns the size of one observation in bytes.
func (r *Reader) Stride() int {
	return r.decoder.Stride()
}

// DataOffset returns the stream offset of the first observation.
func (r *Reader) DataOffset() int64 {
	return r.dataOffset
}

// Rows returns an iterator over all observations in file order.
//
// Each call seeks to the first observation and decodes Len() records sequentially.
// Iteration stops after the first error, which is yielded with a nil Record.
//
// Example:
//
//	for rec, err := range reader.Rows() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(rec...)
//	}
func (r *Reader) Rows() iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		if err := r.seekTo(r.dataOffset, true); err != nil {
			yield(nil, err)
			return
		}

		for i := 0; i < r.Len(); i++ {
			rec, err := r.next()
			if err != nil {
				yield(nil, fmt.Errorf("observation %d: %w", i, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// RowMaps is like Rows but yields each observation keyed by variable name.
// When names repeat, the rightmost column wins.
func (r *Reader) RowMaps() iter.Seq2[map[string]any, error] {
	return func(yield func(map[string]any, error) bool) {
		names := r.layout.Descriptors.Names
		for rec, err := range r.Rows() {
			if err != nil {
				yield(nil, err)
				return
			}

			m := make(map[string]any, len(names))
			for i, name := range names {
				m[name] = rec[i]
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}

// At decodes the observation at index, counted from zero.
//
// The stream is only repositioned when it is not already at the observation, so
// walking forward with consecutive At calls reads sequentially.
//
// Returns:
//   - Record: the decoded observation
//   - error: errs.ErrIndexOutOfRange (without touching the stream) for an index
//     outside [0, Len()), errs.ErrTruncatedStream or an I/O error
func (r *Reader) At(index int) (Record, error) {
	if index < 0 || index >= r.Len() {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", errs.ErrIndexOutOfRange, index, max(r.Len(), 0))
	}

	if err := r.seekTo(r.offsetOf(index), false); err != nil {
		return nil, err
	}

	rec, err := r.next()
	if err != nil {
		return nil, fmt.Errorf("observation %d: %w", index, err)
	}

	return rec, nil
}

// offsetOf returns the stream offset of the observation at index.
func (r *Reader) offsetOf(index int) int64 {
	return r.dataOffset + int64(r.decoder.Stride())*int64(index)
}

// seekTo moves the stream to off. Unless force is set, the seek is skipped when the
// tracked cursor is already there.
func (r *Reader) seekTo(off int64, force bool) error {
	if !force && r.pos == off {
		return nil
	}

	if _, err := r.rs.Seek(off, io.SeekStart); err != nil {
		r.pos = unknownPos
		return fmt.Errorf("seeking to offset %d: %w", off, err)
	}
	r.logger.Debug("seek", "offset", off, "from", r.pos)
	r.pos = off

	return nil
}

// next decodes the observation at the cursor and advances it by one stride.
func (r *Reader) next() (Record, error) {
	rec, err := r.decoder.ReadRecord(r.rs)
	if err != nil {
		r.pos = unknownPos
		return nil, err
	}
	r.pos += int64(r.decoder.Stride())

	return rec, nil
}
