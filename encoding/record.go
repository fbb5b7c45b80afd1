package encoding

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/dta/endian"
	"github.com/arloliu/dta/errs"
	"github.com/arloliu/dta/format"
	"github.com/arloliu/dta/internal/options"
	"github.com/arloliu/dta/internal/pool"
)

// Record is one decoded observation: one value per column in column order.
//
// Each value is a string (string columns), an int8, int16, int32, float32 or
// float64 (numeric columns), nil (missing value, suppressed) or a
// format.MissingValue (missing value, retained).
type Record []any

// TextDecoder converts trimmed string field bytes to a string.
type TextDecoder interface {
	Decode(b []byte) string
}

type rawText struct{}

func (rawText) Decode(b []byte) string { return string(b) }

// RecordDecoder decodes fixed-stride records.
//
// Two implementations exist and one is chosen per column layout: a string-aware
// decoder used whenever at least one column is a string, and an all-numeric decoder.
// Both produce identical values for numeric columns.
type RecordDecoder interface {
	// Decode decodes one record from buf, which must be exactly Stride() bytes.
	Decode(buf []byte) (Record, error)
	// ReadRecord reads and decodes exactly Stride() bytes from r.
	ReadRecord(r io.Reader) (Record, error)
	// Stride returns the record size in bytes.
	Stride() int
	// HasStrings reports whether the string-aware strategy is in use.
	HasStrings() bool
}

type decoderConfig struct {
	emitMissing bool
	text        TextDecoder
}

// DecoderOption configures NewRecordDecoder.
type DecoderOption = options.Option[*decoderConfig]

// WithMissingValues selects how out-of-range numeric fields are reported:
// as format.MissingValue when enabled, as nil otherwise (the default).
func WithMissingValues(enabled bool) DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.emitMissing = enabled
	})
}

// WithTextDecoder sets the decoder applied to string fields.
// The default copies bytes unchanged.
func WithTextDecoder(dec TextDecoder) DecoderOption {
	return options.New(func(c *decoderConfig) error {
		if dec == nil {
			return errors.New("text decoder must not be nil")
		}
		c.text = dec

		return nil
	})
}

// NewRecordDecoder creates the decoder matching the column layout of widths.
//
// Parameters:
//   - widths: resolved column layout
//   - opts: missing value and text decoding options
//
// Returns:
//   - RecordDecoder: string-aware decoder if any column is a string, all-numeric otherwise
//   - error: invalid option
func NewRecordDecoder(widths *WidthResolver, opts ...DecoderOption) (RecordDecoder, error) {
	cfg := &decoderConfig{text: rawText{}}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	base := recordBase{
		types:       widths.Types(),
		widths:      widths.Widths(),
		offsets:     widths.Offsets(),
		stride:      widths.Stride(),
		engine:      widths.Engine(),
		emitMissing: cfg.emitMissing,
	}

	for _, typ := range base.types {
		if typ.IsString() {
			return &mixedDecoder{recordBase: base, text: cfg.text}, nil
		}
	}

	kinds := make([]format.Kind, len(base.types))
	for i, typ := range base.types {
		kinds[i] = typ.Kind()
	}

	return &numericDecoder{recordBase: base, kinds: kinds}, nil
}

type recordBase struct {
	types       []format.ColumnType
	widths      []int
	offsets     []int
	stride      int
	engine      endian.EndianEngine
	emitMissing bool
}

func (b *recordBase) Stride() int {
	return b.stride
}

func (b *recordBase) checkSize(buf []byte) error {
	if len(buf) != b.stride {
		return fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidRecordSize, len(buf), b.stride)
	}

	return nil
}

// readRecord reads one stride into a pooled buffer and hands it to decode.
func (b *recordBase) readRecord(r io.Reader, decode func([]byte) Record) (Record, error) {
	bb := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(bb)

	buf := bb.Resize(b.stride)
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: reading %d byte record", errs.ErrTruncatedStream, b.stride)
		}

		return nil, fmt.Errorf("reading record: %w", err)
	}

	return decode(buf), nil
}

// mixedDecoder handles layouts with at least one string column.
type mixedDecoder struct {
	recordBase
	text TextDecoder
}

var _ RecordDecoder = (*mixedDecoder)(nil)

func (d *mixedDecoder) HasStrings() bool {
	return true
}

func (d *mixedDecoder) Decode(buf []byte) (Record, error) {
	if err := d.checkSize(buf); err != nil {
		return nil, err
	}

	return d.decode(buf), nil
}

func (d *mixedDecoder) ReadRecord(r io.Reader) (Record, error) {
	return d.readRecord(r, d.decode)
}

func (d *mixedDecoder) decode(buf []byte) Record {
	rec := make(Record, len(d.types))
	for i, typ := range d.types {
		field := buf[d.offsets[i] : d.offsets[i]+d.widths[i]]
		if typ.IsString() {
			rec[i] = d.text.Decode(bytes.Trim(field, "\x00"))
			continue
		}
		rec[i] = numericField(typ.Kind(), field, d.engine, d.emitMissing)
	}

	return rec
}

// numericDecoder handles layouts without string columns.
type numericDecoder struct {
	recordBase
	kinds []format.Kind
}

var _ RecordDecoder = (*numericDecoder)(nil)

func (d *numericDecoder) HasStrings() bool {
	return false
}

func (d *numericDecoder) Decode(buf []byte) (Record, error) {
	if err := d.checkSize(buf); err != nil {
		return nil, err
	}

	return d.decode(buf), nil
}

func (d *numericDecoder) ReadRecord(r io.Reader) (Record, error) {
	return d.readRecord(r, d.decode)
}

func (d *numericDecoder) decode(buf []byte) Record {
	rec := make(Record, len(d.kinds))
	off := 0
	for i, kind := range d.kinds {
		size := kind.Size()
		rec[i] = numericField(kind, buf[off:off+size], d.engine, d.emitMissing)
		off += size
	}

	return rec
}
