package section

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/arloliu/dta/endian"
	"github.com/arloliu/dta/errs"
	"github.com/arloliu/dta/format"
	"github.com/arloliu/dta/internal/options"
)

// Header holds the fixed scalar fields at the start of a dataset file.
type Header struct {
	// FormatVersion selects the descriptor layout (113 or 114).
	FormatVersion format.Version
	// ByteOrder governs every multi-byte read after the marker byte.
	ByteOrder format.ByteOrder
	// FileType is stored as-is and not interpreted.
	FileType int
	// ColumnCount is the number of variables as stored. A negative value is kept
	// here unchanged and treated as an empty schema everywhere else.
	ColumnCount int
	// RowCount is the number of observations as stored.
	RowCount int
	// Label is the dataset label.
	Label string
	// Timestamp is the save timestamp text, e.g. " 1 Jan 2008 12:00".
	Timestamp string
}

// Engine returns the endian engine for the header's byte order.
func (h Header) Engine() endian.EndianEngine {
	return h.ByteOrder.Engine()
}

// Columns returns the usable column count: ColumnCount, or 0 when it is negative.
func (h Header) Columns() int {
	return max(h.ColumnCount, 0)
}

// Descriptors holds the per-column descriptor arrays. Every slice has exactly
// Header.Columns() elements in on-disk column order.
type Descriptors struct {
	Types          []format.ColumnType
	Names          []string
	SortOrder      []int16
	Formats        []string
	ValueLabels    []string
	VariableLabels []string
}

// Layout is the result of parsing a dataset header.
type Layout struct {
	Header      Header
	Descriptors Descriptors
	// Size is the number of bytes consumed by the header, descriptors and
	// expansion block. Row data starts Size bytes after the parse start.
	Size int64
	// ExpansionFields is the number of skipped expansion fields, terminator excluded.
	ExpansionFields int
}

// TextDecoder converts trimmed on-disk text bytes to a string.
type TextDecoder interface {
	Decode(b []byte) string
}

type rawText struct{}

func (rawText) Decode(b []byte) string { return string(b) }

type parseConfig struct {
	text   TextDecoder
	logger *slog.Logger
}

// ParseOption configures Parse.
type ParseOption = options.Option[*parseConfig]

// WithTextDecoder sets the decoder applied to every header text field.
// The default copies bytes unchanged.
func WithTextDecoder(dec TextDecoder) ParseOption {
	return options.New(func(c *parseConfig) error {
		if dec == nil {
			return fmt.Errorf("text decoder must not be nil")
		}
		c.text = dec

		return nil
	})
}

// WithLogger sets the logger receiving debug events while parsing.
func WithLogger(logger *slog.Logger) ParseOption {
	return options.New(func(c *parseConfig) error {
		if logger == nil {
			return fmt.Errorf("logger must not be nil")
		}
		c.logger = logger

		return nil
	})
}

// Parse reads a dataset header from r, which must be positioned at the first byte
// of the file. On success r is positioned exactly at the first byte of row data.
//
// Returns:
//   - Layout: parsed header, descriptors and consumed size
//   - error: errs.ErrTruncatedStream if r ends early, errs.ErrUnsupportedColumnType
//     for an unknown type code, errs.ErrCorruptHeader for a negative expansion length
func Parse(r io.Reader, opts ...ParseOption) (Layout, error) {
	cfg := &parseConfig{
		text:   rawText{},
		logger: slog.New(slog.DiscardHandler),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return Layout{}, err
	}

	s := newScanner(r)

	header, err := parseHeader(s, cfg.text)
	if err != nil {
		return Layout{}, err
	}

	desc, err := parseDescriptors(s, header, cfg.text)
	if err != nil {
		return Layout{}, err
	}

	fields, err := skipExpansion(s, cfg.logger)
	if err != nil {
		return Layout{}, err
	}

	cfg.logger.Debug("parsed dataset header",
		"version", int(header.FormatVersion),
		"byte_order", header.ByteOrder.String(),
		"columns", header.ColumnCount,
		"rows", header.RowCount,
		"expansion_fields", fields,
		"data_offset", s.off,
	)

	return Layout{
		Header:          header,
		Descriptors:     desc,
		Size:            s.off,
		ExpansionFields: fields,
	}, nil
}

func parseHeader(s *scanner, text TextDecoder) (Header, error) {
	var h Header

	version, err := s.readI8("format version")
	if err != nil {
		return h, err
	}
	h.FormatVersion = format.Version(version)

	marker, err := s.readU8("byte order")
	if err != nil {
		return h, err
	}
	h.ByteOrder = format.ByteOrderFromMarker(marker)
	s.engine = h.ByteOrder.Engine()

	fileType, err := s.readI8("file type")
	if err != nil {
		return h, err
	}
	h.FileType = int(fileType)

	if err := s.skip(PaddingSize, "padding"); err != nil {
		return h, err
	}

	nvar, err := s.readI16("column count")
	if err != nil {
		return h, err
	}
	h.ColumnCount = int(nvar)

	nobs, err := s.readI32("row count")
	if err != nil {
		return h, err
	}
	h.RowCount = int(nobs)

	if h.Label, err = s.readText(LabelSize, "dataset label", text); err != nil {
		return h, err
	}
	if h.Timestamp, err = s.readText(TimestampSize, "timestamp", text); err != nil {
		return h, err
	}

	return h, nil
}

func parseDescriptors(s *scanner, h Header, text TextDecoder) (Descriptors, error) {
	var d Descriptors
	n := h.Columns()

	codes, err := s.readN(n*TypeCodeSize, "type list")
	if err != nil {
		return d, err
	}
	d.Types = make([]format.ColumnType, n)
	for i, code := range codes {
		typ, err := format.TypeFromCode(code)
		if err != nil {
			return d, fmt.Errorf("column %d: %w", i, err)
		}
		d.Types[i] = typ
	}

	if d.Names, err = s.readTexts(n, NameSize, "variable name", text); err != nil {
		return d, err
	}

	// n+1 entries are stored; the trailing one is a terminator.
	d.SortOrder = make([]int16, n)
	for i := 0; i <= n; i++ {
		v, err := s.readI16("sort list")
		if err != nil {
			return d, err
		}
		if i < n {
			d.SortOrder[i] = v
		}
	}

	fmtWidth := h.FormatVersion.DisplayFormatWidth()
	if d.Formats, err = s.readTexts(n, fmtWidth, "display format", text); err != nil {
		return d, err
	}
	if d.ValueLabels, err = s.readTexts(n, ValueLabelSize, "value label name", text); err != nil {
		return d, err
	}
	if d.VariableLabels, err = s.readTexts(n, VariableLabelSize, "variable label", text); err != nil {
		return d, err
	}

	return d, nil
}

// skipExpansion walks the expansion block up to and including its zero-tag terminator.
func skipExpansion(s *scanner, logger *slog.Logger) (int, error) {
	fields := 0
	for {
		tag, err := s.readI8("expansion field type")
		if err != nil {
			return fields, err
		}
		length, err := s.readI32("expansion field length")
		if err != nil {
			return fields, err
		}
		if tag == 0 {
			return fields, nil
		}
		if length < 0 {
			return fields, fmt.Errorf("%w: expansion field %d has negative length %d",
				errs.ErrCorruptHeader, fields, length)
		}

		logger.Debug("skipping expansion field", "type", tag, "length", length, "offset", s.off)
		if err := s.skip(int64(length), "expansion field data"); err != nil {
			return fields, err
		}
		fields++
	}
}
