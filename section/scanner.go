package section

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/arloliu/dta/endian"
	"github.com/arloliu/dta/errs"
)

// scanner reads fixed-width header fields and tracks how many bytes it consumed.
// It never buffers ahead, so the underlying reader is left exactly after the last field.
type scanner struct {
	r      io.Reader
	engine endian.EndianEngine
	off    int64
	buf    [8]byte
}

func newScanner(r io.Reader) *scanner {
	return &scanner{r: r, engine: endian.GetLittleEndianEngine()}
}

func (s *scanner) fail(field string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s at offset %d", errs.ErrTruncatedStream, field, s.off)
	}

	return fmt.Errorf("reading %s at offset %d: %w", field, s.off, err)
}

// readInto fills b completely.
func (s *scanner) readInto(b []byte, field string) error {
	if _, err := io.ReadFull(s.r, b); err != nil {
		return s.fail(field, err)
	}
	s.off += int64(len(b))

	return nil
}

func (s *scanner) readN(n int, field string) ([]byte, error) {
	b := make([]byte, n)
	if err := s.readInto(b, field); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *scanner) readU8(field string) (uint8, error) {
	if err := s.readInto(s.buf[:1], field); err != nil {
		return 0, err
	}

	return s.buf[0], nil
}

func (s *scanner) readI8(field string) (int8, error) {
	v, err := s.readU8(field)
	return int8(v), err
}

func (s *scanner) readI16(field string) (int16, error) {
	if err := s.readInto(s.buf[:2], field); err != nil {
		return 0, err
	}

	return int16(s.engine.Uint16(s.buf[:2])), nil
}

func (s *scanner) readI32(field string) (int32, error) {
	if err := s.readInto(s.buf[:4], field); err != nil {
		return 0, err
	}

	return int32(s.engine.Uint32(s.buf[:4])), nil
}

// readText reads a NUL padded text field of the given width.
func (s *scanner) readText(width int, field string, dec TextDecoder) (string, error) {
	b, err := s.readN(width, field)
	if err != nil {
		return "", err
	}

	return dec.Decode(TrimNUL(b)), nil
}

// readTexts reads count consecutive text fields of the same width.
func (s *scanner) readTexts(count, width int, field string, dec TextDecoder) ([]string, error) {
	out := make([]string, count)
	for i := range out {
		text, err := s.readText(width, field, dec)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}

	return out, nil
}

// skip consumes n bytes without seeking, so a short stream is still detected.
func (s *scanner) skip(n int64, field string) error {
	copied, err := io.CopyN(io.Discard, s.r, n)
	s.off += copied
	if err != nil {
		return s.fail(field, err)
	}

	return nil
}

// TrimNUL strips leading and trailing NUL bytes. Interior NULs are kept.
func TrimNUL(b []byte) []byte {
	return bytes.Trim(b, "\x00")
}
