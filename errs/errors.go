// Package errs defines the sentinel errors returned by the dta packages.
//
// Errors are wrapped with context by the returning package, so callers should
// match them with errors.Is rather than comparing directly.
package errs

import "errors"

var (
	// ErrTruncatedStream is returned when the input ends before a structurally
	// required field (header, descriptor block, expansion block or record) was fully read.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrUnsupportedColumnType is returned when a column type code maps to no
	// known string width or numeric kind.
	ErrUnsupportedColumnType = errors.New("unsupported column type")

	// ErrCorruptHeader is returned when the header is structurally readable but
	// cannot be walked, e.g. an expansion field declares a negative length.
	ErrCorruptHeader = errors.New("corrupt header")

	// ErrIndexOutOfRange is returned when an observation index is outside [0, N).
	ErrIndexOutOfRange = errors.New("observation index out of range")

	// ErrInvalidRecordSize is returned when a record buffer does not match the record stride.
	ErrInvalidRecordSize = errors.New("invalid record size")

	// ErrUnknownCharset is returned when a charset name is not recognized.
	ErrUnknownCharset = errors.New("unknown charset")
)
