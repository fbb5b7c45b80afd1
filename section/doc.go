// Package section parses the header, descriptor arrays and expansion block of a
// dataset file (format versions 113 and 114).
//
// # File Layout
//
// All multi-byte fields use the byte order declared by the marker byte.
//
//	Bytes          | Field            | Type     | Description
//	---------------|------------------|----------|-----------------------------------
//	1              | FormatVersion    | int8     | 113 or 114
//	1              | ByteOrder        | uint8    | 0x01 = big-endian, else little-endian
//	1              | FileType         | int8     | stored, not interpreted
//	1              | padding          |          | ignored
//	2              | ColumnCount (C)  | int16    | number of variables
//	4              | RowCount (N)     | int32    | number of observations
//	81             | Label            | text     | NUL padded
//	18             | Timestamp        | text     | NUL padded
//	C              | type list        | uint8[C] | see format.TypeFromCode
//	33*C           | variable names   | text     | NUL padded
//	2*(C+1)        | sort list        | int16    | trailing entry discarded
//	11*C or 49*C   | display formats  | text     | 11 bytes for version <= 113
//	33*C           | value label names| text     | empty when unlabeled
//	81*C           | variable labels  | text     | empty when unlabeled
//	5*k + data     | expansion block  |          | {int8 type, int32 len, len bytes}..., type 0 ends
//	stride*N       | row data         |          | see the encoding package
//
// # Expansion Block
//
// The expansion block is a list of self-describing fields. Parse reads a type byte and
// a 4-byte length for each field and discards the payload. A zero type byte ends the
// block; its length bytes are consumed but no payload is skipped.
//
// # Permissive Parsing
//
// Parse performs no semantic validation. A negative ColumnCount is kept in the Header
// and treated as an empty schema; empty variable names are accepted.
//
// # Thread Safety
//
// Parse reads from the given reader and must not run concurrently with other users of
// that reader. The returned Layout is immutable by convention.
package section
