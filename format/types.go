// Package format defines the constant tables of the dataset file format: column kinds,
// the type-code map, numeric valid ranges, missing values and format versions.
//
// All tables in this package are immutable.
package format

import (
	"fmt"

	"github.com/arloliu/dta/errs"
)

// Kind identifies the storage kind of a column.
type Kind uint8

const (
	KindString  Kind = iota // KindString is a fixed-width, NUL-padded byte string.
	KindInt8                // KindInt8 is a signed 1-byte integer ("byte").
	KindInt16               // KindInt16 is a signed 2-byte integer ("int").
	KindInt32               // KindInt32 is a signed 4-byte integer ("long").
	KindFloat32             // KindFloat32 is an IEEE 754 single precision float ("float").
	KindFloat64             // KindFloat64 is an IEEE 754 double precision float ("double").
)

// Type code boundaries of the descriptor type list.
const (
	MaxStringWidth = 244 // MaxStringWidth is the largest type code denoting a string column.

	CodeInt8    byte = 245
	CodeInt16   byte = 246
	CodeInt32   byte = 247
	CodeFloat32 byte = 248
	CodeFloat64 byte = 249
)

var numericKinds = [...]Kind{KindInt8, KindInt16, KindInt32, KindFloat32, KindFloat64}

var kindSizes = [...]int{
	KindString:  0,
	KindInt8:    1,
	KindInt16:   2,
	KindInt32:   4,
	KindFloat32: 4,
	KindFloat64: 8,
}

func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInt8:
		return "byte"
	case KindInt16:
		return "int"
	case KindInt32:
		return "long"
	case KindFloat32:
		return "float"
	case KindFloat64:
		return "double"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether k is one of the five numeric kinds.
func (k Kind) IsNumeric() bool {
	return k >= KindInt8 && k <= KindFloat64
}

// Size returns the fixed on-disk size of a numeric kind, or 0 for KindString.
func (k Kind) Size() int {
	if int(k) >= len(kindSizes) {
		return 0
	}

	return kindSizes[k]
}

// ColumnType is the closed set of on-disk column types: a string of a declared
// width, or one of the five numeric kinds.
//
// The zero value is a zero-width string column.
type ColumnType struct {
	kind  Kind
	width int
}

// StringType returns the type of a string column of the given width in bytes.
func StringType(width int) ColumnType {
	return ColumnType{kind: KindString, width: width}
}

// NumericType returns the type of a numeric column.
// It panics if kind is not numeric.
func NumericType(kind Kind) ColumnType {
	if !kind.IsNumeric() {
		panic(fmt.Sprintf("format: %s is not a numeric kind", kind))
	}

	return ColumnType{kind: kind, width: kind.Size()}
}

// TypeFromCode maps a descriptor type code to a ColumnType.
//
// Codes 0..244 denote strings of that width; codes 245..249 select, in order,
// int8, int16, int32, float32 and float64. Anything else is rejected with
// errs.ErrUnsupportedColumnType.
func TypeFromCode(code byte) (ColumnType, error) {
	if code <= MaxStringWidth {
		return StringType(int(code)), nil
	}

	idx := int(code) - int(CodeInt8)
	if idx < len(numericKinds) {
		return NumericType(numericKinds[idx]), nil
	}

	return ColumnType{}, fmt.Errorf("%w: type code %d", errs.ErrUnsupportedColumnType, code)
}

// Kind returns the storage kind.
func (t ColumnType) Kind() Kind {
	return t.kind
}

// IsString reports whether the column holds fixed-width strings.
func (t ColumnType) IsString() bool {
	return t.kind == KindString
}

// Width returns the on-disk width of one field of this type in bytes.
func (t ColumnType) Width() int {
	return t.width
}

// Code returns the descriptor type code of t.
func (t ColumnType) Code() byte {
	switch t.kind {
	case KindString:
		return byte(t.width)
	case KindInt8:
		return CodeInt8
	case KindInt16:
		return CodeInt16
	case KindInt32:
		return CodeInt32
	case KindFloat32:
		return CodeFloat32
	case KindFloat64:
		return CodeFloat64
	default:
		return 0
	}
}

// String returns the conventional type name, e.g. "str12" or "double".
func (t ColumnType) String() string {
	if t.kind == KindString {
		return fmt.Sprintf("str%d", t.width)
	}

	return t.kind.String()
}
