// Package dtatest builds dataset files in memory for tests.
package dtatest

import (
	"bytes"
	"fmt"
	"math"

	"github.com/arloliu/dta/endian"
	"github.com/arloliu/dta/format"
)

// Column describes one variable of a built file.
type Column struct {
	Name          string
	Code          byte
	Sort          int16
	Format        string
	ValueLabel    string
	VariableLabel string
}

// Expansion is one expansion block field.
type Expansion struct {
	Tag  int8
	Data []byte
}

// Builder assembles a dataset file. The zero value describes an empty
// little-endian format 114 file.
type Builder struct {
	Version   int8
	BigEndian bool
	FileType  int8
	Label     string
	Timestamp string
	Columns   []Column
	Expansion []Expansion
	// Rows holds one value per column: string for string columns, any Go integer
	// or float for numeric columns, or []byte for raw field bytes.
	Rows [][]any

	// ColumnCount and RowCount override the stored counts when non-nil.
	ColumnCount *int16
	RowCount    *int32
}

// Int16 returns a pointer to v.
func Int16(v int16) *int16 { return &v }

// Int32 returns a pointer to v.
func Int32(v int32) *int32 { return &v }

// Engine returns the byte order engine the builder encodes with.
func (b *Builder) Engine() endian.EndianEngine {
	if b.BigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

func (b *Builder) version() int8 {
	if b.Version == 0 {
		return int8(format.Version114)
	}

	return b.Version
}

// Fixed field widths, repeated here so the section tests can import this package.
const (
	labelSize         = 81
	timestampSize     = 18
	nameSize          = 33
	valueLabelSize    = 33
	variableLabelSize = 81
)

func pad(s string, width int) []byte {
	out := make([]byte, width)
	copy(out, s)

	return out
}

// Header returns the header, descriptor and expansion bytes.
func (b *Builder) Header() []byte {
	var buf bytes.Buffer
	engine := b.Engine()

	marker := endian.MarkerLittleEndian
	if b.BigEndian {
		marker = endian.MarkerBigEndian
	}

	nvar := int16(len(b.Columns))
	if b.ColumnCount != nil {
		nvar = *b.ColumnCount
	}
	nobs := int32(len(b.Rows))
	if b.RowCount != nil {
		nobs = *b.RowCount
	}

	buf.WriteByte(byte(b.version()))
	buf.WriteByte(marker)
	buf.WriteByte(byte(b.FileType))
	buf.WriteByte(0)
	buf.Write(engine.AppendUint16(nil, uint16(nvar)))
	buf.Write(engine.AppendUint32(nil, uint32(nobs)))
	buf.Write(pad(b.Label, labelSize))
	buf.Write(pad(b.Timestamp, timestampSize))

	for _, c := range b.Columns {
		buf.WriteByte(c.Code)
	}
	for _, c := range b.Columns {
		buf.Write(pad(c.Name, nameSize))
	}
	for _, c := range b.Columns {
		buf.Write(engine.AppendUint16(nil, uint16(c.Sort)))
	}
	buf.Write(engine.AppendUint16(nil, 0))

	fmtWidth := format.Version(b.version()).DisplayFormatWidth()
	for _, c := range b.Columns {
		buf.Write(pad(c.Format, fmtWidth))
	}
	for _, c := range b.Columns {
		buf.Write(pad(c.ValueLabel, valueLabelSize))
	}
	for _, c := range b.Columns {
		buf.Write(pad(c.VariableLabel, variableLabelSize))
	}

	for _, e := range b.Expansion {
		buf.WriteByte(byte(e.Tag))
		buf.Write(engine.AppendUint32(nil, uint32(len(e.Data))))
		buf.Write(e.Data)
	}
	buf.Write([]byte{0, 0, 0, 0, 0})

	return buf.Bytes()
}

// Bytes returns the complete file.
func (b *Builder) Bytes() []byte {
	out := b.Header()
	for i, row := range b.Rows {
		out = append(out, b.Record(row, i)...)
	}

	return out
}

// Record encodes one row.
func (b *Builder) Record(row []any, rowIndex int) []byte {
	engine := b.Engine()
	var out []byte
	for j, c := range b.Columns {
		typ, err := format.TypeFromCode(c.Code)
		if err != nil {
			panic(err)
		}
		out = append(out, encodeField(engine, typ, row[j], rowIndex, j)...)
	}

	return out
}

func encodeField(engine endian.EndianEngine, typ format.ColumnType, v any, row, col int) []byte {
	if raw, ok := v.([]byte); ok {
		if len(raw) != typ.Width() {
			panic(fmt.Sprintf("row %d col %d: raw field has %d bytes, want %d", row, col, len(raw), typ.Width()))
		}

		return raw
	}

	switch typ.Kind() {
	case format.KindString:
		s, ok := v.(string)
		if !ok {
			panic(fmt.Sprintf("row %d col %d: want string, got %T", row, col, v))
		}

		return pad(s, typ.Width())
	case format.KindInt8:
		return []byte{byte(int8(toFloat(v)))}
	case format.KindInt16:
		return engine.AppendUint16(nil, uint16(int16(toFloat(v))))
	case format.KindInt32:
		return engine.AppendUint32(nil, uint32(int32(toFloat(v))))
	case format.KindFloat32:
		return engine.AppendUint32(nil, math.Float32bits(float32(toFloat(v))))
	case format.KindFloat64:
		return engine.AppendUint64(nil, math.Float64bits(toFloat(v)))
	default:
		panic(fmt.Sprintf("row %d col %d: unknown kind %v", row, col, typ.Kind()))
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	case float64:
		return n
	default:
		panic(fmt.Sprintf("unsupported numeric value %T", v))
	}
}
