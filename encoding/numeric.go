package encoding

import (
	"math"

	"github.com/arloliu/dta/endian"
	"github.com/arloliu/dta/format"
)

// DecodeNumeric interprets b as a value of a numeric kind under the given byte order.
//
// b must hold at least kind.Size() bytes; only that many are read.
//
// Returns:
//   - any: the value as its native Go type (int8, int16, int32, float32 or float64),
//     or nil for a non-numeric kind
//   - float64: the same value widened for range checks
func DecodeNumeric(kind format.Kind, b []byte, engine endian.EndianEngine) (any, float64) {
	switch kind {
	case format.KindInt8:
		v := int8(b[0])
		return v, float64(v)
	case format.KindInt16:
		v := int16(engine.Uint16(b))
		return v, float64(v)
	case format.KindInt32:
		v := int32(engine.Uint32(b))
		return v, float64(v)
	case format.KindFloat32:
		v := math.Float32frombits(engine.Uint32(b))
		return v, float64(v)
	case format.KindFloat64:
		v := math.Float64frombits(engine.Uint64(b))
		return v, v
	case format.KindString:
		return nil, 0
	default:
		return nil, 0
	}
}

// numericField decodes one numeric field and applies the missing-value rule.
func numericField(kind format.Kind, b []byte, engine endian.EndianEngine, emitMissing bool) any {
	v, f := DecodeNumeric(kind, b, engine)

	r, _ := format.ValidRange(kind)
	if r.Contains(f) {
		return v
	}

	if emitMissing {
		return format.NewMissingValue(kind, f)
	}

	return nil
}
