package format

import (
	"math"
	"strconv"
)

// Range is the inclusive valid range of a numeric kind. Values outside of it are
// reserved by the file format as missing-value sentinels.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies within the range, bounds included.
//
// NaN is never ordered against the bounds and is therefore reported as contained.
func (r Range) Contains(v float64) bool {
	return !(v < r.Min || v > r.Max)
}

// The float64 upper bound is asymmetric with its lower bound; this mirrors the format.
// The nominal float64 lower bound, -1.798e+308, lies beyond the float64 range and
// therefore rounds to negative infinity: no finite double is below range.
var validRanges = [...]Range{
	KindInt8:    {Min: -127, Max: 100},
	KindInt16:   {Min: -32767, Max: 32740},
	KindInt32:   {Min: -2147483647, Max: 2147483620},
	KindFloat32: {Min: -1.701e+38, Max: +1.701e+38},
	KindFloat64: {Min: math.Inf(-1), Max: +8.988e+307},
}

// ValidRange returns the valid range of a numeric kind.
// The second result is false for KindString and unknown kinds.
func ValidRange(kind Kind) (Range, bool) {
	if !kind.IsNumeric() {
		return Range{}, false
	}

	return validRanges[kind], true
}

// MissingValue marks a numeric field whose stored value is one of the format's
// reserved missing-value sentinels.
//
// Bound is the upper bound of the kind's valid range and Raw is the decoded
// out-of-range value. A MissingValue is terminal: it carries no recoverable data.
type MissingValue struct {
	Kind  Kind
	Bound float64
	Raw   float64
}

// NewMissingValue creates a MissingValue for a raw value of the given kind.
func NewMissingValue(kind Kind, raw float64) MissingValue {
	r, _ := ValidRange(kind)

	return MissingValue{Kind: kind, Bound: r.Max, Raw: raw}
}

// Code returns the distance of Raw above Bound for integer kinds.
// The system missing value "." has code 1 and the extended values ".a" to ".z"
// have codes 2 to 27. Float kinds and values below the range return 0.
func (m MissingValue) Code() int {
	switch m.Kind {
	case KindInt8, KindInt16, KindInt32:
		if m.Raw > m.Bound {
			return int(m.Raw - m.Bound)
		}
	}

	return 0
}

// String renders the missing value the way the producing application displays it:
// "." for the system missing value, ".a" through ".z" for extended missing values.
func (m MissingValue) String() string {
	code := m.Code()
	if code >= 2 && code <= 27 {
		return "." + string(rune('a'+code-2))
	}

	return "."
}

// GoString implements fmt.GoStringer.
func (m MissingValue) GoString() string {
	return "MissingValue{Kind: " + m.Kind.String() +
		", Bound: " + strconv.FormatFloat(m.Bound, 'g', -1, 64) +
		", Raw: " + strconv.FormatFloat(m.Raw, 'g', -1, 64) + "}"
}
