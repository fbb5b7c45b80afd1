package format

import "github.com/arloliu/dta/endian"

// Version is the format revision stored in the first header byte.
type Version int

const (
	Version113 Version = 113 // Version113 is the layout written by Stata 8 and 9.
	Version114 Version = 114 // Version114 is the layout written by Stata 10.
)

// Descriptor widths that depend on the format version.
const (
	DisplayFormatWidthV113 = 11 // DisplayFormatWidthV113 is the display format width for versions up to 113.
	DisplayFormatWidthV114 = 49 // DisplayFormatWidthV114 is the display format width for later versions.
)

func (v Version) String() string {
	switch v {
	case Version113:
		return "Stata 8/9"
	case Version114:
		return "Stata 10"
	default:
		return "unknown"
	}
}

// DisplayFormatWidth returns the on-disk width of one display format entry.
func (v Version) DisplayFormatWidth() int {
	if v <= Version113 {
		return DisplayFormatWidthV113
	}

	return DisplayFormatWidthV114
}

// ByteOrder is the byte order declared by a file header.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota // LittleEndian is the LOHI byte order.
	BigEndian                     // BigEndian is the HILO byte order.
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "big-endian"
	}

	return "little-endian"
}

// ByteOrderFromMarker decodes the header byte order marker.
func ByteOrderFromMarker(marker byte) ByteOrder {
	if endian.IsBigEndian(endian.FromMarker(marker)) {
		return BigEndian
	}

	return LittleEndian
}

// Engine returns the endian engine decoding this byte order.
func (o ByteOrder) Engine() endian.EndianEngine {
	if o == BigEndian {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}
