// Package endian provides byte order utilities for decoding dataset files.
//
// Every multi-byte integer and float in a dataset file is stored in the byte order
// declared by a single marker byte in the file header. This package turns that marker
// into an EndianEngine, which combines the ByteOrder and AppendByteOrder interfaces of
// encoding/binary so the rest of the decoder can stay byte-order agnostic.
//
// # Basic Usage
//
//	engine := endian.FromMarker(markerByte)
//	nvar := int16(engine.Uint16(buf[0:2]))
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import "encoding/binary"

// Byte order markers as written in the second byte of a dataset header.
const (
	MarkerBigEndian    byte = 0x01 // MarkerBigEndian marks a file written by a big-endian (HILO) host.
	MarkerLittleEndian byte = 0x02 // MarkerLittleEndian marks a file written by a little-endian (LOHI) host.
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// FromMarker returns the engine selected by a header byte order marker.
//
// Only MarkerBigEndian selects big-endian; any other value is treated as little-endian.
func FromMarker(marker byte) EndianEngine {
	if marker == MarkerBigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// IsBigEndian reports whether engine decodes big-endian data.
func IsBigEndian(engine EndianEngine) bool {
	return engine == GetBigEndianEngine()
}
