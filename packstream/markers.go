// Package packstream implements the PackStream binary encoding used to
// serialize values.Value onto the wire (spec section 4.3 / 6).
//
// Encoding is single-dispatch on values.Kind (plus struct signature),
// matching the teacher's WS frame codec in spirit: markers are bit-exact
// constants, multi-byte fields are big-endian, and decoding grows into a
// caller-supplied pool.Arena so that a whole inbound message's allocations
// share the request's lifetime.
//
// Author: momentics <momentics@gmail.com>
package packstream

const (
	MarkerNull  = 0xC0
	MarkerFalse = 0xC2
	MarkerTrue  = 0xC3

	MarkerInt8  = 0xC8
	MarkerInt16 = 0xC9
	MarkerInt32 = 0xCA
	MarkerInt64 = 0xCB

	MarkerFloat64 = 0xC1

	MarkerTinyStringMin = 0x80
	MarkerTinyStringMax = 0x8F
	MarkerString8       = 0xD0
	MarkerString16      = 0xD1
	MarkerString32      = 0xD2

	MarkerTinyListMin = 0x90
	MarkerTinyListMax = 0x9F
	MarkerList8       = 0xD4
	MarkerList16      = 0xD5
	MarkerList32      = 0xD6

	MarkerTinyMapMin = 0xA0
	MarkerTinyMapMax = 0xAF
	MarkerMap8       = 0xD8
	MarkerMap16      = 0xD9
	MarkerMap32      = 0xDA

	MarkerTinyStructMin = 0xB0
	MarkerTinyStructMax = 0xBF

	// Bytes markers, protocol v2 only.
	MarkerBytes8  = 0xCC
	MarkerBytes16 = 0xCD
	MarkerBytes32 = 0xCE

	tinyIntPosMax = 0x7F // tiny-int positive range: 0x00..0x7F
	tinyIntNegMin = 0xF0 // tiny-int negative range: 0xF0..0xFF (-16..-1)
)
