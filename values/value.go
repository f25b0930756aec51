// Package values implements the Bolt value model: a tagged variant tree
// (spec section 3) with per-variant dispatch for printing, equality,
// serialization and protocol-version gating (spec section 4.2).
//
// Value is a struct rather than an interface, the same choice the teacher
// makes for api.Buffer, to keep the hot construction/comparison path free
// of interface boxing.
//
// Author: momentics <momentics@gmail.com>
package values

// Kind tags the active variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	KindStruct
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Boolean"
	case KindInt:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindList:
		return "List"
	case KindMap:
		return "Map"
	case KindStruct:
		return "Struct"
	default:
		return "Unknown"
	}
}

// Struct signature bytes (spec section 3/4.6).
const (
	SigNode         = 0x4E
	SigRelationship = 0x52
	SigUnboundRel   = 0x72
	SigPath         = 0x50
)

// Value is the tagged union over every Bolt wire variant. Container
// payloads (List/Map/Struct fields) reference slices that are considered
// owned by whatever arena produced them; Value itself never frees memory.
type Value struct {
	kind Kind

	b     bool
	i     int64
	f     float64
	s     string
	bytes []byte

	list []Value

	mapKeys []string
	mapVals []Value

	sig    byte
	fields []Value
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

// Bool constructs a Boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int constructs a signed 64-bit Integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float constructs an IEEE-754 double Float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String constructs a UTF-8 String value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Bytes constructs a Bytes value (protocol v2 only; isSupported rejects it
// under v1).
func Bytes(b []byte) Value { return Value{kind: KindBytes, bytes: b} }

// Kind reports the active variant.
func (v Value) Kind() Kind { return v.kind }

// AsBool returns the payload of a Boolean value; ok is false otherwise.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInt returns the payload of an Integer value; ok is false otherwise.
func (v Value) AsInt() (int64, bool) { return v.i, v.kind == KindInt }

// AsFloat returns the payload of a Float value; ok is false otherwise.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsString returns the payload of a String value; ok is false otherwise.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// AsBytes returns the payload of a Bytes value; ok is false otherwise.
func (v Value) AsBytes() ([]byte, bool) { return v.bytes, v.kind == KindBytes }

// AsList returns the elements of a List value; ok is false otherwise.
func (v Value) AsList() ([]Value, bool) { return v.list, v.kind == KindList }

// IsNull reports whether v is the Null singleton.
func (v Value) IsNull() bool { return v.kind == KindNull }
