// File: values/ops.go
// Author: momentics <momentics@gmail.com>
//
// Per-variant operations dispatched by Kind (and, for structs, by
// signature). The source indexes a hand-rolled vtable from each value's
// header; Go's compiler devirtualizes a switch over a small enum just as
// well, so TypeStr/Eq/IsSupported are plain methods (spec section 9).
package values

// TypeStr returns a human-readable type name, refining Struct into its
// graph-entity subtype where recognised.
func (v Value) TypeStr() string {
	if v.kind == KindStruct {
		switch v.sig {
		case SigNode:
			return "Node"
		case SigRelationship, SigUnboundRel:
			return "Relationship"
		case SigPath:
			return "Path"
		case SigDate, SigLocalDateTime, SigDuration:
			return "Temporal"
		case SigPoint2D, SigPoint3D:
			return "Point"
		}
	}
	return v.kind.String()
}

// Eq implements the deep equality law of spec section 4.2: reflexive,
// symmetric, transitive, with set-equality for Map and element-wise
// comparison for List/Struct.
func Eq(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInt:
		return a.i == b.i
	case KindFloat:
		// Ordinary float equality: NaN != NaN, which is fine because the
		// wire protocol never carries NaN.
		return a.f == b.f
	case KindString:
		return a.s == b.s
	case KindBytes:
		return bytesEqual(a.bytes, b.bytes)
	case KindList:
		return listEq(a.list, b.list)
	case KindMap:
		return mapEq(a, b)
	case KindStruct:
		if a.sig != b.sig {
			return false
		}
		return listEq(a.fields, b.fields)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func listEq(a, b []Value) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// mapEq treats maps as sets of key/value pairs: order is irrelevant and,
// for a key repeated within one map, only the first occurrence (the one
// MapGet would return) participates.
func mapEq(a, b Value) bool {
	af := firstOccurrences(a)
	bf := firstOccurrences(b)
	if len(af) != len(bf) {
		return false
	}
	for k, av := range af {
		bv, ok := bf[k]
		if !ok || !Eq(av, bv) {
			return false
		}
	}
	return true
}

func firstOccurrences(v Value) map[string]Value {
	out := make(map[string]Value, len(v.mapKeys))
	for i, k := range v.mapKeys {
		if _, seen := out[k]; !seen {
			out[k] = v.mapVals[i]
		}
	}
	return out
}

// IsSupported reports whether v (recursively) can be represented under
// protocol version ver. Version 1 rejects Bytes and any v2-only temporal
// or spatial struct anywhere in the subtree.
func (v Value) IsSupported(ver int) bool {
	switch v.kind {
	case KindBytes:
		return ver >= 2
	case KindList:
		for _, e := range v.list {
			if !e.IsSupported(ver) {
				return false
			}
		}
		return true
	case KindMap:
		for _, e := range v.mapVals {
			if !e.IsSupported(ver) {
				return false
			}
		}
		return true
	case KindStruct:
		if ver < 2 {
			switch v.sig {
			case SigDate, SigLocalDateTime, SigDuration, SigPoint2D, SigPoint3D:
				return false
			}
			if len(v.fields) == 4 && v.sig == SigNode {
				return false // v5 element-id form needs v2+
			}
			if len(v.fields) == 8 && v.sig == SigRelationship {
				return false
			}
		}
		for _, f := range v.fields {
			if !f.IsSupported(ver) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
