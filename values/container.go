// File: values/container.go
// Author: momentics <momentics@gmail.com>
package values

// List constructs a List value. Elements are copied by reference into the
// returned Value's backing slice; callers that build lists incrementally
// should construct the slice first and pass it once.
func List(items []Value) Value {
	return Value{kind: KindList, list: items}
}

// Map constructs a Map value from parallel key/value slices. Keys need not
// be unique; the first occurrence of a duplicate key wins for lookup
// (spec section 4.2 equality semantics), matching set-equality, not
// sequence-equality.
func Map(keys []string, vals []Value) (Value, error) {
	if len(keys) != len(vals) {
		return Null, errInvalidArgument("map keys and values length mismatch")
	}
	return Value{kind: KindMap, mapKeys: keys, mapVals: vals}, nil
}

// MapGet performs a first-match lookup by key.
func (v Value) MapGet(key string) (Value, bool) {
	if v.kind != KindMap {
		return Null, false
	}
	for i, k := range v.mapKeys {
		if k == key {
			return v.mapVals[i], true
		}
	}
	return Null, false
}

// MapLen returns the number of entries in a Map value.
func (v Value) MapLen() int {
	if v.kind != KindMap {
		return 0
	}
	return len(v.mapKeys)
}

// MapKeys returns the map's keys in construction order.
func (v Value) MapKeys() []string {
	if v.kind != KindMap {
		return nil
	}
	return v.mapKeys
}

// Struct constructs a generic Struct value: the wire transport for nodes,
// relationships, paths and temporal/point values (spec section 3).
func Struct(sig byte, fields []Value) Value {
	return Value{kind: KindStruct, sig: sig, fields: fields}
}

// Signature returns the struct signature byte; 0 for non-Struct values.
func (v Value) Signature() byte {
	if v.kind != KindStruct {
		return 0
	}
	return v.sig
}

// Fields returns the struct's field values; nil for non-Struct values.
func (v Value) Fields() []Value {
	if v.kind != KindStruct {
		return nil
	}
	return v.fields
}
