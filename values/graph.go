// File: values/graph.go
// Author: momentics <momentics@gmail.com>
//
// Node, Relationship and Path are the graph-entity Struct variants (spec
// section 3). Constructors validate structural invariants and return a
// wrapped *api.Error instead of corrupting the enclosing container on
// failure — the Go idiom for the source's "return Null with error set".
package values

// NewNodeFromFields validates and wraps a decoded Node struct. v1 carries
// 3 fields (id, labels, props); v5 adds a 4th element-id String field.
func NewNodeFromFields(fields []Value) (Value, error) {
	if len(fields) != 3 && len(fields) != 4 {
		return Null, errInvalidArgument("node requires 3 or 4 fields")
	}
	if _, ok := fields[0].AsInt(); !ok {
		return Null, errInvalidArgument("node id must be an Integer")
	}
	labels, ok := fields[1].AsList()
	if !ok {
		return Null, errInvalidArgument("node labels must be a List")
	}
	for _, l := range labels {
		if l.Kind() != KindString {
			return Null, errInvalidLabelType()
		}
	}
	if fields[2].Kind() != KindMap {
		return Null, errInvalidArgument("node properties must be a Map")
	}
	if len(fields) == 4 && fields[3].Kind() != KindString {
		return Null, errInvalidArgument("node element-id must be a String")
	}
	return Struct(SigNode, fields), nil
}

// NewNode is the convenience constructor for application code building a
// v1-shaped node (no element-id).
func NewNode(id int64, labels []string, props Value) (Value, error) {
	labelVals := make([]Value, len(labels))
	for i, l := range labels {
		labelVals[i] = String(l)
	}
	return NewNodeFromFields([]Value{Int(id), List(labelVals), props})
}

// NodeID returns the node's identity field.
func (v Value) NodeID() (int64, bool) {
	if v.kind != KindStruct || v.sig != SigNode {
		return 0, false
	}
	return v.fields[0].AsInt()
}

// NodeLabels returns the node's label list.
func (v Value) NodeLabels() ([]Value, bool) {
	if v.kind != KindStruct || v.sig != SigNode {
		return nil, false
	}
	return v.fields[1].AsList()
}

// NodeProps returns the node's property map.
func (v Value) NodeProps() (Value, bool) {
	if v.kind != KindStruct || v.sig != SigNode {
		return Null, false
	}
	return v.fields[2], true
}

// NodeElementID returns the v5 element-id, if present.
func (v Value) NodeElementID() (string, bool) {
	if v.kind != KindStruct || v.sig != SigNode || len(v.fields) != 4 {
		return "", false
	}
	return v.fields[3].AsString()
}

// The source's relationship constructor accepts both a 5-field v1 form and
// an 8-field v5 form through a single predicate that inspects fields[1]
// twice — spec section 9 flags this as an unresolved ambiguity around the
// unbound case. bolt-core resolves it by giving bound and unbound
// relationships distinct constructors instead of one overloaded predicate,
// so there is no form where a null start/end node can be mistaken for the
// unbound 3-field shape.

// NewRelationshipFromFields validates a bound Relationship: v1 carries 5
// fields (id, start, end, type, props); v5 adds 3 element-id String fields.
func NewRelationshipFromFields(fields []Value) (Value, error) {
	if len(fields) != 5 && len(fields) != 8 {
		return Null, errInvalidArgument("bound relationship requires 5 or 8 fields")
	}
	for _, idx := range []int{0, 1, 2} {
		if _, ok := fields[idx].AsInt(); !ok {
			return Null, errInvalidArgument("relationship id/start/end must be Integers")
		}
	}
	if fields[3].Kind() != KindString {
		return Null, errInvalidArgument("relationship type must be a String")
	}
	if fields[4].Kind() != KindMap {
		return Null, errInvalidArgument("relationship properties must be a Map")
	}
	if len(fields) == 8 {
		for _, idx := range []int{5, 6, 7} {
			if fields[idx].Kind() != KindString {
				return Null, errInvalidArgument("relationship element-id fields must be Strings")
			}
		}
	}
	return Struct(SigRelationship, fields), nil
}

// NewRelationship is the convenience v1 constructor for a bound relationship.
func NewRelationship(id, start, end int64, relType string, props Value) (Value, error) {
	return NewRelationshipFromFields([]Value{Int(id), Int(start), Int(end), String(relType), props})
}

// NewUnboundRelationshipFromFields validates an unbound Relationship (no
// start/end, used inside Path structs): 3 fields (id, type, props).
func NewUnboundRelationshipFromFields(fields []Value) (Value, error) {
	if len(fields) != 3 {
		return Null, errInvalidArgument("unbound relationship requires 3 fields")
	}
	if _, ok := fields[0].AsInt(); !ok {
		return Null, errInvalidArgument("relationship id must be an Integer")
	}
	if fields[1].Kind() != KindString {
		return Null, errInvalidArgument("relationship type must be a String")
	}
	if fields[2].Kind() != KindMap {
		return Null, errInvalidArgument("relationship properties must be a Map")
	}
	return Struct(SigUnboundRel, fields), nil
}

// IsBoundRelationship reports whether v is a bound Relationship struct.
func (v Value) IsBoundRelationship() bool {
	return v.kind == KindStruct && v.sig == SigRelationship
}

// IsUnboundRelationship reports whether v is an unbound Relationship struct.
func (v Value) IsUnboundRelationship() bool {
	return v.kind == KindStruct && v.sig == SigUnboundRel
}

// RelationshipID returns the relationship's identity field (bound or unbound).
func (v Value) RelationshipID() (int64, bool) {
	if !v.IsBoundRelationship() && !v.IsUnboundRelationship() {
		return 0, false
	}
	return v.fields[0].AsInt()
}

// NewPathFromFields validates a Path struct: nodes (List<Node>), rels
// (List<Relationship, unbound>), seq (List<Int>, even length).
//
// seq encodes alternating (relationship-index, node-index) pairs relative
// to nodes[0]: a nonzero relationship-index r (1-based, sign selects
// traversal direction) must satisfy 1 <= |r| <= len(rels); a node-index
// must satisfy 0 <= idx < len(nodes).
func NewPathFromFields(nodes, rels, seq []Value) (Value, error) {
	for _, n := range nodes {
		if n.Kind() != KindStruct || n.sig != SigNode {
			return Null, errInvalidPathNodeType()
		}
	}
	for _, r := range rels {
		if r.Kind() != KindStruct || r.sig != SigUnboundRel {
			return Null, errInvalidPathRelationshipType()
		}
	}
	if len(seq)%2 != 0 {
		return Null, errInvalidPathSequenceLength()
	}
	for i := 0; i < len(seq); i += 2 {
		relIdx, ok := seq[i].AsInt()
		if !ok {
			return Null, errInvalidPathSequenceIdxType()
		}
		if relIdx == 0 || relIdx > int64(len(rels)) || relIdx < -int64(len(rels)) {
			return Null, errInvalidPathSequenceIdxRange()
		}
		nodeIdx, ok := seq[i+1].AsInt()
		if !ok {
			return Null, errInvalidPathSequenceIdxType()
		}
		if nodeIdx < 0 || nodeIdx >= int64(len(nodes)) {
			return Null, errInvalidPathSequenceIdxRange()
		}
	}
	fields := []Value{List(nodes), List(rels), List(seq)}
	return Struct(SigPath, fields), nil
}

// PathNodes returns a path's node list.
func (v Value) PathNodes() ([]Value, bool) {
	if v.kind != KindStruct || v.sig != SigPath {
		return nil, false
	}
	return v.fields[0].AsList()
}

// PathRelationships returns a path's unbound relationship list.
func (v Value) PathRelationships() ([]Value, bool) {
	if v.kind != KindStruct || v.sig != SigPath {
		return nil, false
	}
	return v.fields[1].AsList()
}

// PathSequence returns a path's index sequence.
func (v Value) PathSequence() ([]Value, bool) {
	if v.kind != KindStruct || v.sig != SigPath {
		return nil, false
	}
	return v.fields[2].AsList()
}
