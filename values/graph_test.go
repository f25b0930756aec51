package values_test

import (
	"testing"

	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/values"
)

func mustMap(t *testing.T) values.Value {
	t.Helper()
	m, err := values.Map(nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestPathRejectsZeroRelationshipIndex(t *testing.T) {
	node, err := values.NewNode(1, nil, mustMap(t))
	if err != nil {
		t.Fatal(err)
	}
	rel, err := values.NewUnboundRelationshipFromFields([]values.Value{values.Int(1), values.String("KNOWS"), mustMap(t)})
	if err != nil {
		t.Fatal(err)
	}
	_, err = values.NewPathFromFields(
		[]values.Value{node, node},
		[]values.Value{rel},
		[]values.Value{values.Int(0), values.Int(0)},
	)
	if err == nil {
		t.Fatal("expected error for zero relationship index")
	}
	if apiErr, ok := err.(*api.Error); !ok || apiErr.Code != api.ErrCodeInvalidPathSequenceIdxRange {
		t.Errorf("expected ErrCodeInvalidPathSequenceIdxRange, got %v", err)
	}
}

func TestPathRejectsOddSequenceLength(t *testing.T) {
	node, err := values.NewNode(1, nil, mustMap(t))
	if err != nil {
		t.Fatal(err)
	}
	_, err = values.NewPathFromFields(
		[]values.Value{node},
		nil,
		[]values.Value{values.Int(1)},
	)
	if err == nil {
		t.Fatal("expected error for odd sequence length")
	}
	if apiErr, ok := err.(*api.Error); !ok || apiErr.Code != api.ErrCodeInvalidPathSequenceLength {
		t.Errorf("expected ErrCodeInvalidPathSequenceLength, got %v", err)
	}
}

func TestPathAcceptsValidSequence(t *testing.T) {
	n1, _ := values.NewNode(1, []string{"Person"}, mustMap(t))
	n2, _ := values.NewNode(2, []string{"Person"}, mustMap(t))
	rel, err := values.NewUnboundRelationshipFromFields([]values.Value{values.Int(9), values.String("KNOWS"), mustMap(t)})
	if err != nil {
		t.Fatal(err)
	}
	p, err := values.NewPathFromFields(
		[]values.Value{n1, n2},
		[]values.Value{rel},
		[]values.Value{values.Int(1), values.Int(1)},
	)
	if err != nil {
		t.Fatalf("expected valid path to construct, got %v", err)
	}
	nodes, _ := p.PathNodes()
	if len(nodes) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(nodes))
	}
}

func TestNodeRejectsNonStringLabel(t *testing.T) {
	_, err := values.NewNodeFromFields([]values.Value{
		values.Int(1),
		values.List([]values.Value{values.Int(1)}),
		mustMap(t),
	})
	if err == nil {
		t.Fatal("expected error for non-string label")
	}
	if apiErr, ok := err.(*api.Error); !ok || apiErr.Code != api.ErrCodeInvalidLabelType {
		t.Errorf("expected ErrCodeInvalidLabelType, got %v", err)
	}
}

func TestBoundAndUnboundRelationshipAreDistinctConstructors(t *testing.T) {
	bound, err := values.NewRelationship(1, 2, 3, "KNOWS", mustMap(t))
	if err != nil {
		t.Fatal(err)
	}
	if !bound.IsBoundRelationship() {
		t.Error("expected bound relationship")
	}
	unbound, err := values.NewUnboundRelationshipFromFields([]values.Value{values.Int(1), values.String("KNOWS"), mustMap(t)})
	if err != nil {
		t.Fatal(err)
	}
	if !unbound.IsUnboundRelationship() {
		t.Error("expected unbound relationship")
	}
}
