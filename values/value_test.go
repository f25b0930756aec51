package values_test

import (
	"testing"

	"github.com/momentics/bolt-core/values"
)

func TestEqReflexiveSymmetricTransitive(t *testing.T) {
	a := values.Int(42)
	b := values.Int(42)
	c := values.Int(42)
	if !values.Eq(a, a) {
		t.Error("expected reflexive equality")
	}
	if values.Eq(a, b) != values.Eq(b, a) {
		t.Error("expected symmetric equality")
	}
	if values.Eq(a, b) && values.Eq(b, c) && !values.Eq(a, c) {
		t.Error("expected transitive equality")
	}
}

func TestEqContainersRecurse(t *testing.T) {
	l1 := values.List([]values.Value{values.Int(1), values.String("x")})
	l2 := values.List([]values.Value{values.Int(1), values.String("x")})
	if !values.Eq(l1, l2) {
		t.Error("expected equal lists to compare equal")
	}
	l3 := values.List([]values.Value{values.Int(2), values.String("x")})
	if values.Eq(l1, l3) {
		t.Error("expected differing lists to compare unequal")
	}
}

func TestMapEqIsSetEquality(t *testing.T) {
	m1, err := values.Map([]string{"a", "b"}, []values.Value{values.Int(1), values.Int(2)})
	if err != nil {
		t.Fatal(err)
	}
	m2, err := values.Map([]string{"b", "a"}, []values.Value{values.Int(2), values.Int(1)})
	if err != nil {
		t.Fatal(err)
	}
	if !values.Eq(m1, m2) {
		t.Error("expected maps to be order-independent")
	}
}

func TestMapGetFirstDuplicateWins(t *testing.T) {
	m, err := values.Map([]string{"k", "k"}, []values.Value{values.Int(1), values.Int(2)})
	if err != nil {
		t.Fatal(err)
	}
	v, ok := m.MapGet("k")
	if !ok {
		t.Fatal("expected key to be present")
	}
	if got, _ := v.AsInt(); got != 1 {
		t.Errorf("expected first duplicate to win, got %d", got)
	}
}

func TestIsSupportedRejectsBytesUnderV1(t *testing.T) {
	v := values.Bytes([]byte{1, 2, 3})
	if v.IsSupported(1) {
		t.Error("expected Bytes to be rejected under protocol v1")
	}
	if !v.IsSupported(2) {
		t.Error("expected Bytes to be supported under protocol v2")
	}
}

func TestIsSupportedRecursesIntoContainers(t *testing.T) {
	nested := values.List([]values.Value{values.List([]values.Value{values.Bytes([]byte{1})})})
	if nested.IsSupported(1) {
		t.Error("expected nested Bytes to make the whole list unsupported under v1")
	}
}

func TestFloatBitEquality(t *testing.T) {
	if !values.Eq(values.Float(1.5), values.Float(1.5)) {
		t.Error("expected equal floats to compare equal")
	}
	nan := values.Float(nanValue())
	if values.Eq(nan, nan) {
		t.Error("expected NaN to compare unequal to itself")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}
