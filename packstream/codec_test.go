package packstream_test

import (
	"bytes"
	"testing"

	"github.com/momentics/bolt-core/packstream"
	"github.com/momentics/bolt-core/values"
)

func roundTrip(t *testing.T, v values.Value) values.Value {
	t.Helper()
	var buf bytes.Buffer
	if err := packstream.NewWriter(&buf).WriteValue(v); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := packstream.NewReader(&buf, nil, nil).ReadValue()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return got
}

func TestRoundTripScalars(t *testing.T) {
	cases := []values.Value{
		values.Null,
		values.Bool(true),
		values.Bool(false),
		values.Int(0),
		values.Int(-16),
		values.Int(127),
		values.Int(128),
		values.Int(-129),
		values.Int(1 << 40),
		values.Int(-(1 << 40)),
		values.Float(3.14159),
		values.String(""),
		values.String("hello, bolt"),
	}
	for _, v := range cases {
		got := roundTrip(t, v)
		if !values.Eq(got, v) {
			t.Errorf("round trip mismatch: want %v got %v", v, got)
		}
	}
}

func TestRoundTripBytesRequiresV2(t *testing.T) {
	v := values.Bytes([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	got := roundTrip(t, v)
	if !values.Eq(got, v) {
		t.Errorf("round trip mismatch: want %v got %v", v, got)
	}
	if v.IsSupported(1) {
		t.Error("expected Bytes to be unsupported under protocol v1")
	}
}

func TestRoundTripListAndMap(t *testing.T) {
	m, err := values.Map([]string{"x", "y"}, []values.Value{values.Int(1), values.String("z")})
	if err != nil {
		t.Fatal(err)
	}
	list := values.List([]values.Value{values.Int(1), values.String("two"), m})
	got := roundTrip(t, list)
	if !values.Eq(got, list) {
		t.Errorf("round trip mismatch: want %v got %v", list, got)
	}
}

func TestRoundTripLargeList(t *testing.T) {
	items := make([]values.Value, 5000)
	for i := range items {
		items[i] = values.Int(int64(i))
	}
	list := values.List(items)
	got := roundTrip(t, list)
	if !values.Eq(got, list) {
		t.Errorf("round trip mismatch for large list")
	}
}

func TestRoundTripNode(t *testing.T) {
	props, _ := values.Map([]string{"name"}, []values.Value{values.String("Alice")})
	node, err := values.NewNode(1, []string{"Person"}, props)
	if err != nil {
		t.Fatal(err)
	}
	got := roundTrip(t, node)
	if !values.Eq(got, node) {
		t.Errorf("round trip mismatch for node: want %v got %v", node, got)
	}
	if got.TypeStr() != "Node" {
		t.Errorf("expected TypeStr Node, got %s", got.TypeStr())
	}
}
