package meta_test

import (
	"testing"

	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/meta"
	"github.com/momentics/bolt-core/values"
)

func mustMap(t *testing.T, keys []string, vals []values.Value) values.Value {
	t.Helper()
	m, err := values.Map(keys, vals)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	return m
}

func TestExtractFailureParsesPosition(t *testing.T) {
	message := "Invalid input 'x' (line 2, column 5 (offset: 11))\n\"MATCH x \"\n     ^"
	m := mustMap(t,
		[]string{"code", "message"},
		[]values.Value{values.String("Neo.ClientError.Statement.SyntaxError"), values.String(message)},
	)
	d, err := meta.ExtractFailure(m)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !d.HasPosition {
		t.Fatal("expected position to be parsed")
	}
	if d.Line != 2 || d.Column != 5 || d.Offset != 11 {
		t.Fatalf("unexpected position: %+v", d)
	}
	if d.Context != "MATCH x " {
		t.Fatalf("unexpected context: %q", d.Context)
	}
	if d.ContextOffset != 4 {
		t.Fatalf("unexpected context offset: %d", d.ContextOffset)
	}
}

func TestExtractFailureMissingCodeIsProtocolError(t *testing.T) {
	m := mustMap(t, []string{"message"}, []values.Value{values.String("x")})
	_, err := meta.ExtractFailure(m)
	assertProtocolError(t, err)
}

func TestExtractRunSuccessRequiresFields(t *testing.T) {
	m := mustMap(t, []string{}, []values.Value{})
	_, err := meta.ExtractRunSuccess(m)
	assertProtocolError(t, err)
}

func TestExtractRunSuccessParsesFields(t *testing.T) {
	m := mustMap(t,
		[]string{"fields", "result_available_after"},
		[]values.Value{values.List([]values.Value{values.String("x")}), values.Int(0)},
	)
	rm, err := meta.ExtractRunSuccess(m)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(rm.Fields) != 1 || rm.Fields[0] != "x" {
		t.Fatalf("unexpected fields: %+v", rm.Fields)
	}
}

func TestExtractPullSuccessParsesStatsAndType(t *testing.T) {
	stats := mustMap(t, []string{"nodes-created", "relationships-created"}, []values.Value{values.Int(3), values.Int(1)})
	m := mustMap(t,
		[]string{"type", "result_consumed_after", "stats"},
		[]values.Value{values.String("rw"), values.Int(1), stats},
	)
	pm, err := meta.ExtractPullSuccess(m)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if pm.Type != meta.StatementTypeReadWrite {
		t.Fatalf("unexpected type: %v", pm.Type)
	}
	if pm.Stats.NodesCreated != 3 || pm.Stats.RelationshipsCreated != 1 {
		t.Fatalf("unexpected stats: %+v", pm.Stats)
	}
}

func TestExtractPullSuccessRecursesIntoPlan(t *testing.T) {
	child := mustMap(t, []string{"operatorType"}, []values.Value{values.String("NodeByLabelScan")})
	plan := mustMap(t,
		[]string{"operatorType", "children"},
		[]values.Value{values.String("ProduceResults"), values.List([]values.Value{child})},
	)
	m := mustMap(t, []string{"plan"}, []values.Value{plan})
	pm, err := meta.ExtractPullSuccess(m)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if pm.Plan == nil || pm.Plan.OperatorType != "ProduceResults" {
		t.Fatalf("unexpected plan: %+v", pm.Plan)
	}
	if len(pm.Plan.Children) != 1 || pm.Plan.Children[0].OperatorType != "NodeByLabelScan" {
		t.Fatalf("unexpected plan children: %+v", pm.Plan.Children)
	}
}

func assertProtocolError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	if apiErr, ok := err.(*api.Error); !ok || apiErr.Code != api.ErrCodeProtocol {
		t.Fatalf("expected ErrCodeProtocol, got %v", err)
	}
}
