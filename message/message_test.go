package message_test

import (
	"bytes"
	"testing"

	"github.com/momentics/bolt-core/chunking"
	"github.com/momentics/bolt-core/message"
	"github.com/momentics/bolt-core/values"
)

func TestRunRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := chunking.NewEncoder(&buf, chunking.DefaultMinChunkSize, chunking.MaxChunkSize)
	w := message.NewWriter(enc)

	params, err := values.Map([]string{"limit"}, []values.Value{values.Int(10)})
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if err := w.Write(message.Run("MATCH (n) RETURN n", params)); err != nil {
		t.Fatalf("write: %v", err)
	}

	dec := chunking.NewDecoder(&buf)
	r := message.NewReader(dec, nil, nil)
	got, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Sig != message.SigRun {
		t.Fatalf("expected RUN, got %s", got.Sig)
	}
	if len(got.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got.Fields))
	}
	if s, _ := got.Fields[0].AsString(); s != "MATCH (n) RETURN n" {
		t.Fatalf("unexpected statement: %q", s)
	}
	if v, ok := got.Fields[1].MapGet("limit"); !ok {
		t.Fatalf("missing params field: %+v", got.Fields[1])
	} else if n, _ := v.AsInt(); n != 10 {
		t.Fatalf("unexpected params: %+v", v)
	}
}

func TestResponseSignaturesClassifyCorrectly(t *testing.T) {
	responses := []message.Signature{message.SigSuccess, message.SigRecord, message.SigIgnored, message.SigFailure}
	for _, sig := range responses {
		if !sig.IsResponse() {
			t.Errorf("%s should be classified as a response", sig)
		}
	}
	requests := []message.Signature{message.SigInit, message.SigRun, message.SigPullAll, message.SigReset}
	for _, sig := range requests {
		if sig.IsResponse() {
			t.Errorf("%s should not be classified as a response", sig)
		}
	}
}

func TestFailureMessageRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := chunking.NewEncoder(&buf, chunking.DefaultMinChunkSize, chunking.MaxChunkSize)
	w := message.NewWriter(enc)

	meta, err := values.Map(
		[]string{"code", "message"},
		[]values.Value{values.String("Neo.ClientError.Statement.SyntaxError"), values.String("x")},
	)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if err := w.Write(message.New(message.SigFailure, meta)); err != nil {
		t.Fatalf("write: %v", err)
	}

	dec := chunking.NewDecoder(&buf)
	r := message.NewReader(dec, nil, nil)
	got, err := r.Read()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Sig != message.SigFailure {
		t.Fatalf("expected FAILURE, got %s", got.Sig)
	}
	codeVal, _ := got.Fields[0].MapGet("code")
	code, _ := codeVal.AsString()
	if code != "Neo.ClientError.Statement.SyntaxError" {
		t.Fatalf("unexpected code: %q", code)
	}
}
