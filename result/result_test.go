package result_test

import (
	"net"
	"testing"
	"time"

	"github.com/momentics/bolt-core/chunking"
	"github.com/momentics/bolt-core/control"
	"github.com/momentics/bolt-core/message"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/result"
	"github.com/momentics/bolt-core/session"
	"github.com/momentics/bolt-core/transport"
	"github.com/momentics/bolt-core/values"
)

type fakeServer struct {
	w *message.Writer
	r *message.Reader
}

func newFakeServer(conn net.Conn) *fakeServer {
	enc := chunking.NewEncoder(conn, chunking.DefaultMinChunkSize, chunking.MaxChunkSize)
	dec := chunking.NewDecoder(conn)
	return &fakeServer{w: message.NewWriter(enc), r: message.NewReader(dec, nil, nil)}
}

func (f *fakeServer) expect(t *testing.T, sig message.Signature) message.Message {
	t.Helper()
	msg, err := f.r.Read()
	if err != nil {
		t.Fatalf("server read: %v", err)
	}
	if msg.Sig != sig {
		t.Fatalf("expected %s from client, got %s", sig, msg.Sig)
	}
	return msg
}

func (f *fakeServer) send(t *testing.T, msg message.Message) {
	t.Helper()
	if err := f.w.Write(msg); err != nil {
		t.Fatalf("server write: %v", err)
	}
}

// newTestSession wires a Session over a real loopback TCP socket; see
// session/session_test.go for why net.Pipe's lockstep rendezvous is
// unsuitable for a pipelined writer.
func newTestSession(t *testing.T) (*session.Session, *fakeServer) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	serverConnCh := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			serverConnCh <- conn
		}
	}()

	client, err := net.Dial("tcp", ln.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	server := <-serverConnCh
	t.Cleanup(func() { server.Close() })

	s := session.New(transport.NewNetStream(client), control.DefaultDriverConfig(), control.NewMetricsRegistry())
	return s, newFakeServer(server)
}

func successMeta(t *testing.T, keys []string, vals []values.Value) values.Value {
	t.Helper()
	m, err := values.Map(keys, vals)
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	return m
}

// TestRunPullAllOneRow exercises spec scenario (A): RUN then PULL_ALL
// yielding one record before the terminal SUCCESS.
func TestRunPullAllOneRow(t *testing.T) {
	s, fs := newTestSession(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fs.expect(t, message.SigRun)
		fs.send(t, message.New(message.SigSuccess, successMeta(t,
			[]string{"fields"}, []values.Value{values.List([]values.Value{values.String("n")})})))
		fs.expect(t, message.SigPullAll)
		fs.send(t, message.New(message.SigRecord, values.List([]values.Value{values.Int(42)})))
		fs.send(t, message.New(message.SigSuccess, successMeta(t,
			[]string{"type", "result_consumed_after"}, []values.Value{values.String("r"), values.Int(1)})))
	}()

	arena := pool.NewArena(64)
	defer arena.DrainTo(0)
	params, _ := values.Map(nil, nil)

	st, err := result.Run(s, arena, "MATCH (n) RETURN n", params, true)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	n, err := st.NFields()
	if err != nil {
		t.Fatalf("nfields: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 field, got %d", n)
	}
	if name, err := st.FieldName(0); err != nil || name != "n" {
		t.Fatalf("field name: %q, %v", name, err)
	}

	rec, err := st.FetchNext()
	if err != nil {
		t.Fatalf("fetch next: %v", err)
	}
	if rec == nil {
		t.Fatal("expected a record, got end of stream")
	}
	if v := rec.Get(0); func() bool { n, ok := v.AsInt(); return !ok || n != 42 }() {
		t.Fatalf("unexpected record value: %+v", rec.Get(0))
	}

	rec, err = st.FetchNext()
	if err != nil {
		t.Fatalf("fetch next (eof): %v", err)
	}
	if rec != nil {
		t.Fatal("expected end of stream")
	}

	if err := st.CheckFailure(); err != nil {
		t.Fatalf("unexpected failure: %v", err)
	}
	if typ := st.StatementType(); typ != 1 { // meta.StatementTypeRead
		t.Fatalf("unexpected statement type: %v", typ)
	}
	if ca := st.ConsumedAfter(); ca != 1 {
		t.Fatalf("unexpected consumed_after: %d", ca)
	}
	if c := st.Count(); c != 1 {
		t.Fatalf("expected count 1, got %d", c)
	}

	st.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting on fake server")
	}
}

// TestRunFailurePropagates checks that a FAILURE response to RUN surfaces
// as a statement error with details.
func TestRunFailurePropagates(t *testing.T) {
	s, fs := newTestSession(t)

	done := make(chan struct{})
	go func() {
		defer close(done)
		fs.expect(t, message.SigRun)
		fs.send(t, message.New(message.SigFailure, successMeta(t,
			[]string{"code", "message"},
			[]values.Value{values.String("Neo.ClientError.Statement.SyntaxError"), values.String("bad query")})))
		fs.expect(t, message.SigPullAll)
		fs.send(t, message.New(message.SigIgnored))
	}()

	arena := pool.NewArena(64)
	defer arena.DrainTo(0)
	params, _ := values.Map(nil, nil)

	st, err := result.Run(s, arena, "THIS IS NOT CYPHER", params, true)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, err := st.NFields(); err == nil {
		t.Fatal("expected NFields to surface the RUN failure")
	}

	details, ok := st.FailureDetails()
	if !ok {
		t.Fatal("expected failure details to be populated")
	}
	if details.Code != "Neo.ClientError.Statement.SyntaxError" {
		t.Fatalf("unexpected failure code: %q", details.Code)
	}

	rec, err := st.FetchNext()
	if rec != nil || err == nil {
		t.Fatalf("expected FetchNext to surface the failure, got rec=%v err=%v", rec, err)
	}

	st.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting on fake server")
	}
}
