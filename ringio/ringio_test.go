package ringio_test

import (
	"bytes"
	"testing"

	"github.com/momentics/bolt-core/ringio"
)

// fakeStream is a minimal api.ByteStream backed by in-memory buffers, used to
// observe exactly when RingIO falls through to vectored I/O.
type fakeStream struct {
	written   [][]byte
	in        []byte
	readCalls int
}

func (f *fakeStream) Read(p []byte) (int, error) {
	n := copy(p, f.in)
	f.in = f.in[n:]
	return n, nil
}

func (f *fakeStream) Write(p []byte) (int, error) {
	f.written = append(f.written, append([]byte(nil), p...))
	return len(p), nil
}

func (f *fakeStream) ReadVec(bufs [][]byte) (int, error) {
	f.readCalls++
	total := 0
	for _, b := range bufs {
		n := copy(b, f.in)
		f.in = f.in[n:]
		total += n
		if n < len(b) {
			break
		}
	}
	return total, nil
}

func (f *fakeStream) WriteVec(bufs [][]byte) (int, error) {
	total := 0
	for _, b := range bufs {
		f.written = append(f.written, append([]byte(nil), b...))
		total += len(b)
	}
	return total, nil
}

func (f *fakeStream) Flush() error { return nil }
func (f *fakeStream) Close() error { return nil }

func TestWriteBuffersUnderCapacity(t *testing.T) {
	fs := &fakeStream{}
	rw := ringio.New(fs, 64)
	if _, err := rw.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(fs.written) != 0 {
		t.Fatalf("expected no bytes to hit the stream before Flush, got %d writes", len(fs.written))
	}
	if err := rw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(fs.written) != 1 || string(fs.written[0]) != "hello" {
		t.Fatalf("unexpected flushed bytes: %v", fs.written)
	}
}

func TestWriteOverflowUsesVectoredWrite(t *testing.T) {
	fs := &fakeStream{}
	rw := ringio.New(fs, 8)
	rw.Write([]byte("1234567")) // 7 bytes buffered, 1 byte free left
	big := bytes.Repeat([]byte{'x'}, 20)
	if _, err := rw.Write(big); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(fs.written) == 0 {
		t.Fatal("expected an immediate vectored write on overflow")
	}
	var all []byte
	for _, w := range fs.written {
		all = append(all, w...)
	}
	want := append([]byte("1234567"), big...)
	if !bytes.Equal(all, want) {
		t.Fatalf("overflow write mismatch: got %q want %q", all, want)
	}
}

func TestReadDrainsRingBeforeVectoredRead(t *testing.T) {
	fs := &fakeStream{in: []byte("abcdefgh")}
	rw := ringio.New(fs, 64)
	small := make([]byte, 3)
	n, err := rw.Read(small)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != 3 || string(small) != "abc" {
		t.Fatalf("unexpected first read: %q", small[:n])
	}
	if fs.readCalls != 1 {
		t.Fatalf("expected exactly one vectored read call, got %d", fs.readCalls)
	}
	rest := make([]byte, 5)
	n, err = rw.Read(rest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(rest[:n]) != "defgh" {
		t.Fatalf("unexpected drained bytes: %q", rest[:n])
	}
	if fs.readCalls != 1 {
		t.Fatalf("second read should be satisfied from the ring alone, got %d stream reads", fs.readCalls)
	}
}

func TestFlushOnEmptyRingStillFlushesStream(t *testing.T) {
	fs := &fakeStream{}
	rw := ringio.New(fs, 16)
	if err := rw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
}
