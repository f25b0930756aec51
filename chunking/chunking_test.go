package chunking_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/momentics/bolt-core/chunking"
)

func TestFrameRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{1, 2, 3},
		bytes.Repeat([]byte{0xAB}, 70000), // spans multiple max-size chunks
	}
	for _, p := range payloads {
		var buf bytes.Buffer
		enc := chunking.NewEncoder(&buf, chunking.DefaultMinChunkSize, chunking.MaxChunkSize)
		if _, err := enc.Write(p); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := enc.EndMessage(); err != nil {
			t.Fatalf("end message: %v", err)
		}
		dec := chunking.NewDecoder(&buf)
		got, err := dec.ReadMessage()
		if err != nil {
			t.Fatalf("read message: %v", err)
		}
		if !bytes.Equal(got, p) {
			t.Errorf("round trip mismatch: want %d bytes got %d bytes", len(p), len(got))
		}
	}
}

func TestMessageAlwaysTerminatesWithEmptyChunk(t *testing.T) {
	var buf bytes.Buffer
	enc := chunking.NewEncoder(&buf, chunking.DefaultMinChunkSize, chunking.MaxChunkSize)
	enc.Write([]byte("hello"))
	enc.EndMessage()
	b := buf.Bytes()
	last2 := b[len(b)-2:]
	if binary.BigEndian.Uint16(last2) != 0 {
		t.Error("expected message to terminate with an empty chunk")
	}
}

func TestChunkBoundaryAt65535And65536(t *testing.T) {
	payload := bytes.Repeat([]byte{0x42}, 65535)
	var buf bytes.Buffer
	enc := chunking.NewEncoder(&buf, chunking.MaxChunkSize, chunking.MaxChunkSize)
	enc.Write(payload)
	enc.EndMessage()
	// Expect exactly two chunk headers: (65535, data) (0, empty).
	b := buf.Bytes()
	if binary.BigEndian.Uint16(b[:2]) != 65535 {
		t.Fatalf("expected first chunk size 65535, got %d", binary.BigEndian.Uint16(b[:2]))
	}
	tail := b[2+65535:]
	if binary.BigEndian.Uint16(tail[:2]) != 0 {
		t.Fatalf("expected terminator chunk after exactly one data chunk")
	}

	payload2 := bytes.Repeat([]byte{0x42}, 65536)
	var buf2 bytes.Buffer
	enc2 := chunking.NewEncoder(&buf2, chunking.MaxChunkSize, chunking.MaxChunkSize)
	enc2.Write(payload2)
	enc2.EndMessage()
	b2 := buf2.Bytes()
	if binary.BigEndian.Uint16(b2[:2]) != 65535 {
		t.Fatalf("expected first chunk size 65535, got %d", binary.BigEndian.Uint16(b2[:2]))
	}
	secondHdr := b2[2+65535:]
	if binary.BigEndian.Uint16(secondHdr[:2]) != 1 {
		t.Fatalf("expected second chunk size 1, got %d", binary.BigEndian.Uint16(secondHdr[:2]))
	}
}
