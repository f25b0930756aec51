// File: transport/netconn.go
// Author: momentics <momentics@gmail.com>
//
// NetStream adapts a net.Conn into api.ByteStream. Dialing, TLS and URI
// handling are explicit non-goals of this module (spec section 1); callers
// are expected to construct conn themselves and hand it to NewNetStream.
package transport

import (
	"net"

	"github.com/momentics/bolt-core/api"
)

// NetStream wraps an already-connected net.Conn.
type NetStream struct {
	conn net.Conn
}

// NewNetStream adapts conn to api.ByteStream.
func NewNetStream(conn net.Conn) *NetStream {
	return &NetStream{conn: conn}
}

func (n *NetStream) Read(p []byte) (int, error)  { return n.conn.Read(p) }
func (n *NetStream) Write(p []byte) (int, error) { return n.conn.Write(p) }

// ReadVec reads into the first non-empty buffer only; net.Conn has no
// native readv, so the vectoring collapses to a single Read and the later
// buffers are left untouched.
func (n *NetStream) ReadVec(bufs [][]byte) (int, error) {
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		return n.conn.Read(b)
	}
	return 0, nil
}

// WriteVec writes all buffers using net.Buffers, which performs a real
// writev on platforms that support it.
func (n *NetStream) WriteVec(bufs [][]byte) (int, error) {
	nb := make(net.Buffers, 0, len(bufs))
	total := 0
	for _, b := range bufs {
		if len(b) == 0 {
			continue
		}
		nb = append(nb, b)
		total += len(b)
	}
	if len(nb) == 0 {
		return 0, nil
	}
	n64, err := nb.WriteTo(n.conn)
	return int(n64), err
}

// Flush is a no-op: net.Conn has no user-space write buffer of its own.
func (n *NetStream) Flush() error { return nil }

func (n *NetStream) Close() error { return n.conn.Close() }

var _ api.ByteStream = (*NetStream)(nil)
