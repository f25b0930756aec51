// File: packstream/decode.go
// Author: momentics <momentics@gmail.com>
//
// Decoding is symmetric with encode.go and grows into a caller-supplied
// pool.Arena (spec section 4.3): payload bytes for String/Bytes values are
// pulled from an api.BufferPool and the buffer's release is registered with
// the arena, so every allocation made while decoding one inbound message is
// freed together when the owning request's arena drains.
package packstream

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/values"
)

var errTruncated = errors.New("packstream: truncated input")

// Reader deserializes values.Value from an underlying io.Reader.
type Reader struct {
	r       io.Reader
	arena   *pool.Arena
	bufPool api.BufferPool
	buf     [8]byte
}

// NewReader wraps r. arena receives the lifetime of payload scratch buffers;
// bufPool supplies those buffers. Both may be nil, in which case scratch
// memory is allocated directly (useful for tests and one-shot decodes).
func NewReader(r io.Reader, arena *pool.Arena, bufPool api.BufferPool) *Reader {
	return &Reader{r: r, arena: arena, bufPool: bufPool}
}

func (d *Reader) readFull(n int) ([]byte, error) {
	if d.bufPool == nil {
		b := make([]byte, n)
		if _, err := io.ReadFull(d.r, b); err != nil {
			return nil, errTruncated
		}
		return b, nil
	}
	buf := d.bufPool.Get(n)
	if d.arena != nil {
		d.arena.Add(buf.Release)
	}
	if _, err := io.ReadFull(d.r, buf.Data); err != nil {
		return nil, errTruncated
	}
	return buf.Data, nil
}

func (d *Reader) readByte() (byte, error) {
	if _, err := io.ReadFull(d.r, d.buf[:1]); err != nil {
		return 0, errTruncated
	}
	return d.buf[0], nil
}

func (d *Reader) readUint16() (uint16, error) {
	if _, err := io.ReadFull(d.r, d.buf[:2]); err != nil {
		return 0, errTruncated
	}
	return binary.BigEndian.Uint16(d.buf[:2]), nil
}

func (d *Reader) readUint32() (uint32, error) {
	if _, err := io.ReadFull(d.r, d.buf[:4]); err != nil {
		return 0, errTruncated
	}
	return binary.BigEndian.Uint32(d.buf[:4]), nil
}

// ReadValue decodes the next PackStream-encoded value.
func (d *Reader) ReadValue() (values.Value, error) {
	marker, err := d.readByte()
	if err != nil {
		return values.Null, err
	}
	return d.readValueFromMarker(marker)
}

func (d *Reader) readValueFromMarker(marker byte) (values.Value, error) {
	switch {
	case marker == MarkerNull:
		return values.Null, nil
	case marker == MarkerFalse:
		return values.Bool(false), nil
	case marker == MarkerTrue:
		return values.Bool(true), nil
	case marker <= tinyIntPosMax:
		return values.Int(int64(int8(marker))), nil
	case marker >= tinyIntNegMin:
		return values.Int(int64(int8(marker))), nil
	case marker == MarkerInt8:
		b, err := d.readByte()
		if err != nil {
			return values.Null, err
		}
		return values.Int(int64(int8(b))), nil
	case marker == MarkerInt16:
		u, err := d.readUint16()
		if err != nil {
			return values.Null, err
		}
		return values.Int(int64(int16(u))), nil
	case marker == MarkerInt32:
		u, err := d.readUint32()
		if err != nil {
			return values.Null, err
		}
		return values.Int(int64(int32(u))), nil
	case marker == MarkerInt64:
		if _, err := io.ReadFull(d.r, d.buf[:8]); err != nil {
			return values.Null, errTruncated
		}
		return values.Int(int64(binary.BigEndian.Uint64(d.buf[:8]))), nil
	case marker == MarkerFloat64:
		if _, err := io.ReadFull(d.r, d.buf[:8]); err != nil {
			return values.Null, errTruncated
		}
		return values.Float(math.Float64frombits(binary.BigEndian.Uint64(d.buf[:8]))), nil
	case marker >= MarkerTinyStringMin && marker <= MarkerTinyStringMax:
		return d.readString(int(marker & 0x0F))
	case marker == MarkerString8:
		n, err := d.readByte()
		if err != nil {
			return values.Null, err
		}
		return d.readString(int(n))
	case marker == MarkerString16:
		n, err := d.readUint16()
		if err != nil {
			return values.Null, err
		}
		return d.readString(int(n))
	case marker == MarkerString32:
		n, err := d.readUint32()
		if err != nil {
			return values.Null, err
		}
		return d.readString(int(n))
	case marker == MarkerBytes8:
		n, err := d.readByte()
		if err != nil {
			return values.Null, err
		}
		return d.readBytes(int(n))
	case marker == MarkerBytes16:
		n, err := d.readUint16()
		if err != nil {
			return values.Null, err
		}
		return d.readBytes(int(n))
	case marker == MarkerBytes32:
		n, err := d.readUint32()
		if err != nil {
			return values.Null, err
		}
		return d.readBytes(int(n))
	case marker >= MarkerTinyListMin && marker <= MarkerTinyListMax:
		return d.readList(int(marker & 0x0F))
	case marker == MarkerList8:
		n, err := d.readByte()
		if err != nil {
			return values.Null, err
		}
		return d.readList(int(n))
	case marker == MarkerList16:
		n, err := d.readUint16()
		if err != nil {
			return values.Null, err
		}
		return d.readList(int(n))
	case marker == MarkerList32:
		n, err := d.readUint32()
		if err != nil {
			return values.Null, err
		}
		return d.readList(int(n))
	case marker >= MarkerTinyMapMin && marker <= MarkerTinyMapMax:
		return d.readMap(int(marker & 0x0F))
	case marker == MarkerMap8:
		n, err := d.readByte()
		if err != nil {
			return values.Null, err
		}
		return d.readMap(int(n))
	case marker == MarkerMap16:
		n, err := d.readUint16()
		if err != nil {
			return values.Null, err
		}
		return d.readMap(int(n))
	case marker == MarkerMap32:
		n, err := d.readUint32()
		if err != nil {
			return values.Null, err
		}
		return d.readMap(int(n))
	case marker >= MarkerTinyStructMin && marker <= MarkerTinyStructMax:
		return d.readStruct(int(marker & 0x0F))
	default:
		return values.Null, errors.New("packstream: unrecognised marker")
	}
}

func (d *Reader) readString(n int) (values.Value, error) {
	if n == 0 {
		return values.String(""), nil
	}
	b, err := d.readFull(n)
	if err != nil {
		return values.Null, err
	}
	return values.String(string(b)), nil
}

func (d *Reader) readBytes(n int) (values.Value, error) {
	if n == 0 {
		return values.Bytes(nil), nil
	}
	b, err := d.readFull(n)
	if err != nil {
		return values.Null, err
	}
	return values.Bytes(b), nil
}

func (d *Reader) readList(n int) (values.Value, error) {
	items := make([]values.Value, n)
	for i := 0; i < n; i++ {
		v, err := d.ReadValue()
		if err != nil {
			return values.Null, err
		}
		items[i] = v
	}
	return values.List(items), nil
}

func (d *Reader) readMap(n int) (values.Value, error) {
	keys := make([]string, n)
	vals := make([]values.Value, n)
	for i := 0; i < n; i++ {
		kv, err := d.ReadValue()
		if err != nil {
			return values.Null, err
		}
		k, ok := kv.AsString()
		if !ok {
			return values.Null, api.NewError(api.ErrCodeInvalidMapKeyType, "map keys must be strings")
		}
		v, err := d.ReadValue()
		if err != nil {
			return values.Null, err
		}
		keys[i] = k
		vals[i] = v
	}
	m, err := values.Map(keys, vals)
	if err != nil {
		return values.Null, err
	}
	return m, nil
}

func (d *Reader) readStruct(n int) (values.Value, error) {
	sig, err := d.readByte()
	if err != nil {
		return values.Null, err
	}
	fields := make([]values.Value, n)
	for i := 0; i < n; i++ {
		v, err := d.ReadValue()
		if err != nil {
			return values.Null, err
		}
		fields[i] = v
	}
	switch sig {
	case values.SigNode:
		return values.NewNodeFromFields(fields)
	case values.SigRelationship:
		return values.NewRelationshipFromFields(fields)
	case values.SigUnboundRel:
		return values.NewUnboundRelationshipFromFields(fields)
	case values.SigPath:
		if n != 3 {
			return values.Null, api.NewError(api.ErrCodeProtocol, "path struct requires 3 fields")
		}
		nodes, _ := fields[0].AsList()
		rels, _ := fields[1].AsList()
		seq, _ := fields[2].AsList()
		return values.NewPathFromFields(nodes, rels, seq)
	default:
		return values.Struct(sig, fields), nil
	}
}
