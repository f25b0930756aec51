// File: packstream/encode.go
// Author: momentics <momentics@gmail.com>
package packstream

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/momentics/bolt-core/values"
)

// Writer serializes values.Value onto an underlying io.Writer using the
// PackStream encoding. It performs no buffering of its own; the chunked
// framing layer (C4) is responsible for batching writes into chunks.
type Writer struct {
	w   io.Writer
	buf [16]byte
}

// NewWriter wraps w for PackStream encoding.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

func (e *Writer) writeByte(b byte) error {
	e.buf[0] = b
	_, err := e.w.Write(e.buf[:1])
	return err
}

// WriteValue dispatches encoding by the value's Kind.
func (e *Writer) WriteValue(v values.Value) error {
	switch v.Kind() {
	case values.KindNull:
		return e.writeByte(MarkerNull)
	case values.KindBool:
		b, _ := v.AsBool()
		if b {
			return e.writeByte(MarkerTrue)
		}
		return e.writeByte(MarkerFalse)
	case values.KindInt:
		i, _ := v.AsInt()
		return e.writeInt(i)
	case values.KindFloat:
		f, _ := v.AsFloat()
		return e.writeFloat(f)
	case values.KindString:
		s, _ := v.AsString()
		return e.writeString(s)
	case values.KindBytes:
		b, _ := v.AsBytes()
		return e.writeBytes(b)
	case values.KindList:
		list, _ := v.AsList()
		return e.writeList(list)
	case values.KindMap:
		return e.writeMap(v)
	case values.KindStruct:
		return e.writeStruct(v)
	default:
		return errors.New("packstream: unknown value kind")
	}
}

func (e *Writer) writeInt(i int64) error {
	switch {
	case i >= -16 && i <= tinyIntPosMax:
		return e.writeByte(byte(int8(i)))
	case i >= math.MinInt8 && i <= math.MaxInt8:
		e.buf[0] = MarkerInt8
		e.buf[1] = byte(int8(i))
		_, err := e.w.Write(e.buf[:2])
		return err
	case i >= math.MinInt16 && i <= math.MaxInt16:
		e.buf[0] = MarkerInt16
		binary.BigEndian.PutUint16(e.buf[1:], uint16(int16(i)))
		_, err := e.w.Write(e.buf[:3])
		return err
	case i >= math.MinInt32 && i <= math.MaxInt32:
		e.buf[0] = MarkerInt32
		binary.BigEndian.PutUint32(e.buf[1:], uint32(int32(i)))
		_, err := e.w.Write(e.buf[:5])
		return err
	default:
		e.buf[0] = MarkerInt64
		binary.BigEndian.PutUint64(e.buf[1:], uint64(i))
		_, err := e.w.Write(e.buf[:9])
		return err
	}
}

func (e *Writer) writeFloat(f float64) error {
	e.buf[0] = MarkerFloat64
	binary.BigEndian.PutUint64(e.buf[1:], math.Float64bits(f))
	_, err := e.w.Write(e.buf[:9])
	return err
}

func (e *Writer) writeLengthMarker(n int, tinyBase, m8, m16, m32 byte) error {
	switch {
	case n <= 15:
		return e.writeByte(tinyBase | byte(n))
	case n <= 0xFF:
		e.buf[0] = m8
		e.buf[1] = byte(n)
		_, err := e.w.Write(e.buf[:2])
		return err
	case n <= 0xFFFF:
		e.buf[0] = m16
		binary.BigEndian.PutUint16(e.buf[1:], uint16(n))
		_, err := e.w.Write(e.buf[:3])
		return err
	default:
		e.buf[0] = m32
		binary.BigEndian.PutUint32(e.buf[1:], uint32(n))
		_, err := e.w.Write(e.buf[:5])
		return err
	}
}

func (e *Writer) writeString(s string) error {
	if err := e.writeLengthMarker(len(s), MarkerTinyStringMin, MarkerString8, MarkerString16, MarkerString32); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, s)
	return err
}

func (e *Writer) writeBytes(b []byte) error {
	switch {
	case len(b) <= 0xFF:
		e.buf[0] = MarkerBytes8
		e.buf[1] = byte(len(b))
		if _, err := e.w.Write(e.buf[:2]); err != nil {
			return err
		}
	case len(b) <= 0xFFFF:
		e.buf[0] = MarkerBytes16
		binary.BigEndian.PutUint16(e.buf[1:], uint16(len(b)))
		if _, err := e.w.Write(e.buf[:3]); err != nil {
			return err
		}
	default:
		e.buf[0] = MarkerBytes32
		binary.BigEndian.PutUint32(e.buf[1:], uint32(len(b)))
		if _, err := e.w.Write(e.buf[:5]); err != nil {
			return err
		}
	}
	_, err := e.w.Write(b)
	return err
}

func (e *Writer) writeList(list []values.Value) error {
	if err := e.writeLengthMarker(len(list), MarkerTinyListMin, MarkerList8, MarkerList16, MarkerList32); err != nil {
		return err
	}
	for _, v := range list {
		if err := e.WriteValue(v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Writer) writeMap(v values.Value) error {
	n := v.MapLen()
	if err := e.writeLengthMarker(n, MarkerTinyMapMin, MarkerMap8, MarkerMap16, MarkerMap32); err != nil {
		return err
	}
	for _, k := range v.MapKeys() {
		val, _ := v.MapGet(k)
		if err := e.writeString(k); err != nil {
			return err
		}
		if err := e.WriteValue(val); err != nil {
			return err
		}
	}
	return nil
}

func (e *Writer) writeStruct(v values.Value) error {
	fields := v.Fields()
	if len(fields) > 15 {
		return errors.New("packstream: struct field count exceeds tiny-struct limit")
	}
	e.buf[0] = byte(MarkerTinyStructMin | len(fields))
	e.buf[1] = v.Signature()
	if _, err := e.w.Write(e.buf[:2]); err != nil {
		return err
	}
	for _, f := range fields {
		if err := e.WriteValue(f); err != nil {
			return err
		}
	}
	return nil
}
