// File: values/print.go
// Author: momentics <momentics@gmail.com>
package values

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// String implements fmt.Stringer, matching spec's toString contract
// without the source's caller-supplied-buffer ceremony (Go strings are
// already the right abstraction for that).
func (v Value) String() string {
	var sb strings.Builder
	writeValue(&sb, v)
	return sb.String()
}

// Fprint writes v's textual form to w and returns the byte count, mirroring
// the source's fprint(stream) contract.
func Fprint(w io.Writer, v Value) (int, error) {
	return io.WriteString(w, v.String())
}

func writeValue(sb *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		sb.WriteString("null")
	case KindBool:
		sb.WriteString(strconv.FormatBool(v.b))
	case KindInt:
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(v.s))
	case KindBytes:
		fmt.Fprintf(sb, "#%x", v.bytes)
	case KindList:
		sb.WriteByte('[')
		for i, e := range v.list {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, e)
		}
		sb.WriteByte(']')
	case KindMap:
		sb.WriteByte('{')
		for i, k := range v.mapKeys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s: ", k)
			writeValue(sb, v.mapVals[i])
		}
		sb.WriteByte('}')
	case KindStruct:
		fmt.Fprintf(sb, "%s(", v.TypeStr())
		for i, f := range v.fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, f)
		}
		sb.WriteByte(')')
	default:
		sb.WriteString("<unknown>")
	}
}
