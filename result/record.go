package result

import (
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/values"
)

// record is one buffered row: its field values plus a per-record arena
// (spec section 4.9 — "whose owning pool is the current record-pool").
// The session decodes RECORD messages without an arena, so PackStream
// decoding allocates nothing from it; releasing the record drains it.
type record struct {
	fields []values.Value
	arena  *pool.Arena
	next   *record
}

// Record is the caller-visible handle to one fetched/peeked row. It is
// valid only until the next FetchNext call on the owning Stream, which
// releases the previously-fetched record's arena (spec section 4.9).
type Record struct {
	fields []values.Value
}

// Len returns the number of fields in the record.
func (r *Record) Len() int { return len(r.fields) }

// Get returns the value at position i, or the Null value if i is out of
// range.
func (r *Record) Get(i int) values.Value {
	if i < 0 || i >= len(r.fields) {
		return values.Null
	}
	return r.fields[i]
}
