package result

// FetchNext returns the next record, releasing the previously-fetched one
// (spec section 4.9). It returns (nil, nil) at a clean end of stream and
// (nil, err) if the stream has failed.
func (st *Stream) FetchNext() (*Record, error) {
	st.mu.Lock()
	if st.lastFetched != nil {
		st.lastFetched.arena.DrainTo(0)
		st.lastFetched = nil
	}

	for st.head == nil && (st.starting || st.streaming) && st.failErr == nil {
		st.awaitingRecords = 1
		st.mu.Unlock()
		syncErr := st.sess.Sync(&st.awaitingRecords)
		st.mu.Lock()
		if syncErr != nil {
			if st.failErr == nil {
				st.failed = true
				st.failErr = syncErr
			}
			st.starting = false
			st.streaming = false
			break
		}
	}

	if st.head == nil {
		err := st.failErr
		st.mu.Unlock()
		return nil, err
	}

	rec := st.head
	st.head = rec.next
	if st.head == nil {
		st.tail = nil
	}
	st.depth--
	st.lastFetched = rec
	st.mu.Unlock()
	return &Record{fields: rec.fields}, nil
}

// Peek returns the record depth positions ahead without consuming it,
// blocking until enough records have arrived or the stream ends (spec
// section 4.9). depth 0 is the next record FetchNext would return.
func (st *Stream) Peek(depth int) (*Record, error) {
	if depth < 0 {
		depth = 0
	}
	st.mu.Lock()
	for st.depth <= depth && (st.starting || st.streaming) && st.failErr == nil {
		st.awaitingRecords = int32(depth - st.depth + 1)
		st.mu.Unlock()
		syncErr := st.sess.Sync(&st.awaitingRecords)
		st.mu.Lock()
		if syncErr != nil {
			if st.failErr == nil {
				st.failed = true
				st.failErr = syncErr
			}
			st.starting = false
			st.streaming = false
			break
		}
	}

	if st.depth <= depth {
		err := st.failErr
		st.mu.Unlock()
		return nil, err
	}

	r := st.head
	for i := 0; i < depth; i++ {
		r = r.next
	}
	fields := r.fields
	st.mu.Unlock()
	return &Record{fields: fields}, nil
}
