package result

import (
	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/control"
	"github.com/momentics/bolt-core/message"
	"github.com/momentics/bolt-core/meta"
	"github.com/momentics/bolt-core/pool"
	"github.com/momentics/bolt-core/session"
	"github.com/momentics/bolt-core/values"
)

// runCallback is RUN's response handler (spec section 4.9): on SUCCESS it
// parses the field-name list and timing into the stream; on FAILURE/
// IGNORED it records the failure and the stream never starts streaming.
func (st *Stream) runCallback(cdata any, sig message.Signature, fields []values.Value) (session.CallbackResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	defer func() {
		st.starting = false
		st.awaitingRecords = 0
	}()
	defer st.release()

	switch sig {
	case message.SigSuccess:
		var metaVal values.Value
		if len(fields) > 0 {
			metaVal = fields[0]
		}
		rm, err := meta.ExtractRunSuccess(metaVal)
		if err != nil {
			st.failed = true
			st.failErr = err
			return session.Error, err
		}
		st.fields = rm.Fields
		st.availableAfter = rm.ResultAvailableAfter
		return session.Done, nil
	case message.SigFailure:
		var metaVal values.Value
		if len(fields) > 0 {
			metaVal = fields[0]
		}
		d, err := meta.ExtractFailure(metaVal)
		if err != nil {
			st.failed = true
			st.failErr = err
			return session.Error, err
		}
		st.failureDetails = d
		st.failed = true
		st.failErr = api.NewError(api.ErrCodeStatementFailed, d.Message).WithContext("code", d.Code)
		return session.Done, nil
	case message.SigIgnored:
		st.failed = true
		st.failErr = api.NewError(api.ErrCodeStatementPreviousFailure, "statement skipped after a previous failure in the pipeline")
		return session.Done, nil
	default:
		err := api.NewError(api.ErrCodeProtocol, "result: unexpected response to RUN: "+sig.String())
		st.failed = true
		st.failErr = err
		return session.Error, err
	}
}

// pullAllCallback is PULL_ALL/DISCARD_ALL's response handler (spec section
// 4.9): on RECORD it appends a row to the buffered list under its own
// per-record arena; on SUCCESS it parses trailing metadata and clears
// streaming; on FAILURE/IGNORED it records the failure.
func (st *Stream) pullAllCallback(cdata any, sig message.Signature, fields []values.Value) (session.CallbackResult, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	switch sig {
	case message.SigRecord:
		row := values.Null
		if len(fields) > 0 {
			row = fields[0]
		}
		items, _ := row.AsList()
		rec := &record{fields: items, arena: pool.NewArena(pool.DefaultBlockSize)}
		if st.tail == nil {
			st.head, st.tail = rec, rec
		} else {
			st.tail.next = rec
			st.tail = rec
		}
		st.depth++
		st.totalSeen++
		st.sess.IncrMetric(control.MetricRecordsStreamed, 1)
		if st.awaitingRecords > 0 {
			st.awaitingRecords--
		}
		return session.More, nil

	case message.SigSuccess:
		defer func() {
			st.streaming = false
			st.awaitingRecords = 0
			st.release()
		}()
		var metaVal values.Value
		if len(fields) > 0 {
			metaVal = fields[0]
		}
		pm, err := meta.ExtractPullSuccess(metaVal)
		if err != nil {
			st.failed = true
			st.failErr = err
			return session.Error, err
		}
		st.consumedAfter = pm.ResultConsumedAfter
		st.statementType = pm.Type
		st.stats = pm.Stats
		st.hasStats = pm.HasStats
		st.plan = pm.Plan
		st.profile = pm.Profile
		return session.Done, nil

	case message.SigFailure:
		defer func() {
			st.streaming = false
			st.awaitingRecords = 0
			st.release()
		}()
		var metaVal values.Value
		if len(fields) > 0 {
			metaVal = fields[0]
		}
		d, err := meta.ExtractFailure(metaVal)
		if err != nil {
			st.failed = true
			st.failErr = err
			return session.Error, err
		}
		st.failureDetails = d
		st.failed = true
		st.failErr = api.NewError(api.ErrCodeStatementFailed, d.Message).WithContext("code", d.Code)
		return session.Done, nil

	case message.SigIgnored:
		defer func() {
			st.streaming = false
			st.awaitingRecords = 0
			st.release()
		}()
		st.failed = true
		st.failErr = api.NewError(api.ErrCodeStatementPreviousFailure, "statement skipped after a previous failure in the pipeline")
		return session.Done, nil

	default:
		err := api.NewError(api.ErrCodeProtocol, "result: unexpected response to PULL_ALL: "+sig.String())
		st.failed = true
		st.failErr = err
		return session.Error, err
	}
}
