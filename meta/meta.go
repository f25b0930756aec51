// Package meta implements the metadata extractor (spec section 4.7): typed,
// strictly-checked extraction of the SUCCESS/FAILURE metadata maps into the
// shapes the result stream (C9) and session engine (C8) consume. Every
// missing or mistyped field is a protocol error, not a panic or a silently
// zeroed value — grounded on the same defensive-decode posture the teacher
// applies in protocol/frame_codec.go when rejecting malformed frames.
//
// Author: momentics <momentics@gmail.com>
package meta

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/momentics/bolt-core/api"
	"github.com/momentics/bolt-core/values"
)

// StatementType classifies a RUN statement by its declared effect.
type StatementType int

const (
	StatementTypeUnknown StatementType = iota
	StatementTypeRead
	StatementTypeWrite
	StatementTypeReadWrite
	StatementTypeSchema
)

func parseStatementType(s string) (StatementType, error) {
	switch s {
	case "r":
		return StatementTypeRead, nil
	case "w":
		return StatementTypeWrite, nil
	case "rw":
		return StatementTypeReadWrite, nil
	case "s":
		return StatementTypeSchema, nil
	default:
		return StatementTypeUnknown, protocolErr("unrecognised statement type %q", s)
	}
}

// updateCounterNames enumerates the 11 named counters carried in the stats
// map (spec section 4.7).
var updateCounterNames = []string{
	"nodes-created", "nodes-deleted",
	"relationships-created", "relationships-deleted",
	"properties-set",
	"labels-added", "labels-removed",
	"indexes-added", "indexes-removed",
	"constraints-added", "constraints-removed",
}

// UpdateCounts holds the 11 named update counters from a SUCCESS stats map.
type UpdateCounts struct {
	NodesCreated         int64
	NodesDeleted         int64
	RelationshipsCreated int64
	RelationshipsDeleted int64
	PropertiesSet        int64
	LabelsAdded          int64
	LabelsRemoved        int64
	IndexesAdded         int64
	IndexesRemoved       int64
	ConstraintsAdded     int64
	ConstraintsRemoved   int64
}

func protocolErr(format string, args ...any) error {
	return api.NewError(api.ErrCodeProtocol, fmt.Sprintf(format, args...))
}

func requireInt(v values.Value, field string) (int64, error) {
	n, ok := v.AsInt()
	if !ok {
		return 0, protocolErr("metadata field %q: expected Int, got %s", field, v.Kind())
	}
	return n, nil
}

func requireString(v values.Value, field string) (string, error) {
	s, ok := v.AsString()
	if !ok {
		return "", protocolErr("metadata field %q: expected String, got %s", field, v.Kind())
	}
	return s, nil
}

func requireMap(v values.Value, field string) (values.Value, error) {
	if v.Kind() != values.KindMap {
		return values.Null, protocolErr("metadata field %q: expected Map, got %s", field, v.Kind())
	}
	return v, nil
}

func requireList(v values.Value, field string) ([]values.Value, error) {
	items, ok := v.AsList()
	if !ok {
		return nil, protocolErr("metadata field %q: expected List, got %s", field, v.Kind())
	}
	return items, nil
}

// FailureDetails is the typed extraction of a FAILURE metadata map, with the
// optional position suffix of the message parsed out when present (spec
// section 8 scenario D).
type FailureDetails struct {
	Code          string
	Message       string
	HasPosition   bool
	Line          int
	Column        int
	Offset        int
	Context       string
	ContextOffset int
}

// positionPattern matches a trailing " (line L, column C (offset: O))\n"…"\n   ^"
// suffix appended to human-readable Cypher syntax error messages.
var positionPattern = regexp.MustCompile(`\(line (\d+), column (\d+) \(offset: (\d+)\)\)\n"(.*)"\n(\s*)\^`)

// ExtractFailure extracts code/message (required) from a FAILURE metadata
// map and parses a position suffix out of the message when present.
func ExtractFailure(meta values.Value) (FailureDetails, error) {
	meta, err := requireMap(meta, "metadata")
	if err != nil {
		return FailureDetails{}, err
	}
	codeVal, ok := meta.MapGet("code")
	if !ok {
		return FailureDetails{}, protocolErr("FAILURE metadata missing required field %q", "code")
	}
	code, err := requireString(codeVal, "code")
	if err != nil {
		return FailureDetails{}, err
	}
	msgVal, ok := meta.MapGet("message")
	if !ok {
		return FailureDetails{}, protocolErr("FAILURE metadata missing required field %q", "message")
	}
	message, err := requireString(msgVal, "message")
	if err != nil {
		return FailureDetails{}, err
	}

	d := FailureDetails{Code: code, Message: message}
	if m := positionPattern.FindStringSubmatch(message); m != nil {
		line, _ := strconv.Atoi(m[1])
		column, _ := strconv.Atoi(m[2])
		offset, _ := strconv.Atoi(m[3])
		d.HasPosition = true
		d.Line = line
		d.Column = column
		d.Offset = offset
		d.Context = m[4]
		// m[5] is the caret line's leading whitespace, which includes the
		// opening quote of the context line above it; the context string
		// itself does not, so the quote's column is subtracted back out.
		d.ContextOffset = len(m[5]) - 1
		if d.ContextOffset < 0 {
			d.ContextOffset = 0
		}
	}
	return d, nil
}

// RunMetadata is the typed extraction of a SUCCESS response to RUN.
type RunMetadata struct {
	Fields               []string
	ResultAvailableAfter int64
}

// ExtractRunSuccess extracts the required fields list and optional
// result_available_after timing from a RUN-response SUCCESS metadata map.
func ExtractRunSuccess(meta values.Value) (RunMetadata, error) {
	meta, err := requireMap(meta, "metadata")
	if err != nil {
		return RunMetadata{}, err
	}
	fieldsVal, ok := meta.MapGet("fields")
	if !ok {
		return RunMetadata{}, protocolErr("SUCCESS metadata missing required field %q", "fields")
	}
	items, err := requireList(fieldsVal, "fields")
	if err != nil {
		return RunMetadata{}, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		s, err := requireString(item, "fields[]")
		if err != nil {
			return RunMetadata{}, err
		}
		names[i] = s
	}
	var availableAfter int64
	if v, ok := meta.MapGet("result_available_after"); ok {
		availableAfter, err = requireInt(v, "result_available_after")
		if err != nil {
			return RunMetadata{}, err
		}
		if availableAfter < 0 {
			return RunMetadata{}, protocolErr("result_available_after must be >= 0, got %d", availableAfter)
		}
	}
	return RunMetadata{Fields: names, ResultAvailableAfter: availableAfter}, nil
}

// PullMetadata is the typed extraction of a SUCCESS response to PULL_ALL.
type PullMetadata struct {
	ResultConsumedAfter int64
	Type                StatementType
	Stats               UpdateCounts
	HasStats            bool
	Plan                *PlanNode
	Profile             *PlanNode
}

// ExtractPullSuccess extracts the optional timing, statement type, stats,
// plan and profile fields from a PULL_ALL-response SUCCESS metadata map.
func ExtractPullSuccess(meta values.Value) (PullMetadata, error) {
	meta, err := requireMap(meta, "metadata")
	if err != nil {
		return PullMetadata{}, err
	}
	var out PullMetadata
	if v, ok := meta.MapGet("result_consumed_after"); ok {
		n, err := requireInt(v, "result_consumed_after")
		if err != nil {
			return PullMetadata{}, err
		}
		if n < 0 {
			return PullMetadata{}, protocolErr("result_consumed_after must be >= 0, got %d", n)
		}
		out.ResultConsumedAfter = n
	}
	if v, ok := meta.MapGet("type"); ok {
		s, err := requireString(v, "type")
		if err != nil {
			return PullMetadata{}, err
		}
		t, err := parseStatementType(s)
		if err != nil {
			return PullMetadata{}, err
		}
		out.Type = t
	}
	if v, ok := meta.MapGet("stats"); ok {
		stats, err := extractStats(v)
		if err != nil {
			return PullMetadata{}, err
		}
		out.Stats = stats
		out.HasStats = true
	}
	if v, ok := meta.MapGet("plan"); ok {
		plan, err := extractPlan(v)
		if err != nil {
			return PullMetadata{}, err
		}
		out.Plan = plan
	}
	if v, ok := meta.MapGet("profile"); ok {
		profile, err := extractPlan(v)
		if err != nil {
			return PullMetadata{}, err
		}
		out.Profile = profile
	}
	return out, nil
}

func extractStats(v values.Value) (UpdateCounts, error) {
	m, err := requireMap(v, "stats")
	if err != nil {
		return UpdateCounts{}, err
	}
	counters := make(map[string]int64, len(updateCounterNames))
	for _, name := range updateCounterNames {
		if cv, ok := m.MapGet(name); ok {
			n, err := requireInt(cv, name)
			if err != nil {
				return UpdateCounts{}, err
			}
			counters[name] = n
		}
	}
	return UpdateCounts{
		NodesCreated:         counters["nodes-created"],
		NodesDeleted:         counters["nodes-deleted"],
		RelationshipsCreated: counters["relationships-created"],
		RelationshipsDeleted: counters["relationships-deleted"],
		PropertiesSet:        counters["properties-set"],
		LabelsAdded:          counters["labels-added"],
		LabelsRemoved:        counters["labels-removed"],
		IndexesAdded:         counters["indexes-added"],
		IndexesRemoved:       counters["indexes-removed"],
		ConstraintsAdded:     counters["constraints-added"],
		ConstraintsRemoved:   counters["constraints-removed"],
	}, nil
}
