package eventlog

import (
	"fmt"
	"time"

	"github.com/erpforensic/reconstructor/internal/extraction"
	ferrors "github.com/erpforensic/reconstructor/pkg/errors"
)

// TableClass is how a single table's rows translate into events, per
// §4.2.1: a row either always produces one event (record), produces an
// event whose activity is resolved from a transaction code or document
// type, observes a field modification (change), observes a status
// transition, or contributes no event at all and exists purely to enrich
// case-id resolution (detail, master).
type TableClass string

const (
	ClassRecord      TableClass = "record"
	ClassTransaction TableClass = "transaction"
	ClassFlow        TableClass = "flow"
	ClassChange      TableClass = "change"
	ClassStatus      TableClass = "status"
	ClassDetail      TableClass = "detail"
	ClassMaster      TableClass = "master"
)

// Join is a one-hop correlation from the current row to another table's
// case-bearing field, used when a table does not carry the case id
// directly (e.g. CHANGE_DOCUMENT_ITEMS correlates to CHANGE_DOCUMENTS via
// change_id).
type Join struct {
	LocalField       string
	ForeignTable     string
	ForeignKeyField  string
	ForeignCaseField string
}

// CaseIDRule resolves the case id for a row: try Field directly, falling
// back to each Join in order.
type CaseIDRule struct {
	Field string
	Joins []Join
}

// TableMapping describes how one table's rows fold into events for a
// single process configuration.
type TableMapping struct {
	Table  string
	Class  TableClass
	CaseID CaseIDRule

	// Activity is used directly for Class record/change/status when no
	// code-to-activity map applies.
	Activity string

	TimestampField string
	TimeField      string
	ResourceField  string

	// Condition, if set, guards whether a row produces an event at all.
	Condition func(extraction.Row) bool

	TransactionCodeField string
	TransactionCodeMap   map[string]string

	DocumentTypeField string
	DocumentTypeMap   map[string]string

	StatusField string
	StatusMap   map[string]string

	OldValueField string
	NewValueField string
	ChangedField  string
}

// ProcessConfig is the per-process table→activity configuration the
// EventLogBuilder folds against a set of extraction results.
type ProcessConfig struct {
	ProcessID string
	Tables    []TableMapping
}

// Builder folds tabular extraction results into an EventLog. Location
// resolves the time zone of any TimeField-combined timestamp; it defaults
// to UTC rather than being inferred, per the documented Open Question
// decision.
type Builder struct {
	Location *time.Location
}

// NewBuilder returns a Builder using loc for timestamp assembly, defaulting
// to UTC when loc is nil.
func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{Location: loc}
}

// Build runs cfg against tables (keyed by table name, as produced by the
// extraction phase) and returns the resulting EventLog.
func (b *Builder) Build(cfg ProcessConfig, tables map[string][]extraction.Row) (*EventLog, error) {
	log := New(cfg.ProcessID)

	joinIndex := b.buildJoinIndexes(cfg, tables)

	for _, mapping := range cfg.Tables {
		if mapping.Class == ClassDetail || mapping.Class == ClassMaster {
			continue
		}
		rows := tables[mapping.Table]
		for _, row := range rows {
			if mapping.Condition != nil && !mapping.Condition(row) {
				continue
			}

			activity, ok := resolveActivity(mapping, row)
			if !ok {
				continue
			}

			caseID, ok := resolveCaseID(mapping.CaseID, row, joinIndex)
			if !ok || caseID == "" {
				continue
			}

			ts, ok := b.resolveTimestamp(mapping, row)
			if !ok {
				// Retained structurally would require a zero-value sentinel;
				// instead of inventing one, events with unparseable
				// timestamps are excluded here (time-sensitive construction)
				// but the row itself was never discarded upstream.
				continue
			}

			resource := ""
			if mapping.ResourceField != "" {
				resource = fmt.Sprint(row[mapping.ResourceField])
			}

			attrs := attributesFor(mapping, row)

			log.AddEvent(caseID, Event{
				Activity:   activity,
				Timestamp:  ts,
				Resource:   resource,
				Attributes: attrs,
			})
		}
	}

	return log, nil
}

func resolveActivity(mapping TableMapping, row extraction.Row) (string, bool) {
	switch mapping.Class {
	case ClassTransaction:
		code := fmt.Sprint(row[mapping.TransactionCodeField])
		if a, ok := mapping.TransactionCodeMap[code]; ok {
			return a, true
		}
		return "", false
	case ClassFlow:
		docType := fmt.Sprint(row[mapping.DocumentTypeField])
		if a, ok := mapping.DocumentTypeMap[docType]; ok {
			return a, true
		}
		return "", false
	case ClassStatus:
		status := fmt.Sprint(row[mapping.StatusField])
		if a, ok := mapping.StatusMap[status]; ok {
			return a, true
		}
		if mapping.Activity != "" {
			return mapping.Activity, true
		}
		return "", false
	case ClassChange, ClassRecord:
		if mapping.Activity == "" {
			return "", false
		}
		return mapping.Activity, true
	default:
		return "", false
	}
}

func attributesFor(mapping TableMapping, row extraction.Row) map[string]interface{} {
	if mapping.Class != ClassChange {
		return nil
	}
	attrs := make(map[string]interface{}, 3)
	if mapping.ChangedField != "" {
		attrs["field"] = row[mapping.ChangedField]
	}
	if mapping.OldValueField != "" {
		attrs["old_value"] = row[mapping.OldValueField]
	}
	if mapping.NewValueField != "" {
		attrs["new_value"] = row[mapping.NewValueField]
	}
	return attrs
}

func resolveCaseID(rule CaseIDRule, row extraction.Row, joinIndex map[string]map[string]string) (string, bool) {
	if rule.Field != "" {
		if v, ok := row[rule.Field]; ok {
			if s := fmt.Sprint(v); s != "" && s != "<nil>" {
				return s, true
			}
		}
	}
	for _, join := range rule.Joins {
		local, ok := row[join.LocalField]
		if !ok {
			continue
		}
		key := fmt.Sprint(local)
		idx, ok := joinIndex[joinKey(join)]
		if !ok {
			continue
		}
		if caseID, ok := idx[key]; ok {
			return caseID, true
		}
	}
	return "", false
}

func joinKey(j Join) string {
	return j.ForeignTable + "|" + j.ForeignKeyField + "|" + j.ForeignCaseField
}

// buildJoinIndexes precomputes, for every distinct Join referenced across
// cfg.Tables, a map from the foreign key field's value to the foreign
// case field's value, so per-row resolution is O(1).
func (b *Builder) buildJoinIndexes(cfg ProcessConfig, tables map[string][]extraction.Row) map[string]map[string]string {
	indexes := make(map[string]map[string]string)
	for _, mapping := range cfg.Tables {
		for _, join := range mapping.CaseID.Joins {
			key := joinKey(join)
			if _, ok := indexes[key]; ok {
				continue
			}
			idx := make(map[string]string)
			for _, row := range tables[join.ForeignTable] {
				k, ok := row[join.ForeignKeyField]
				if !ok {
					continue
				}
				v, ok := row[join.ForeignCaseField]
				if !ok {
					continue
				}
				idx[fmt.Sprint(k)] = fmt.Sprint(v)
			}
			indexes[key] = idx
		}
	}
	return indexes
}

// resolveTimestamp parses mapping.TimestampField (and, if set,
// mapping.TimeField combined onto the same day) into a time.Time in
// b.Location. Accepted layouts are RFC3339, a zone-less date-time
// (2006-01-02T15:04:05), and a bare date; unparseable values report ok=false.
func (b *Builder) resolveTimestamp(mapping TableMapping, row extraction.Row) (time.Time, bool) {
	raw, ok := row[mapping.TimestampField]
	if !ok {
		return time.Time{}, false
	}
	s := fmt.Sprint(raw)
	base, err := parseTime(s, b.Location)
	if err != nil {
		return time.Time{}, false
	}

	if mapping.TimeField == "" {
		return base, true
	}

	rawTime, ok := row[mapping.TimeField]
	if !ok {
		return base, true
	}
	clock, err := time.ParseInLocation("15:04:05", fmt.Sprint(rawTime), b.Location)
	if err != nil {
		return base, true
	}
	combined := time.Date(base.Year(), base.Month(), base.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, b.Location)
	return combined, true
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.ParseInLocation(time.RFC3339, s, loc); err == nil {
		return t.In(loc), nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Time{}, ferrors.NewValidationError("timestamp", fmt.Sprintf("unparseable timestamp %q", s))
}
