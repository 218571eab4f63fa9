// Package rowsync plans the row changes that turn the stored rows of one
// collection into a new ordered collection. Rows are keyed by record key, so
// an append, an edit or a delete touches only the rows involved.
package rowsync

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// Row is one stored record.
type Row struct {
	Key      string
	Position int
	Payload  string
}

// Plan lists the keys to delete and the rows to insert or update.
type Plan struct {
	Deletes []string
	Upserts []Row
}

// Empty reports whether the plan changes nothing.
func (p Plan) Empty() bool {
	return len(p.Deletes) == 0 && len(p.Upserts) == 0
}

// Diff compares existing rows against records. A row whose position and
// payload are unchanged is left alone. Existing positions are kept while they
// stay in ascending order; other records get positions after the current
// maximum. Records without a key, or repeating an earlier key, are stored
// under a synthetic key built from their index.
func Diff(kind domain.RecordKind, existing []Row, records []domain.Record) (Plan, error) {
	byKey := make(map[string]Row, len(existing))
	nextFree := 0
	for _, row := range existing {
		byKey[row.Key] = row
		nextFree = max(nextFree, row.Position+1)
	}

	var plan Plan
	seen := make(map[string]bool, len(records))
	prev := -1
	for i, rec := range records {
		key := storageKey(rec.Key(kind), i, seen)
		seen[key] = true

		payload, err := json.Marshal(rec)
		if err != nil {
			return Plan{}, fmt.Errorf("encode %s record %d: %w", kind, i, err)
		}

		old, found := byKey[key]
		position := old.Position
		if !found || position <= prev {
			position = nextFree
			nextFree++
		}
		prev = position

		if found && position == old.Position && samePayload(old.Payload, payload) {
			continue
		}
		plan.Upserts = append(plan.Upserts, Row{Key: key, Position: position, Payload: string(payload)})
	}

	for _, row := range existing {
		if !seen[row.Key] {
			plan.Deletes = append(plan.Deletes, row.Key)
		}
	}
	return plan, nil
}

func storageKey(key string, index int, seen map[string]bool) string {
	if key != "" && !seen[key] {
		return key
	}
	candidate := "#" + strconv.Itoa(index)
	for n := 1; seen[candidate]; n++ {
		candidate = "#" + strconv.Itoa(index) + "." + strconv.Itoa(n)
	}
	return candidate
}

// samePayload compares two JSON documents after a decode and re-encode, so
// whitespace and key order written by the database do not count as changes.
func samePayload(stored string, fresh []byte) bool {
	a, okA := canonical([]byte(stored))
	b, okB := canonical(fresh)
	return okA && okB && a == b
}

func canonical(payload []byte) (string, bool) {
	var v any
	if err := json.Unmarshal(payload, &v); err != nil {
		return "", false
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(out), true
}
