package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RecordKind names one of the persisted collections.
type RecordKind string

const (
	KindUsers        RecordKind = "users"
	KindTransactions RecordKind = "transactions"
	KindGoals        RecordKind = "goals"
	KindReminders    RecordKind = "reminders"
)

// AllKinds lists every collection in a stable order.
var AllKinds = []RecordKind{KindUsers, KindTransactions, KindGoals, KindReminders}

// Valid reports whether k is a known collection.
func (k RecordKind) Valid() bool {
	switch k {
	case KindUsers, KindTransactions, KindGoals, KindReminders:
		return true
	}
	return false
}

// KeyField returns the field that identifies a record of this kind.
func (k RecordKind) KeyField() string {
	if k == KindUsers {
		return "username"
	}
	return "id"
}

// numericFields lists the fields coerced to float64 on load.
func (k RecordKind) numericFields() []string {
	switch k {
	case KindTransactions, KindReminders:
		return []string{"amount"}
	case KindGoals:
		return []string{"target_amount", "current_amount"}
	}
	return nil
}

// Record is the untyped form in which collections are persisted.
type Record map[string]any

// Key returns the identifying value of the record for kind.
func (r Record) Key(kind RecordKind) string {
	return r.String(kind.KeyField())
}

// Clone returns a shallow copy. Record values are always scalars.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns field as text, or "" when absent.
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Float returns field coerced to a finite float64, defaulting to 0.
func (r Record) Float(field string) float64 {
	return CoerceFloat(r[field])
}

// Decimal returns field as a decimal, defaulting to zero.
func (r Record) Decimal(field string) decimal.Decimal {
	return decimal.NewFromFloat(r.Float(field))
}

// CoerceFloat converts a loosely typed value to float64. Anything that does
// not parse to a finite number becomes 0.
func CoerceFloat(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case decimal.Decimal:
		f = n.InexactFloat64()
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// NormalizeRecord applies the load-time schema rules for kind: numeric fields
// become float64 (0 when absent or unparseable) and optional fields receive
// their defaults. The input is not modified.
func NormalizeRecord(kind RecordKind, r Record) Record {
	out := r.Clone()
	for _, f := range kind.numericFields() {
		out[f] = CoerceFloat(out[f])
	}
	if kind == KindTransactions && strings.TrimSpace(out.String("payment")) == "" {
		out["payment"] = string(PaymentCash)
	}
	return out
}

// NormalizeRecords applies NormalizeRecord to every element.
func NormalizeRecords(kind RecordKind, records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = NormalizeRecord(kind, r)
	}
	return out
}
