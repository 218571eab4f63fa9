package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/validation"
	"github.com/shopspring/decimal"
)

// resolveRef finds the record owned by username whose id equals ref or,
// failing that, the only one whose id starts with ref. Records of other
// users are never candidates.
func resolveRef(records []domain.Record, kind domain.RecordKind, username, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, apperrors.NewFieldError("id", "is required")
	}
	match, matches := -1, 0
	for i, r := range records {
		if r.String("username") != username {
			continue
		}
		id := r.Key(kind)
		if id == ref {
			return i, nil
		}
		if strings.HasPrefix(id, ref) {
			if matches == 0 {
				match = i
			}
			matches++
		}
	}
	switch matches {
	case 0:
		return -1, fmt.Errorf("%s %q: %w", strings.TrimSuffix(string(kind), "s"), ref, apperrors.ErrNotFound)
	case 1:
		return match, nil
	default:
		return -1, fmt.Errorf("%s %q matches %d records: %w", strings.TrimSuffix(string(kind), "s"), ref, matches, apperrors.ErrAmbiguousReference)
	}
}

// ownedBy keeps the records whose username field equals username.
func ownedBy(records []domain.Record, username string) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if r.String("username") == username {
			out = append(out, r)
		}
	}
	return out
}

// removeAt returns a copy of records without index i.
func removeAt(records []domain.Record, i int) []domain.Record {
	out := make([]domain.Record, 0, len(records)-1)
	out = append(out, records[:i]...)
	return append(out, records[i+1:]...)
}

// replaceAt returns a copy of records with index i merged with updated.
// Fields of the stored record that updated does not carry are kept.
func replaceAt(records []domain.Record, i int, updated domain.Record) []domain.Record {
	out := make([]domain.Record, len(records))
	copy(out, records)
	merged := records[i].Clone()
	for k, v := range updated {
		merged[k] = v
	}
	out[i] = merged
	return out
}

// loadUserTransactions returns username's transactions in store order.
func loadUserTransactions(ctx context.Context, keeper *RecordKeeper, username string) ([]domain.Transaction, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	records, err := keeper.Read(ctx, domain.KindTransactions)
	if err != nil {
		return nil, err
	}
	return domain.TransactionsFromRecords(ownedBy(records, username)), nil
}

// fieldEdits applies a partial update one field at a time. A field that
// fails validation keeps its old value and is reported.
type fieldEdits struct {
	rejected apperrors.ValidationErrors
}

func (e *fieldEdits) reject(field, message string) {
	e.rejected.Add(field, message)
}

func (e *fieldEdits) result() []apperrors.FieldError {
	if len(e.rejected) == 0 {
		return nil
	}
	return e.rejected
}

// provided returns the trimmed value of p and whether it should be applied.
// Nil and blank input keep the old value.
func provided(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}

func providedFlex(p *dto.FlexString) (string, bool) {
	if p == nil {
		return "", false
	}
	s := string(*p)
	return provided(&s)
}

func (e *fieldEdits) amount(field string, p *dto.FlexString, allowZero bool, dst *decimal.Decimal) {
	raw, ok := providedFlex(p)
	if !ok {
		return
	}
	d, err := validation.ParseAmount(raw)
	switch {
	case errors.Is(err, validation.ErrAmountOutOfRange):
		e.reject(field, "is out of range")
	case err != nil:
		e.reject(field, "must be a number")
	case allowZero && d.IsNegative():
		e.reject(field, "must be a number greater than or equal to zero")
	case !allowZero && !d.IsPositive():
		e.reject(field, "must be a positive number")
	default:
		*dst = d
	}
}

func (e *fieldEdits) date(field string, p *string, dst *string) {
	raw, ok := provided(p)
	if !ok {
		return
	}
	if _, valid := domain.ParseDate(raw); !valid {
		e.reject(field, "must be a date in YYYY-MM-DD form")
		return
	}
	*dst = raw
}

func (e *fieldEdits) text(field string, p *string, maxLen int, dst *string) {
	raw, ok := provided(p)
	if !ok {
		return
	}
	if utf8.RuneCountInString(raw) > maxLen {
		e.reject(field, fmt.Sprintf("must be at most %d characters", maxLen))
		return
	}
	*dst = raw
}
