package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Reminder is a bill reminder. Due-ness is computed on read.
type Reminder struct {
	ID       string          `json:"id"`
	Username string          `json:"username"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Deadline string          `json:"deadline"`
}

// ToRecord converts the reminder to its persisted form.
func (r Reminder) ToRecord() Record {
	return Record{
		"id":       r.ID,
		"username": r.Username,
		"title":    r.Title,
		"amount":   r.Amount.InexactFloat64(),
		"deadline": r.Deadline,
	}
}

// ReminderFromRecord coerces a persisted record.
func ReminderFromRecord(r Record) Reminder {
	return Reminder{
		ID:       r.String("id"),
		Username: r.String("username"),
		Title:    r.String("title"),
		Amount:   r.Decimal("amount"),
		Deadline: strings.TrimSpace(r.String("deadline")),
	}
}

// DueStatus classifies how close a reminder is to its deadline.
type DueStatus string

const (
	DueNone    DueStatus = "none"
	DueSoon    DueStatus = "soon"
	DueToday   DueStatus = "today"
	DueOverdue DueStatus = "overdue"
)

// DueSoonWindow is the largest number of days ahead that still counts as soon.
const DueSoonWindow = 5

// DueState is the read-time classification of a reminder.
type DueState struct {
	Status   DueStatus `json:"status"`
	DaysLeft int       `json:"daysLeft"`
}

// HasNotice reports whether the state should be shown to the user.
func (s DueState) HasNotice() bool {
	return s.Status != DueNone
}

// Message renders the notice text, or "" when there is none.
func (s DueState) Message() string {
	switch s.Status {
	case DueSoon:
		return fmt.Sprintf("due in %d days", s.DaysLeft)
	case DueToday:
		return "due today"
	case DueOverdue:
		return fmt.Sprintf("overdue by %d days", -s.DaysLeft)
	}
	return ""
}

const secondsPerDay = 24 * 60 * 60

// ClassifyReminder computes days_left = deadline - today and classifies it:
// negative is overdue, zero is today, 2 to 5 is soon, anything else has no
// notice. A deadline that does not parse has no notice.
func ClassifyReminder(r Reminder, today time.Time) DueState {
	deadline, ok := ParseDate(r.Deadline)
	if !ok {
		return DueState{Status: DueNone}
	}
	days := int((deadline.Unix() - Today(today).Unix()) / secondsPerDay)
	state := DueState{DaysLeft: days}
	switch {
	case days < 0:
		state.Status = DueOverdue
	case days == 0:
		state.Status = DueToday
	case days > 1 && days <= DueSoonWindow:
		state.Status = DueSoon
	default:
		state.Status = DueNone
	}
	return state
}
