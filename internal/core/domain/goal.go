package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GoalStatus is derived from the goal amounts.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
)

var hundred = decimal.NewFromInt(100)

// Goal is a savings target.
type Goal struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	Title         string          `json:"title"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Deadline      string          `json:"deadline"`
	Status        GoalStatus      `json:"status"`
}

// DeriveStatus computes the status implied by the amounts.
func (g Goal) DeriveStatus() GoalStatus {
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		return GoalCompleted
	}
	return GoalActive
}

// Progress returns current/target as a percentage capped at 100.
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	p := g.CurrentAmount.Div(g.TargetAmount).Mul(hundred)
	if p.GreaterThan(hundred) {
		return 100
	}
	return p.InexactFloat64()
}

// ToRecord converts the goal to its persisted form with a fresh status.
func (g Goal) ToRecord() Record {
	return Record{
		"id":             g.ID,
		"username":       g.Username,
		"title":          g.Title,
		"target_amount":  g.TargetAmount.InexactFloat64(),
		"current_amount": g.CurrentAmount.InexactFloat64(),
		"deadline":       g.Deadline,
		"status":         string(g.DeriveStatus()),
	}
}

// GoalFromRecord coerces a persisted record. Any stored status is ignored.
func GoalFromRecord(r Record) Goal {
	g := Goal{
		ID:            r.String("id"),
		Username:      r.String("username"),
		Title:         r.String("title"),
		TargetAmount:  r.Decimal("target_amount"),
		CurrentAmount: r.Decimal("current_amount"),
		Deadline:      strings.TrimSpace(r.String("deadline")),
	}
	g.Status = g.DeriveStatus()
	return g
}
