package dto

import (
	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CreateGoalRequest carries the fields of a new savings goal.
type CreateGoalRequest struct {
	Title         string     `json:"title" validate:"required,max=100"`
	TargetAmount  FlexString `json:"targetAmount" validate:"required,posamount"`
	CurrentAmount FlexString `json:"currentAmount" validate:"omitempty,nonnegamount"`
	Deadline      string     `json:"deadline" validate:"required,isodate"`
}

// UpdateGoalRequest is a partial update. Status may only restate the value
// implied by the amounts.
type UpdateGoalRequest struct {
	Title         *string     `json:"title"`
	TargetAmount  *FlexString `json:"targetAmount"`
	CurrentAmount *FlexString `json:"currentAmount"`
	Deadline      *string     `json:"deadline"`
	Status        *string     `json:"status"`
}

// GoalResponse adds derived progress to a goal.
type GoalResponse struct {
	domain.Goal
	Progress float64 `json:"progress"`
}

// ToGoalResponse converts a domain goal.
func ToGoalResponse(g domain.Goal) GoalResponse {
	return GoalResponse{Goal: g, Progress: g.Progress()}
}

// ToGoalResponses converts a slice of goals.
func ToGoalResponses(goals []domain.Goal) []GoalResponse {
	out := make([]GoalResponse, len(goals))
	for i, g := range goals {
		out[i] = ToGoalResponse(g)
	}
	return out
}

// GoalEditResponse reports the edited goal and any fields left unchanged.
type GoalEditResponse struct {
	Goal           GoalResponse           `json:"goal"`
	RejectedFields []apperrors.FieldError `json:"rejectedFields,omitempty"`
}
