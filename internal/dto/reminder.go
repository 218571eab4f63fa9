package dto

import (
	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
)

// CreateReminderRequest carries the fields of a new bill reminder.
type CreateReminderRequest struct {
	Title    string     `json:"title" validate:"required,max=100"`
	Amount   FlexString `json:"amount" validate:"required,posamount"`
	Deadline string     `json:"deadline" validate:"required,isodate"`
}

// UpdateReminderRequest is a partial update.
type UpdateReminderRequest struct {
	Title    *string     `json:"title"`
	Amount   *FlexString `json:"amount"`
	Deadline *string     `json:"deadline"`
}

// ReminderEditResponse reports the edited reminder and any fields left unchanged.
type ReminderEditResponse struct {
	Reminder       domain.Reminder        `json:"reminder"`
	RejectedFields []apperrors.FieldError `json:"rejectedFields,omitempty"`
}
