package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/validation"
)

// reminderService implements portssvc.ReminderSvcFacade.
type reminderService struct {
	BaseService
	keeper *RecordKeeper
}

// NewReminderService creates the bill reminder ledger.
func NewReminderService(keeper *RecordKeeper, options ...ServiceOption) portssvc.ReminderSvcFacade {
	return &reminderService{BaseService: newBaseService(options...), keeper: keeper}
}

var _ portssvc.ReminderSvcFacade = (*reminderService)(nil)

func (s *reminderService) AddReminder(ctx context.Context, username string, req dto.CreateReminderRequest) (*domain.Reminder, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Amount = dto.FlexString(strings.TrimSpace(string(req.Amount)))
	req.Deadline = strings.TrimSpace(req.Deadline)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	amount, err := validation.ParseAmount(string(req.Amount))
	if err != nil {
		return nil, apperrors.NewFieldError("amount", "must be a positive number")
	}
	reminder := domain.Reminder{
		ID:       s.newID(),
		Username: username,
		Title:    req.Title,
		Amount:   amount,
		Deadline: req.Deadline,
	}

	err = s.keeper.Mutate(ctx, domain.KindReminders, func(records []domain.Record) ([]domain.Record, error) {
		return append(records, reminder.ToRecord()), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save reminder", slog.String("username", username))
		return nil, err
	}
	s.LogInfo(ctx, "Reminder added", slog.String("reminder_id", reminder.ID))
	return &reminder, nil
}

func (s *reminderService) ListReminders(ctx context.Context, username string) ([]domain.Reminder, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	records, err := s.keeper.Read(ctx, domain.KindReminders)
	if err != nil {
		return nil, err
	}
	owned := ownedBy(records, username)
	reminders := make([]domain.Reminder, len(owned))
	for i, r := range owned {
		reminders[i] = domain.ReminderFromRecord(r)
	}
	return reminders, nil
}

func (s *reminderService) GetReminder(ctx context.Context, username, ref string) (*domain.Reminder, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	records, err := s.keeper.Read(ctx, domain.KindReminders)
	if err != nil {
		return nil, err
	}
	i, err := resolveRef(records, domain.KindReminders, username, ref)
	if err != nil {
		return nil, err
	}
	reminder := domain.ReminderFromRecord(records[i])
	return &reminder, nil
}

func (s *reminderService) UpdateReminder(ctx context.Context, username, ref string, req dto.UpdateReminderRequest) (*domain.Reminder, []apperrors.FieldError, error) {
	if err := requireUser(username); err != nil {
		return nil, nil, err
	}

	var (
		reminder domain.Reminder
		edits    fieldEdits
	)
	err := s.keeper.Mutate(ctx, domain.KindReminders, func(records []domain.Record) ([]domain.Record, error) {
		i, err := resolveRef(records, domain.KindReminders, username, ref)
		if err != nil {
			return nil, err
		}
		reminder = domain.ReminderFromRecord(records[i])

		edits.text("title", req.Title, maxTitleLength, &reminder.Title)
		edits.amount("amount", req.Amount, false, &reminder.Amount)
		edits.date("deadline", req.Deadline, &reminder.Deadline)

		return replaceAt(records, i, reminder.ToRecord()), nil
	})
	if err != nil {
		return nil, nil, err
	}

	rejected := edits.result()
	if len(rejected) > 0 {
		s.LogWarn(ctx, "Reminder edit skipped invalid fields", slog.String("reminder_id", reminder.ID), slog.Int("rejected", len(rejected)))
	}
	return &reminder, rejected, nil
}

func (s *reminderService) DeleteReminder(ctx context.Context, username, ref string) error {
	if err := requireUser(username); err != nil {
		return err
	}
	return s.keeper.Mutate(ctx, domain.KindReminders, func(records []domain.Record) ([]domain.Record, error) {
		i, err := resolveRef(records, domain.KindReminders, username, ref)
		if err != nil {
			return nil, err
		}
		return removeAt(records, i), nil
	})
}

func (s *reminderService) DueReminders(ctx context.Context, username string, today time.Time) ([]domain.ReminderDue, error) {
	reminders, err := s.ListReminders(ctx, username)
	if err != nil {
		return nil, err
	}
	due := make([]domain.ReminderDue, 0, len(reminders))
	for _, r := range reminders {
		state := domain.ClassifyReminder(r, today)
		if !state.HasNotice() {
			continue
		}
		due = append(due, domain.ReminderDue{Reminder: r, State: state, Message: state.Message()})
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].State.DaysLeft < due[j].State.DaysLeft
	})
	return due, nil
}
