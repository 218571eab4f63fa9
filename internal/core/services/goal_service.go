package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/finance_tracker/internal/apperrors"
	"github.com/SscSPs/finance_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/utils/validation"
	"github.com/shopspring/decimal"
)

const maxTitleLength = 100

// goalService implements portssvc.GoalSvcFacade.
type goalService struct {
	BaseService
	keeper *RecordKeeper
}

// NewGoalService creates the savings goal ledger.
func NewGoalService(keeper *RecordKeeper, options ...ServiceOption) portssvc.GoalSvcFacade {
	return &goalService{BaseService: newBaseService(options...), keeper: keeper}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) AddGoal(ctx context.Context, username string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	req.Title = strings.TrimSpace(req.Title)
	req.TargetAmount = dto.FlexString(strings.TrimSpace(string(req.TargetAmount)))
	req.CurrentAmount = dto.FlexString(strings.TrimSpace(string(req.CurrentAmount)))
	req.Deadline = strings.TrimSpace(req.Deadline)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	target, err := validation.ParseAmount(string(req.TargetAmount))
	if err != nil {
		return nil, apperrors.NewFieldError("targetAmount", "must be a positive number")
	}
	current := decimal.Zero
	if req.CurrentAmount != "" {
		if current, err = validation.ParseAmount(string(req.CurrentAmount)); err != nil {
			return nil, apperrors.NewFieldError("currentAmount", "must be a number greater than or equal to zero")
		}
	}

	goal := domain.Goal{
		ID:            s.newID(),
		Username:      username,
		Title:         req.Title,
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      req.Deadline,
	}
	goal.Status = goal.DeriveStatus()

	err = s.keeper.Mutate(ctx, domain.KindGoals, func(records []domain.Record) ([]domain.Record, error) {
		return append(records, goal.ToRecord()), nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("username", username))
		return nil, err
	}
	s.LogInfo(ctx, "Goal added", slog.String("goal_id", goal.ID), slog.String("status", string(goal.Status)))
	return &goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, username string) ([]domain.Goal, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	records, err := s.keeper.Read(ctx, domain.KindGoals)
	if err != nil {
		return nil, err
	}
	owned := ownedBy(records, username)
	goals := make([]domain.Goal, len(owned))
	for i, r := range owned {
		goals[i] = domain.GoalFromRecord(r)
	}
	return goals, nil
}

func (s *goalService) GetGoal(ctx context.Context, username, ref string) (*domain.Goal, error) {
	if err := requireUser(username); err != nil {
		return nil, err
	}
	records, err := s.keeper.Read(ctx, domain.KindGoals)
	if err != nil {
		return nil, err
	}
	i, err := resolveRef(records, domain.KindGoals, username, ref)
	if err != nil {
		return nil, err
	}
	goal := domain.GoalFromRecord(records[i])
	return &goal, nil
}

// UpdateGoal applies the provided fields and re-derives the status. An
// explicit status is accepted only when it matches the derived one.
func (s *goalService) UpdateGoal(ctx context.Context, username, ref string, req dto.UpdateGoalRequest) (*domain.Goal, []apperrors.FieldError, error) {
	if err := requireUser(username); err != nil {
		return nil, nil, err
	}

	var (
		goal  domain.Goal
		edits fieldEdits
	)
	err := s.keeper.Mutate(ctx, domain.KindGoals, func(records []domain.Record) ([]domain.Record, error) {
		i, err := resolveRef(records, domain.KindGoals, username, ref)
		if err != nil {
			return nil, err
		}
		goal = domain.GoalFromRecord(records[i])

		edits.text("title", req.Title, maxTitleLength, &goal.Title)
		edits.amount("targetAmount", req.TargetAmount, false, &goal.TargetAmount)
		edits.amount("currentAmount", req.CurrentAmount, true, &goal.CurrentAmount)
		edits.date("deadline", req.Deadline, &goal.Deadline)
		goal.Status = goal.DeriveStatus()

		if v, ok := provided(req.Status); ok {
			if want := domain.GoalStatus(strings.ToLower(v)); want != goal.Status {
				edits.reject("status", fmt.Sprintf("is derived from the amounts and is %s", goal.Status))
			}
		}

		return replaceAt(records, i, goal.ToRecord()), nil
	})
	if err != nil {
		return nil, nil, err
	}

	rejected := edits.result()
	if len(rejected) > 0 {
		s.LogWarn(ctx, "Goal edit skipped invalid fields", slog.String("goal_id", goal.ID), slog.Int("rejected", len(rejected)))
	}
	return &goal, rejected, nil
}

func (s *goalService) DeleteGoal(ctx context.Context, username, ref string) error {
	if err := requireUser(username); err != nil {
		return err
	}
	return s.keeper.Mutate(ctx, domain.KindGoals, func(records []domain.Record) ([]domain.Record, error) {
		i, err := resolveRef(records, domain.KindGoals, username, ref)
		if err != nil {
			return nil, err
		}
		return removeAt(records, i), nil
	})
}
