package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-app/backend/internal/finance"
	"github.com/fintrack-app/backend/internal/model"
	"github.com/fintrack-app/backend/internal/store"
)

// GoalService implements savings goal operations, including contributions
// that draw down available savings.
type GoalService struct {
	store store.Store
	now   func() time.Time
}

func NewGoalService(store store.Store) *GoalService {
	return &GoalService{
		store: store,
		now:   time.Now,
	}
}

// GoalInput carries the user-editable fields of a goal.
type GoalInput struct {
	Name         string
	Description  string
	TargetAmount model.Money
	EndDate      time.Time
}

func (in *GoalInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("goal name is required")
	}
	if in.TargetAmount <= 0 {
		return ErrInvalidGoalTarget
	}
	return nil
}

func (s *GoalService) CreateGoal(ctx context.Context, userID string, in GoalInput) (*model.Goal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	goal := &model.Goal{
		ID:           uuid.New().String(),
		UserID:       userID,
		Name:         in.Name,
		Description:  in.Description,
		TargetAmount: in.TargetAmount,
		Status:       model.GoalStatusOngoing,
		EndDate:      in.EndDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return goal, nil
}

// UpdateGoal edits goal metadata. The contribution accumulator is never
// written here; it only moves through Contribute.
func (s *GoalService) UpdateGoal(ctx context.Context, userID, goalID string, in GoalInput) (*model.Goal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	goal, err := s.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.Name = in.Name
	goal.Description = in.Description
	goal.TargetAmount = in.TargetAmount
	goal.EndDate = in.EndDate
	goal.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	if _, err := s.getOwnedGoal(ctx, userID, goalID); err != nil {
		return err
	}
	if err := s.store.DeleteGoal(ctx, goalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}

func (s *GoalService) GetGoal(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	return s.getOwnedGoal(ctx, userID, goalID)
}

func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	return s.store.ListGoals(ctx, userID)
}

// ContributionResult is what Contribute returns: the updated goal and the
// savings left for the current month after the contribution.
type ContributionResult struct {
	Goal             *model.Goal `json:"goal"`
	RemainingSavings model.Money `json:"remaining_savings_cents"`
}

// Contribute moves amount from the current month's available savings into a
// goal's accumulator. Available savings is current-month income minus
// current-month expenses minus lifetime contributions across all goals; a
// contribution that exceeds it is rejected with ErrInsufficientSavings and
// nothing changes.
func (s *GoalService) Contribute(ctx context.Context, userID, goalID string, amount model.Money) (*ContributionResult, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	goal, err := s.getOwnedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	available, err := s.availableSavings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if amount > available {
		return nil, ErrInsufficientSavings
	}

	goal.Contributions += amount
	if goal.Contributions >= goal.TargetAmount {
		goal.Status = model.GoalStatusCompleted
	}
	goal.UpdatedAt = s.now().UTC()

	if err := s.store.UpdateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &ContributionResult{
		Goal:             goal,
		RemainingSavings: available - amount,
	}, nil
}

func (s *GoalService) availableSavings(ctx context.Context, userID string) (model.Money, error) {
	month := model.MonthKeyOf(s.now().UTC())

	txs, err := s.store.ListTransactionsByMonth(ctx, userID, month)
	if err != nil {
		return 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	incomes, err := s.store.ListIncomesByMonth(ctx, userID, month)
	if err != nil {
		return 0, fmt.Errorf("failed to list incomes: %w", err)
	}
	goals, err := s.store.ListGoals(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list goals: %w", err)
	}

	income := finance.TotalForMonth(finance.FromIncomes(incomes), month)
	expenses := finance.TotalForMonth(finance.FromTransactions(txs), month)
	return finance.AvailableSavings(income, expenses, finance.TotalContributions(goals)), nil
}

func (s *GoalService) getOwnedGoal(ctx context.Context, userID, goalID string) (*model.Goal, error) {
	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.UserID != userID {
		return nil, store.ErrNotFound
	}
	return goal, nil
}
