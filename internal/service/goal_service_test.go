package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-app/backend/internal/model"
	"github.com/fintrack-app/backend/internal/store"
)

// fixedNow pins the services to September 2024 so "current month"
// computations are deterministic.
var fixedNow = time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)

func newGoalTestServices(t *testing.T) (*FinanceService, *GoalService) {
	t.Helper()
	st := store.NewMemoryStore()
	fs := NewFinanceService(st)
	gs := NewGoalService(st)
	gs.now = func() time.Time { return fixedNow }
	return fs, gs
}

func seedMonth(t *testing.T, fs *FinanceService, userID string, income, expense model.Money) {
	t.Helper()
	ctx := context.Background()
	if income > 0 {
		_, err := fs.CreateIncome(ctx, userID, EntryInput{Amount: income, Category: "Job", Date: fixedNow})
		require.NoError(t, err)
	}
	if expense > 0 {
		_, err := fs.CreateTransaction(ctx, userID, EntryInput{Amount: expense, Category: "Food", Date: fixedNow})
		require.NoError(t, err)
	}
}

func TestGoalServiceCRUD(t *testing.T) {
	_, gs := newGoalTestServices(t)
	ctx := context.Background()

	goal, err := gs.CreateGoal(ctx, "user-1", GoalInput{
		Name:         "Vacation",
		TargetAmount: 200000,
		EndDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, model.GoalStatusOngoing, goal.Status)
	assert.Equal(t, model.Money(0), goal.Contributions)

	_, err = gs.CreateGoal(ctx, "user-1", GoalInput{Name: "Broken", TargetAmount: 0})
	assert.ErrorIs(t, err, ErrInvalidGoalTarget)

	updated, err := gs.UpdateGoal(ctx, "user-1", goal.ID, GoalInput{
		Name:         "Big Vacation",
		TargetAmount: 300000,
		EndDate:      goal.EndDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "Big Vacation", updated.Name)

	_, err = gs.GetGoal(ctx, "user-2", goal.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, gs.DeleteGoal(ctx, "user-1", goal.ID))
	_, err = gs.GetGoal(ctx, "user-1", goal.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestGoalServiceContribute(t *testing.T) {
	ctx := context.Background()

	t.Run("overdraft rejected and goal unchanged", func(t *testing.T) {
		fs, gs := newGoalTestServices(t)
		seedMonth(t, fs, "user-1", 10000, 2000) // 8000 available

		goal, err := gs.CreateGoal(ctx, "user-1", GoalInput{Name: "Car", TargetAmount: 500000, EndDate: fixedNow.AddDate(1, 0, 0)})
		require.NoError(t, err)

		_, err = gs.Contribute(ctx, "user-1", goal.ID, 10000)
		assert.ErrorIs(t, err, ErrInsufficientSavings)

		unchanged, err := gs.GetGoal(ctx, "user-1", goal.ID)
		require.NoError(t, err)
		assert.Equal(t, model.Money(0), unchanged.Contributions)
		assert.Equal(t, model.GoalStatusOngoing, unchanged.Status)
	})

	t.Run("exact available succeeds with zero remaining", func(t *testing.T) {
		fs, gs := newGoalTestServices(t)
		seedMonth(t, fs, "user-1", 10000, 2000)

		goal, err := gs.CreateGoal(ctx, "user-1", GoalInput{Name: "Car", TargetAmount: 500000, EndDate: fixedNow.AddDate(1, 0, 0)})
		require.NoError(t, err)

		result, err := gs.Contribute(ctx, "user-1", goal.ID, 8000)
		require.NoError(t, err)
		assert.Equal(t, model.Money(8000), result.Goal.Contributions)
		assert.Equal(t, model.Money(0), result.RemainingSavings)
	})

	t.Run("prior contributions shrink the pool", func(t *testing.T) {
		fs, gs := newGoalTestServices(t)
		seedMonth(t, fs, "user-1", 10000, 2000)

		goal, err := gs.CreateGoal(ctx, "user-1", GoalInput{Name: "Car", TargetAmount: 500000, EndDate: fixedNow.AddDate(1, 0, 0)})
		require.NoError(t, err)

		_, err = gs.Contribute(ctx, "user-1", goal.ID, 5000)
		require.NoError(t, err)

		// 8000 available originally, 5000 already committed.
		_, err = gs.Contribute(ctx, "user-1", goal.ID, 4000)
		assert.ErrorIs(t, err, ErrInsufficientSavings)

		result, err := gs.Contribute(ctx, "user-1", goal.ID, 3000)
		require.NoError(t, err)
		assert.Equal(t, model.Money(0), result.RemainingSavings)
	})

	t.Run("reaching target completes the goal", func(t *testing.T) {
		fs, gs := newGoalTestServices(t)
		seedMonth(t, fs, "user-1", 10000, 0)

		goal, err := gs.CreateGoal(ctx, "user-1", GoalInput{Name: "Headphones", TargetAmount: 6000, EndDate: fixedNow.AddDate(0, 3, 0)})
		require.NoError(t, err)

		result, err := gs.Contribute(ctx, "user-1", goal.ID, 6000)
		require.NoError(t, err)
		assert.Equal(t, model.GoalStatusCompleted, result.Goal.Status)
	})

	t.Run("invalid amounts rejected", func(t *testing.T) {
		fs, gs := newGoalTestServices(t)
		seedMonth(t, fs, "user-1", 10000, 0)

		goal, err := gs.CreateGoal(ctx, "user-1", GoalInput{Name: "Car", TargetAmount: 500000, EndDate: fixedNow.AddDate(1, 0, 0)})
		require.NoError(t, err)

		_, err = gs.Contribute(ctx, "user-1", goal.ID, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = gs.Contribute(ctx, "user-1", goal.ID, -100)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("empty month has nothing to contribute", func(t *testing.T) {
		_, gs := newGoalTestServices(t)

		goal, err := gs.CreateGoal(ctx, "user-1", GoalInput{Name: "Car", TargetAmount: 500000, EndDate: fixedNow.AddDate(1, 0, 0)})
		require.NoError(t, err)

		_, err = gs.Contribute(ctx, "user-1", goal.ID, 1)
		assert.ErrorIs(t, err, ErrInsufficientSavings)
	})
}
