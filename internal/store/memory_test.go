package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-app/backend/internal/model"
)

func newTestTransaction(userID, category string, amount model.Money, date time.Time) *model.Transaction {
	return &model.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    amount,
		Category:  category,
		Date:      date,
		MonthKey:  model.MonthKeyOf(date),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestMemoryStoreTransactionCRUD(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tx := newTestTransaction("user-1", "Food", 2500, time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.CreateTransaction(ctx, tx))

	got, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, model.Money(2500), got.Amount)

	got.Amount = 3000
	require.NoError(t, s.UpdateTransaction(ctx, got))

	updated, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Money(3000), updated.Amount)

	require.NoError(t, s.DeleteTransaction(ctx, tx.ID))
	_, err = s.GetTransaction(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.GetTransaction(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteTransaction(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, s.UpdateGoal(ctx, &model.Goal{ID: "missing"}), ErrNotFound)
	assert.ErrorIs(t, s.DeleteRecurringPayment(ctx, "missing"), ErrNotFound)
}

func TestMemoryStoreListByMonth(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	sept := time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC)
	oct := time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.CreateTransaction(ctx, newTestTransaction("user-1", "Food", 1000, sept)))
	require.NoError(t, s.CreateTransaction(ctx, newTestTransaction("user-1", "Housing", 2000, sept)))
	require.NoError(t, s.CreateTransaction(ctx, newTestTransaction("user-1", "Food", 3000, oct)))
	require.NoError(t, s.CreateTransaction(ctx, newTestTransaction("user-2", "Food", 4000, sept)))

	txs, err := s.ListTransactionsByMonth(ctx, "user-1", model.MonthKey("09-2024"))
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, "user-1", tx.UserID)
		assert.Equal(t, model.MonthKey("09-2024"), tx.MonthKey)
	}

	all, err := s.ListTransactions(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMemoryStoreListRecentTransactions(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		tx := newTestTransaction("user-1", "Food", model.Money(100*(i+1)), base.AddDate(0, 0, i))
		require.NoError(t, s.CreateTransaction(ctx, tx))
	}

	recent, err := s.ListRecentTransactions(ctx, "user-1", 5)
	require.NoError(t, err)
	require.Len(t, recent, 5)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].Date.After(recent[i-1].Date), "expected dates in descending order")
	}
	assert.Equal(t, base.AddDate(0, 0, 6), recent[0].Date)
}

func TestMemoryStoreListTransactionsByDateRange(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	start := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)

	inRange := newTestTransaction("user-1", "Food", 1000, time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC))
	atStart := newTestTransaction("user-1", "Food", 1000, start)
	atEnd := newTestTransaction("user-1", "Food", 1000, end)
	before := newTestTransaction("user-1", "Food", 1000, start.AddDate(0, 0, -1))

	for _, tx := range []*model.Transaction{inRange, atStart, atEnd, before} {
		require.NoError(t, s.CreateTransaction(ctx, tx))
	}

	txs, err := s.ListTransactionsByDateRange(ctx, "user-1", start, end)
	require.NoError(t, err)
	require.Len(t, txs, 2, "start is inclusive, end is exclusive")
	assert.Equal(t, atStart.ID, txs[0].ID)
	assert.Equal(t, inRange.ID, txs[1].ID)
}

func TestMemoryStoreGoals(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	goal := &model.Goal{
		ID:           uuid.New().String(),
		UserID:       "user-1",
		Name:         "Vacation",
		TargetAmount: 200000,
		Status:       model.GoalStatusOngoing,
		EndDate:      time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateGoal(ctx, goal))

	goal.Contributions = 5000
	require.NoError(t, s.UpdateGoal(ctx, goal))

	got, err := s.GetGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Money(5000), got.Contributions)

	goals, err := s.ListGoals(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, goals, 1)

	other, err := s.ListGoals(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryStoreUpcomingRecurringPayments(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		rp := &model.RecurringPayment{
			ID:        uuid.New().String(),
			UserID:    "user-1",
			Name:      "Subscription",
			Amount:    999,
			StartDate: base.AddDate(0, 0, 7-i),
			CreatedAt: time.Now(),
		}
		require.NoError(t, s.CreateRecurringPayment(ctx, rp))
	}

	upcoming, err := s.ListUpcomingRecurringPayments(ctx, "user-1", 5)
	require.NoError(t, err)
	require.Len(t, upcoming, 5)
	for i := 1; i < len(upcoming); i++ {
		assert.False(t, upcoming[i].StartDate.Before(upcoming[i-1].StartDate), "expected start dates ascending")
	}
}

func TestMemoryStoreCopyOnRead(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	tx := newTestTransaction("user-1", "Food", 1000, time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.CreateTransaction(ctx, tx))

	got, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	got.Amount = 9999

	again, err := s.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, model.Money(1000), again.Amount, "mutating a returned record must not affect the store")
}
