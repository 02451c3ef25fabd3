package finance

import (
	"testing"
	"time"

	"github.com/fintrack-app/backend/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGoalProgress(t *testing.T) {
	assert.Equal(t, 25.0, GoalProgress(model.Money(5000), model.Money(20000)))
	assert.Equal(t, 100.0, GoalProgress(model.Money(25000), model.Money(20000)), "clamped at 100")
	assert.Equal(t, 0.0, GoalProgress(model.Money(5000), 0), "zero target must not divide by zero")
	assert.Equal(t, 0.0, GoalProgress(0, model.Money(20000)))
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		progress float64
		want     ProgressTier
	}{
		{0, TierLow},
		{29.9, TierLow},
		{30, TierMedium},
		{69.9, TierMedium},
		{70, TierHigh},
		{100, TierHigh},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.progress), "progress %v", tc.progress)
	}
}

func TestRemainingMonths(t *testing.T) {
	now := time.Date(2024, 9, 15, 12, 0, 0, 0, time.UTC)

	t.Run("future goal", func(t *testing.T) {
		end := time.Date(2024, 12, 20, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 4, RemainingMonths(end, now))
	})

	t.Run("partial month does not count", func(t *testing.T) {
		end := time.Date(2024, 12, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 3, RemainingMonths(end, now))
	})

	t.Run("same month", func(t *testing.T) {
		end := time.Date(2024, 9, 30, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 1, RemainingMonths(end, now))
	})

	t.Run("overdue goes negative", func(t *testing.T) {
		end := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, -2, RemainingMonths(end, now))
	})

	t.Run("year boundary", func(t *testing.T) {
		end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, 6, RemainingMonths(end, now))
	})
}
