package finance

import (
	"time"

	"github.com/fintrack-app/backend/internal/model"
)

// ProgressTier is the coarse color tier for a goal's progress bar.
type ProgressTier string

const (
	TierLow    ProgressTier = "low"
	TierMedium ProgressTier = "medium"
	TierHigh   ProgressTier = "high"
)

// GoalProgress returns the percentage of the target covered by
// contributions, clamped to [0,100]. A zero target yields 0 rather than
// dividing by zero; goal creation rejects zero targets upstream, but the
// function stays total for records that predate that check.
func GoalProgress(contributions, target model.Money) float64 {
	if target <= 0 {
		return 0
	}
	progress := float64(contributions) / float64(target) * 100
	if progress > 100 {
		return 100
	}
	return progress
}

// TierFor maps progress to its display tier: below 30 low, below 70 medium,
// otherwise high.
func TierFor(progress float64) ProgressTier {
	switch {
	case progress < 30:
		return TierLow
	case progress < 70:
		return TierMedium
	default:
		return TierHigh
	}
}

// RemainingMonths is the calendar-month difference from now to the goal's
// end date, plus one. Overdue goals yield zero or negative values; callers
// display those rather than treating them as errors.
func RemainingMonths(endDate, now time.Time) int {
	months := (endDate.Year()-now.Year())*12 + int(endDate.Month()) - int(now.Month())
	// Count only full months, like a calendar difference: back off when the
	// partial month has not completed in the direction of travel.
	if months > 0 && endDate.Day() < now.Day() {
		months--
	} else if months < 0 && endDate.Day() > now.Day() {
		months++
	}
	return months + 1
}
