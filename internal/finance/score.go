package finance

import (
	"math"

	"github.com/fintrack-app/backend/internal/model"
)

// HealthBand classifies a health score for display.
type HealthBand string

const (
	BandVulnerable HealthBand = "Vulnerable"
	BandCoping     HealthBand = "Coping"
	BandHealthy    HealthBand = "Healthy"
)

// Score weights encode the product's domain policy and must not be tuned
// independently of it.
const (
	savingsRateWeight      = 0.40
	expenseRateWeight      = 0.35
	savingsToExpenseWeight = 0.25
)

// HealthScore computes the financial health score, an integer in [0,100].
// Zero income scores 0 (a "vulnerable" baseline, not an error); a zero
// expense total pins the savings-to-expense component at 0 rather than
// dividing by zero.
func HealthScore(income, expenses, savings model.Money) int {
	if income == 0 {
		return 0
	}

	savingsRate := float64(savings) / float64(income)
	expenseRate := float64(expenses) / float64(income)
	savingsToExpense := 0.0
	if expenses != 0 {
		savingsToExpense = float64(savings) / float64(expenses)
	}

	raw := savingsRate*100*savingsRateWeight +
		(1-expenseRate)*100*expenseRateWeight +
		savingsToExpense*100*savingsToExpenseWeight

	return int(math.Round(math.Min(100, math.Max(0, raw))))
}

// BandFor maps a score to its classification band. Bands are half-open
// except the top, which is closed: [0,40) vulnerable, [40,80) coping,
// [80,100] healthy.
func BandFor(score int) HealthBand {
	switch {
	case score < 40:
		return BandVulnerable
	case score < 80:
		return BandCoping
	default:
		return BandHealthy
	}
}
