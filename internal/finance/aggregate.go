// Package finance is the aggregation engine: pure functions that turn raw
// transaction, income, and goal snapshots into the derived summaries the
// dashboard shows. Nothing here performs I/O or mutates its inputs; callers
// fetch a snapshot scoped to a user (and optionally a month) and pass it in.
package finance

import (
	"fmt"
	"sort"

	"github.com/fintrack-app/backend/internal/model"
)

// TrendWindowSize is the fixed number of monthly buckets in a trend series.
// A bounded sliding window keeps chart payloads small regardless of history.
const TrendWindowSize = 5

// Entry is the record view the engine aggregates over. Transactions and
// incomes share it; only their category sets and breakdown ordering differ.
type Entry struct {
	Category string
	Amount   model.Money
	Month    model.MonthKey
}

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	Category string      `json:"category"`
	Total    model.Money `json:"total_cents"`
}

// FromTransactions projects transactions onto aggregation entries.
func FromTransactions(txs []*model.Transaction) []Entry {
	entries := make([]Entry, 0, len(txs))
	for _, t := range txs {
		entries = append(entries, Entry{Category: t.Category, Amount: t.Amount, Month: t.MonthKey})
	}
	return entries
}

// FromIncomes projects incomes onto aggregation entries.
func FromIncomes(incomes []*model.Income) []Entry {
	entries := make([]Entry, 0, len(incomes))
	for _, in := range incomes {
		entries = append(entries, Entry{Category: in.Category, Amount: in.Amount, Month: in.MonthKey})
	}
	return entries
}

// TotalForMonth sums the amounts of entries in the given bucket.
// An empty scope sums to zero; that is a valid result, not an error.
func TotalForMonth(entries []Entry, mk model.MonthKey) model.Money {
	var total model.Money
	for _, e := range entries {
		if e.Month == mk {
			total += e.Amount
		}
	}
	return total
}

// ExpenseBreakdown groups the month's entries by category and returns totals
// sorted descending by amount. Ties keep first-seen order: the sort is stable
// over the order categories were first encountered.
func ExpenseBreakdown(entries []Entry, mk model.MonthKey) []CategoryTotal {
	breakdown := groupByCategory(entries, mk)
	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Total > breakdown[j].Total
	})
	return breakdown
}

// IncomeBreakdown groups the month's entries by category in first-seen order.
// Income breakdowns are intentionally not sorted by amount; the asymmetry
// with ExpenseBreakdown is part of the dashboard contract.
func IncomeBreakdown(entries []Entry, mk model.MonthKey) []CategoryTotal {
	return groupByCategory(entries, mk)
}

func groupByCategory(entries []Entry, mk model.MonthKey) []CategoryTotal {
	totals := make(map[string]model.Money)
	var order []string
	for _, e := range entries {
		if e.Month != mk {
			continue
		}
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}
		totals[e.Category] += e.Amount
	}

	breakdown := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		breakdown = append(breakdown, CategoryTotal{Category: cat, Total: totals[cat]})
	}
	return breakdown
}

// TrendMonths returns the window of consecutive MonthKeys ending at the
// target (inclusive), oldest first. The walk is calendar-month arithmetic,
// so month-length variation and year boundaries do not skew buckets:
// target "01-2025" yields "09-2024" through "01-2025".
func TrendMonths(target model.MonthKey) [TrendWindowSize]model.MonthKey {
	var months [TrendWindowSize]model.MonthKey
	for i := 0; i < TrendWindowSize; i++ {
		months[i] = target.AddMonths(i - (TrendWindowSize - 1))
	}
	return months
}

// TrendSeries buckets all entries into the window ending at target and
// returns the per-month sums aligned with TrendMonths(target). Absent
// buckets default to zero.
func TrendSeries(entries []Entry, target model.MonthKey) [TrendWindowSize]model.Money {
	months := TrendMonths(target)
	index := make(map[model.MonthKey]int, TrendWindowSize)
	for i, mk := range months {
		index[mk] = i
	}

	var series [TrendWindowSize]model.Money
	for _, e := range entries {
		if i, ok := index[e.Month]; ok {
			series[i] += e.Amount
		}
	}
	return series
}

// SavingsTrend is the pointwise income minus expense series. Unlike
// AvailableSavings it does not subtract goal contributions; the two
// computations are deliberately distinct and must not be unified.
func SavingsTrend(income, expense [TrendWindowSize]model.Money) [TrendWindowSize]model.Money {
	var savings [TrendWindowSize]model.Money
	for i := range income {
		savings[i] = income[i] - expense[i]
	}
	return savings
}

// AvailableSavings is the spendable pool for the scoped month: income minus
// expenses minus total lifetime goal contributions. Contributions are not
// month-scoped here; the whole accumulator counts against the current month.
func AvailableSavings(income, expenses, contributions model.Money) model.Money {
	return income - expenses - contributions
}

// TotalContributions sums the contribution accumulators across goals.
func TotalContributions(goals []*model.Goal) model.Money {
	var total model.Money
	for _, g := range goals {
		total += g.Contributions
	}
	return total
}

// categoryLimitWarningRatio triggers an alert once month spend reaches 80%
// of a category's limit.
const categoryLimitWarningRatio = 0.8

// CategoryLimitAlerts returns a warning per category whose spend for the
// month has reached 80% of its configured limit. Categories without a limit
// are skipped.
func CategoryLimitAlerts(entries []Entry, categories []*model.Category, mk model.MonthKey) []string {
	var alerts []string
	for _, cat := range categories {
		if cat.Limit <= 0 {
			continue
		}
		var spent model.Money
		for _, e := range entries {
			if e.Month == mk && e.Category == cat.Name {
				spent += e.Amount
			}
		}
		if float64(spent) >= categoryLimitWarningRatio*float64(cat.Limit) {
			alerts = append(alerts, fmt.Sprintf("You are approaching the limit for %s.", cat.Name))
		}
	}
	return alerts
}

// CategoryMatrix buckets every entry by month and returns, for each month in
// chronological order, the totals over a fixed category list. Entries in
// categories outside the list are ignored. Used for cross-month stacked
// charts where the column set must stay constant.
func CategoryMatrix(entries []Entry, categories []string) ([]model.MonthKey, [][]model.Money) {
	index := make(map[string]int, len(categories))
	for i, c := range categories {
		index[c] = i
	}

	byMonth := make(map[model.MonthKey][]model.Money)
	for _, e := range entries {
		i, ok := index[e.Category]
		if !ok {
			continue
		}
		row, ok := byMonth[e.Month]
		if !ok {
			row = make([]model.Money, len(categories))
			byMonth[e.Month] = row
		}
		row[i] += e.Amount
	}

	months := make([]model.MonthKey, 0, len(byMonth))
	for mk := range byMonth {
		months = append(months, mk)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Time().Before(months[j].Time())
	})

	rows := make([][]model.Money, 0, len(months))
	for _, mk := range months {
		rows = append(rows, byMonth[mk])
	}
	return months, rows
}
