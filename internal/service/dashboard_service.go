package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/fintrack-app/backend/internal/finance"
	"github.com/fintrack-app/backend/internal/model"
	"github.com/fintrack-app/backend/internal/store"
)

// dashboardListLimit bounds the recent-transactions and upcoming-payments
// widgets.
const dashboardListLimit = 5

// DashboardService assembles the monthly dashboard from store snapshots and
// the aggregation engine.
type DashboardService struct {
	store store.Store
	now   func() time.Time
}

func NewDashboardService(store store.Store) *DashboardService {
	return &DashboardService{
		store: store,
		now:   time.Now,
	}
}

// TrendPoint is one bucket of a monthly trend series.
type TrendPoint struct {
	Month model.MonthKey `json:"month"`
	Total model.Money    `json:"total_cents"`
}

// GoalSummary is the dashboard view of a goal with derived progress fields.
type GoalSummary struct {
	Goal            *model.Goal          `json:"goal"`
	Progress        float64              `json:"progress_percent"`
	Tier            finance.ProgressTier `json:"tier"`
	RemainingMonths int                  `json:"remaining_months"`
}

// Dashboard is the full payload for one month.
type Dashboard struct {
	Month            model.MonthKey            `json:"month"`
	TotalIncome      model.Money               `json:"total_income_cents"`
	TotalExpenses    model.Money               `json:"total_expenses_cents"`
	AvailableSavings model.Money               `json:"available_savings_cents"`
	HealthScore      int                       `json:"health_score"`
	HealthBand       finance.HealthBand        `json:"health_band"`
	ExpenseBreakdown []finance.CategoryTotal   `json:"expense_breakdown"`
	IncomeBreakdown  []finance.CategoryTotal   `json:"income_breakdown"`
	ExpenseTrend     []TrendPoint              `json:"expense_trend"`
	IncomeTrend      []TrendPoint              `json:"income_trend"`
	SavingsTrend     []TrendPoint              `json:"savings_trend"`
	Goals            []GoalSummary             `json:"goals"`
	Alerts           []string                  `json:"alerts"`
	RecentActivity   []*model.Transaction      `json:"recent_activity"`
	UpcomingPayments []*model.RecurringPayment `json:"upcoming_payments"`
	MatrixMonths     []model.MonthKey          `json:"matrix_months"`
	MatrixCategories []string                  `json:"matrix_categories"`
	MatrixRows       [][]model.Money           `json:"matrix_rows"`
}

// ScoreResult is the standalone health score payload.
type ScoreResult struct {
	Month   model.MonthKey     `json:"month"`
	Score   int                `json:"score"`
	Band    finance.HealthBand `json:"band"`
	Income  model.Money        `json:"income_cents"`
	Expense model.Money        `json:"expense_cents"`
	Savings model.Money        `json:"savings_cents"`
}

// GetDashboard builds the dashboard for the given month. The store fetches
// run concurrently; aggregation happens once every snapshot is in.
func (s *DashboardService) GetDashboard(ctx context.Context, userID string, month model.MonthKey) (*Dashboard, error) {
	var (
		monthTxs     []*model.Transaction
		monthIncomes []*model.Income
		allTxs       []*model.Transaction
		allIncomes   []*model.Income
		goals        []*model.Goal
		recent       []*model.Transaction
		upcoming     []*model.RecurringPayment
		categories   []*model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthTxs, err = s.store.ListTransactionsByMonth(gctx, userID, month)
		return err
	})
	g.Go(func() (err error) {
		monthIncomes, err = s.store.ListIncomesByMonth(gctx, userID, month)
		return err
	})
	g.Go(func() (err error) {
		allTxs, err = s.store.ListTransactions(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		allIncomes, err = s.store.ListIncomes(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.store.ListGoals(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		recent, err = s.store.ListRecentTransactions(gctx, userID, dashboardListLimit)
		return err
	})
	g.Go(func() (err error) {
		upcoming, err = s.store.ListUpcomingRecurringPayments(gctx, userID, dashboardListLimit)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.store.ListCategories(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard data: %w", err)
	}

	monthExpenseEntries := finance.FromTransactions(monthTxs)
	monthIncomeEntries := finance.FromIncomes(monthIncomes)
	allExpenseEntries := finance.FromTransactions(allTxs)
	allIncomeEntries := finance.FromIncomes(allIncomes)

	totalIncome := finance.TotalForMonth(monthIncomeEntries, month)
	totalExpenses := finance.TotalForMonth(monthExpenseEntries, month)
	contributions := finance.TotalContributions(goals)
	available := finance.AvailableSavings(totalIncome, totalExpenses, contributions)

	expenseTrend := finance.TrendSeries(allExpenseEntries, month)
	incomeTrend := finance.TrendSeries(allIncomeEntries, month)
	savingsTrend := finance.SavingsTrend(incomeTrend, expenseTrend)
	trendMonths := finance.TrendMonths(month)

	matrixMonths, matrixRows := finance.CategoryMatrix(allExpenseEntries, model.DefaultExpenseCategories)

	score := finance.HealthScore(totalIncome, totalExpenses, available)

	now := s.now().UTC()
	summaries := make([]GoalSummary, 0, len(goals))
	for _, goal := range goals {
		progress := finance.GoalProgress(goal.Contributions, goal.TargetAmount)
		summaries = append(summaries, GoalSummary{
			Goal:            goal,
			Progress:        progress,
			Tier:            finance.TierFor(progress),
			RemainingMonths: finance.RemainingMonths(goal.EndDate, now),
		})
	}

	return &Dashboard{
		Month:            month,
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		AvailableSavings: available,
		HealthScore:      score,
		HealthBand:       finance.BandFor(score),
		ExpenseBreakdown: finance.ExpenseBreakdown(monthExpenseEntries, month),
		IncomeBreakdown:  finance.IncomeBreakdown(monthIncomeEntries, month),
		ExpenseTrend:     trendPoints(trendMonths, expenseTrend),
		IncomeTrend:      trendPoints(trendMonths, incomeTrend),
		SavingsTrend:     trendPoints(trendMonths, savingsTrend),
		Goals:            summaries,
		Alerts:           finance.CategoryLimitAlerts(monthExpenseEntries, categories, month),
		RecentActivity:   recent,
		UpcomingPayments: upcoming,
		MatrixMonths:     matrixMonths,
		MatrixCategories: model.DefaultExpenseCategories,
		MatrixRows:       matrixRows,
	}, nil
}

// GetScore computes just the health score for a month.
func (s *DashboardService) GetScore(ctx context.Context, userID string, month model.MonthKey) (*ScoreResult, error) {
	var (
		monthTxs     []*model.Transaction
		monthIncomes []*model.Income
		goals        []*model.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		monthTxs, err = s.store.ListTransactionsByMonth(gctx, userID, month)
		return err
	})
	g.Go(func() (err error) {
		monthIncomes, err = s.store.ListIncomesByMonth(gctx, userID, month)
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.store.ListGoals(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load score data: %w", err)
	}

	income := finance.TotalForMonth(finance.FromIncomes(monthIncomes), month)
	expenses := finance.TotalForMonth(finance.FromTransactions(monthTxs), month)
	savings := finance.AvailableSavings(income, expenses, finance.TotalContributions(goals))
	score := finance.HealthScore(income, expenses, savings)

	return &ScoreResult{
		Month:   month,
		Score:   score,
		Band:    finance.BandFor(score),
		Income:  income,
		Expense: expenses,
		Savings: savings,
	}, nil
}

func trendPoints(months [finance.TrendWindowSize]model.MonthKey, series [finance.TrendWindowSize]model.Money) []TrendPoint {
	points := make([]TrendPoint, 0, finance.TrendWindowSize)
	for i := range months {
		points = append(points, TrendPoint{Month: months[i], Total: series[i]})
	}
	return points
}
