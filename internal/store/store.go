package store

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack-app/backend/internal/model"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for all database operations used by the
// service. Implementations must scope every query to the owning user; the
// aggregation engine receives only snapshots returned from here.
type Store interface {
	// Transaction (expense) operations
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	GetTransaction(ctx context.Context, txID string) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *model.Transaction) error
	DeleteTransaction(ctx context.Context, txID string) error
	ListTransactions(ctx context.Context, userID string) ([]*model.Transaction, error)
	ListTransactionsByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Transaction, error)
	// ListRecentTransactions returns the n most recent transactions by
	// date, newest first. n <= 0 means no limit.
	ListRecentTransactions(ctx context.Context, userID string, n int) ([]*model.Transaction, error)
	ListTransactionsByDateRange(ctx context.Context, userID string, startInclusive, endExclusive time.Time) ([]*model.Transaction, error)

	// Income operations
	CreateIncome(ctx context.Context, income *model.Income) error
	GetIncome(ctx context.Context, incomeID string) (*model.Income, error)
	UpdateIncome(ctx context.Context, income *model.Income) error
	DeleteIncome(ctx context.Context, incomeID string) error
	ListIncomes(ctx context.Context, userID string) ([]*model.Income, error)
	ListIncomesByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Income, error)

	// Goal operations
	CreateGoal(ctx context.Context, goal *model.Goal) error
	GetGoal(ctx context.Context, goalID string) (*model.Goal, error)
	UpdateGoal(ctx context.Context, goal *model.Goal) error
	DeleteGoal(ctx context.Context, goalID string) error
	ListGoals(ctx context.Context, userID string) ([]*model.Goal, error)

	// Recurring payment operations
	CreateRecurringPayment(ctx context.Context, rp *model.RecurringPayment) error
	DeleteRecurringPayment(ctx context.Context, rpID string) error
	// ListUpcomingRecurringPayments returns recurring payments ordered by
	// start date ascending. n <= 0 means no limit.
	ListUpcomingRecurringPayments(ctx context.Context, userID string, n int) ([]*model.RecurringPayment, error)

	// Category operations
	CreateCategory(ctx context.Context, category *model.Category) error
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, categoryID string) error
	ListCategories(ctx context.Context, userID string) ([]*model.Category, error)
}
