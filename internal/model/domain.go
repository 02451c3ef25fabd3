package model

import "time"

// GoalStatus tracks whether a goal is still being saved toward.
type GoalStatus string

const (
	GoalStatusOngoing   GoalStatus = "ongoing"
	GoalStatusCompleted GoalStatus = "completed"
)

// IncomeCategories is the fixed income category set. Expense categories are
// user-defined (see Category) and live in their own collection.
var IncomeCategories = []string{"Rental income", "Job", "Crypto", "Stock"}

// DefaultExpenseCategories is the fixed list used for cross-month category
// matrices; user-defined categories outside this list are excluded from the
// matrix but still appear in per-month breakdowns.
var DefaultExpenseCategories = []string{
	"Food", "Housing", "Utilities", "Transportation", "Entertainment",
	"Recurring Payments", "Miscellaneous", "Healthcare", "Savings", "Taxes",
}

// Transaction is a single expense event. Immutable once aggregated over;
// mutated only via explicit edit and removed via explicit delete.
type Transaction struct {
	ID        string    `firestore:"Id" json:"id"`
	UserID    string    `firestore:"UserId" json:"user_id"`
	Amount    Money     `firestore:"AmountCents" json:"amount_cents"`
	Category  string    `firestore:"Category" json:"category"`
	Date      time.Time `firestore:"Date" json:"date"`
	MonthKey  MonthKey  `firestore:"MonthKey" json:"month_key"`
	CreatedAt time.Time `firestore:"CreatedAt" json:"created_at"`
	UpdatedAt time.Time `firestore:"UpdatedAt" json:"updated_at"`
}

// Income is money received. Same shape as Transaction but drawn from the
// income category set and aggregated separately.
type Income struct {
	ID        string    `firestore:"Id" json:"id"`
	UserID    string    `firestore:"UserId" json:"user_id"`
	Amount    Money     `firestore:"AmountCents" json:"amount_cents"`
	Category  string    `firestore:"Category" json:"category"`
	Date      time.Time `firestore:"Date" json:"date"`
	MonthKey  MonthKey  `firestore:"MonthKey" json:"month_key"`
	CreatedAt time.Time `firestore:"CreatedAt" json:"created_at"`
	UpdatedAt time.Time `firestore:"UpdatedAt" json:"updated_at"`
}

// Goal is a savings goal. Contributions is a running accumulator that only
// grows, via explicit contribution actions that draw down available savings.
type Goal struct {
	ID            string     `firestore:"Id" json:"id"`
	UserID        string     `firestore:"UserId" json:"user_id"`
	Name          string     `firestore:"Name" json:"name"`
	Description   string     `firestore:"Description" json:"description"`
	TargetAmount  Money      `firestore:"TargetAmountCents" json:"target_amount_cents"`
	Contributions Money      `firestore:"ContributionsCents" json:"contributions_cents"`
	Status        GoalStatus `firestore:"Status" json:"status"`
	EndDate       time.Time  `firestore:"EndDate" json:"end_date"`
	CreatedAt     time.Time  `firestore:"CreatedAt" json:"created_at"`
	UpdatedAt     time.Time  `firestore:"UpdatedAt" json:"updated_at"`
}

// RecurringPayment backs the dashboard's upcoming-payments widget.
type RecurringPayment struct {
	ID        string    `firestore:"Id" json:"id"`
	UserID    string    `firestore:"UserId" json:"user_id"`
	Name      string    `firestore:"Name" json:"name"`
	Amount    Money     `firestore:"AmountCents" json:"amount_cents"`
	StartDate time.Time `firestore:"StartDate" json:"start_date"`
	CreatedAt time.Time `firestore:"CreatedAt" json:"created_at"`
}

// Category is a user-defined expense category with an optional monthly
// spending limit (0 means no limit).
type Category struct {
	ID        string    `firestore:"Id" json:"id"`
	UserID    string    `firestore:"UserId" json:"user_id"`
	Name      string    `firestore:"Name" json:"name"`
	Limit     Money     `firestore:"LimitCents" json:"limit_cents"`
	CreatedAt time.Time `firestore:"CreatedAt" json:"created_at"`
}
