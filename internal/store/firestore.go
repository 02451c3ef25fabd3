package store

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/fintrack-app/backend/internal/model"
)

// Firestore collection names. One collection per record kind, documents
// keyed by record ID and filtered by the UserId field.
const (
	transactionsCollection = "transactions"
	incomesCollection      = "incomes"
	goalsCollection        = "goals"
	recurringCollection    = "recurringPayments"
	categoriesCollection   = "categories"
)

// FirestoreStore implements the Store interface using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// Transaction operations

func (s *FirestoreStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := s.client.Collection(transactionsCollection).Doc(tx.ID).Set(ctx, tx)
	return err
}

func (s *FirestoreStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	doc, err := s.client.Collection(transactionsCollection).Doc(txID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}

	var tx model.Transaction
	if err := doc.DataTo(&tx); err != nil {
		return nil, fmt.Errorf("failed to parse transaction: %w", err)
	}
	return &tx, nil
}

func (s *FirestoreStore) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	_, err := s.client.Collection(transactionsCollection).Doc(tx.ID).Set(ctx, tx)
	return err
}

func (s *FirestoreStore) DeleteTransaction(ctx context.Context, txID string) error {
	_, err := s.client.Collection(transactionsCollection).Doc(txID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string) ([]*model.Transaction, error) {
	query := s.client.Collection(transactionsCollection).
		Where("UserId", "==", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	return transactions, nil
}

func (s *FirestoreStore) ListTransactionsByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Transaction, error) {
	// NOTE: Field names must match Go struct field tags (PascalCase) as
	// that's how Firestore serializes the records.
	query := s.client.Collection(transactionsCollection).
		Where("UserId", "==", userID).
		Where("MonthKey", "==", string(month))

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by month: %w", err)
	}

	transactions := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	return transactions, nil
}

// ListRecentTransactions returns the n most recent transactions ordered by
// date descending. Firestore needs a composite index on (UserId, Date) for
// this query.
func (s *FirestoreStore) ListRecentTransactions(ctx context.Context, userID string, n int) ([]*model.Transaction, error) {
	query := s.client.Collection(transactionsCollection).
		Where("UserId", "==", userID).
		OrderBy("Date", firestore.Desc)
	if n > 0 {
		query = query.Limit(n)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}

	transactions := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	return transactions, nil
}

func (s *FirestoreStore) ListTransactionsByDateRange(ctx context.Context, userID string, startInclusive, endExclusive time.Time) ([]*model.Transaction, error) {
	query := s.client.Collection(transactionsCollection).
		Where("UserId", "==", userID).
		Where("Date", ">=", startInclusive).
		Where("Date", "<", endExclusive).
		OrderBy("Date", firestore.Asc)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions by date range: %w", err)
	}

	transactions := make([]*model.Transaction, 0, len(docs))
	for _, doc := range docs {
		var tx model.Transaction
		if err := doc.DataTo(&tx); err != nil {
			return nil, fmt.Errorf("failed to parse transaction: %w", err)
		}
		transactions = append(transactions, &tx)
	}
	return transactions, nil
}

// Income operations

func (s *FirestoreStore) CreateIncome(ctx context.Context, income *model.Income) error {
	_, err := s.client.Collection(incomesCollection).Doc(income.ID).Set(ctx, income)
	return err
}

func (s *FirestoreStore) GetIncome(ctx context.Context, incomeID string) (*model.Income, error) {
	doc, err := s.client.Collection(incomesCollection).Doc(incomeID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("income %s: %w", incomeID, ErrNotFound)
	}

	var income model.Income
	if err := doc.DataTo(&income); err != nil {
		return nil, fmt.Errorf("failed to parse income: %w", err)
	}
	return &income, nil
}

func (s *FirestoreStore) UpdateIncome(ctx context.Context, income *model.Income) error {
	_, err := s.client.Collection(incomesCollection).Doc(income.ID).Set(ctx, income)
	return err
}

func (s *FirestoreStore) DeleteIncome(ctx context.Context, incomeID string) error {
	_, err := s.client.Collection(incomesCollection).Doc(incomeID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListIncomes(ctx context.Context, userID string) ([]*model.Income, error) {
	query := s.client.Collection(incomesCollection).
		Where("UserId", "==", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}

	incomes := make([]*model.Income, 0, len(docs))
	for _, doc := range docs {
		var income model.Income
		if err := doc.DataTo(&income); err != nil {
			return nil, fmt.Errorf("failed to parse income: %w", err)
		}
		incomes = append(incomes, &income)
	}
	return incomes, nil
}

func (s *FirestoreStore) ListIncomesByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Income, error) {
	query := s.client.Collection(incomesCollection).
		Where("UserId", "==", userID).
		Where("MonthKey", "==", string(month))

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes by month: %w", err)
	}

	incomes := make([]*model.Income, 0, len(docs))
	for _, doc := range docs {
		var income model.Income
		if err := doc.DataTo(&income); err != nil {
			return nil, fmt.Errorf("failed to parse income: %w", err)
		}
		incomes = append(incomes, &income)
	}
	return incomes, nil
}

// Goal operations

func (s *FirestoreStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	_, err := s.client.Collection(goalsCollection).Doc(goal.ID).Set(ctx, goal)
	return err
}

func (s *FirestoreStore) GetGoal(ctx context.Context, goalID string) (*model.Goal, error) {
	doc, err := s.client.Collection(goalsCollection).Doc(goalID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("goal %s: %w", goalID, ErrNotFound)
	}

	var goal model.Goal
	if err := doc.DataTo(&goal); err != nil {
		return nil, fmt.Errorf("failed to parse goal: %w", err)
	}
	return &goal, nil
}

func (s *FirestoreStore) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	_, err := s.client.Collection(goalsCollection).Doc(goal.ID).Set(ctx, goal)
	return err
}

func (s *FirestoreStore) DeleteGoal(ctx context.Context, goalID string) error {
	_, err := s.client.Collection(goalsCollection).Doc(goalID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	query := s.client.Collection(goalsCollection).
		Where("UserId", "==", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	goals := make([]*model.Goal, 0, len(docs))
	for _, doc := range docs {
		var goal model.Goal
		if err := doc.DataTo(&goal); err != nil {
			return nil, fmt.Errorf("failed to parse goal: %w", err)
		}
		goals = append(goals, &goal)
	}
	return goals, nil
}

// Recurring payment operations

func (s *FirestoreStore) CreateRecurringPayment(ctx context.Context, rp *model.RecurringPayment) error {
	_, err := s.client.Collection(recurringCollection).Doc(rp.ID).Set(ctx, rp)
	return err
}

func (s *FirestoreStore) DeleteRecurringPayment(ctx context.Context, rpID string) error {
	_, err := s.client.Collection(recurringCollection).Doc(rpID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListUpcomingRecurringPayments(ctx context.Context, userID string, n int) ([]*model.RecurringPayment, error) {
	query := s.client.Collection(recurringCollection).
		Where("UserId", "==", userID).
		OrderBy("StartDate", firestore.Asc)
	if n > 0 {
		query = query.Limit(n)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring payments: %w", err)
	}

	payments := make([]*model.RecurringPayment, 0, len(docs))
	for _, doc := range docs {
		var rp model.RecurringPayment
		if err := doc.DataTo(&rp); err != nil {
			return nil, fmt.Errorf("failed to parse recurring payment: %w", err)
		}
		payments = append(payments, &rp)
	}
	return payments, nil
}

// Category operations

func (s *FirestoreStore) CreateCategory(ctx context.Context, category *model.Category) error {
	_, err := s.client.Collection(categoriesCollection).Doc(category.ID).Set(ctx, category)
	return err
}

func (s *FirestoreStore) UpdateCategory(ctx context.Context, category *model.Category) error {
	_, err := s.client.Collection(categoriesCollection).Doc(category.ID).Set(ctx, category)
	return err
}

func (s *FirestoreStore) DeleteCategory(ctx context.Context, categoryID string) error {
	_, err := s.client.Collection(categoriesCollection).Doc(categoryID).Delete(ctx)
	return err
}

func (s *FirestoreStore) ListCategories(ctx context.Context, userID string) ([]*model.Category, error) {
	query := s.client.Collection(categoriesCollection).
		Where("UserId", "==", userID)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*model.Category, 0, len(docs))
	for _, doc := range docs {
		var category model.Category
		if err := doc.DataTo(&category); err != nil {
			return nil, fmt.Errorf("failed to parse category: %w", err)
		}
		categories = append(categories, &category)
	}
	return categories, nil
}
