package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fintrack-app/backend/internal/model"
)

// MemoryStore implements the Store interface in memory. Used for local
// development and tests so nothing needs a Firestore emulator.
type MemoryStore struct {
	mu                sync.RWMutex
	transactions      map[string]*model.Transaction
	incomes           map[string]*model.Income
	goals             map[string]*model.Goal
	recurringPayments map[string]*model.RecurringPayment
	categories        map[string]*model.Category
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions:      make(map[string]*model.Transaction),
		incomes:           make(map[string]*model.Income),
		goals:             make(map[string]*model.Goal),
		recurringPayments: make(map[string]*model.RecurringPayment),
		categories:        make(map[string]*model.Category),
	}
}

// Transaction operations

func (s *MemoryStore) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *tx
	s.transactions[tx.ID] = &cp
	return nil
}

func (s *MemoryStore) GetTransaction(ctx context.Context, txID string) (*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[txID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *tx
	return &cp, nil
}

func (s *MemoryStore) UpdateTransaction(ctx context.Context, tx *model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[tx.ID]; !ok {
		return ErrNotFound
	}
	cp := *tx
	s.transactions[tx.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteTransaction(ctx context.Context, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[txID]; !ok {
		return ErrNotFound
	}
	delete(s.transactions, txID)
	return nil
}

func (s *MemoryStore) ListTransactions(ctx context.Context, userID string) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			cp := *tx
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *MemoryStore) ListTransactionsByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID && tx.MonthKey == month {
			cp := *tx
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *MemoryStore) ListRecentTransactions(ctx context.Context, userID string, n int) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			cp := *tx
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result, nil
}

func (s *MemoryStore) ListTransactionsByDateRange(ctx context.Context, userID string, startInclusive, endExclusive time.Time) ([]*model.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != userID {
			continue
		}
		if tx.Date.Before(startInclusive) || !tx.Date.Before(endExclusive) {
			continue
		}
		cp := *tx
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

// Income operations

func (s *MemoryStore) CreateIncome(ctx context.Context, income *model.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *income
	s.incomes[income.ID] = &cp
	return nil
}

func (s *MemoryStore) GetIncome(ctx context.Context, incomeID string) (*model.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	income, ok := s.incomes[incomeID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *income
	return &cp, nil
}

func (s *MemoryStore) UpdateIncome(ctx context.Context, income *model.Income) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incomes[income.ID]; !ok {
		return ErrNotFound
	}
	cp := *income
	s.incomes[income.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteIncome(ctx context.Context, incomeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.incomes[incomeID]; !ok {
		return ErrNotFound
	}
	delete(s.incomes, incomeID)
	return nil
}

func (s *MemoryStore) ListIncomes(ctx context.Context, userID string) ([]*model.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Income
	for _, income := range s.incomes {
		if income.UserID == userID {
			cp := *income
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (s *MemoryStore) ListIncomesByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Income, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Income
	for _, income := range s.incomes {
		if income.UserID == userID && income.MonthKey == month {
			cp := *income
			result = append(result, &cp)
		}
	}
	return result, nil
}

// Goal operations

func (s *MemoryStore) CreateGoal(ctx context.Context, goal *model.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *goal
	s.goals[goal.ID] = &cp
	return nil
}

func (s *MemoryStore) GetGoal(ctx context.Context, goalID string) (*model.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	goal, ok := s.goals[goalID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *goal
	return &cp, nil
}

func (s *MemoryStore) UpdateGoal(ctx context.Context, goal *model.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goal.ID]; !ok {
		return ErrNotFound
	}
	cp := *goal
	s.goals[goal.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteGoal(ctx context.Context, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goalID]; !ok {
		return ErrNotFound
	}
	delete(s.goals, goalID)
	return nil
}

func (s *MemoryStore) ListGoals(ctx context.Context, userID string) ([]*model.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Goal
	for _, goal := range s.goals {
		if goal.UserID == userID {
			cp := *goal
			result = append(result, &cp)
		}
	}
	// Stable order keeps dashboard goal lists deterministic.
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Recurring payment operations

func (s *MemoryStore) CreateRecurringPayment(ctx context.Context, rp *model.RecurringPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rp
	s.recurringPayments[rp.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteRecurringPayment(ctx context.Context, rpID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recurringPayments[rpID]; !ok {
		return ErrNotFound
	}
	delete(s.recurringPayments, rpID)
	return nil
}

func (s *MemoryStore) ListUpcomingRecurringPayments(ctx context.Context, userID string, n int) ([]*model.RecurringPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.RecurringPayment
	for _, rp := range s.recurringPayments {
		if rp.UserID == userID {
			cp := *rp
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].StartDate.Before(result[j].StartDate)
	})
	if n > 0 && len(result) > n {
		result = result[:n]
	}
	return result, nil
}

// Category operations

func (s *MemoryStore) CreateCategory(ctx context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[category.ID]; !ok {
		return ErrNotFound
	}
	cp := *category
	s.categories[category.ID] = &cp
	return nil
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return ErrNotFound
	}
	delete(s.categories, categoryID)
	return nil
}

func (s *MemoryStore) ListCategories(ctx context.Context, userID string) ([]*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.Category
	for _, category := range s.categories {
		if category.UserID == userID {
			cp := *category
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
