package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrack-app/backend/internal/model"
	"github.com/fintrack-app/backend/internal/store"
)

// FinanceService implements transaction, income, recurring payment, and
// category operations.
type FinanceService struct {
	store store.Store
}

func NewFinanceService(store store.Store) *FinanceService {
	return &FinanceService{
		store: store,
	}
}

// EntryInput carries the user-editable fields of a transaction or income.
type EntryInput struct {
	Amount   model.Money
	Category string
	Date     time.Time
}

func (in *EntryInput) validate() error {
	if in.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrInvalidCategory
	}
	return nil
}

// CreateTransaction records a new expense. The month bucket is derived from
// the transaction date, never supplied by the caller.
func (s *FinanceService) CreateTransaction(ctx context.Context, userID string, in EntryInput) (*model.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	now := time.Now().UTC()
	tx := &model.Transaction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    in.Amount,
		Category:  in.Category,
		Date:      in.Date,
		MonthKey:  model.MonthKeyOf(in.Date),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

// UpdateTransaction edits an existing expense. Changing the date moves the
// record between month buckets.
func (s *FinanceService) UpdateTransaction(ctx context.Context, userID, txID string, in EntryInput) (*model.Transaction, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	tx, err := s.getOwnedTransaction(ctx, userID, txID)
	if err != nil {
		return nil, err
	}

	tx.Amount = in.Amount
	tx.Category = in.Category
	if !in.Date.IsZero() {
		tx.Date = in.Date
	}
	tx.MonthKey = model.MonthKeyOf(tx.Date)
	tx.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	return tx, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, userID, txID string) error {
	if _, err := s.getOwnedTransaction(ctx, userID, txID); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, txID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (s *FinanceService) GetTransaction(ctx context.Context, userID, txID string) (*model.Transaction, error) {
	return s.getOwnedTransaction(ctx, userID, txID)
}

func (s *FinanceService) ListTransactions(ctx context.Context, userID string) ([]*model.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

func (s *FinanceService) ListTransactionsByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Transaction, error) {
	return s.store.ListTransactionsByMonth(ctx, userID, month)
}

// getOwnedTransaction fetches a transaction and hides records belonging to
// other users behind ErrNotFound.
func (s *FinanceService) getOwnedTransaction(ctx context.Context, userID, txID string) (*model.Transaction, error) {
	tx, err := s.store.GetTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, store.ErrNotFound
	}
	return tx, nil
}

// CreateIncome records money received.
func (s *FinanceService) CreateIncome(ctx context.Context, userID string, in EntryInput) (*model.Income, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		in.Date = time.Now().UTC()
	}

	now := time.Now().UTC()
	income := &model.Income{
		ID:        uuid.New().String(),
		UserID:    userID,
		Amount:    in.Amount,
		Category:  in.Category,
		Date:      in.Date,
		MonthKey:  model.MonthKeyOf(in.Date),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.CreateIncome(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to create income: %w", err)
	}
	return income, nil
}

func (s *FinanceService) UpdateIncome(ctx context.Context, userID, incomeID string, in EntryInput) (*model.Income, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	income, err := s.getOwnedIncome(ctx, userID, incomeID)
	if err != nil {
		return nil, err
	}

	income.Amount = in.Amount
	income.Category = in.Category
	if !in.Date.IsZero() {
		income.Date = in.Date
	}
	income.MonthKey = model.MonthKeyOf(income.Date)
	income.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateIncome(ctx, income); err != nil {
		return nil, fmt.Errorf("failed to update income: %w", err)
	}
	return income, nil
}

func (s *FinanceService) DeleteIncome(ctx context.Context, userID, incomeID string) error {
	if _, err := s.getOwnedIncome(ctx, userID, incomeID); err != nil {
		return err
	}
	if err := s.store.DeleteIncome(ctx, incomeID); err != nil {
		return fmt.Errorf("failed to delete income: %w", err)
	}
	return nil
}

func (s *FinanceService) ListIncomes(ctx context.Context, userID string) ([]*model.Income, error) {
	return s.store.ListIncomes(ctx, userID)
}

func (s *FinanceService) ListIncomesByMonth(ctx context.Context, userID string, month model.MonthKey) ([]*model.Income, error) {
	return s.store.ListIncomesByMonth(ctx, userID, month)
}

func (s *FinanceService) getOwnedIncome(ctx context.Context, userID, incomeID string) (*model.Income, error) {
	income, err := s.store.GetIncome(ctx, incomeID)
	if err != nil {
		return nil, err
	}
	if income.UserID != userID {
		return nil, store.ErrNotFound
	}
	return income, nil
}

// RecurringPaymentInput carries the user-editable fields of a recurring
// payment.
type RecurringPaymentInput struct {
	Name      string
	Amount    model.Money
	StartDate time.Time
}

func (s *FinanceService) CreateRecurringPayment(ctx context.Context, userID string, in RecurringPaymentInput) (*model.RecurringPayment, error) {
	if in.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("recurring payment name is required")
	}
	if in.StartDate.IsZero() {
		in.StartDate = time.Now().UTC()
	}

	rp := &model.RecurringPayment{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Amount:    in.Amount,
		StartDate: in.StartDate,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateRecurringPayment(ctx, rp); err != nil {
		return nil, fmt.Errorf("failed to create recurring payment: %w", err)
	}
	return rp, nil
}

func (s *FinanceService) DeleteRecurringPayment(ctx context.Context, userID, rpID string) error {
	// Recurring payments have no Get; rely on the list to enforce ownership.
	payments, err := s.store.ListUpcomingRecurringPayments(ctx, userID, 0)
	if err != nil {
		return fmt.Errorf("failed to list recurring payments: %w", err)
	}
	for _, rp := range payments {
		if rp.ID == rpID {
			if err := s.store.DeleteRecurringPayment(ctx, rpID); err != nil {
				return fmt.Errorf("failed to delete recurring payment: %w", err)
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *FinanceService) ListUpcomingRecurringPayments(ctx context.Context, userID string, n int) ([]*model.RecurringPayment, error) {
	return s.store.ListUpcomingRecurringPayments(ctx, userID, n)
}

// CategoryInput carries the user-editable fields of an expense category.
// Limit 0 means no monthly limit.
type CategoryInput struct {
	Name  string
	Limit model.Money
}

func (s *FinanceService) CreateCategory(ctx context.Context, userID string, in CategoryInput) (*model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidCategory
	}
	if in.Limit < 0 {
		return nil, ErrInvalidAmount
	}

	category := &model.Category{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Name,
		Limit:     in.Limit,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *FinanceService) UpdateCategory(ctx context.Context, userID, categoryID string, in CategoryInput) (*model.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrInvalidCategory
	}
	if in.Limit < 0 {
		return nil, ErrInvalidAmount
	}

	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	for _, category := range categories {
		if category.ID == categoryID {
			category.Name = in.Name
			category.Limit = in.Limit
			if err := s.store.UpdateCategory(ctx, category); err != nil {
				return nil, fmt.Errorf("failed to update category: %w", err)
			}
			return category, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *FinanceService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}
	for _, category := range categories {
		if category.ID == categoryID {
			if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
				return fmt.Errorf("failed to delete category: %w", err)
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *FinanceService) ListCategories(ctx context.Context, userID string) ([]*model.Category, error) {
	return s.store.ListCategories(ctx, userID)
}
