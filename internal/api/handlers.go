package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fintrack-app/backend/internal/model"
	"github.com/fintrack-app/backend/internal/service"
	"github.com/fintrack-app/backend/internal/store"
)

// entryRequest is the JSON body for transactions and incomes. Amounts come
// in as decimal strings ("12.34") and are parsed into cents.
type entryRequest struct {
	Amount   string    `json:"amount" binding:"required"`
	Category string    `json:"category" binding:"required"`
	Date     time.Time `json:"date"`
}

func (r *entryRequest) toInput() (service.EntryInput, error) {
	amount, err := model.ParseMoney(r.Amount)
	if err != nil {
		return service.EntryInput{}, err
	}
	return service.EntryInput{Amount: amount, Category: r.Category, Date: r.Date}, nil
}

type goalRequest struct {
	Name         string    `json:"name" binding:"required"`
	Description  string    `json:"description"`
	TargetAmount string    `json:"target_amount" binding:"required"`
	EndDate      time.Time `json:"end_date"`
}

type contributeRequest struct {
	Amount string `json:"amount" binding:"required"`
}

type recurringPaymentRequest struct {
	Name      string    `json:"name" binding:"required"`
	Amount    string    `json:"amount" binding:"required"`
	StartDate time.Time `json:"start_date"`
}

type categoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Limit string `json:"limit"`
}

// monthParam reads ?month=MM-yyyy, defaulting to the current month.
func monthParam(c *gin.Context) (model.MonthKey, error) {
	raw := c.Query("month")
	if raw == "" {
		return model.MonthKeyOf(time.Now().UTC()), nil
	}
	return model.ParseMonthKey(raw)
}

// respondError maps domain errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientSavings):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidGoalTarget),
		errors.Is(err, service.ErrInvalidCategory),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidMonthKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// getDashboard serves one month's dashboard. The request context cancels
// in-flight store reads when the client abandons the request; clients that
// switch months rapidly should key responses by month and keep the last one.
func (s *Server) getDashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	month, err := monthParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	dash, err := s.dashboard.GetDashboard(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

func (s *Server) getScore(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	month, err := monthParam(c)
	if err != nil {
		respondError(c, err)
		return
	}

	score, err := s.dashboard.GetScore(c.Request.Context(), userID, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

func (s *Server) createTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}

	tx, err := s.finance.CreateTransaction(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (s *Server) listTransactions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// ?month=MM-yyyy narrows to one bucket; omitted means everything.
	if raw := c.Query("month"); raw != "" {
		month, err := model.ParseMonthKey(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		txs, err := s.finance.ListTransactionsByMonth(c.Request.Context(), userID, month)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"transactions": txs})
		return
	}

	txs, err := s.finance.ListTransactions(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": txs})
}

func (s *Server) getTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	tx, err := s.finance.GetTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (s *Server) updateTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}

	tx, err := s.finance.UpdateTransaction(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (s *Server) deleteTransaction(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := s.finance.DeleteTransaction(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createIncome(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}

	income, err := s.finance.CreateIncome(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, income)
}

func (s *Server) listIncomes(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if raw := c.Query("month"); raw != "" {
		month, err := model.ParseMonthKey(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		incomes, err := s.finance.ListIncomesByMonth(c.Request.Context(), userID, month)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"incomes": incomes})
		return
	}

	incomes, err := s.finance.ListIncomes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"incomes": incomes})
}

func (s *Server) updateIncome(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, err)
		return
	}

	income, err := s.finance.UpdateIncome(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, income)
}

func (s *Server) deleteIncome(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := s.finance.DeleteIncome(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, err := model.ParseMoney(req.TargetAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	goal, err := s.goals.CreateGoal(c.Request.Context(), userID, service.GoalInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: target,
		EndDate:      req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

func (s *Server) listGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	goals, err := s.goals.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (s *Server) getGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	goal, err := s.goals.GetGoal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) updateGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, err := model.ParseMoney(req.TargetAmount)
	if err != nil {
		respondError(c, err)
		return
	}

	goal, err := s.goals.UpdateGoal(c.Request.Context(), userID, c.Param("id"), service.GoalInput{
		Name:         req.Name,
		Description:  req.Description,
		TargetAmount: target,
		EndDate:      req.EndDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

func (s *Server) deleteGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := s.goals.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) contributeToGoal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req contributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := model.ParseMoney(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := s.goals.Contribute(c.Request.Context(), userID, c.Param("id"), amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) createRecurringPayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req recurringPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := model.ParseMoney(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	rp, err := s.finance.CreateRecurringPayment(c.Request.Context(), userID, service.RecurringPaymentInput{
		Name:      req.Name,
		Amount:    amount,
		StartDate: req.StartDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rp)
}

func (s *Server) listRecurringPayments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	payments, err := s.finance.ListUpcomingRecurringPayments(c.Request.Context(), userID, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recurring_payments": payments})
}

func (s *Server) deleteRecurringPayment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := s.finance.DeleteRecurringPayment(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) createCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseOptionalMoney(req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	category, err := s.finance.CreateCategory(c.Request.Context(), userID, service.CategoryInput{
		Name:  req.Name,
		Limit: limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) listCategories(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	categories, err := s.finance.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (s *Server) updateCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseOptionalMoney(req.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	category, err := s.finance.UpdateCategory(c.Request.Context(), userID, c.Param("id"), service.CategoryInput{
		Name:  req.Name,
		Limit: limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := s.finance.DeleteCategory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseOptionalMoney treats an empty string as zero (no limit).
func parseOptionalMoney(raw string) (model.Money, error) {
	if raw == "" {
		return 0, nil
	}
	return model.ParseMoney(raw)
}
