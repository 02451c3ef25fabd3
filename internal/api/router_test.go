package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack-app/backend/internal/auth"
	"github.com/fintrack-app/backend/internal/service"
	"github.com/fintrack-app/backend/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	server := NewServer(
		service.NewFinanceService(st),
		service.NewGoalService(st),
		service.NewDashboardService(st),
	)
	return server.Router(auth.LocalDevMiddleware(), []string{"http://localhost:3000"})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTransactionEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", gin.H{
		"amount":   "25.00",
		"category": "Food",
		"date":     time.Date(2024, 9, 10, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID       string `json:"id"`
		MonthKey string `json:"month_key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "09-2024", created.MonthKey)

	t.Run("list by month", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/transactions?month=09-2024", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), created.ID)
	})

	t.Run("invalid month is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/transactions?month=2024-09", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid amount is a 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", gin.H{
			"amount":   "-5",
			"category": "Food",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing transaction is a 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/transactions/nope", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete", func(t *testing.T) {
		w := doJSON(t, router, http.MethodDelete, "/api/v1/transactions/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestGoalContributionOverdraft(t *testing.T) {
	router := newTestRouter(t)

	// Fund the current month so there is something to contribute.
	now := time.Now().UTC()
	w := doJSON(t, router, http.MethodPost, "/api/v1/incomes", gin.H{
		"amount":   "100.00",
		"category": "Job",
		"date":     now,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/api/v1/goals", gin.H{
		"name":          "Car",
		"target_amount": "5000.00",
		"end_date":      now.AddDate(1, 0, 0),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var goal struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &goal))

	t.Run("overdraft rejected with 409", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/goals/%s/contribute", goal.ID), gin.H{
			"amount": "150.00",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("exact amount accepted", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/v1/goals/%s/contribute", goal.ID), gin.H{
			"amount": "100.00",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var result struct {
			RemainingSavings int64 `json:"remaining_savings_cents"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
		assert.Equal(t, int64(0), result.RemainingSavings)
	})
}

func TestDashboardEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/incomes", gin.H{
		"amount":   "5000.00",
		"category": "Job",
		"date":     time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/transactions", gin.H{
		"amount":   "2800.00",
		"category": "Housing",
		"date":     time.Date(2024, 9, 5, 0, 0, 0, 0, time.UTC),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/dashboard?month=09-2024", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var dash struct {
		TotalIncome      int64 `json:"total_income_cents"`
		TotalExpenses    int64 `json:"total_expenses_cents"`
		AvailableSavings int64 `json:"available_savings_cents"`
		HealthScore      int   `json:"health_score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dash))
	assert.Equal(t, int64(500000), dash.TotalIncome)
	assert.Equal(t, int64(280000), dash.TotalExpenses)
	assert.Equal(t, int64(220000), dash.AvailableSavings)
	assert.Equal(t, 53, dash.HealthScore)
}

func TestUserIsolationViaImpersonation(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/transactions", gin.H{
		"amount":   "10.00",
		"category": "Food",
		"date":     time.Now().UTC(),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("X-Debug-Impersonate-User", "someone-else")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Transactions []json.RawMessage `json:"transactions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Transactions)
}

func TestScoreEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/score?month=09-2024", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		Score int    `json:"score"`
		Band  string `json:"band"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, "Vulnerable", result.Band)
}
