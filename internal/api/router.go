// Package api exposes the HTTP surface: a gin router over the finance,
// goal, and dashboard services.
package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fintrack-app/backend/internal/auth"
	"github.com/fintrack-app/backend/internal/service"
)

// Server holds the services behind the HTTP handlers.
type Server struct {
	finance   *service.FinanceService
	goals     *service.GoalService
	dashboard *service.DashboardService
}

func NewServer(finance *service.FinanceService, goals *service.GoalService, dashboard *service.DashboardService) *Server {
	return &Server{
		finance:   finance,
		goals:     goals,
		dashboard: dashboard,
	}
}

// Router builds the gin engine. authMiddleware guards everything under
// /api/v1; /health stays public.
func (s *Server) Router(authMiddleware gin.HandlerFunc, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Debug-Impersonate-User"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware)
	{
		v1.GET("/dashboard", s.getDashboard)
		v1.GET("/score", s.getScore)

		v1.POST("/transactions", s.createTransaction)
		v1.GET("/transactions", s.listTransactions)
		v1.GET("/transactions/:id", s.getTransaction)
		v1.PUT("/transactions/:id", s.updateTransaction)
		v1.DELETE("/transactions/:id", s.deleteTransaction)

		v1.POST("/incomes", s.createIncome)
		v1.GET("/incomes", s.listIncomes)
		v1.PUT("/incomes/:id", s.updateIncome)
		v1.DELETE("/incomes/:id", s.deleteIncome)

		v1.POST("/goals", s.createGoal)
		v1.GET("/goals", s.listGoals)
		v1.GET("/goals/:id", s.getGoal)
		v1.PUT("/goals/:id", s.updateGoal)
		v1.DELETE("/goals/:id", s.deleteGoal)
		v1.POST("/goals/:id/contribute", s.contributeToGoal)

		v1.POST("/recurring-payments", s.createRecurringPayment)
		v1.GET("/recurring-payments", s.listRecurringPayments)
		v1.DELETE("/recurring-payments/:id", s.deleteRecurringPayment)

		v1.POST("/categories", s.createCategory)
		v1.GET("/categories", s.listCategories)
		v1.PUT("/categories/:id", s.updateCategory)
		v1.DELETE("/categories/:id", s.deleteCategory)
	}

	return router
}

// currentUser pulls the authenticated user ID set by the auth middleware.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID, true
}
