package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/davidmesa/ventrack/internal/api/handlers"
	"github.com/davidmesa/ventrack/internal/api/middleware"
	"github.com/davidmesa/ventrack/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Clients   *service.ClientService
	Sales     *service.SaleService
	Expenses  *service.ExpenseService
	Dashboard *service.DashboardService
}

// NewRouter builds the gin engine with all ledger and dashboard routes.
func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	clientHandler := handlers.NewClientHandler(services.Clients)
	clientGroup := apiGroup.Group("/clients")
	{
		clientGroup.POST("", clientHandler.RegisterClient)
		clientGroup.GET("", clientHandler.ListClients)
		clientGroup.GET("/:id", clientHandler.GetClient)
	}

	saleHandler := handlers.NewSaleHandler(services.Sales)
	saleGroup := apiGroup.Group("/sales")
	{
		saleGroup.POST("", saleHandler.RecordSale)
		saleGroup.GET("", saleHandler.ListSales)
		saleGroup.GET("/pending", saleHandler.ListPendingSales)
		saleGroup.PUT("/:id/delivery", saleHandler.ResolveDelivery)
	}

	expenseHandler := handlers.NewExpenseHandler(services.Expenses)
	expenseGroup := apiGroup.Group("/expenses")
	{
		expenseGroup.POST("", expenseHandler.RecordExpense)
		expenseGroup.GET("", expenseHandler.ListExpenses)
	}

	dashboardHandler := handlers.NewDashboardHandler(services.Dashboard)
	apiGroup.GET("/dashboard", dashboardHandler.GetDashboard)

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
