package handlers

import (
	"net/http"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/davidmesa/ventrack/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ExpenseHandler struct {
	expenses *service.ExpenseService
}

func NewExpenseHandler(expenses *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

type recordExpenseRequest struct {
	Concept   string          `json:"concept"`
	Amount    decimal.Decimal `json:"amount"`
	StartDate domain.Date     `json:"start_date"`
	EndDate   domain.Date     `json:"end_date"`
}

// RecordExpense handles POST /api/v1/expenses.
func (h *ExpenseHandler) RecordExpense(c *gin.Context) {
	var req recordExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}

	expense, err := h.expenses.RecordExpense(c.Request.Context(), req.Concept, req.Amount, req.StartDate, req.EndDate)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ListExpenses handles GET /api/v1/expenses with an optional from/to
// window matched by interval overlap.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	rng, err := parseDateRange(c)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	expenses, err := h.expenses.ListOverlapping(c.Request.Context(), rng.From, rng.To)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}
