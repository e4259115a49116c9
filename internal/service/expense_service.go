package service

import (
	"context"
	"time"

	"github.com/davidmesa/ventrack/internal/cache"
	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/davidmesa/ventrack/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ExpenseService struct {
	expenses repository.ExpenseRepository
	cache    cache.DashboardCache
}

func NewExpenseService(expenses repository.ExpenseRepository, dashCache cache.DashboardCache) *ExpenseService {
	if dashCache == nil {
		dashCache = cache.NewNoopDashboardCache()
	}
	return &ExpenseService{expenses: expenses, cache: dashCache}
}

// RecordExpense creates an advertising expense attributed to the inclusive
// interval [startDate, endDate].
func (s *ExpenseService) RecordExpense(ctx context.Context, concept string, amount decimal.Decimal, startDate, endDate domain.Date) (*domain.Expense, error) {
	expense := &domain.Expense{
		ID:        uuid.NewString(),
		Concept:   concept,
		Amount:    amount,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: time.Now().UTC(),
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	if err := s.expenses.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
	log.Info().Str("expense_id", expense.ID).Str("concept", expense.Concept).
		Msg("expense recorded")
	return expense, nil
}

// ListOverlapping returns expenses whose interval intersects the window;
// nil bounds are open.
func (s *ExpenseService) ListOverlapping(ctx context.Context, from, to *domain.Date) ([]domain.Expense, error) {
	return s.expenses.ListExpensesOverlapping(ctx, from, to)
}
