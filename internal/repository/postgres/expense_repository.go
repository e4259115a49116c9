package postgres

import (
	"context"
	"fmt"

	"github.com/davidmesa/ventrack/internal/domain"
)

type ExpenseRepository struct {
	db *DB
}

func NewExpenseRepository(db *DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) CreateExpense(ctx context.Context, expense *domain.Expense) error {
	const query = `
		INSERT INTO expenses (id, concept, amount, start_date, end_date, created_at)
		VALUES (:id, :concept, :amount, :start_date, :end_date, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, expense); err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

func (r *ExpenseRepository) ListExpensesOverlapping(ctx context.Context, from, to *domain.Date) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	query, args := expensesOverlappingQuery(from, to)
	if err := r.db.SelectContext(ctx, &expenses, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	return expenses, nil
}

// Intervals intersect iff start_date <= window.to AND end_date >=
// window.from, with an absent bound unbounded.
func expensesOverlappingQuery(from, to *domain.Date) (string, []interface{}) {
	query := `SELECT * FROM expenses WHERE 1=1`
	args := []interface{}{}
	if to != nil {
		args = append(args, to.Time)
		query += fmt.Sprintf(" AND start_date <= $%d", len(args))
	}
	if from != nil {
		args = append(args, from.Time)
		query += fmt.Sprintf(" AND end_date >= $%d", len(args))
	}
	query += ` ORDER BY start_date, created_at`
	return query, args
}
