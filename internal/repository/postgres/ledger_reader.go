package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/jmoiron/sqlx"
)

// LedgerReader serves the dashboard aggregator's consistent two-ledger
// read.
type LedgerReader struct {
	db *DB
}

func NewLedgerReader(db *DB) *LedgerReader {
	return &LedgerReader{db: db}
}

// SnapshotLedgers reads sales in range and expenses overlapping the window
// inside a read-only repeatable-read transaction, so concurrent writers
// cannot produce a torn read and the aggregation never blocks them.
func (r *LedgerReader) SnapshotLedgers(ctx context.Context, from, to *domain.Date) ([]domain.Sale, []domain.Expense, error) {
	var (
		sales    = []domain.Sale{}
		expenses = []domain.Expense{}
	)

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := r.db.WithTx(ctx, opts, func(tx *sqlx.Tx) error {
		query, args := salesInRangeQuery(from, to)
		if err := tx.SelectContext(ctx, &sales, query, args...); err != nil {
			return fmt.Errorf("failed to snapshot sales: %w", err)
		}

		query, args = expensesOverlappingQuery(from, to)
		if err := tx.SelectContext(ctx, &expenses, query, args...); err != nil {
			return fmt.Errorf("failed to snapshot expenses: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return sales, expenses, nil
}
