package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/jmoiron/sqlx"
)

type SaleRepository struct {
	db *DB
}

func NewSaleRepository(db *DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) CreateSale(ctx context.Context, sale *domain.Sale) error {
	const query = `
		INSERT INTO sales (id, client_id, product, sale_date, delivery_date,
			sale_value, profit, status, loss_value, created_at, updated_at)
		VALUES (:id, :client_id, :product, :sale_date, :delivery_date,
			:sale_value, :profit, :status, :loss_value, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, sale); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepository) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.GetContext(ctx, &sale, `SELECT * FROM sales WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("sale", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sale: %w", err)
	}
	return &sale, nil
}

// ResolveSale locks the row, applies the resolution, and writes it back in
// one transaction. The row lock serializes concurrent resolutions of the
// same sale; the last committed transaction wins.
func (r *SaleRepository) ResolveSale(ctx context.Context, id string, res domain.DeliveryResolution) (*domain.Sale, error) {
	var sale domain.Sale
	err := r.db.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &sale, `SELECT * FROM sales WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewNotFound("sale", id)
		}
		if err != nil {
			return fmt.Errorf("failed to fetch sale: %w", err)
		}

		if err := sale.Resolve(res, time.Now().UTC()); err != nil {
			return err
		}

		const update = `
			UPDATE sales
			SET status = :status, delivery_date = :delivery_date,
				loss_value = :loss_value, updated_at = :updated_at
			WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, update, &sale); err != nil {
			return fmt.Errorf("failed to update sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) ListPendingSales(ctx context.Context) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	err := r.db.SelectContext(ctx, &sales, `
		SELECT * FROM sales
		WHERE status = $1
		ORDER BY sale_date, created_at`, domain.DeliveryPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending sales: %w", err)
	}
	return sales, nil
}

func (r *SaleRepository) ListSalesInRange(ctx context.Context, from, to *domain.Date) ([]domain.Sale, error) {
	sales := []domain.Sale{}
	query, args := salesInRangeQuery(from, to)
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}

func salesInRangeQuery(from, to *domain.Date) (string, []interface{}) {
	query := `SELECT * FROM sales WHERE 1=1`
	args := []interface{}{}
	if from != nil {
		args = append(args, from.Time)
		query += fmt.Sprintf(" AND sale_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, to.Time)
		query += fmt.Sprintf(" AND sale_date <= $%d", len(args))
	}
	query += ` ORDER BY sale_date, created_at`
	return query, args
}
