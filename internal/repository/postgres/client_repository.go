package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/davidmesa/ventrack/internal/domain"
)

type ClientRepository struct {
	db *DB
}

func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) CreateClient(ctx context.Context, client *domain.Client) error {
	const query = `
		INSERT INTO clients (id, first_name, last_name, phone, created_at)
		VALUES (:id, :first_name, :last_name, :phone, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, client); err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}
	return nil
}

func (r *ClientRepository) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	var client domain.Client
	err := r.db.GetContext(ctx, &client, `SELECT * FROM clients WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("client", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client: %w", err)
	}
	return &client, nil
}

func (r *ClientRepository) ListClients(ctx context.Context) ([]domain.Client, error) {
	clients := []domain.Client{}
	err := r.db.SelectContext(ctx, &clients, `SELECT * FROM clients ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
