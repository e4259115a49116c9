package postgres

import "context"

// Schema creates the ledger tables. Money columns are NUMERIC so sums
// stay exact; sale/expense dates are plain DATE columns. Exported so the
// seeding CLI can bootstrap an empty database.
const Schema = `
CREATE TABLE IF NOT EXISTS clients (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	phone      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS sales (
	id            TEXT PRIMARY KEY,
	client_id     TEXT NOT NULL REFERENCES clients (id),
	product       TEXT NOT NULL,
	sale_date     DATE NOT NULL,
	delivery_date DATE,
	sale_value    NUMERIC(14,2) NOT NULL CHECK (sale_value >= 0),
	profit        NUMERIC(14,2) NOT NULL,
	status        TEXT NOT NULL DEFAULT 'pending',
	loss_value    NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (loss_value >= 0),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_sales_sale_date ON sales (sale_date);
CREATE INDEX IF NOT EXISTS idx_sales_status ON sales (status);

CREATE TABLE IF NOT EXISTS expenses (
	id         TEXT PRIMARY KEY,
	concept    TEXT NOT NULL,
	amount     NUMERIC(14,2) NOT NULL CHECK (amount >= 0),
	start_date DATE NOT NULL,
	end_date   DATE NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK (end_date >= start_date)
);

CREATE INDEX IF NOT EXISTS idx_expenses_dates ON expenses (start_date, end_date);
`

// EnsureSchema creates the ledger tables if they do not exist yet.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}
