// Command seed fills the database with demo data: a handful of clients,
// thirty sales spread over the last month, and three ad campaigns.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/davidmesa/ventrack/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Seed the ledger database",
		Commands: []*cli.Command{
			{
				Name:  "demo",
				Usage: "Insert demo clients, sales, and ad expenses",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Seed even if sales already exist",
					},
				},
				Action: runDemoSeed,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runDemoSeed(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	ctx := c.Context
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, postgres.Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	if !c.Bool("force") {
		var count int
		if err := db.QueryRowContext(ctx, `SELECT count(*) FROM sales`).Scan(&count); err != nil {
			return fmt.Errorf("failed to count sales: %w", err)
		}
		if count > 0 {
			log.Printf("sales table already has %d rows, skipping (use --force to seed anyway)", count)
			return nil
		}
	}

	clientIDs, err := seedClients(ctx, db)
	if err != nil {
		return err
	}
	if err := seedSales(ctx, db, clientIDs); err != nil {
		return err
	}
	if err := seedExpenses(ctx, db); err != nil {
		return err
	}

	log.Println("demo data seeded")
	return nil
}

func seedClients(ctx context.Context, db *sql.DB) ([]string, error) {
	demo := []struct {
		first, last, phone string
	}{
		{"Juan", "Pérez", "3001234567"},
		{"María", "González", "3007654321"},
		{"Carlos", "Rodríguez", "3009876543"},
		{"Ana", "Martínez", "3005555555"},
	}

	ids := make([]string, 0, len(demo))
	for _, d := range demo {
		id := uuid.NewString()
		_, err := db.ExecContext(ctx, `
			INSERT INTO clients (id, first_name, last_name, phone)
			VALUES ($1, $2, $3, $4)`, id, d.first, d.last, d.phone)
		if err != nil {
			return nil, fmt.Errorf("failed to insert client: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func seedSales(ctx context.Context, db *sql.DB, clientIDs []string) error {
	products := []string{"Producto A", "Producto B", "Producto C", "Producto D", "Producto E"}
	// Roughly 40% pending, 40% delivered, 20% returned.
	statuses := []domain.DeliveryStatus{
		domain.DeliveryPending, domain.DeliveryPending, domain.DeliveryPending, domain.DeliveryPending,
		domain.DeliveryDelivered, domain.DeliveryDelivered, domain.DeliveryDelivered, domain.DeliveryDelivered,
		domain.DeliveryReturned, domain.DeliveryReturned,
	}

	today := domain.Today()
	for i := 0; i < 30; i++ {
		saleDate := today.AddDays(-rand.Intn(31))
		saleValue := randomMoney(50000, 500000)
		profit := saleValue.Mul(decimal.NewFromFloat(0.2 + rand.Float64()*0.2)).Round(2)
		status := statuses[rand.Intn(len(statuses))]

		var deliveryDate *time.Time
		loss := decimal.Zero
		if status != domain.DeliveryPending {
			d := saleDate.AddDays(1 + rand.Intn(7)).Time
			deliveryDate = &d
			if status == domain.DeliveryReturned {
				loss = randomMoney(10000, 50000)
				if loss.GreaterThan(saleValue) {
					loss = saleValue
				}
			}
		}

		_, err := db.ExecContext(ctx, `
			INSERT INTO sales (id, client_id, product, sale_date, delivery_date,
				sale_value, profit, status, loss_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			uuid.NewString(),
			clientIDs[rand.Intn(len(clientIDs))],
			products[rand.Intn(len(products))],
			saleDate.Time,
			deliveryDate,
			saleValue.String(),
			profit.String(),
			string(status),
			loss.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}
	}
	return nil
}

func seedExpenses(ctx context.Context, db *sql.DB) error {
	today := domain.Today()
	demo := []struct {
		concept    string
		amount     int64
		start, end domain.Date
	}{
		{"Facebook Ads", 200000, today.AddDays(-20), today.AddDays(-13)},
		{"Google Ads", 150000, today.AddDays(-15), today.AddDays(-8)},
		{"Instagram Promoción", 80000, today.AddDays(-10), today.AddDays(-3)},
	}

	for _, d := range demo {
		_, err := db.ExecContext(ctx, `
			INSERT INTO expenses (id, concept, amount, start_date, end_date)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.NewString(), d.concept, decimal.NewFromInt(d.amount).String(), d.start.Time, d.end.Time)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
	}
	return nil
}

func randomMoney(min, max int64) decimal.Decimal {
	cents := min*100 + rand.Int63n((max-min)*100)
	return decimal.New(cents, -2)
}
