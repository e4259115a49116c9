package service

import (
	"context"
	"sort"

	"github.com/davidmesa/ventrack/internal/cache"
	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/davidmesa/ventrack/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const dailySeriesDays = 7

// DashboardService is a read-only consumer of the sale and expense ledgers.
// It never mutates them.
type DashboardService struct {
	ledgers repository.LedgerReader
	cache   cache.DashboardCache
}

func NewDashboardService(ledgers repository.LedgerReader, dashCache cache.DashboardCache) *DashboardService {
	if dashCache == nil {
		dashCache = cache.NewNoopDashboardCache()
	}
	return &DashboardService{ledgers: ledgers, cache: dashCache}
}

// Snapshot computes the dashboard metrics over the optional date window,
// reading both ledgers as one consistent snapshot.
func (s *DashboardService) Snapshot(ctx context.Context, rng domain.DateRange) (*domain.DashboardSnapshot, error) {
	if cached, ok, err := s.cache.GetSnapshot(ctx, rng); err != nil {
		log.Warn().Err(err).Msg("dashboard cache read failed")
	} else if ok {
		return cached, nil
	}

	sales, expenses, err := s.ledgers.SnapshotLedgers(ctx, rng.From, rng.To)
	if err != nil {
		return nil, err
	}

	snapshot := buildSnapshot(sales, expenses, rng, domain.Today())

	if err := s.cache.SetSnapshot(ctx, rng, snapshot); err != nil {
		log.Warn().Err(err).Msg("dashboard cache write failed")
	}
	return snapshot, nil
}

// buildSnapshot derives the dashboard metrics from an already
// range-filtered view of both ledgers. Pure so it can be checked without
// any storage.
func buildSnapshot(sales []domain.Sale, expenses []domain.Expense, rng domain.DateRange, today domain.Date) *domain.DashboardSnapshot {
	snapshot := &domain.DashboardSnapshot{
		TotalProfit:  decimal.Zero,
		TotalLoss:    decimal.Zero,
		TotalAdSpend: decimal.Zero,
	}

	byProduct := map[string]decimal.Decimal{}
	productOrder := []string{}

	for _, sale := range sales {
		switch sale.Status {
		case domain.DeliveryDelivered:
			snapshot.TotalProfit = snapshot.TotalProfit.Add(sale.Profit)
			snapshot.UnitsSold++
			if _, seen := byProduct[sale.Product]; !seen {
				productOrder = append(productOrder, sale.Product)
			}
			byProduct[sale.Product] = byProduct[sale.Product].Add(sale.Profit)
		case domain.DeliveryReturned:
			snapshot.TotalLoss = snapshot.TotalLoss.Add(sale.LossValue)
			snapshot.UnitsReturned++
		}
	}

	for _, expense := range expenses {
		snapshot.TotalAdSpend = snapshot.TotalAdSpend.Add(expense.Amount)
	}

	snapshot.DailySales = dailySeries(sales, rng, today)

	snapshot.ProfitByProduct = make([]domain.ProductProfit, 0, len(productOrder))
	for _, product := range productOrder {
		snapshot.ProfitByProduct = append(snapshot.ProfitByProduct, domain.ProductProfit{
			Product: product,
			Profit:  byProduct[product],
		})
	}
	// Stable sort keeps first-seen order for equal profits.
	sort.SliceStable(snapshot.ProfitByProduct, func(i, j int) bool {
		return snapshot.ProfitByProduct[i].Profit.GreaterThan(snapshot.ProfitByProduct[j].Profit)
	})

	return snapshot
}

// dailySeries counts sales per calendar day over the 7 most recent days
// ending at the window's upper bound (today when unbounded), oldest first,
// including zero-sale days. Every sale on a day counts, whatever its
// delivery status.
func dailySeries(sales []domain.Sale, rng domain.DateRange, today domain.Date) []domain.DailySalesPoint {
	end := today
	if rng.To != nil {
		end = *rng.To
	}

	counts := map[string]int{}
	for _, sale := range sales {
		counts[sale.SaleDate.String()]++
	}

	series := make([]domain.DailySalesPoint, 0, dailySeriesDays)
	for i := dailySeriesDays - 1; i >= 0; i-- {
		day := end.AddDays(-i)
		series = append(series, domain.DailySalesPoint{
			Date:  day,
			Count: counts[day.String()],
		})
	}
	return series
}
