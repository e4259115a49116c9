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

// RecordSaleInput carries the immutable fields of a new sale.
type RecordSaleInput struct {
	ClientID     string
	Product      string
	SaleDate     domain.Date
	DeliveryDate *domain.Date
	SaleValue    decimal.Decimal
	Profit       decimal.Decimal
}

// ResolveDeliveryInput carries a delivery resolution. LossValue is only
// meaningful when Delivered is false; it defaults to zero.
type ResolveDeliveryInput struct {
	Delivered    bool
	DeliveryDate *domain.Date
	LossValue    *decimal.Decimal
}

type SaleService struct {
	sales   repository.SaleRepository
	clients repository.ClientRepository
	cache   cache.DashboardCache
}

func NewSaleService(sales repository.SaleRepository, clients repository.ClientRepository, dashCache cache.DashboardCache) *SaleService {
	if dashCache == nil {
		dashCache = cache.NewNoopDashboardCache()
	}
	return &SaleService{sales: sales, clients: clients, cache: dashCache}
}

// RecordSale creates a new pending sale. The client must exist; validation
// runs before the insert, so a failed call leaves the ledger untouched.
func (s *SaleService) RecordSale(ctx context.Context, in RecordSaleInput) (*domain.Sale, error) {
	if _, err := s.clients.GetClient(ctx, in.ClientID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sale := &domain.Sale{
		ID:           uuid.NewString(),
		ClientID:     in.ClientID,
		Product:      in.Product,
		SaleDate:     in.SaleDate,
		DeliveryDate: in.DeliveryDate,
		SaleValue:    in.SaleValue,
		Profit:       in.Profit,
		Status:       domain.DeliveryPending,
		LossValue:    decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := sale.Validate(); err != nil {
		return nil, err
	}

	if err := s.sales.CreateSale(ctx, sale); err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	log.Info().Str("sale_id", sale.ID).Str("client_id", sale.ClientID).
		Str("product", sale.Product).Msg("sale recorded")
	return sale, nil
}

// ResolveDelivery marks a sale as delivered or returned, overwriting any
// prior resolution. A delivered sale carries zero loss; a returned sale's
// loss cannot exceed its value.
func (s *SaleService) ResolveDelivery(ctx context.Context, saleID string, in ResolveDeliveryInput) (*domain.Sale, error) {
	res := domain.DeliveryResolution{
		Status:       domain.DeliveryReturned,
		DeliveryDate: in.DeliveryDate,
		LossValue:    decimal.Zero,
	}
	if in.Delivered {
		res.Status = domain.DeliveryDelivered
	} else if in.LossValue != nil {
		res.LossValue = *in.LossValue
	}

	sale, err := s.sales.ResolveSale(ctx, saleID, res)
	if err != nil {
		return nil, err
	}

	s.invalidateDashboard(ctx)
	log.Info().Str("sale_id", sale.ID).Str("status", string(sale.Status)).
		Msg("sale delivery resolved")
	return sale, nil
}

// ListPending returns unresolved sales, oldest sale date first, each
// enriched with the client's display name.
func (s *SaleService) ListPending(ctx context.Context) ([]domain.PendingSale, error) {
	sales, err := s.sales.ListPendingSales(ctx)
	if err != nil {
		return nil, err
	}

	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(clients))
	for i := range clients {
		names[clients[i].ID] = clients[i].FullName()
	}

	pending := make([]domain.PendingSale, 0, len(sales))
	for _, sale := range sales {
		name, ok := names[sale.ClientID]
		if !ok {
			name = "unknown client"
		}
		pending = append(pending, domain.PendingSale{Sale: sale, ClientName: name})
	}
	return pending, nil
}

// ListInRange returns sales whose sale date falls within the inclusive
// range; nil bounds are open.
func (s *SaleService) ListInRange(ctx context.Context, from, to *domain.Date) ([]domain.Sale, error) {
	return s.sales.ListSalesInRange(ctx, from, to)
}

func (s *SaleService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate dashboard cache")
	}
}
