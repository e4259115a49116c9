package service

import (
	"context"
	"time"

	"github.com/davidmesa/ventrack/internal/domain"
	"github.com/davidmesa/ventrack/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ClientService struct {
	clients repository.ClientRepository
}

func NewClientService(clients repository.ClientRepository) *ClientService {
	return &ClientService{clients: clients}
}

// Register creates a new client. All three fields are required.
func (s *ClientService) Register(ctx context.Context, firstName, lastName, phone string) (*domain.Client, error) {
	client := &domain.Client{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		CreatedAt: time.Now().UTC(),
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}

	if err := s.clients.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	log.Info().Str("client_id", client.ID).Msg("client registered")
	return client, nil
}

// List returns all clients in registration order.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.clients.ListClients(ctx)
}

// Get returns the client with the given id.
func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.clients.GetClient(ctx, id)
}
