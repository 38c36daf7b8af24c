package customer

import (
	"context"
	"fmt"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

// Service exposes customer profile listings.
type Service struct {
	repo Repository
}

// New creates a customer service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all stored customers sorted by id.
func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCustomersUnavailable, err)
	}
	return customers, nil
}
