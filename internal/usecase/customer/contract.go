package customer

import (
	"context"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

// Repository defines the storage contract for customer profiles.
type Repository interface {
	List(ctx context.Context) ([]domain.Customer, error)
}
