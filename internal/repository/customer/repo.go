// Package customer reads stored shopper profiles.
package customer

import (
	"context"
	"fmt"
	"sort"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

// store is the consumer interface for customer profiles (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo reads customer hashes.
type Repo struct {
	store store
}

// New creates a customer repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// List returns all customers sorted by id.
func (r *Repo) List(ctx context.Context) ([]domain.Customer, error) {
	keys, err := r.store.Scan(ctx, Key("*"))
	if err != nil {
		return nil, fmt.Errorf("scan customers: %w", err)
	}
	if len(keys) == 0 {
		return []domain.Customer{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi customers: %w", err)
	}

	customers := make([]domain.Customer, 0, len(hashes))
	for _, m := range hashes {
		if len(m) == 0 {
			continue
		}
		customers = append(customers, customerFromHash(m))
	}

	sort.Slice(customers, func(i, j int) bool {
		return customers[i].ID < customers[j].ID
	})

	return customers, nil
}

// Customer hash fields.
const (
	FieldID        = "id"
	FieldEmail     = "email"
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldRegion    = "region"
)

// Key returns the Redis key of a customer hash: cartrec:customer:{id}.
func Key(id string) string {
	return fmt.Sprintf("%scustomer:%s", domain.KeyPrefix, id)
}

func customerFromHash(m map[string]string) domain.Customer {
	return domain.Customer{
		ID:         m[FieldID],
		Email:      m[FieldEmail],
		FirstName:  m[FieldFirstName],
		LastName:   m[FieldLastName],
		RegionCode: m[FieldRegion],
	}
}
