// Package catalog reads the product catalog snapshot used to build the
// per-request vector space.
package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

// store is the consumer interface for the catalog (ISP).
type store interface {
	Scan(ctx context.Context, pattern string) ([]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
}

// Repo implements usecase/recommend.CatalogReader.
type Repo struct {
	store store
}

// New creates a catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// ListActiveProductIDs returns the variant ids of all non-suspended products,
// sorted ascending. The sort pins the dimension order of vector spaces built
// from the same snapshot, keeping ranking reproducible.
func (r *Repo) ListActiveProductIDs(ctx context.Context) ([]string, error) {
	keys, err := r.store.Scan(ctx, ProductKey("*"))
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	if len(keys) == 0 {
		return []string{}, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi products: %w", err)
	}

	ids := make([]string, 0, len(hashes))
	for i, m := range hashes {
		if len(m) == 0 || m[FieldSuspended] == "1" {
			continue
		}
		id := m[FieldVariantID]
		if id == "" {
			id = strings.TrimPrefix(keys[i], ProductKey(""))
		}
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return ids, nil
}

// Product hash fields.
const (
	FieldVariantID = "variant_id"
	FieldName      = "name"
	FieldSuspended = "suspended"
)

// ProductKey returns the Redis key of a product hash: cartrec:product:{variant_id}.
func ProductKey(variantID string) string {
	return fmt.Sprintf("%sproduct:%s", domain.KeyPrefix, variantID)
}
