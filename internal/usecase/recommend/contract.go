package recommend

import (
	"context"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

// CatalogReader lists the ids of currently sellable products. Suspended
// products are excluded at the source, so they never receive a dimension.
type CatalogReader interface {
	ListActiveProductIDs(ctx context.Context) ([]string, error)
}

// HistoryReader streams raw purchase rows of completed orders. The reader may
// cap the number of rows returned for cost control; a partial result set is
// valid input.
type HistoryReader interface {
	ListCustomerPurchaseRows(ctx context.Context) ([]domain.PurchaseRow, error)
}
