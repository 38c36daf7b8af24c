package recommend

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

// mockCatalog implements CatalogReader for tests.
type mockCatalog struct {
	ids    []string
	err    error
	called bool
}

func (m *mockCatalog) ListActiveProductIDs(_ context.Context) ([]string, error) {
	m.called = true
	return m.ids, m.err
}

// mockHistory implements HistoryReader for tests.
type mockHistory struct {
	rows   []domain.PurchaseRow
	err    error
	called bool
}

func (m *mockHistory) ListCustomerPurchaseRows(_ context.Context) ([]domain.PurchaseRow, error) {
	m.called = true
	return m.rows, m.err
}

func newTestService(t *testing.T, catalog *mockCatalog, history *mockHistory, opts Options) *Service {
	t.Helper()
	return New(catalog, history, opts, zap.NewNop())
}

func row(customer, region, product string, qty int) domain.PurchaseRow {
	return domain.PurchaseRow{
		CustomerID: customer,
		RegionCode: region,
		ProductID:  product,
		Quantity:   qty,
	}
}
