package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kasuga-cloud/cartrec/internal/domain"
	customeruc "github.com/kasuga-cloud/cartrec/internal/usecase/customer"
	healthuc "github.com/kasuga-cloud/cartrec/internal/usecase/health"
	recommenduc "github.com/kasuga-cloud/cartrec/internal/usecase/recommend"
)

// mockCatalog implements recommend.CatalogReader for tests.
type mockCatalog struct {
	ids []string
	err error
}

func (m *mockCatalog) ListActiveProductIDs(_ context.Context) ([]string, error) {
	return m.ids, m.err
}

// mockHistory implements recommend.HistoryReader for tests.
type mockHistory struct {
	rows []domain.PurchaseRow
	err  error
}

func (m *mockHistory) ListCustomerPurchaseRows(_ context.Context) ([]domain.PurchaseRow, error) {
	return m.rows, m.err
}

// mockCustomerRepo implements customer.Repository for tests.
type mockCustomerRepo struct {
	customers []domain.Customer
	err       error
}

func (m *mockCustomerRepo) List(_ context.Context) ([]domain.Customer, error) {
	return m.customers, m.err
}

// mockPinger implements health.DBPinger for tests.
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error {
	return m.err
}

type testDeps struct {
	catalog   *mockCatalog
	history   *mockHistory
	customers *mockCustomerRepo
	pinger    *mockPinger
}

// newTestServer wires real use case services over mock readers and returns a
// ready-to-serve router.
func newTestServer(t *testing.T, deps testDeps) *httptest.Server {
	t.Helper()

	if deps.catalog == nil {
		deps.catalog = &mockCatalog{}
	}
	if deps.history == nil {
		deps.history = &mockHistory{}
	}
	if deps.customers == nil {
		deps.customers = &mockCustomerRepo{}
	}
	if deps.pinger == nil {
		deps.pinger = &mockPinger{}
	}

	logger := zap.NewNop()
	recommendSvc := recommenduc.New(deps.catalog, deps.history, recommenduc.Options{}, logger)
	customerSvc := customeruc.New(deps.customers)
	healthSvc := healthuc.New(deps.pinger)

	srv := NewServer(recommendSvc, customerSvc, healthSvc, logger)

	r := chi.NewRouter()
	srv.Routes(r)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}
