package recommend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kasuga-cloud/cartrec/internal/domain"
	"github.com/kasuga-cloud/cartrec/internal/domain/vector"
	"github.com/kasuga-cloud/cartrec/internal/metrics"
)

// Defaults for the ranking knobs.
const (
	DefaultTopK        = 10
	DefaultResultLimit = 5
)

// Options tunes the ranking. Zero values fall back to the defaults;
// RegionWeight must lie in [0,1] and is validated at config load, not here.
type Options struct {
	RegionWeight float64
	TopK         int
	ResultLimit  int
}

func (o Options) withDefaults() Options {
	if o.RegionWeight == 0 {
		o.RegionWeight = vector.DefaultRegionWeight
	}
	if o.TopK <= 0 {
		o.TopK = DefaultTopK
	}
	if o.ResultLimit <= 0 {
		o.ResultLimit = DefaultResultLimit
	}
	return o
}

// Service computes cart suggestions from catalog and purchase-history
// snapshots. It holds no state between requests: every call builds a fresh
// vector space, so indices are never compared across snapshots.
type Service struct {
	catalog CatalogReader
	history HistoryReader
	opts    Options
	logger  *zap.Logger
}

// New creates a recommendation service.
func New(catalog CatalogReader, history HistoryReader, opts Options, logger *zap.Logger) *Service {
	return &Service{
		catalog: catalog,
		history: history,
		opts:    opts.withDefaults(),
		logger:  logger,
	}
}

type historyResult struct {
	rows []domain.PurchaseRow
	err  error
}

// Recommend returns up to ResultLimit products that customers similar to the
// current cart have bought, best first.
//
// The catalog and history fetches run concurrently; scoring starts once both
// complete. A catalog failure is fatal for the request (no vector space can
// be built) and surfaces as ErrCatalogUnavailable. A history failure is
// logged and degrades to an empty suggestion list: the shopper still gets a
// response.
func (s *Service) Recommend(
	ctx context.Context, regionCode string, lines []domain.CartLine,
) ([]domain.Suggestion, error) {
	historyCh := make(chan historyResult, 1)
	go func() {
		rows, err := s.history.ListCustomerPurchaseRows(ctx)
		historyCh <- historyResult{rows: rows, err: err}
	}()

	productIDs, err := s.catalog.ListActiveProductIDs(ctx)
	if err != nil {
		metrics.RecommendRequestsTotal.WithLabelValues("catalog_error").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	space := vector.NewSpace(productIDs)

	hist := <-historyCh
	if hist.err != nil {
		// Degrade to "no historical customers" rather than failing the request.
		metrics.RecommendRequestsTotal.WithLabelValues("history_error").Inc()
		s.logger.Warn("purchase history unavailable, returning empty suggestions",
			zap.Error(fmt.Errorf("%w: %v", domain.ErrHistoryUnavailable, hist.err)))
		hist.rows = nil
	} else {
		metrics.RecommendRequestsTotal.WithLabelValues("ok").Inc()
	}
	metrics.RecommendHistoryRows.Observe(float64(len(hist.rows)))

	neighbors := aggregateCustomers(hist.rows, space)
	metrics.RecommendNeighborsScored.Observe(float64(len(neighbors)))

	current := vector.NewOrderVector(regionCode, lines, space)
	suggestions := rankSuggestions(
		current, lines, neighbors, space,
		s.opts.RegionWeight, s.opts.TopK, s.opts.ResultLimit,
	)
	metrics.RecommendSuggestionsReturned.Observe(float64(len(suggestions)))

	return suggestions, nil
}
