package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kasuga-cloud/cartrec/internal/domain"
	customeruc "github.com/kasuga-cloud/cartrec/internal/usecase/customer"
	healthuc "github.com/kasuga-cloud/cartrec/internal/usecase/health"
	recommenduc "github.com/kasuga-cloud/cartrec/internal/usecase/recommend"
)

const maxCartLines = 100

// Server exposes the recommendation API over HTTP.
type Server struct {
	recommend *recommenduc.Service
	customers *customeruc.Service
	health    *healthuc.Service
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	recommend *recommenduc.Service,
	customers *customeruc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	return &Server{
		recommend: recommend,
		customers: customers,
		health:    health,
		logger:    logger,
	}
}

// Routes registers all handlers on the given router.
func (s *Server) Routes(r chi.Router) {
	r.Post("/api/v1/suggestions", s.CreateSuggestions)
	r.Get("/api/v1/customers", s.ListCustomers)
	r.Get("/suggestions", s.LegacySuggestions)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
}

type cartLinePayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type suggestionsRequest struct {
	RegionCode string            `json:"region_code"`
	CartLines  []cartLinePayload `json:"cart_lines"`
}

type suggestionPayload struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}

type suggestionsResponse struct {
	Message     string              `json:"message"`
	Suggestions []suggestionPayload `json:"suggestions"`
}

type customerPayload struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	RegionCode string `json:"region_code"`
}

type customersResponse struct {
	Message   string            `json:"message"`
	Customers []customerPayload `json:"customers"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateSuggestions handles POST /api/v1/suggestions.
func (s *Server) CreateSuggestions(w http.ResponseWriter, r *http.Request) {
	var req suggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid request body: "+err.Error())
		return
	}
	if len(req.CartLines) > maxCartLines {
		writeError(w, http.StatusBadRequest, "validation_failed", "too many cart lines")
		return
	}

	lines := make([]domain.CartLine, 0, len(req.CartLines))
	for _, l := range req.CartLines {
		lines = append(lines, domain.CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	s.respondSuggestions(w, r, req.RegionCode, lines)
}

// legacyProductPayload mirrors the query-string contract of the previous
// suggestion service: a JSON array embedded in the products parameter.
type legacyProductPayload struct {
	ProductVariantID string `json:"product_variant_id"`
	Quantity         int    `json:"quantity"`
}

// LegacySuggestions handles GET /suggestions?province_code=...&products=...
// for clients still on the old query-string contract.
func (s *Server) LegacySuggestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	regionCode := q.Get("province_code")

	products := q.Get("products")
	if products == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "products parameter is required")
		return
	}

	var items []legacyProductPayload
	if err := json.Unmarshal([]byte(products), &items); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "Invalid products parameter: "+err.Error())
		return
	}
	if len(items) > maxCartLines {
		writeError(w, http.StatusBadRequest, "validation_failed", "too many cart lines")
		return
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.CartLine{ProductID: it.ProductVariantID, Quantity: it.Quantity})
	}

	s.respondSuggestions(w, r, regionCode, lines)
}

func (s *Server) respondSuggestions(
	w http.ResponseWriter, r *http.Request, regionCode string, lines []domain.CartLine,
) {
	suggestions, err := s.recommend.Recommend(r.Context(), regionCode, lines)
	if err != nil {
		if errors.Is(err, domain.ErrCatalogUnavailable) {
			// Shoppers still get a well-formed (empty) response body.
			s.logger.Warn("catalog unavailable", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, suggestionsResponse{
				Message:     domain.ErrCatalogUnavailable.Error(),
				Suggestions: []suggestionPayload{},
			})
			return
		}
		s.handleError(w, err)
		return
	}

	items := make([]suggestionPayload, len(suggestions))
	for i, sg := range suggestions {
		items[i] = suggestionPayload{ProductID: sg.ProductID, Score: sg.Score}
	}

	writeJSON(w, http.StatusOK, suggestionsResponse{
		Message:     "ok",
		Suggestions: items,
	})
}

// ListCustomers handles GET /api/v1/customers.
func (s *Server) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.customers.List(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrCustomersUnavailable) {
			s.logger.Warn("customers unavailable", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable,
				"customers_unavailable", domain.ErrCustomersUnavailable.Error())
			return
		}
		s.handleError(w, err)
		return
	}

	items := make([]customerPayload, len(customers))
	for i, c := range customers {
		items[i] = customerPayload{
			ID:         c.ID,
			Email:      c.Email,
			Name:       strings.TrimSpace(c.FirstName + " " + c.LastName),
			RegionCode: c.RegionCode,
		}
	}

	writeJSON(w, http.StatusOK, customersResponse{
		Message:   "ok",
		Customers: items,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, map[string]any{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}
