package recommend

import (
	"sort"

	"github.com/kasuga-cloud/cartrec/internal/domain"
	"github.com/kasuga-cloud/cartrec/internal/domain/vector"
)

// neighborScore pairs a historical customer with its similarity to the
// current cart. Transient: built and discarded within one ranking call.
type neighborScore struct {
	neighbor neighbor
	score    float64
}

// rankSuggestions scores every historical customer against the current cart,
// keeps the topK most similar, and accumulates score*quantity for each of
// their products not already in the cart. Ties sort by customer id (then
// product id) ascending so equal float scores produce a reproducible order.
// Empty history yields an empty list, never an error.
func rankSuggestions(
	current vector.OrderVector,
	lines []domain.CartLine,
	neighbors []neighbor,
	space *vector.Space,
	regionWeight float64,
	topK, resultLimit int,
) []domain.Suggestion {
	scored := make([]neighborScore, 0, len(neighbors))
	for _, n := range neighbors {
		scored = append(scored, neighborScore{
			neighbor: n,
			score:    vector.Combined(current, n.vec, regionWeight),
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].neighbor.customerID < scored[j].neighbor.customerID
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}

	inCart := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		inCart[line.ProductID] = struct{}{}
	}

	// Candidate scores accumulate locally; nothing outlives this call.
	totals := make(map[string]float64)
	for _, ns := range scored {
		for idx, qty := range ns.neighbor.vec.Product {
			if qty <= 0 {
				continue
			}
			productID, ok := space.IDOf(idx)
			if !ok {
				continue
			}
			if _, taken := inCart[productID]; taken {
				continue
			}
			totals[productID] += ns.score * qty
		}
	}

	suggestions := make([]domain.Suggestion, 0, len(totals))
	for productID, score := range totals {
		suggestions = append(suggestions, domain.Suggestion{ProductID: productID, Score: score})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].ProductID < suggestions[j].ProductID
	})

	if len(suggestions) > resultLimit {
		suggestions = suggestions[:resultLimit]
	}

	return suggestions
}
