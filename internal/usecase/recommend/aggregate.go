package recommend

import (
	"sort"

	"github.com/kasuga-cloud/cartrec/internal/domain"
	"github.com/kasuga-cloud/cartrec/internal/domain/vector"
)

// neighbor is one historical customer's lifetime purchase profile.
type neighbor struct {
	customerID string
	vec        vector.OrderVector
}

// aggregateCustomers reduces raw purchase rows into one order vector per
// customer. Quantities for the same customer/product pair are summed across
// rows: unlike cart-line folding, the aggregator is collapsing many past
// orders into a single profile. The result is sorted by customer id so
// downstream ranking is deterministic.
func aggregateCustomers(rows []domain.PurchaseRow, space *vector.Space) []neighbor {
	type profile struct {
		regionCode string
		quantities map[string]int
	}

	profiles := make(map[string]*profile)
	order := make([]string, 0)

	for _, row := range rows {
		p, ok := profiles[row.CustomerID]
		if !ok {
			p = &profile{
				regionCode: row.RegionCode,
				quantities: make(map[string]int),
			}
			profiles[row.CustomerID] = p
			order = append(order, row.CustomerID)
		}
		p.quantities[row.ProductID] += row.Quantity
	}

	sort.Strings(order)

	neighbors := make([]neighbor, 0, len(order))
	for _, customerID := range order {
		p := profiles[customerID]

		product := make([]float64, space.Dimension())
		for productID, qty := range p.quantities {
			if idx, ok := space.IndexOf(productID); ok {
				product[idx] = float64(qty)
			}
		}

		neighbors = append(neighbors, neighbor{
			customerID: customerID,
			vec: vector.OrderVector{
				Region:  vector.RegionToVector(p.regionCode),
				Product: product,
			},
		})
	}

	return neighbors
}
