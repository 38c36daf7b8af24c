package vector

import (
	"strconv"
	"strings"

	"github.com/kasuga-cloud/cartrec/internal/domain"
)

const (
	regionPrefix = "JP-"

	// regionModulus folds prefecture numbers into the region dimension as
	// n mod 47, so JP-47 encodes to 0 and scores like an unknown region.
	// The alternative n/47.0 normalization changes similarity results and
	// was deliberately not adopted; see DESIGN.md.
	regionModulus = 47
)

// OrderVector pairs the region and product vectors built from one order
// snapshot against a single Space. Immutable once built.
type OrderVector struct {
	Region  []float64
	Product []float64
}

// RegionToVector encodes a shipping region code as a single-element vector.
// Codes of the form "JP-NN" with NN in [1,47] yield NN mod regionModulus;
// anything malformed or out of range yields [0.0].
func RegionToVector(regionCode string) []float64 {
	num, ok := strings.CutPrefix(regionCode, regionPrefix)
	if !ok {
		return []float64{0}
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 1 || n > regionModulus {
		return []float64{0}
	}
	return []float64{float64(n % regionModulus)}
}

// ProductsToVector folds cart lines into a product vector of length
// space.Dimension(). Each resolvable line sets its dimension to the line's
// quantity; duplicate lines for the same product overwrite rather than sum
// (a live cart cannot legitimately carry duplicates). Lines for products
// outside the space are dropped silently.
func ProductsToVector(lines []domain.CartLine, space *Space) []float64 {
	vec := make([]float64, space.Dimension())
	for _, line := range lines {
		if idx, ok := space.IndexOf(line.ProductID); ok {
			vec[idx] = float64(line.Quantity)
		}
	}
	return vec
}

// NewOrderVector composes the region and product vectors for one order.
func NewOrderVector(regionCode string, lines []domain.CartLine, space *Space) OrderVector {
	return OrderVector{
		Region:  RegionToVector(regionCode),
		Product: ProductsToVector(lines, space),
	}
}
