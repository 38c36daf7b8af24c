package vector

import "math"

// DefaultRegionWeight is the canonical share of the region axis in the
// combined similarity blend.
const DefaultRegionWeight = 0.2

// Cosine returns the cosine similarity of two vectors. Mismatched lengths
// and zero-magnitude vectors score 0.0 rather than erroring: a zero vector
// is defined as maximally dissimilar to everything, including itself.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, magA, magB float64
	for i := range a {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

// Combined blends product and region cosine similarity:
// (1-w)*cosine(product) + w*cosine(region). regionWeight is expected in
// [0,1]; the caller owns validation.
func Combined(a, b OrderVector, regionWeight float64) float64 {
	productSim := Cosine(a.Product, b.Product)
	regionSim := Cosine(a.Region, b.Region)
	return (1-regionWeight)*productSim + regionWeight*regionSim
}
