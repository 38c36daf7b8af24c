// Package vector holds the pure vector-space math behind cart suggestions:
// the product dimension assignment, order vector construction, and cosine
// similarity scoring. Everything here is side-effect free and allocated per
// request; a Space is only meaningful against the catalog snapshot it was
// built from and must never be reused across snapshots.
package vector

// Space assigns each active catalog product a dense dimension index and
// thereby fixes the layout of all product vectors built against it.
type Space struct {
	indexByID map[string]int
	idByIndex []string
}

// NewSpace builds a Space over the given product ids, assigning indices in
// input order. Duplicate ids keep their first index so the mapping stays a
// bijection.
func NewSpace(productIDs []string) *Space {
	s := &Space{
		indexByID: make(map[string]int, len(productIDs)),
		idByIndex: make([]string, 0, len(productIDs)),
	}
	for _, id := range productIDs {
		if _, ok := s.indexByID[id]; ok {
			continue
		}
		s.indexByID[id] = len(s.idByIndex)
		s.idByIndex = append(s.idByIndex, id)
	}
	return s
}

// IndexOf returns the dimension index of a product id.
func (s *Space) IndexOf(productID string) (int, bool) {
	idx, ok := s.indexByID[productID]
	return idx, ok
}

// IDOf returns the product id at a dimension index.
func (s *Space) IDOf(index int) (string, bool) {
	if index < 0 || index >= len(s.idByIndex) {
		return "", false
	}
	return s.idByIndex[index], true
}

// Dimension returns the number of dimensions, equal to the number of
// distinct products the space was built from.
func (s *Space) Dimension() int {
	return len(s.idByIndex)
}
