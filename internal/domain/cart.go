package domain

// CartLine is a single line item of the shopper's current cart.
// Quantity is non-negative; a zero quantity contributes nothing to scoring.
type CartLine struct {
	ProductID string
	Quantity  int
}

// Suggestion is one recommended product with its accumulated neighbor score.
type Suggestion struct {
	ProductID string
	Score     float64
}

// PurchaseRow is one raw line of historical order data: a customer bought
// Quantity units of ProductID, shipping to RegionCode. The same
// customer/product pair may appear in many rows (one per past order).
type PurchaseRow struct {
	CustomerID string
	RegionCode string
	ProductID  string
	Quantity   int
}
