package domain

import "errors"

var (
	// ErrCatalogUnavailable signals that the product catalog could not be read.
	// Without a catalog snapshot no vector space can be built, so this is
	// surfaced to the client.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	// ErrHistoryUnavailable signals that purchase history could not be read.
	// Recovered locally: the request proceeds with no historical customers.
	ErrHistoryUnavailable = errors.New("purchase history unavailable")
	// ErrCustomersUnavailable signals that the customer store could not be read.
	ErrCustomersUnavailable = errors.New("customers unavailable")
)
