package domain

// Customer is a stored shopper profile.
type Customer struct {
	ID         string
	Email      string
	FirstName  string
	LastName   string
	RegionCode string
}
