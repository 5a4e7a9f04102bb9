package core

// Deal is a local student discount. Deals are shared catalog data, not user
// records: every user sees the same list and the API only reads them.
type Deal struct {
	ID          string
	Name        string
	Description string
	Category    string
	Distance    string
	Hours       string
	Rating      float64
	IsSponsored bool
}
