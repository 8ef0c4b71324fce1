package models

type Business struct {
	ID           string
	BusinessName string
	Slug         string
	Category     string
	City         *string
	Rating       *float64
	TotalReviews int
	IsVerified   bool
}

// BusinessFilter narrows a business search. Empty fields match everything.
type BusinessFilter struct {
	Query    string
	Category string
	Limit    int
	Offset   int
}
