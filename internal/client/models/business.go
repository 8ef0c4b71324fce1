package models

// Business is a listing returned by the public search query.
type Business struct {
	ID           string   `json:"id" graphql:"id"`
	BusinessName string   `json:"businessName" graphql:"businessName"`
	Slug         string   `json:"slug" graphql:"slug"`
	Category     string   `json:"category" graphql:"category"`
	City         *string  `json:"city" graphql:"city"`
	Rating       *float64 `json:"rating" graphql:"rating"`
	TotalReviews int      `json:"totalReviews" graphql:"totalReviews"`
	IsVerified   bool     `json:"isVerified" graphql:"isVerified"`
}

// SearchBusinessesInput filters a business search. Zero values are omitted.
type SearchBusinessesInput struct {
	Query    string `json:"query,omitempty"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

type BusinessSearchResult struct {
	Businesses []Business `json:"businesses" graphql:"businesses"`
	Total      int        `json:"total" graphql:"total"`
	HasMore    bool       `json:"hasMore" graphql:"hasMore"`
}
