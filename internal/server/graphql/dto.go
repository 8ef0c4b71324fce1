package graphql

import (
	gql "github.com/graph-gophers/graphql-go"

	"github.com/sambulosenda/glamfric-mobile/internal/server/models"
	"github.com/sambulosenda/glamfric-mobile/internal/server/services"
)

// Input and payload shapes bound to the schema. Fields resolve by name.

type loginInput struct {
	Email    string
	Password string
}

type signupInput struct {
	Email    string
	Password string
	Name     *string
}

type searchInput struct {
	Query    *string
	Category *string
	Limit    *int32
	Offset   *int32
}

type userPayload struct {
	ID    gql.ID
	Email string
	Name  *string
	Role  string
}

type loginPayload struct {
	Token string
	User  *userPayload
}

type signupPayload struct {
	Message              string
	RequiresVerification bool
	UserID               gql.ID
}

type verifyPayload struct {
	Success bool
	Message string
}

type businessPayload struct {
	ID           gql.ID
	BusinessName string
	Slug         string
	Category     string
	City         *string
	Rating       *float64
	TotalReviews int32
	IsVerified   bool
}

type searchPayload struct {
	Businesses []*businessPayload
	Total      int32
	HasMore    bool
}

func toID(id string) gql.ID { return gql.ID(id) }

func toLoginPayload(res *services.LoginResult) *loginPayload {
	return &loginPayload{
		Token: res.Token,
		User: &userPayload{
			ID:    gql.ID(res.User.ID),
			Email: res.User.Email,
			Name:  res.User.Name,
			Role:  res.User.Role,
		},
	}
}

func toSearchPayload(res *services.BusinessSearchResult) *searchPayload {
	out := &searchPayload{
		Businesses: make([]*businessPayload, 0, len(res.Businesses)),
		Total:      int32(res.Total),
		HasMore:    res.HasMore,
	}
	for _, b := range res.Businesses {
		out.Businesses = append(out.Businesses, toBusinessPayload(b))
	}
	return out
}

func toBusinessPayload(b models.Business) *businessPayload {
	return &businessPayload{
		ID:           gql.ID(b.ID),
		BusinessName: b.BusinessName,
		Slug:         b.Slug,
		Category:     b.Category,
		City:         b.City,
		Rating:       b.Rating,
		TotalReviews: int32(b.TotalReviews),
		IsVerified:   b.IsVerified,
	}
}

func (in *searchInput) filter() models.BusinessFilter {
	var f models.BusinessFilter
	if in == nil {
		return f
	}
	if in.Query != nil {
		f.Query = *in.Query
	}
	if in.Category != nil {
		f.Category = *in.Category
	}
	if in.Limit != nil {
		f.Limit = int(*in.Limit)
	}
	if in.Offset != nil {
		f.Offset = int(*in.Offset)
	}
	return f
}
