package client

import (
	"context"

	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
)

// Client is the backend API used by the services.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Signup(ctx context.Context, email, password, name string) (*models.SignupResult, error)
	VerifyEmail(ctx context.Context, token string) (*models.VerifyResult, error)
	ResendVerification(ctx context.Context, email string) (*models.VerifyResult, error)
	SearchBusinesses(ctx context.Context, input models.SearchBusinessesInput) (*models.BusinessSearchResult, error)
	Ping(ctx context.Context) error
	// ClearStore drops every cached response.
	ClearStore() error
}
