package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	graphql "github.com/hasura/go-graphql-client"

	"github.com/sambulosenda/glamfric-mobile/internal/client/kvstore"
	"github.com/sambulosenda/glamfric-mobile/internal/client/models"
	"github.com/sambulosenda/glamfric-mobile/internal/client/securestore"
	"github.com/sambulosenda/glamfric-mobile/internal/common"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

// LoginInput, SignupInput and SearchBusinessesInput are named after the
// backend's GraphQL input types; the client derives variable types from them.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

type SearchBusinessesInput models.SearchBusinessesInput

// CacheSource yields the response cache instance once storage is ready.
type CacheSource interface {
	Cache() (*kvstore.Store, error)
}

type Options struct {
	Endpoint string
	// Timeout bounds each operation. Zero means no limit beyond ctx.
	Timeout time.Duration
	// CacheTTL is the lifetime of cached search results. Zero disables caching.
	CacheTTL time.Duration
	// Transport is the underlying round tripper; http.DefaultTransport if nil.
	Transport http.RoundTripper
}

type GraphQLClient struct {
	gql    *graphql.Client
	cache  CacheSource
	opts   Options
	logger logging.Logger
}

func NewGraphQLClient(opts Options, secrets securestore.Store, cache CacheSource, logger logging.Logger) *GraphQLClient {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	logger = logger.With("module", "client")

	httpClient := &http.Client{
		Transport: &authTransport{base: base, secrets: secrets, logger: logger},
	}

	return &GraphQLClient{
		gql:    graphql.NewClient(opts.Endpoint, httpClient),
		cache:  cache,
		opts:   opts,
		logger: logger,
	}
}

func (c *GraphQLClient) begin(ctx context.Context) (context.Context, *callStatus, context.CancelFunc) {
	cancel := context.CancelFunc(func() {})
	if c.opts.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
	}
	ctx, st := withCallStatus(ctx)
	return ctx, st, cancel
}

func (c *GraphQLClient) Login(ctx context.Context, email, password string) (*models.LoginResult, error) {
	ctx, st, cancel := c.begin(ctx)
	defer cancel()

	var m struct {
		Login struct {
			Token string             `graphql:"token"`
			User  models.UserProfile `graphql:"user"`
		} `graphql:"login(input: $input)"`
	}
	vars := map[string]any{"input": LoginInput{Email: email, Password: password}}

	if err := c.gql.Mutate(ctx, &m, vars); err != nil {
		return nil, c.mapError(ctx, "login", st, err)
	}
	return &models.LoginResult{Token: m.Login.Token, User: m.Login.User}, nil
}

func (c *GraphQLClient) Signup(ctx context.Context, email, password, name string) (*models.SignupResult, error) {
	ctx, st, cancel := c.begin(ctx)
	defer cancel()

	var m struct {
		Signup struct {
			Message              string `graphql:"message"`
			RequiresVerification bool   `graphql:"requiresVerification"`
			UserID               string `graphql:"userId"`
		} `graphql:"signup(input: $input)"`
	}
	input := SignupInput{Email: email, Password: password}
	if name != "" {
		input.Name = &name
	}

	if err := c.gql.Mutate(ctx, &m, map[string]any{"input": input}); err != nil {
		return nil, c.mapError(ctx, "signup", st, err)
	}
	return &models.SignupResult{
		Message:              m.Signup.Message,
		RequiresVerification: m.Signup.RequiresVerification,
		UserID:               m.Signup.UserID,
	}, nil
}

func (c *GraphQLClient) VerifyEmail(ctx context.Context, token string) (*models.VerifyResult, error) {
	ctx, st, cancel := c.begin(ctx)
	defer cancel()

	var m struct {
		VerifyEmail struct {
			Success bool   `graphql:"success"`
			Message string `graphql:"message"`
		} `graphql:"verifyEmail(token: $token)"`
	}

	if err := c.gql.Mutate(ctx, &m, map[string]any{"token": token}); err != nil {
		return nil, c.mapError(ctx, "verifyEmail", st, err)
	}
	return &models.VerifyResult{Success: m.VerifyEmail.Success, Message: m.VerifyEmail.Message}, nil
}

func (c *GraphQLClient) ResendVerification(ctx context.Context, email string) (*models.VerifyResult, error) {
	ctx, st, cancel := c.begin(ctx)
	defer cancel()

	var m struct {
		ResendVerification struct {
			Success bool   `graphql:"success"`
			Message string `graphql:"message"`
		} `graphql:"resendVerification(email: $email)"`
	}

	if err := c.gql.Mutate(ctx, &m, map[string]any{"email": email}); err != nil {
		return nil, c.mapError(ctx, "resendVerification", st, err)
	}
	return &models.VerifyResult{Success: m.ResendVerification.Success, Message: m.ResendVerification.Message}, nil
}

// SearchBusinesses runs the public search query, serving repeated searches
// from the cache while they are fresh.
func (c *GraphQLClient) SearchBusinesses(ctx context.Context, input models.SearchBusinessesInput) (*models.BusinessSearchResult, error) {
	cache := c.responseCache()
	key := searchCacheKey(input)

	if cache != nil {
		var cached models.BusinessSearchResult
		ok, err := cache.Get(key, &cached)
		if err != nil {
			c.logger.Warn(ctx, "search cache unreadable", "error", err)
		}
		if ok {
			return &cached, nil
		}
	}

	ctx, st, cancel := c.begin(ctx)
	defer cancel()

	var q struct {
		SearchBusinesses models.BusinessSearchResult `graphql:"searchBusinesses(input: $input)"`
	}
	if err := c.gql.Query(ctx, &q, map[string]any{"input": SearchBusinessesInput(input)}); err != nil {
		return nil, c.mapError(ctx, "searchBusinesses", st, err)
	}

	res := q.SearchBusinesses
	if cache != nil {
		if err := cache.Set(key, res, c.opts.CacheTTL); err != nil {
			c.logger.Warn(ctx, "search cache write failed", "error", err)
		}
	}
	return &res, nil
}

func (c *GraphQLClient) Ping(ctx context.Context) error {
	ctx, st, cancel := c.begin(ctx)
	defer cancel()

	var q struct {
		Ping string `graphql:"ping"`
	}
	if err := c.gql.Query(ctx, &q, nil); err != nil {
		return c.mapError(ctx, "ping", st, err)
	}
	if q.Ping != "OK" {
		return common.ErrUnavailable
	}
	return nil
}

func (c *GraphQLClient) ClearStore() error {
	if c.cache == nil {
		return nil
	}
	store, err := c.cache.Cache()
	if errors.Is(err, common.ErrStorageNotInitialized) {
		return nil
	}
	if err != nil {
		return err
	}
	return kvstore.NewCache(store).Clear()
}

func (c *GraphQLClient) responseCache() *kvstore.Cache {
	if c.cache == nil || c.opts.CacheTTL <= 0 {
		return nil
	}
	store, err := c.cache.Cache()
	if err != nil {
		return nil
	}
	return kvstore.NewCache(store)
}

func searchCacheKey(input models.SearchBusinessesInput) string {
	b, _ := json.Marshal(input)
	return "searchBusinesses:" + string(b)
}
