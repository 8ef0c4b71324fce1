// Package graphql serves the development backend's GraphQL endpoint over
// echo: login, signup, verifyEmail, resendVerification, searchBusinesses
// and ping.
package graphql

import (
	"context"
	"errors"
	"net/http"
	"time"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	address    string
	echo       *echo.Echo
	users      Users
	businesses Businesses
	schema     *gql.Schema
	logger     logging.Logger
	jwtSecret  []byte
}

func NewServer(address string, l logging.Logger, users Users, businesses Businesses, secretKey string) *Server {
	s := &Server{
		address:    address,
		users:      users,
		businesses: businesses,
		logger:     l.With("module", "graphql_server"),
		jwtSecret:  []byte(secretKey),
	}
	s.schema = gql.MustParseSchema(schemaSDL, &resolver{s: s}, gql.UseFieldResolvers())

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(s.requestLogger)
	e.Use(echomw.BodyLimit("1M"))

	e.POST("/graphql", s.ServeGraphQL, s.accessTokenInterceptor)
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	s.echo = e
	return s
}

// Handler exposes the routes for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping GraphQL server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "forced shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting GraphQL server", "address", s.address)

	if err := s.echo.Start(s.address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
