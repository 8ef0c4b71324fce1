// Package server wires the development GraphQL backend: SQLite storage,
// account and directory services, and the echo HTTP server with graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sambulosenda/glamfric-mobile/internal/logging"
	"github.com/sambulosenda/glamfric-mobile/internal/server/config"
	"github.com/sambulosenda/glamfric-mobile/internal/server/graphql"
	"github.com/sambulosenda/glamfric-mobile/internal/server/repositories/repomanager"
	"github.com/sambulosenda/glamfric-mobile/internal/server/services"
)

// databaseDSN keeps the development backend's state in memory; every start
// begins with the seeded directory and no accounts.
const databaseDSN = ":memory:"

type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	userService     *services.UserService
	businessService *services.BusinessService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	rm := repomanager.NewSQLiteManager()
	db, err := rm.Open(ctx, databaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg, services.NewLogMailer(logger), logger)
	bs := services.NewBusinessService(db, rm)

	return &App{config: cfg, logger: logger, db: db, userService: us, businessService: bs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGraphQLServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := graphql.NewServer(app.config.Addr, app.logger, app.userService, app.businessService, app.config.SecretKey)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGraphQLServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
