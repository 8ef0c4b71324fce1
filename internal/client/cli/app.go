package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/sambulosenda/glamfric-mobile/internal/client/client"
	"github.com/sambulosenda/glamfric-mobile/internal/client/config"
	"github.com/sambulosenda/glamfric-mobile/internal/client/securestore"
	"github.com/sambulosenda/glamfric-mobile/internal/client/services"
	"github.com/sambulosenda/glamfric-mobile/internal/client/storage"
	"github.com/sambulosenda/glamfric-mobile/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	storage *storage.Manager
	client  client.Client
	auth    services.AuthService
	prefs   services.PreferencesService
	shell   *shell
	reader  *bufio.Reader
	out     io.Writer

	modeMu sync.Mutex
	mode   Mode
}

// deps are the process singletons the app is assembled from.
type deps struct {
	db      *sql.DB
	secrets securestore.Store
	storage *storage.Manager
	client  client.Client
	logger  logging.Logger
	in      io.Reader
	out     io.Writer
}

// NewApp opens the device database and secret store, builds the state
// containers, initializes storage and hydrates the containers. A storage
// initialization failure is fatal.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	db, err := storage.OpenDatabase(ctx, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	secrets, err := securestore.OpenSQLiteStore(ctx, db, []byte(cfg.DeviceSecret), logger)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error opening secret store: %w", err)
	}

	manager := storage.NewManager(db, secrets, logger)

	apiClient := client.NewGraphQLClient(client.Options{
		Endpoint: cfg.GraphQLURL,
		Timeout:  cfg.RequestTimeout,
		CacheTTL: cfg.SearchCacheTTL,
	}, secrets, manager, logger)

	app, err := assemble(ctx, cfg, deps{
		db:      db,
		secrets: secrets,
		storage: manager,
		client:  apiClient,
		logger:  logger,
		in:      os.Stdin,
		out:     os.Stdout,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

// assemble builds the containers before storage is ready so they start out
// waiting for it, then runs the storage bootstrap and hydrates them.
func assemble(ctx context.Context, cfg *config.Config, d deps) (*App, error) {
	policy, err := services.ParseVerifyPolicy(cfg.VerifyPolicy)
	if err != nil {
		return nil, err
	}

	auth := services.NewAuthService(services.AuthDeps{
		Client:  d.client,
		Secrets: d.secrets,
		Storage: d.storage,
		Policy:  policy,
		Logger:  d.logger,
	})
	prefs := services.NewPreferencesService(d.storage, d.logger)

	if err := d.storage.Init(ctx); err != nil {
		return nil, err
	}

	prefs.Hydrate()
	auth.Hydrate()

	app := &App{
		config:  cfg,
		logger:  d.logger.With("module", "cli"),
		db:      d.db,
		storage: d.storage,
		client:  d.client,
		auth:    auth,
		prefs:   prefs,
		reader:  bufio.NewReader(d.in),
		out:     d.out,
	}
	app.shell = newShell(app.out, auth)
	return app, nil
}

// Run shows the welcome screen, starts the online status watcher and blocks
// in the REPL until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close(ctx)

	a.welcome()

	if a.config.OnlineCheckInterval > 0 {
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(byteReader{a.reader}))
}

// byteReader hands the REPL scanner one byte per read so it never buffers
// input that a command prompt is about to read from the same reader.
type byteReader struct {
	r *bufio.Reader
}

func (b byteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c, err := b.r.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = c
	return 1, nil
}

func (a *App) close(ctx context.Context) {
	a.shell.stop()
	if err := a.db.Close(); err != nil {
		a.logger.Error(ctx, "db close error", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.auth.State().IsAuthenticated()
}

func (a *App) getMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.logger.Info(ctx, "switched mode", "mode", mode)
	}
}

// StartOnlineStatusWatcher pings the backend every interval and flips the
// mode between online and offline.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.checkOnline(ctx)
	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(pingCtx); err != nil {
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

func (a *App) getStatus() string {
	var parts []string
	if user := a.auth.State().User; user != nil {
		parts = append(parts, user.DisplayName())
	}
	if m := a.getMode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
