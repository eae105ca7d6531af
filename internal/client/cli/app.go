package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"
	"sync/atomic"
	"time"

	"github.com/medesi/portal/internal/client/client"
	"github.com/medesi/portal/internal/client/config"
	"github.com/medesi/portal/internal/client/credentials"
	"github.com/medesi/portal/internal/client/services"
	"github.com/medesi/portal/internal/client/transport"
	"github.com/medesi/portal/internal/logging"
)

// sleepFn is a test seam for the splash and redirect pauses.
var sleepFn = time.Sleep

// nowFn is a test seam for the home screen's week strip.
var nowFn = time.Now

type App struct {
	config         *config.Config
	authService    services.AuthService
	profileService services.ProfileService
	logger         logging.Logger
	reader         *bufio.Reader
	db             *sql.DB

	loggedIn atomic.Bool
	// expired is raised by the profile service when the server rejected the
	// stored token; the REPL reports it after the current command.
	expired atomic.Bool
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()
	logger := logging.NewText(os.Stderr, c.LogLevel)

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(transport.New(c.BaseURL, nil, logger.With("component", "transport")))
	store := credentials.NewStore(db)

	a := &App{
		config: c,
		logger: logger,
		reader: bufio.NewReader(os.Stdin),
		db:     db,
	}
	a.authService = services.NewAuthService(apiClient, store, logger.With("component", "auth"))
	a.profileService = services.NewProfileService(apiClient, store, logger.With("component", "profile"),
		services.WithAuthExpiredHandler(a.onAuthExpired))

	return a, nil
}

// Run shows the splash, routes through the app-entry gate and then serves
// the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.close()

	printlnFn("Medesi patient portal")
	sleepFn(a.config.SplashDelay)

	route, err := a.authService.Entry(ctx)
	if err != nil {
		a.logger.Warn(ctx, "reading stored session failed", "error", err)
	}

	if route == services.RouteMain {
		a.loggedIn.Store(true)
		_ = a.Home(ctx)
		// The gate does not check token freshness; the first fetch does.
		a.reportExpired()
	}
	if !a.isLoggedIn() {
		printlnFn("Please log in (type 'help' for commands)")
		_ = a.Login(ctx)
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(a.reader))
}

func (a *App) close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(context.Background(), "closing database failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.loggedIn.Load()
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "signed in"
	}
	return "signed out"
}

func (a *App) onAuthExpired() {
	a.loggedIn.Store(false)
	a.expired.Store(true)
}

// reportExpired prints the session-expired notice once per expiry.
func (a *App) reportExpired() {
	if a.expired.CompareAndSwap(true, false) {
		printlnFn("Session expired, please log in again")
	}
}
