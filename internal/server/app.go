// Package server initializes and runs the patient portal development
// server: an in-memory patient directory behind the REST API the patient
// client talks to, with graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package server

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/medesi/portal/internal/logging"
	"github.com/medesi/portal/internal/server/config"
	"github.com/medesi/portal/internal/server/httpapi"
	"github.com/medesi/portal/internal/server/patients"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	patientsService *patients.Service
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	ps := patients.NewService(patients.NewMemoryRepository(), c, logger.With("module", "patients"))

	if c.SeedDemoPatient {
		p, err := ps.SeedDemo(context.Background())
		if err != nil {
			return nil, err
		}
		logger.Info(context.Background(), "Seeded demo patient", "email", p.Email, "password", patients.DemoPassword)
	}

	return &App{config: c, logger: logger, patientsService: ps}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.patientsService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until the server stops, either on a signal, on cancellation
// of ctx or on a fatal serve error.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
