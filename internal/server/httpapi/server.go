// Package httpapi exposes the patient directory over the REST contract the
// patient client speaks. Errors are JSON objects with a "message" field.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/medesi/portal/internal/common"
	"github.com/medesi/portal/internal/logging"
	"github.com/medesi/portal/internal/server/patients"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	patients *patients.Service
	logger   logging.Logger
}

func NewServer(addr string, l logging.Logger, ps *patients.Service) *Server {
	return &Server{
		address:  addr,
		logger:   l.With("module", "http_server"),
		patients: ps,
	}
}

// Router builds the route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)

	r.HandleFunc(common.PathLogin, s.login).Methods(http.MethodPost)
	r.HandleFunc(common.PathForgotPassword, s.forgotPassword).Methods(http.MethodPost)

	r.Handle(common.PathPatientMe, s.bearerAuth(http.HandlerFunc(s.getMe))).Methods(http.MethodGet)
	r.Handle(common.PathPatientMe, s.bearerAuth(http.HandlerFunc(s.updateMe))).Methods(http.MethodPut)
	r.Handle(common.PathMedicalRecord, s.bearerAuth(http.HandlerFunc(s.getMedicalRecord))).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

// serve blocks until ctx is cancelled or the listener fails. The shutdown
// watcher always exits before serve returns.
func (s *Server) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	served := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-served:
			return
		case <-ctx.Done():
		}
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	err := srv.Serve(listen)
	close(served)
	wg.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
