package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cbodonnell/textquest/pkg/api/handlers"
	"github.com/cbodonnell/textquest/pkg/api/middleware"
	"github.com/cbodonnell/textquest/pkg/log"
	"github.com/cbodonnell/textquest/pkg/messages"
	"github.com/cbodonnell/textquest/pkg/state"
	"github.com/gorilla/mux"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
	logger *log.Logger
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port         int
	TLS          *TLSConfig
	AllowOrigin  string
	StateManager state.StateManager
}

// NewRouter builds the game API routes.
func NewRouter(opts NewAPIServerOptions) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.NewCORSMiddleware(opts.AllowOrigin))

	r.HandleFunc(messages.PathChat, handlers.HandleChat(opts.StateManager)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc(messages.PathReset, handlers.HandleReset(opts.StateManager)).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc(messages.PathCheckInventory, handlers.HandleCheckInventory(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(messages.PathCheckLocation, handlers.HandleCheckLocation(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc(messages.PathCheckObs, handlers.HandleCheckObs(opts.StateManager)).Methods(http.MethodGet, http.MethodOptions)
	return r
}

// NewAPIServer creates a new http.Server for the game API
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
		logger: log.Default().WithComponent("api"),
	}
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		s.logger.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		s.logger.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			s.logger.Info("API server closed")
			return
		}
		s.logger.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
