package http

// this is the entry point of the http status surface

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/handlers"
	"gitlab.com/rt2-ephem.net/internal/handlers/response"
	"gitlab.com/rt2-ephem.net/internal/tcp"
	"gitlab.com/rt2-ephem.net/internal/telemetry"
)

type Server struct {
	router      *mux.Router
	Port        int
	ServiceName string
	logger      primary.Logger
	tcpServer   *tcp.TCPServer
	srv         *http.Server
}

func NewServer(port int, serviceName string, tcpServer *tcp.TCPServer, logger primary.Logger) *Server {
	return &Server{
		Port:        port,
		ServiceName: serviceName,
		logger:      logger,
		tcpServer:   tcpServer,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	handlers.NewStatusHandler(s.ServiceName, s.tcpServer, s.logger).RegisterRoutes(r)
	r.Handle("/metrics", telemetry.Handler()).Methods("GET")
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		response.WriteError(w, http.StatusNotFound, "not found")
	})
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Status server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Status server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
