package tcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/services/conversion"
	"gitlab.com/rt2-ephem.net/internal/core/services/resolution"
	"gitlab.com/rt2-ephem.net/internal/tcp/connmanager"
	"gitlab.com/rt2-ephem.net/internal/tcp/defs"
	"gitlab.com/rt2-ephem.net/internal/tcp/frame"
	"gitlab.com/rt2-ephem.net/internal/tcp/handlers"
	"gitlab.com/rt2-ephem.net/internal/telemetry"
)

// TCPServer accepts pointing protocol clients. Each connection gets its own
// worker goroutine that owns every read and write on that socket; the total
// number of workers is bounded by a semaphore.
type TCPServer struct {
	address           string
	maxConnections    int
	resolutionService resolution.IResolutionService
	conversionService conversion.IConversionService
	logger            primary.Logger
	listener          net.Listener
	connectionMgr     *connmanager.ConnectionManager
	stopCh            chan struct{}
	handlers          map[string]primary.CommandHandler
	sem               chan struct{}
	wg                sync.WaitGroup
}

// TCPServerOption configures a TCPServer
type TCPServerOption func(*TCPServer)

// WithAddress sets the listen address
func WithAddress(address string) TCPServerOption {
	return func(s *TCPServer) {
		s.address = address
	}
}

// WithMaxConnections bounds concurrent client connections
func WithMaxConnections(n int) TCPServerOption {
	return func(s *TCPServer) {
		if n > 0 {
			s.maxConnections = n
		}
	}
}

// NewTCPServer creates a new pointing protocol server
func NewTCPServer(
	resolutionService resolution.IResolutionService,
	conversionService conversion.IConversionService,
	logger primary.Logger,
	options ...TCPServerOption,
) *TCPServer {
	server := &TCPServer{
		address:           ":6060", // Default address
		maxConnections:    64,
		resolutionService: resolutionService,
		conversionService: conversionService,
		logger:            logger,
		connectionMgr:     connmanager.NewConnectionManager(logger),
		stopCh:            make(chan struct{}),
	}

	// Apply options
	for _, option := range options {
		option(server)
	}

	server.sem = make(chan struct{}, server.maxConnections)
	server.setupCommandHandlers()

	return server
}

// setupCommandHandlers registers all command handlers
func (s *TCPServer) setupCommandHandlers() {
	s.handlers = map[string]primary.CommandHandler{
		defs.CmdResolveRequest: &handlers.ResolveHandler{ResolutionService: s.resolutionService, Logger: s.logger},
		defs.CmdPushingRADec:   &handlers.PushCoordsHandler{ConversionService: s.conversionService, Logger: s.logger},
	}
}

// Start starts the TCP server
func (s *TCPServer) Start() error {
	var err error
	s.listener, err = net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("failed to start TCP server: %w", err)
	}

	s.logger.Info("TCP server listening", "address", s.listener.Addr().String())

	// Accept connections in a goroutine
	go s.acceptConnections()

	return nil
}

// Address returns the bound listen address, useful when the configured
// address had port 0.
func (s *TCPServer) Address() string {
	if s.listener == nil {
		return s.address
	}
	return s.listener.Addr().String()
}

// ActiveConnections returns the number of live client connections.
func (s *TCPServer) ActiveConnections() int {
	return s.connectionMgr.Count()
}

// Stop stops the server: no new connections, all live connections closed,
// then wait for their workers until ctx expires.
func (s *TCPServer) Stop(ctx context.Context) error {
	close(s.stopCh)

	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.logger.Error("Failed to close listener", "error", err)
		}
	}

	s.connectionMgr.CloseAll()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.logger.Warn("Shutdown timed out waiting for connection workers", "error", ctx.Err())
	}

	return nil
}

// acceptConnections accepts incoming connections
func (s *TCPServer) acceptConnections() {
	for {
		select {
		case <-s.stopCh:
			return
		default:
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.stopCh:
					return
				default:
					s.logger.Error("Failed to accept connection", "error", err)
					time.Sleep(defs.AcceptRetryDelay) // Avoid tight loop on error
					continue
				}
			}

			// Block here at the connection cap instead of spawning
			// unboundedly
			select {
			case s.sem <- struct{}{}:
			case <-s.stopCh:
				_ = conn.Close()
				return
			}

			connID := uuid.NewString()
			s.connectionMgr.Add(connID, conn)
			s.wg.Add(1)
			telemetry.ConnectionsTotal.Inc()
			telemetry.ActiveConnections.Inc()
			s.logger.Info("Client connected",
				"connId", connID,
				"remote", conn.RemoteAddr().String(),
				"active", s.connectionMgr.Count())

			go s.handleConnection(connID, conn)
		}
	}
}

// handleConnection is the per-connection worker: read one frame, dispatch,
// write the reply, repeat until the client says goodbye or the stream dies.
func (s *TCPServer) handleConnection(connID string, conn net.Conn) {
	defer func() {
		_ = conn.Close()
		s.connectionMgr.Remove(connID)
		telemetry.ActiveConnections.Dec()
		<-s.sem
		s.wg.Done()
		s.logger.Info("Client disconnected", "connId", connID, "active", s.connectionMgr.Count())
	}()

	for {
		select {
		case <-s.stopCh:
			return
		default:
			payload, err := frame.ReadPayload(conn)
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				select {
				case <-s.stopCh:
					// forced close during shutdown, not a client fault
					return
				default:
				}
				telemetry.ProtocolViolations.Inc()
				s.logger.Error("Dropping connection on framing error", "connId", connID, "error", err)
				return
			}

			text := string(payload)
			if text == defs.DisconnectSentinel {
				s.logger.Debug("Client sent disconnect sentinel", "connId", connID)
				return
			}

			reply := s.dispatch(context.Background(), connID, text)
			if err := frame.WriteMessage(conn, []byte(reply)); err != nil {
				s.logger.Error("Failed to write reply", "connId", connID, "error", err)
				return
			}
		}
	}
}
