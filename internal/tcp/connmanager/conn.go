package connmanager

import (
	"net"
	"sync"

	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
)

// ConnectionManager tracks live client connections by id. Only the worker
// that accepted a connection ever writes to it; the manager exists for
// counting and for forced shutdown.
type ConnectionManager struct {
	Connections map[string]net.Conn
	ConnMutex   sync.RWMutex
	Logger      primary.Logger
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager(logger primary.Logger) *ConnectionManager {
	return &ConnectionManager{
		Connections: make(map[string]net.Conn),
		Logger:      logger,
	}
}

// Add registers a connection under its id
func (cm *ConnectionManager) Add(connID string, conn net.Conn) {
	cm.ConnMutex.Lock()
	cm.Connections[connID] = conn
	cm.ConnMutex.Unlock()
}

// Remove forgets a connection once its worker exits
func (cm *ConnectionManager) Remove(connID string) {
	cm.ConnMutex.Lock()
	delete(cm.Connections, connID)
	cm.ConnMutex.Unlock()
}

// Count returns the number of live connections
func (cm *ConnectionManager) Count() int {
	cm.ConnMutex.RLock()
	defer cm.ConnMutex.RUnlock()

	return len(cm.Connections)
}

// CloseAll force-closes every live connection. Each worker exits on its next
// read.
func (cm *ConnectionManager) CloseAll() {
	cm.ConnMutex.Lock()
	defer cm.ConnMutex.Unlock()

	for connID, conn := range cm.Connections {
		if err := conn.Close(); err != nil {
			cm.Logger.Warn("Failed to close connection", "connId", connID, "error", err)
		}
	}
}
