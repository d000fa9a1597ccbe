package tcp

import (
	"context"
	"strings"
	"time"

	"gitlab.com/rt2-ephem.net/internal/tcp/defs"
	"gitlab.com/rt2-ephem.net/internal/telemetry"
)

// dispatch routes one command payload to its handler and returns the reply
// payload. The first newline-separated field picks the handler; the rest are
// handed over untouched. Unknown kinds get a deterministic error reply and
// leave the connection open.
func (s *TCPServer) dispatch(ctx context.Context, connID string, payload string) string {
	fields := strings.Split(payload, "\n")
	kind := fields[0]

	handler, exists := s.handlers[kind]
	if !exists {
		s.logger.Error("Unknown command kind", "connId", connID, "kind", kind)
		telemetry.RequestsTotal.WithLabelValues("unknown", "malformed").Inc()
		return defs.ReplyUnknownRequest
	}

	start := time.Now()
	reply := handler.HandleCommand(ctx, connID, fields[1:])
	telemetry.RequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	return reply
}
