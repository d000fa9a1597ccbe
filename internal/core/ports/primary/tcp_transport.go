package primary

import (
	"context"
)

// CommandHandler processes one parsed command and returns the reply payload
// to frame back to the client. Handlers never touch the connection; the
// accepting worker owns all socket writes. args are the command fields after
// the kind, and connID identifies the connection in logs.
type CommandHandler interface {
	HandleCommand(ctx context.Context, connID string, args []string) string
}
