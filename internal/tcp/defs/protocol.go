package defs

import "time"

// Protocol constants
const (
	// HeaderSize is the fixed width of the length header: the payload byte
	// count rendered as ASCII decimal, right-padded to 64 bytes with spaces.
	HeaderSize = 64

	// MaxPayloadSize bounds what a single frame may carry. Commands and
	// replies are a few lines of text; a larger announced length is treated
	// as a protocol violation, not a legitimate frame.
	MaxPayloadSize = 1 << 20

	// DisconnectSentinel is the in-band goodbye. A client sends it as the
	// entire payload; the server closes the connection without replying.
	DisconnectSentinel = "!DISCONNECT"

	// Configuration constants
	AcceptRetryDelay = 1 * time.Second
)
