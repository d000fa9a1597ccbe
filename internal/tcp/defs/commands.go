package defs

// Command kinds. The first newline-separated field of a request payload
// selects the handler.
const (
	CmdResolveRequest = "resolve_request"
	CmdPushingRADec   = "pushing_ra_dec"
)

// Exact field counts for a command payload, kind included. Anything else is
// malformed.
const (
	ResolveFieldCount = 5
	PushFieldCount    = 6
)

// FlagSolarSystem marks a resolve request for a moving solar-system body.
// Any other value means a fixed catalog object.
const FlagSolarSystem = "True"

// Reply head lines. Multi-line replies carry their payload on the lines
// after the head.
const (
	ReplyFileGenerated  = "output file generated"
	ReplyFileFailed     = "file generation failed"
	ReplyCoordsSolved   = "coordinates solved"
	ReplyNameNotFound   = "name not resolved"
	ReplyMalformed      = "malformed request"
	ReplyUnknownRequest = "unknown request"
)
