package errs

import "errors"

var (
	// ErrWindowNotPositive rejects observation windows whose stop does not
	// come after their start.
	ErrWindowNotPositive = errors.New("time window duration must be positive")

	// ErrWindowTooLong rejects observation windows longer than the grid
	// allocation bound. Without it one command could ask for a grid large
	// enough to take the whole process down.
	ErrWindowTooLong = errors.New("time window exceeds maximum duration")

	// ErrNameNotResolved means no catalog knows the requested object name.
	// Distinct from provider failures: the lookup worked and found nothing.
	ErrNameNotResolved = errors.New("object name not resolved")

	// ErrUnknownIDType means the ephemeris service rejected the object under
	// the id classification it was queried with. The next classification on
	// the ladder may still match.
	ErrUnknownIDType = errors.New("object not known under id type")

	// ErrSpanExceeded means the requested sample grid reaches outside the
	// time span the ephemeris provider returned data for.
	ErrSpanExceeded = errors.New("sample grid outside provider time span")
)
