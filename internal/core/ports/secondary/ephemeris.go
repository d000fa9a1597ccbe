package secondary

import (
	"context"

	"gitlab.com/rt2-ephem.net/internal/domain"
)

// EphemerisProvider computes topocentric az/el for a moving solar-system
// body over a window, at the provider's own sampling step. maxSamples caps
// how many samples the provider is asked for; the returned series covers at
// least [window.Start, window.Stop].
//
// Implementations return errs.ErrUnknownIDType when the body is not known
// under object.Type, so callers can walk the classification ladder.
type EphemerisProvider interface {
	FetchSeries(ctx context.Context, object domain.ObjectID, window domain.TimeWindow, maxSamples int) (*domain.SampleSeries, error)
}
