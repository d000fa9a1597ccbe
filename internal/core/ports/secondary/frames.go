package secondary

import (
	"context"
	"time"

	"gitlab.com/rt2-ephem.net/internal/domain"
)

// FrameTransformer converts a fixed equatorial position into horizontal
// az/el, in degrees, as seen from observer at each of the given instants.
// Azimuth is measured from north through east, in [0, 360).
type FrameTransformer interface {
	ToHorizontal(ctx context.Context, coords domain.SkyCoordinates, times []time.Time, observer domain.ObserverLocation) (az, el []float64, err error)
}
