// Package astrometry converts equatorial positions into horizontal
// coordinates with the algorithms from Meeus, Astronomical Algorithms.
package astrometry

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"

	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
)

var _ secondary.FrameTransformer = (*Transformer)(nil)

// Transformer is a FrameTransformer for a terrestrial observer. It uses
// apparent sidereal time; refraction and parallax are not modeled, which
// keeps pointing well inside the beam width of a small dish.
type Transformer struct{}

// NewTransformer creates a new transformer
func NewTransformer() *Transformer {
	return &Transformer{}
}

// ToHorizontal implements the FrameTransformer interface.
func (t *Transformer) ToHorizontal(_ context.Context, coords domain.SkyCoordinates, times []time.Time, observer domain.ObserverLocation) ([]float64, []float64, error) {
	if coords.DecDeg < -90 || coords.DecDeg > 90 {
		return nil, nil, fmt.Errorf("declination %v out of range [-90, 90]", coords.DecDeg)
	}

	ra := unit.RAFromDeg(coords.RADeg)
	dec := unit.AngleFromDeg(coords.DecDeg)
	lat := unit.AngleFromDeg(observer.LatitudeDeg)
	// the hour-angle convention wants longitude positive west
	lon := unit.AngleFromDeg(-observer.LongitudeDeg)

	az := make([]float64, len(times))
	el := make([]float64, len(times))
	for i, ts := range times {
		st := sidereal.Apparent(julian.TimeToJD(ts.UTC()))
		a, h := coord.EqToHz(ra, dec, lat, lon, st)
		az[i] = northAzimuth(a)
		el[i] = h.Deg()
	}
	return az, el, nil
}

// northAzimuth rebases an azimuth measured from south onto the usual
// north-through-east convention in [0, 360).
func northAzimuth(a unit.Angle) float64 {
	deg := math.Mod(a.Deg()+180, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
