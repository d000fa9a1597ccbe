// Package interp resamples sparse ephemeris columns onto dense time grids
// with piecewise-linear interpolation.
package interp

import (
	"context"
	"fmt"
	"time"

	gonuminterp "gonum.org/v1/gonum/interp"

	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

var _ secondary.Interpolator = (*LinearResampler)(nil)

// LinearResampler implements the Interpolator port with gonum's
// PiecewiseLinear predictor. Instants are mapped onto seconds relative to
// the first sparse sample, which keeps the abscissae small and exact.
type LinearResampler struct{}

// NewLinearResampler creates a new resampler
func NewLinearResampler() *LinearResampler {
	return &LinearResampler{}
}

// Resample implements the Interpolator interface. Dense instants outside
// the sparse span fail with errs.ErrSpanExceeded rather than extrapolating.
func (r *LinearResampler) Resample(_ context.Context, sparseTimes []time.Time, values []float64, denseTimes []time.Time) ([]float64, error) {
	if len(sparseTimes) != len(values) {
		return nil, fmt.Errorf("sparse columns differ: %d times, %d values", len(sparseTimes), len(values))
	}
	if len(sparseTimes) < 2 {
		return nil, fmt.Errorf("need at least 2 sparse samples, got %d", len(sparseTimes))
	}

	origin := sparseTimes[0]
	xs := make([]float64, len(sparseTimes))
	for i, ts := range sparseTimes {
		xs[i] = ts.Sub(origin).Seconds()
		// Fit panics on unsorted abscissae, so order is checked here
		if i > 0 && xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("sparse times not strictly increasing at index %d", i)
		}
	}

	var pl gonuminterp.PiecewiseLinear
	if err := pl.Fit(xs, values); err != nil {
		return nil, fmt.Errorf("failed to fit sparse series: %w", err)
	}

	lo, hi := xs[0], xs[len(xs)-1]
	out := make([]float64, len(denseTimes))
	for i, ts := range denseTimes {
		x := ts.Sub(origin).Seconds()
		if x < lo || x > hi {
			return nil, fmt.Errorf("%w: %s outside [%s, %s]",
				errs.ErrSpanExceeded,
				ts.Format(domain.TimeLayout),
				sparseTimes[0].Format(domain.TimeLayout),
				sparseTimes[len(sparseTimes)-1].Format(domain.TimeLayout))
		}
		out[i] = pl.Predict(x)
	}
	return out, nil
}
