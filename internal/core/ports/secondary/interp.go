package secondary

import (
	"context"
	"time"
)

// Interpolator resamples a sparse value column onto a dense time grid.
// Every dense instant must lie inside the sparse span; implementations
// return errs.ErrSpanExceeded otherwise rather than extrapolate.
type Interpolator interface {
	Resample(ctx context.Context, sparseTimes []time.Time, values []float64, denseTimes []time.Time) ([]float64, error)
}
