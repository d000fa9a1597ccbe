package domain

import (
	"fmt"
	"time"

	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

// TimeLayout is the wire format for all observation timestamps. Timestamps
// carry no zone and are interpreted as UTC.
const TimeLayout = "2006-01-02 15:04:05"

// MaxWindowSeconds bounds how many per-second samples one request may ask
// for. Grid allocates one entry per second, so an unbounded window would let
// a single well-formed command exhaust process memory. A week is far beyond
// any tracking session the dish can run.
const MaxWindowSeconds = 7 * 24 * 60 * 60

// TimeWindow is the half-open observation interval [Start, Stop).
type TimeWindow struct {
	Start time.Time
	Stop  time.Time
}

// ParseTimeWindow builds a window from two wire timestamps.
func ParseTimeWindow(start, stop string) (TimeWindow, error) {
	startAt, err := time.Parse(TimeLayout, start)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("invalid start time %q: %w", start, err)
	}
	stopAt, err := time.Parse(TimeLayout, stop)
	if err != nil {
		return TimeWindow{}, fmt.Errorf("invalid stop time %q: %w", stop, err)
	}
	return TimeWindow{Start: startAt, Stop: stopAt}, nil
}

// Validate reports whether the window has a positive duration no longer
// than MaxWindowSeconds.
func (w TimeWindow) Validate() error {
	if !w.Stop.After(w.Start) {
		return errs.ErrWindowNotPositive
	}
	if w.Stop.Sub(w.Start) > MaxWindowSeconds*time.Second {
		return errs.ErrWindowTooLong
	}
	return nil
}

// Duration returns Stop - Start.
func (w TimeWindow) Duration() time.Duration {
	return w.Stop.Sub(w.Start)
}

// SampleCount is the number of whole seconds in the window, which is also the
// number of pointing samples an output file covers.
func (w TimeWindow) SampleCount() int {
	return int(w.Duration() / time.Second)
}

// Grid returns one timestamp per second over [Start, Stop). Stop itself is
// never part of the grid.
func (w TimeWindow) Grid() []time.Time {
	n := w.SampleCount()
	if n <= 0 {
		return nil
	}
	grid := make([]time.Time, n)
	for i := range grid {
		grid[i] = w.Start.Add(time.Duration(i) * time.Second)
	}
	return grid
}
