package domain

import (
	"fmt"
	"time"
)

// HorizontalSample is one pointing sample: where the telescope aims at a
// given instant, in degrees.
type HorizontalSample struct {
	Time  time.Time
	AzDeg float64
	ElDeg float64
}

// SampleSeries is a time-ordered run of pointing samples.
type SampleSeries struct {
	Samples []HorizontalSample
}

// NewSeriesFromColumns zips parallel columns into a series. All three slices
// must have the same length.
func NewSeriesFromColumns(times []time.Time, az, el []float64) (*SampleSeries, error) {
	if len(times) != len(az) || len(times) != len(el) {
		return nil, fmt.Errorf("column lengths differ: %d times, %d az, %d el", len(times), len(az), len(el))
	}
	samples := make([]HorizontalSample, len(times))
	for i := range times {
		samples[i] = HorizontalSample{Time: times[i], AzDeg: az[i], ElDeg: el[i]}
	}
	return &SampleSeries{Samples: samples}, nil
}

func (s *SampleSeries) Len() int {
	return len(s.Samples)
}

// Times returns the time column.
func (s *SampleSeries) Times() []time.Time {
	out := make([]time.Time, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.Time
	}
	return out
}

// Azimuths returns the azimuth column in degrees.
func (s *SampleSeries) Azimuths() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.AzDeg
	}
	return out
}

// Elevations returns the elevation column in degrees.
func (s *SampleSeries) Elevations() []float64 {
	out := make([]float64, len(s.Samples))
	for i, smp := range s.Samples {
		out[i] = smp.ElDeg
	}
	return out
}
