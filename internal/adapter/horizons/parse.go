package horizons

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gitlab.com/rt2-ephem.net/internal/domain"
)

const (
	tableStart = "$$SOE"
	tableEnd   = "$$EOE"
)

// rowTimeLayouts are the datetime forms Horizons emits depending on the
// requested time precision.
var rowTimeLayouts = []string{
	"2006-Jan-02 15:04:05.000",
	"2006-Jan-02 15:04:05",
	"2006-Jan-02 15:04",
}

// parseEphemeris extracts the sample table between the $$SOE and $$EOE
// markers of a text-format response.
func parseEphemeris(body string) (*domain.SampleSeries, error) {
	start := strings.Index(body, tableStart)
	end := strings.Index(body, tableEnd)
	if start < 0 || end < 0 || end < start {
		return nil, errors.New("no ephemeris table in response")
	}

	var (
		times []time.Time
		az    []float64
		el    []float64
	)
	for _, line := range strings.Split(body[start+len(tableStart):end], "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sample, err := parseRow(line)
		if err != nil {
			return nil, fmt.Errorf("bad ephemeris row %q: %w", line, err)
		}
		times = append(times, sample.Time)
		az = append(az, sample.AzDeg)
		el = append(el, sample.ElDeg)
	}

	if len(times) < 2 {
		return nil, fmt.Errorf("ephemeris table has %d rows, need at least 2", len(times))
	}
	return domain.NewSeriesFromColumns(times, az, el)
}

// parseRow reads one CSV row. The first field is the datetime; the solar and
// lunar presence flags that follow are single letters or blank, so the first
// two numeric fields after the datetime are azimuth and elevation.
func parseRow(line string) (domain.HorizontalSample, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 3 {
		return domain.HorizontalSample{}, fmt.Errorf("row has %d fields", len(fields))
	}

	ts, err := parseRowTime(strings.TrimSpace(fields[0]))
	if err != nil {
		return domain.HorizontalSample{}, err
	}

	var coords []float64
	for _, f := range fields[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			continue
		}
		coords = append(coords, v)
		if len(coords) == 2 {
			break
		}
	}
	if len(coords) != 2 {
		return domain.HorizontalSample{}, errors.New("row has no azimuth/elevation pair")
	}

	return domain.HorizontalSample{Time: ts, AzDeg: coords[0], ElDeg: coords[1]}, nil
}

func parseRowTime(field string) (time.Time, error) {
	for _, layout := range rowTimeLayouts {
		if ts, err := time.Parse(layout, field); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", field)
}
