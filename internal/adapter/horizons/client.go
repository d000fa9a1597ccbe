// Package horizons fetches topocentric azimuth/elevation ephemerides from
// the JPL Horizons API.
package horizons

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gitlab.com/rt2-ephem.net/internal/config"
	"gitlab.com/rt2-ephem.net/internal/core/ports/primary"
	"gitlab.com/rt2-ephem.net/internal/core/ports/secondary"
	"gitlab.com/rt2-ephem.net/internal/domain"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

var _ secondary.EphemerisProvider = (*Client)(nil)

// Client is an EphemerisProvider backed by the Horizons web API.
type Client struct {
	baseURL    string
	siteCode   string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new horizons client
func NewClient(cfg *config.HorizonsConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		siteCode:   cfg.SiteCode,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		logger:     logger,
	}
}

// planetIDs maps common major-body names onto Horizons record numbers,
// where a bare name would be ambiguous between a planet and its barycenter.
var planetIDs = map[string]string{
	"mercury": "199",
	"venus":   "299",
	"moon":    "301",
	"mars":    "499",
	"jupiter": "599",
	"saturn":  "699",
	"uranus":  "799",
	"neptune": "899",
}

// commandFor renders the COMMAND lookup string for one id classification.
func commandFor(object domain.ObjectID) string {
	name := strings.TrimSpace(object.Name)
	switch object.Type {
	case domain.IDTypeMajorBody:
		if id, ok := planetIDs[strings.ToLower(name)]; ok {
			return id
		}
		return name
	case domain.IDTypeSmallBody:
		return name + ";"
	case domain.IDTypeDesignation:
		return "DES=" + name + ";"
	case domain.IDTypeName:
		return "NAME=" + name + ";"
	case domain.IDTypeAsteroidName:
		return "ASTNAM=" + name + ";"
	case domain.IDTypeCometName:
		return "COMNAM=" + name + ";"
	}
	return name
}

// unknownObjectMarkers are the phrases Horizons answers with when a COMMAND
// lookup matches nothing under the chosen classification.
var unknownObjectMarkers = []string{
	"No matches found",
	"Cannot interpret",
	"No such object record",
	"Object not found",
}

// FetchSeries implements the EphemerisProvider interface. The window is
// split into maxSamples equal steps, so the response carries maxSamples+1
// rows covering [start, stop] inclusive.
func (c *Client) FetchSeries(ctx context.Context, object domain.ObjectID, window domain.TimeWindow, maxSamples int) (*domain.SampleSeries, error) {
	if maxSamples < 1 {
		maxSamples = 1
	}

	params := url.Values{}
	params.Set("format", "text")
	params.Set("COMMAND", quote(commandFor(object)))
	params.Set("OBJ_DATA", quote("NO"))
	params.Set("MAKE_EPHEM", quote("YES"))
	params.Set("EPHEM_TYPE", quote("OBSERVER"))
	params.Set("CENTER", quote(c.siteCode+"@399"))
	params.Set("QUANTITIES", quote("4"))
	params.Set("START_TIME", quote(window.Start.Format(domain.TimeLayout)))
	params.Set("STOP_TIME", quote(window.Stop.Format(domain.TimeLayout)))
	params.Set("STEP_SIZE", quote(strconv.Itoa(maxSamples)))
	params.Set("TIME_DIGITS", quote("SECONDS"))
	params.Set("CSV_FORMAT", quote("YES"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build horizons request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query horizons: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("horizons returned status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read horizons response: %w", err)
	}
	body := string(raw)

	for _, marker := range unknownObjectMarkers {
		if strings.Contains(body, marker) {
			return nil, fmt.Errorf("%w: %q as %s", errs.ErrUnknownIDType, object.Name, object.Type)
		}
	}

	series, err := parseEphemeris(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse horizons response for %q: %w", object.Name, err)
	}

	c.logger.Debug("Fetched ephemeris", "object", object.Name, "id_type", object.Type, "samples", series.Len())
	return series, nil
}

// quote wraps a parameter value in the single quotes the API expects.
func quote(v string) string {
	return "'" + v + "'"
}
