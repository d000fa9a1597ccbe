// Package sesame resolves object names through the CDS Sesame service,
// which fans out to Simbad, NED and VizieR.
package sesame

import (
	"context"
	"errors"
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

var _ secondary.CatalogResolver = (*Client)(nil)

// Client is a CatalogResolver backed by the remote Sesame endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a new sesame client
func NewClient(cfg *config.SesameConfig, logger primary.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		logger:     logger,
	}
}

// ResolveName implements the CatalogResolver interface. The plain-text
// Sesame output carries one "%J <ra> <dec>" position line per resolved
// object; a reply without one means the name is unknown everywhere.
func (c *Client) ResolveName(ctx context.Context, name string) (*domain.SkyCoordinates, error) {
	// -op selects plain-text output, SNV the catalog order
	endpoint := fmt.Sprintf("%s/-op/SNV?%s", c.baseURL, url.QueryEscape(name))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sesame request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query sesame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sesame returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read sesame response: %w", err)
	}

	coords, err := parsePosition(string(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errs.ErrNameNotResolved, name)
	}

	c.logger.Debug("Resolved name via sesame", "name", name, "ra", coords.RADeg, "dec", coords.DecDeg)
	return coords, nil
}

// parsePosition scans the reply for the first decimal position line.
func parsePosition(body string) (*domain.SkyCoordinates, error) {
	for _, line := range strings.Split(body, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 || fields[0] != "%J" {
			continue
		}
		ra, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			continue
		}
		dec, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		return &domain.SkyCoordinates{RADeg: ra, DecDeg: dec}, nil
	}
	return nil, errors.New("no position line in response")
}
