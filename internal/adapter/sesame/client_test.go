package sesame

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/rt2-ephem.net/internal/config"
	"gitlab.com/rt2-ephem.net/internal/global/logger"
	"gitlab.com/rt2-ephem.net/internal/static/errs"
)

const resolvedBody = `# M1	#Q22737939
#=Simbad:1: M1
%@ 3133169
%I.0 M   1
%C.0 SNR
%J 83.6287 22.0147 = 05:34:30.90 +22:00:52.9
%J.E [1250.00 1250.00 0] D 2011A&A...533A..10L
%I NAME Crab Nebula
`

const emptyBody = `# notathing	#Q22737940
#!Simbad: Nothing found
#!NED: Nothing found
#!VizieR: Nothing found
`

func newTestClient(baseURL string) *Client {
	cfg := &config.SesameConfig{BaseURL: baseURL, TimeoutSec: 5}
	return NewClient(cfg, logger.Logger)
}

func TestResolveNameParsesPositionLine(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		_, _ = w.Write([]byte(resolvedBody))
	}))
	defer ts.Close()

	coords, err := newTestClient(ts.URL).ResolveName(context.Background(), "M1")
	require.NoError(t, err)
	assert.InDelta(t, 83.6287, coords.RADeg, 1e-9)
	assert.InDelta(t, 22.0147, coords.DecDeg, 1e-9)
	assert.Equal(t, "/-op/SNV?M1", gotPath)
}

func TestResolveNameEscapesQuery(t *testing.T) {
	var gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(resolvedBody))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).ResolveName(context.Background(), "Crab Nebula")
	require.NoError(t, err)
	assert.Equal(t, "Crab+Nebula", gotQuery)
}

func TestResolveNameNothingFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(emptyBody))
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).ResolveName(context.Background(), "notathing")
	assert.ErrorIs(t, err, errs.ErrNameNotResolved)
}

func TestResolveNameServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newTestClient(ts.URL).ResolveName(context.Background(), "M1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errs.ErrNameNotResolved)
}

func TestParsePositionSkipsUnparsableLines(t *testing.T) {
	body := "%J garbled line\n%J 10.5 -20.25 = something\n"
	coords, err := parsePosition(body)
	require.NoError(t, err)
	assert.Equal(t, 10.5, coords.RADeg)
	assert.Equal(t, -20.25, coords.DecDeg)
}
