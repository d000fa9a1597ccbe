package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCounter struct{ n int }

func (f fakeCounter) ActiveConnections() int { return f.n }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}

func statusRouter(counter ConnectionCounter) *mux.Router {
	r := mux.NewRouter()
	NewStatusHandler("rt2ephem", counter, noopLogger{}).RegisterRoutes(r)
	return r
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	statusRouter(fakeCounter{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestStatusReportsConnections(t *testing.T) {
	rec := httptest.NewRecorder()
	statusRouter(fakeCounter{n: 3}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body StatusResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "rt2ephem", body.Service)
	assert.Equal(t, 3, body.ActiveConnections)
	assert.GreaterOrEqual(t, body.UptimeSeconds, 0.0)

	_, err := time.Parse(time.RFC3339, body.StartedAt)
	assert.NoError(t, err)
}

func TestStatusRejectsPost(t *testing.T) {
	rec := httptest.NewRecorder()
	statusRouter(fakeCounter{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/status", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
