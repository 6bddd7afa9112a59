package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

type stubFeed struct {
	healthy bool
}

func (f stubFeed) Healthy() bool { return f.healthy }

func TestHandleHealth(t *testing.T) {
	s := NewServer(Config{ServiceName: "fairlined", Version: "1.2.3"})

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "fairlined", resp.Service)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestHandleReadyNotReady(t *testing.T) {
	s := NewServer(Config{ServiceName: "fairlined"})

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadyAllChecksPass(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "fairlined",
		DB:          stubPinger{},
		Feed:        stubFeed{healthy: true},
		MaxPassAge:  time.Minute,
	})
	s.SetReady(true)
	s.RecordPass(time.Now())

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Checks["database"])
	assert.Equal(t, "ok", resp.Checks["feed"])
	assert.Equal(t, "ok", resp.Checks["last_pass"])
}

func TestHandleReadyDatabaseDown(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "fairlined",
		DB:          stubPinger{err: errors.New("connection refused")},
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReadyStalePass(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "fairlined",
		MaxPassAge:  time.Minute,
	})
	s.SetReady(true)
	s.RecordPass(time.Now().Add(-10 * time.Minute))

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp ReadyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Checks["last_pass"], "stale")
}

func TestHandleReadyFeedUnreachable(t *testing.T) {
	s := NewServer(Config{
		ServiceName: "fairlined",
		Feed:        stubFeed{healthy: false},
	})
	s.SetReady(true)

	rec := httptest.NewRecorder()
	s.handleReady(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
