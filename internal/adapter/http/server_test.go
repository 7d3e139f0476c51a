package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/weather-obs-pipeline/internal/adapter/http"
	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type mockReports struct {
	report domain.Report
	ok     bool
}

func (m *mockReports) LatestReport() (domain.Report, bool) { return m.report, m.ok }

func newTestServer(readyErr error, reports *mockReports) *httpadapter.Server {
	if reports == nil {
		reports = &mockReports{}
	}
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, reports, slog.Default())
}

func TestHealthzReturns200(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := newTestServer(fmt.Errorf("not ready yet"), nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "not ready yet", body["error"])
}

func TestReportReturns404BeforeFirstRun(t *testing.T) {
	srv := newTestServer(nil, &mockReports{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReportReturnsLatestSummary(t *testing.T) {
	reports := &mockReports{
		report: domain.Report{
			TotalRows: 3,
			CityCount: 1,
			Cities:    []domain.CityAggregate{{City: "Ankara", Mean: 1.5, Min: 0, Max: 3, Count: 3}},
			Mean:      1.5,
			Min:       0,
			Max:       3,
		},
		ok: true,
	}
	srv := newTestServer(nil, reports)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body domain.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.TotalRows)
	require.Len(t, body.Cities, 1)
	assert.Equal(t, "Ankara", body.Cities[0].City)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(nil, nil)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)

	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
