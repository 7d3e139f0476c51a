package pipeline_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
	"github.com/couchcryptid/weather-obs-pipeline/internal/observability"
	"github.com/couchcryptid/weather-obs-pipeline/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockSource struct {
	table domain.RawTable
	err   error
}

func (m *mockSource) Fetch(_ context.Context) (domain.RawTable, error) {
	return m.table, m.err
}

type mockSink struct {
	table  domain.Table
	report domain.Report
	calls  int
	err    error
}

func (m *mockSink) Write(_ context.Context, table domain.Table, report domain.Report) error {
	if m.err != nil {
		return m.err
	}
	m.calls++
	m.table = table
	m.report = report
	return nil
}

func newTestMetrics() *observability.Metrics {
	// Use a fresh registry to avoid "already registered" panics in tests.
	return observability.NewMetricsForTesting()
}

func rawTable(rows ...domain.RawObservation) domain.RawTable {
	return domain.RawTable{
		Columns: []string{domain.ColumnCity, domain.ColumnDate, domain.ColumnTemperature},
		Rows:    rows,
	}
}

// --- tests ---

func TestPipeline_Run_HappyPath(t *testing.T) {
	src := &mockSource{table: rawTable(
		domain.RawObservation{City: "Ankara", Date: "2024-01-03", Temperature: "-4"},
		domain.RawObservation{City: "Ankara", Date: "2024-01-01", Temperature: "2"},
		domain.RawObservation{City: "Ankara", Date: "2024-01-02", Temperature: "junk"},
		domain.RawObservation{City: "İzmir", Date: "2024-01-02", Temperature: "12.5"},
	)}
	sink := &mockSink{}
	metrics := newTestMetrics()

	p := pipeline.New(src, sink, slog.Default(), metrics, 0, 0)

	table, report, err := p.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, 3, report.TotalRows)
	assert.Equal(t, 2, report.CityCount)

	// Sorted by date, every row classified, rolling filled from row 3 on.
	assert.Equal(t, "Ankara", table.Rows[0].City)
	assert.Equal(t, 2.0, table.Rows[0].Temperature)
	assert.Equal(t, domain.ConditionCold, table.Rows[0].Condition)
	assert.Equal(t, domain.ConditionVeryCold, table.Rows[2].Condition)
	assert.Nil(t, table.Rows[0].RollingAvg)
	require.NotNil(t, table.Rows[2].RollingAvg)
	assert.InDelta(t, 3.5, *table.Rows[2].RollingAvg, 1e-12)

	assert.NoError(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.RowsFetched))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.RowsDropped))
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.RowsProcessed))
}

func TestPipeline_Run_EmptyTable(t *testing.T) {
	src := &mockSource{table: rawTable()}
	sink := &mockSink{}

	p := pipeline.New(src, sink, slog.Default(), newTestMetrics(), 3, 2)

	table, report, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
	assert.Zero(t, report.TotalRows)
	assert.Equal(t, 1, sink.calls)
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_SchemaViolationAborts(t *testing.T) {
	src := &mockSource{table: domain.RawTable{Columns: []string{domain.ColumnCity, domain.ColumnDate}}}
	sink := &mockSink{}
	metrics := newTestMetrics()

	p := pipeline.New(src, sink, slog.Default(), metrics, 3, 2)

	_, _, err := p.Run(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsSchemaError(err))
	assert.Zero(t, sink.calls)
	assert.Error(t, p.CheckReadiness(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.SchemaViolations))
}

func TestPipeline_Run_SourceError(t *testing.T) {
	src := &mockSource{err: errors.New("producer unavailable")}
	sink := &mockSink{}

	p := pipeline.New(src, sink, slog.Default(), newTestMetrics(), 3, 2)

	_, _, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch observations")
	assert.Zero(t, sink.calls)
}

func TestPipeline_Run_SinkError(t *testing.T) {
	src := &mockSource{table: rawTable(
		domain.RawObservation{City: "Ankara", Date: "2024-01-01", Temperature: "1"},
	)}
	sink := &mockSink{err: errors.New("disk full")}

	p := pipeline.New(src, sink, slog.Default(), newTestMetrics(), 3, 2)

	_, _, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write processed table")
	assert.Error(t, p.CheckReadiness(context.Background()))
}

func TestPipeline_Run_AnomalyCounting(t *testing.T) {
	rows := make([]domain.RawObservation, 0, 10)
	for i := 0; i < 9; i++ {
		rows = append(rows, domain.RawObservation{
			City: "Sivas", Date: "2024-01-01", Temperature: "1",
		})
	}
	rows = append(rows, domain.RawObservation{City: "Sivas", Date: "2024-01-02", Temperature: "1000"})

	src := &mockSource{table: rawTable(rows...)}
	sink := &mockSink{}
	metrics := newTestMetrics()

	p := pipeline.New(src, sink, slog.Default(), metrics, 3, 2)

	table, _, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.AnomalyHigh, table.Rows[len(table.Rows)-1].Anomaly)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AnomaliesDetected))
}
