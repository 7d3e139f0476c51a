package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
	"github.com/couchcryptid/weather-obs-pipeline/internal/observability"
)

// Source is the upstream data-acquisition collaborator. It yields a raw
// table with city/date/temperature columns; a zero-row table is a valid
// "no data available" answer.
type Source interface {
	Fetch(ctx context.Context) (domain.RawTable, error)
}

// Sink is the downstream rendering collaborator. It receives the fully
// processed table and the summary report and must tolerate an absent city
// column.
type Sink interface {
	Write(ctx context.Context, table domain.Table, report domain.Report) error
}

// Pipeline runs the batch transform: fetch, clean, summarize, detect
// anomalies, classify, hand off. Stages run strictly sequentially over the
// full table; no state survives between runs.
type Pipeline struct {
	source  Source
	sink    Sink
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool

	window int
	sigma  float64

	mu         sync.RWMutex
	lastReport domain.Report
	hasReport  bool
}

// New creates a Pipeline with the given boundaries and observability.
// window and sigma fall back to the source-faithful defaults when zero.
func New(src Source, sink Sink, logger *slog.Logger, metrics *observability.Metrics, window int, sigma float64) *Pipeline {
	if window <= 0 {
		window = domain.DefaultRollingWindow
	}
	if sigma <= 0 {
		sigma = domain.DefaultAnomalySigma
	}
	return &Pipeline{
		source:  src,
		sink:    sink,
		logger:  logger,
		metrics: metrics,
		window:  window,
		sigma:   sigma,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// run, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not completed a run yet")
	}
	return nil
}

// LatestReport returns the report from the most recent completed run.
func (p *Pipeline) LatestReport() (domain.Report, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastReport, p.hasReport
}

// Run executes one full batch pass and returns the processed table and its
// report. Schema violations abort the run; data-quality problems are
// recovered row by row and surfaced as diagnostics.
func (p *Pipeline) Run(ctx context.Context) (domain.Table, domain.Report, error) {
	start := time.Now()
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	raw, err := p.source.Fetch(ctx)
	if err != nil {
		return domain.Table{}, domain.Report{}, fmt.Errorf("fetch observations: %w", err)
	}
	p.metrics.RowsFetched.Add(float64(len(raw.Rows)))
	p.logger.Info("observations fetched", "rows", len(raw.Rows), "columns", raw.Columns)

	table, report, err := p.process(raw)
	if err != nil {
		return domain.Table{}, domain.Report{}, err
	}

	if err := p.sink.Write(ctx, table, report); err != nil {
		return domain.Table{}, domain.Report{}, fmt.Errorf("write processed table: %w", err)
	}

	p.metrics.RowsProcessed.Add(float64(len(table.Rows)))
	p.metrics.RunDuration.Observe(time.Since(start).Seconds())

	p.mu.Lock()
	p.lastReport = report
	p.hasReport = true
	p.mu.Unlock()
	p.ready.Store(true)
	p.logger.Info("run complete", "rows", len(table.Rows), "duration", time.Since(start))

	return table, report, nil
}

// process applies the four stages in order. It is context-free: every stage
// is a pure in-memory transform with no suspension points.
func (p *Pipeline) process(raw domain.RawTable) (domain.Table, domain.Report, error) {
	table, _, err := p.clean(raw)
	if err != nil {
		return domain.Table{}, domain.Report{}, err
	}

	report := p.summarize(table)
	table = p.detect(table)
	table = p.classify(table)
	return table, report, nil
}

func (p *Pipeline) clean(raw domain.RawTable) (domain.Table, domain.CleanStats, error) {
	defer p.observeStage("clean")()

	table, stats, err := domain.Clean(raw)
	if err != nil {
		if domain.IsSchemaError(err) {
			p.metrics.SchemaViolations.Inc()
		}
		return domain.Table{}, domain.CleanStats{}, fmt.Errorf("clean: %w", err)
	}

	if stats.InputRows == 0 {
		p.logger.Warn("no data to clean")
		return table, stats, nil
	}
	if stats.DroppedRows > 0 {
		p.logger.Warn("invalid rows removed", "dropped", stats.DroppedRows, "kept", len(table.Rows))
		p.metrics.RowsDropped.Add(float64(stats.DroppedRows))
	}
	return table, stats, nil
}

func (p *Pipeline) summarize(table domain.Table) domain.Report {
	defer p.observeStage("summarize")()

	report := domain.Summarize(table)
	p.logger.Info("statistical summary",
		"rows", report.TotalRows,
		"cities", report.CityCount,
		"mean", report.Mean,
		"min", report.Min,
		"max", report.Max,
	)
	return report
}

func (p *Pipeline) detect(table domain.Table) domain.Table {
	defer p.observeStage("detect")()

	out, stats := domain.DetectAnomalies(table, p.window, p.sigma)
	p.logger.Info("anomalies detected", "count", stats.Anomalies, "mean", stats.Mean, "std", stats.StdDev)
	p.metrics.AnomaliesDetected.Add(float64(stats.Anomalies))
	return out
}

func (p *Pipeline) classify(table domain.Table) domain.Table {
	defer p.observeStage("classify")()
	return domain.Classify(table)
}

// observeStage times a stage; call the returned func when the stage ends.
func (p *Pipeline) observeStage(stage string) func() {
	start := time.Now()
	return func() {
		p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
