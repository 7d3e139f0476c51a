// Command validate checks a processed observation CSV against its raw input.
// It re-runs the pipeline stages on the raw file and verifies that the
// processed file matches: schema, cleaning and ordering, rolling averages,
// anomaly labels, and condition buckets.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -input data/sample/observations.csv \
//	  -processed out/processed.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
	"github.com/couchcryptid/weather-obs-pipeline/internal/source"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	input := flag.String("input", "", "path to the raw input CSV")
	processed := flag.String("processed", "", "path to the processed output CSV")
	window := flag.Int("window", domain.DefaultRollingWindow, "rolling window used for the processed file")
	sigma := flag.Float64("sigma", domain.DefaultAnomalySigma, "anomaly band width used for the processed file")
	flag.Parse()

	if *input == "" || *processed == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*input, *processed, *window, *sigma); code != 0 {
		os.Exit(code)
	}
}

func run(inputPath, processedPath string, window int, sigma float64) int {
	fmt.Println("=== Observation Data Integrity Validation ===")
	fmt.Println()

	expected, err := recompute(inputPath, window, sigma)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: recompute from input: %v\n", err)
		return 1
	}

	header, rows, err := loadProcessed(processedPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load processed CSV: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateSchema(header, expected.HasCity),
		validateOrdering(rows),
		validateDerivedColumns(expected, rows),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d expected, %d processed\n", len(expected.Rows), len(rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// recompute runs the pipeline stages over the raw input file.
func recompute(inputPath string, window int, sigma float64) (domain.Table, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	raw, err := source.NewFile(inputPath, logger).Fetch(context.Background())
	if err != nil {
		return domain.Table{}, err
	}

	table, _, err := domain.Clean(raw)
	if err != nil {
		return domain.Table{}, err
	}
	table, _ = domain.DetectAnomalies(table, window, sigma)
	return domain.Classify(table), nil
}

// processedRow is a parsed row of the processed CSV, keyed by header name.
type processedRow struct {
	lineNum int
	fields  map[string]string
}

func loadProcessed(path string) ([]string, []processedRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	all, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("missing header row in %s", path)
	}

	header := all[0]
	rows := make([]processedRow, 0, len(all)-1)
	for i, record := range all[1:] {
		fields := make(map[string]string, len(header))
		for j, h := range header {
			if j < len(record) {
				fields[h] = strings.TrimSpace(record[j])
			}
		}
		rows = append(rows, processedRow{lineNum: i + 2, fields: fields})
	}
	return header, rows, nil
}

// ── Phase 1: Schema ──
// The processed file must carry every derived column, and the city column
// exactly when the input had one.

func validateSchema(header []string, wantCity bool) *phase {
	p := &phase{name: "Phase 1: Schema (processed columns)"}

	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[h] = true
	}

	for _, col := range []string{domain.ColumnDate, domain.ColumnTemperature, "rolling_avg", "anomaly", "condition"} {
		if !present[col] {
			p.errorf("missing column %q", col)
		}
	}
	if wantCity && !present[domain.ColumnCity] {
		p.errorf("input has a city column but processed file does not")
	}
	if !wantCity && present[domain.ColumnCity] {
		p.errorf("processed file has a city column but input does not")
	}
	return p
}

// ── Phase 2: Ordering ──
// Rows must come out sorted by date, ties preserved in input order.

func validateOrdering(rows []processedRow) *phase {
	p := &phase{name: "Phase 2: Ordering (date monotonicity)"}

	prev := ""
	for _, row := range rows {
		date := row.fields[domain.ColumnDate]
		if date < prev {
			p.errorf("line %d: date %q precedes previous date %q", row.lineNum, date, prev)
		}
		prev = date
	}
	return p
}

// ── Phase 3: Derived columns ──
// Re-runs the stages and compares every processed row against the expected
// rolling average, anomaly label, and condition bucket.

func validateDerivedColumns(expected domain.Table, rows []processedRow) *phase {
	p := &phase{name: "Phase 3: Derived columns (stage parity)"}

	if len(rows) != len(expected.Rows) {
		p.errorf("row count: expected %d after cleaning, got %d", len(expected.Rows), len(rows))
		return p
	}

	for i, row := range rows {
		want := expected.Rows[i]

		if got := row.fields[domain.ColumnDate]; got != want.Date.Format("2006-01-02") {
			p.errorf("line %d: date: expected %q, got %q", row.lineNum, want.Date.Format("2006-01-02"), got)
		}
		if expected.HasCity {
			if got := row.fields[domain.ColumnCity]; got != want.City {
				p.errorf("line %d: city: expected %q, got %q", row.lineNum, want.City, got)
			}
		}

		checkTemperature(p, row, want)
		checkRollingAvg(p, row, want)

		if got := row.fields["anomaly"]; got != string(want.Anomaly) {
			p.errorf("line %d: anomaly: expected %q, got %q", row.lineNum, want.Anomaly, got)
		}
		if got := row.fields["condition"]; got != string(want.Condition) {
			p.errorf("line %d: condition: expected %q, got %q", row.lineNum, want.Condition, got)
		}
	}
	return p
}

func checkTemperature(p *phase, row processedRow, want domain.Observation) {
	got, err := strconv.ParseFloat(row.fields[domain.ColumnTemperature], 64)
	if err != nil {
		p.errorf("line %d: temperature %q is not numeric", row.lineNum, row.fields[domain.ColumnTemperature])
		return
	}
	if !floatEq(got, want.Temperature) {
		p.errorf("line %d: temperature: expected %g, got %g", row.lineNum, want.Temperature, got)
	}
}

func checkRollingAvg(p *phase, row processedRow, want domain.Observation) {
	raw := row.fields["rolling_avg"]
	if want.RollingAvg == nil {
		if raw != "" {
			p.errorf("line %d: rolling_avg: expected empty, got %q", row.lineNum, raw)
		}
		return
	}
	got, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.errorf("line %d: rolling_avg %q is not numeric", row.lineNum, raw)
		return
	}
	// Output is rendered at two decimals, so compare at that precision.
	if math.Abs(got-*want.RollingAvg) > 0.005 {
		p.errorf("line %d: rolling_avg: expected %.2f, got %g", row.lineNum, *want.RollingAvg, got)
	}
}

func floatEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
