// Package sink hands the processed table to the rendering collaborator and
// renders the summary report as human-readable text. Rendering proper
// (plots, dashboards) lives outside this repository; the CSV hand-off is the
// contract.
package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
)

// Writer streams the processed table as CSV to one writer and the report as
// text to another. Either writer may be nil to skip that output.
type Writer struct {
	table  io.Writer
	report io.Writer
}

// New creates a Writer sink.
func New(table, report io.Writer) *Writer {
	return &Writer{table: table, report: report}
}

// Write emits the table and the report. The city column is omitted entirely
// when the input never had one.
func (w *Writer) Write(_ context.Context, table domain.Table, report domain.Report) error {
	if w.table != nil {
		if err := writeTable(w.table, table); err != nil {
			return fmt.Errorf("write table: %w", err)
		}
	}
	if w.report != nil {
		if err := writeReport(w.report, report); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	return nil
}

func writeTable(out io.Writer, table domain.Table) error {
	cw := csv.NewWriter(out)

	header := []string{domain.ColumnDate, domain.ColumnTemperature, "rolling_avg", "anomaly", "condition"}
	if table.HasCity {
		header = append([]string{domain.ColumnCity}, header...)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range table.Rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			formatFloat(row.Temperature),
			formatRolling(row.RollingAvg),
			string(row.Anomaly),
			string(row.Condition),
		}
		if table.HasCity {
			record = append([]string{row.City}, record...)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeReport(out io.Writer, report domain.Report) error {
	if report.TotalRows == 0 {
		_, err := fmt.Fprintln(out, "--- Statistical Summary ---\nNo data available.")
		return err
	}

	fmt.Fprintln(out, "--- Statistical Summary ---")
	fmt.Fprintf(out, "Total data points: %d\n", report.TotalRows)

	if report.CityCount > 0 {
		fmt.Fprintf(out, "Cities covered: %d\n", report.CityCount)
		fmt.Fprintln(out, "Temperature by city (mean/min/max/count):")
		for _, agg := range report.Cities {
			fmt.Fprintf(out, "  %s: %.2f / %.2f / %.2f / %d\n", agg.City, agg.Mean, agg.Min, agg.Max, agg.Count)
		}
	}

	fmt.Fprintf(out, "Overall mean temperature: %.2f\n", report.Mean)
	fmt.Fprintf(out, "Overall min temperature: %.2f\n", report.Min)
	fmt.Fprintf(out, "Overall max temperature: %.2f\n", report.Max)
	_, err := fmt.Fprintf(out, "Quartiles (25/50/75): %.2f / %.2f / %.2f\n",
		report.Quartiles.Q1, report.Quartiles.Median, report.Quartiles.Q3)
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatRolling renders an absent rolling average as an empty cell.
func formatRolling(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
