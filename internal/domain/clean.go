package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the accepted date spellings, tried in order. The producer
// contract is ISO-like YYYY-MM-DD; the rest cover common upstream drift.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
}

// CleanStats carries the Cleaner diagnostics surfaced to the caller.
type CleanStats struct {
	InputRows   int
	DroppedRows int
}

// Clean coerces the raw table into a typed one: temperature becomes a finite
// float64, date becomes a calendar date, rows failing either coercion are
// dropped, and the survivors are stable-sorted ascending by date.
//
// A zero-row input is returned unchanged with zero stats; the caller reports
// the "no data" condition. A missing date or temperature column is a
// contract violation and returns a SchemaError before any row is touched.
func Clean(raw RawTable) (Table, CleanStats, error) {
	if err := checkSchema(raw); err != nil {
		return Table{}, CleanStats{}, err
	}

	table := Table{HasCity: raw.HasColumn(ColumnCity)}
	stats := CleanStats{InputRows: len(raw.Rows)}
	if len(raw.Rows) == 0 {
		return table, stats, nil
	}

	table.Rows = make([]Observation, 0, len(raw.Rows))
	for _, row := range raw.Rows {
		temp, tempOK := parseTemperature(row.Temperature)
		date, dateOK := parseDate(row.Date)
		if !tempOK || !dateOK {
			stats.DroppedRows++
			continue
		}
		table.Rows = append(table.Rows, Observation{
			City:        strings.TrimSpace(row.City),
			Date:        date,
			Temperature: temp,
		})
	}

	slices.SortStableFunc(table.Rows, func(a, b Observation) int {
		return a.Date.Compare(b.Date)
	})

	return table, stats, nil
}

func checkSchema(raw RawTable) error {
	for _, required := range []string{ColumnDate, ColumnTemperature} {
		if !raw.HasColumn(required) {
			return &SchemaError{Column: required}
		}
	}
	return nil
}

// parseTemperature parses a signed decimal temperature. Non-numeric text and
// the non-finite spellings strconv accepts (NaN, Inf) are both rejected so
// every cleaned temperature is finite.
func parseTemperature(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseDate parses a calendar date, trying each accepted layout in order.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
