package domain

import "time"

// Column names expected on the raw input table. The city column is optional;
// date and temperature are required and their absence is a schema violation.
const (
	ColumnCity        = "city"
	ColumnDate        = "date"
	ColumnTemperature = "temperature"
)

// RawObservation is one untyped row as delivered by the upstream producer.
// All fields are raw text; coercion happens in Clean.
type RawObservation struct {
	City        string
	Date        string
	Temperature string
}

// RawTable is the loosely typed table handed over by the data-acquisition
// collaborator. Columns records which columns the producer emitted, in order;
// column presence is schema-wide, so a column either exists for every row or
// for none.
type RawTable struct {
	Columns []string
	Rows    []RawObservation
}

// HasColumn reports whether the producer emitted the named column.
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Anomaly labels a row relative to the global mean ± sigma*std band.
type Anomaly string

const (
	AnomalyNormal Anomaly = "normal"
	AnomalyHigh   Anomaly = "high"
	AnomalyLow    Anomaly = "low"
)

// Condition is the temperature bucket assigned by Classify.
type Condition string

const (
	ConditionVeryCold Condition = "very_cold"
	ConditionCold     Condition = "cold"
	ConditionMild     Condition = "mild"
	ConditionHot      Condition = "hot"
	ConditionVeryHot  Condition = "very_hot"

	// ConditionUnknown is only reachable for non-finite temperatures, which
	// Clean filters out. Classify still handles them because it makes no
	// assumption about running after Clean.
	ConditionUnknown Condition = "unknown"
)

// Observation is one typed row after Clean. RollingAvg is nil for rows where
// the trailing window is not yet filled.
type Observation struct {
	City        string    `json:"city,omitempty"`
	Date        time.Time `json:"date"`
	Temperature float64   `json:"temperature"`

	RollingAvg *float64  `json:"rolling_avg,omitempty"`
	Anomaly    Anomaly   `json:"anomaly,omitempty"`
	Condition  Condition `json:"condition,omitempty"`
}

// Table is the strongly typed observation table passed between stages. Each
// stage returns a new Table value; none keeps state across invocations.
type Table struct {
	HasCity bool
	Rows    []Observation
}

// Temperatures returns the temperature column in row order.
func (t Table) Temperatures() []float64 {
	temps := make([]float64, len(t.Rows))
	for i := range t.Rows {
		temps[i] = t.Rows[i].Temperature
	}
	return temps
}
