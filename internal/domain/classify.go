package domain

import "math"

// Classify returns a new table with the condition column filled in. The
// condition is a pure function of the row's temperature; re-running Classify
// on already classified output yields identical labels.
func Classify(t Table) Table {
	out := Table{HasCity: t.HasCity, Rows: make([]Observation, len(t.Rows))}
	copy(out.Rows, t.Rows)
	for i := range out.Rows {
		out.Rows[i].Condition = classifyTemperature(out.Rows[i].Temperature)
	}
	return out
}

// classifyTemperature buckets a temperature into half-open intervals,
// evaluated top to bottom, first match wins:
//
//	t < 0        very_cold
//	0 <= t < 10  cold
//	10 <= t < 20 mild
//	20 <= t < 30 hot
//	t >= 30      very_hot
//
// The intervals partition the finite reals, so unknown is only reachable for
// NaN or infinite temperatures. Clean filters those out, but Classify has no
// guarantee it runs after Clean and handles them anyway.
func classifyTemperature(temp float64) Condition {
	if math.IsNaN(temp) || math.IsInf(temp, 0) {
		return ConditionUnknown
	}

	switch {
	case temp < 0:
		return ConditionVeryCold
	case temp < 10:
		return ConditionCold
	case temp < 20:
		return ConditionMild
	case temp < 30:
		return ConditionHot
	default:
		return ConditionVeryHot
	}
}
