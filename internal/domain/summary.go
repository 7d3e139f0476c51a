package domain

import "math"

// CityAggregate holds the per-city temperature statistics, rounded to two
// decimal places for display.
type CityAggregate struct {
	City  string  `json:"city"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// Quartiles are the 25th, 50th and 75th percentiles of the temperature
// column, computed with linear interpolation between order statistics.
type Quartiles struct {
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
}

// Report is the write-once diagnostic summary of a cleaned table. It is
// produced by Summarize without mutating the table and consumed by the
// caller for logging and rendering.
type Report struct {
	TotalRows int `json:"total_rows"`

	// City fields are only populated when the input table has a city column.
	CityCount int             `json:"city_count,omitempty"`
	Cities    []CityAggregate `json:"cities,omitempty"`

	Mean      float64   `json:"mean"`
	Min       float64   `json:"min"`
	Max       float64   `json:"max"`
	Quartiles Quartiles `json:"quartiles"`

	GeneratedAt string `json:"generated_at"`
}

// Summarize computes global and per-city descriptive statistics over the
// table. An empty table yields a well-defined zero-valued report rather than
// an error; every aggregate call below is guarded by the row-count check.
func Summarize(t Table) Report {
	report := Report{
		TotalRows:   len(t.Rows),
		GeneratedAt: clock.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
	if len(t.Rows) == 0 {
		return report
	}

	temps := t.Temperatures()
	mean, _ := Mean(temps)
	report.Mean = mean
	report.Min, report.Max = MinMax(temps)
	report.Quartiles = quartiles(temps)

	if t.HasCity {
		report.Cities = cityAggregates(t.Rows)
		report.CityCount = len(report.Cities)
	}

	return report
}

func quartiles(temps []float64) Quartiles {
	q1, _ := Quantile(temps, 0.25)
	median, _ := Quantile(temps, 0.5)
	q3, _ := Quantile(temps, 0.75)
	return Quartiles{Q1: q1, Median: median, Q3: q3}
}

// cityAggregates groups temperatures by city, keyed in first-seen order.
func cityAggregates(rows []Observation) []CityAggregate {
	index := make(map[string]int)
	var aggs []CityAggregate
	sums := make(map[string]float64)

	for _, row := range rows {
		i, seen := index[row.City]
		if !seen {
			i = len(aggs)
			index[row.City] = i
			aggs = append(aggs, CityAggregate{
				City: row.City,
				Min:  row.Temperature,
				Max:  row.Temperature,
			})
		}
		agg := &aggs[i]
		agg.Count++
		sums[row.City] += row.Temperature
		if row.Temperature < agg.Min {
			agg.Min = row.Temperature
		}
		if row.Temperature > agg.Max {
			agg.Max = row.Temperature
		}
	}

	for i := range aggs {
		agg := &aggs[i]
		agg.Mean = round2(sums[agg.City] / float64(agg.Count))
		agg.Min = round2(agg.Min)
		agg.Max = round2(agg.Max)
	}
	return aggs
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
