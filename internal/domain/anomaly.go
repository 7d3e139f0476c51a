package domain

// DefaultRollingWindow and DefaultAnomalySigma match the source analysis:
// a trailing 3-day mean and a band of two standard deviations.
const (
	DefaultRollingWindow = 3
	DefaultAnomalySigma  = 2.0
)

// DetectStats carries the AnomalyDetector diagnostics.
type DetectStats struct {
	Anomalies int
	Mean      float64
	StdDev    float64
}

// DetectAnomalies returns a new table with the rolling_avg and anomaly
// columns filled in.
//
// The rolling average is the trailing window-row mean over the table's
// current (post-clean, date-sorted) order and stays absent until the window
// is filled. Anomalies are judged against the mean and sample standard
// deviation of the whole table, anomalies included; detection is global,
// never per-city, so a parallel rendition must not partition the table
// before computing the band.
//
// With fewer than two rows the standard deviation is NaN, both band
// comparisons are false, and every row classifies normal.
func DetectAnomalies(t Table, window int, sigma float64) (Table, DetectStats) {
	out := Table{HasCity: t.HasCity, Rows: make([]Observation, len(t.Rows))}
	copy(out.Rows, t.Rows)
	if len(out.Rows) == 0 {
		return out, DetectStats{}
	}

	temps := t.Temperatures()
	rolling := RollingMean(temps, window)

	mean, _ := Mean(temps)
	std := SampleStdDev(temps)
	high := mean + sigma*std
	low := mean - sigma*std

	stats := DetectStats{Mean: mean, StdDev: std}
	for i := range out.Rows {
		row := &out.Rows[i]
		row.RollingAvg = rolling[i]

		// The high band is checked first: with a degenerate zero std both
		// bands collapse onto the mean and the order decides the label.
		switch {
		case row.Temperature > high:
			row.Anomaly = AnomalyHigh
			stats.Anomalies++
		case row.Temperature < low:
			row.Anomaly = AnomalyLow
			stats.Anomalies++
		default:
			row.Anomaly = AnomalyNormal
		}
	}

	return out, stats
}
