package domain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of xs, or ErrEmptyInput when xs is empty.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}
	return stat.Mean(xs, nil), nil
}

// SampleStdDev returns the sample standard deviation of xs (n-1 divisor).
// It is NaN when fewer than two values are available, matching the
// convention that anomaly bands built from it match nothing.
func SampleStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}

// MinMax returns the smallest and largest value in xs. It must not be called
// on an empty slice; Summarize guards for that.
func MinMax(xs []float64) (minV, maxV float64) {
	minV, maxV = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
	}
	return minV, maxV
}

// Quantile returns the p-th quantile of xs using linear interpolation
// between order statistics: for n sorted values the quantile sits at
// fractional rank p*(n-1), interpolated between the two bracketing indices.
// gonum's stat.Quantile implements different CumulantKind definitions, so
// this variant is computed directly. Returns ErrEmptyInput on no data.
func Quantile(xs []float64, p float64) (float64, error) {
	if len(xs) == 0 {
		return 0, ErrEmptyInput
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	rank := p * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], nil
	}

	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, nil
}

// RollingMean returns the trailing window-row mean for every index of xs.
// Entries where fewer than window samples are available are nil, not a
// partial-window mean.
func RollingMean(xs []float64, window int) []*float64 {
	out := make([]*float64, len(xs))
	if window < 1 {
		return out
	}

	var sum float64
	for i, x := range xs {
		sum += x
		if i >= window {
			sum -= xs[i-window]
		}
		if i >= window-1 {
			avg := sum / float64(window)
			out[i] = &avg
		}
	}
	return out
}
