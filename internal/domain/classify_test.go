package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyTemperature(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		expected Condition
	}{
		{"below zero", -0.0001, ConditionVeryCold},
		{"deep freeze", -25, ConditionVeryCold},
		{"zero boundary", 0, ConditionCold},
		{"just under ten", 9.999, ConditionCold},
		{"ten boundary", 10, ConditionMild},
		{"just under twenty", 19.999, ConditionMild},
		{"twenty boundary", 20, ConditionHot},
		{"just under thirty", 29.999, ConditionHot},
		{"thirty boundary", 30, ConditionVeryHot},
		{"heat wave", 45, ConditionVeryHot},
		{"negative zero", math.Copysign(0, -1), ConditionCold},
		{"nan", math.NaN(), ConditionUnknown},
		{"positive infinity", math.Inf(1), ConditionUnknown},
		{"negative infinity", math.Inf(-1), ConditionUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyTemperature(tt.temp))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("adds a condition to every row", func(t *testing.T) {
		out := Classify(tableOf(-5, 5, 15, 25, 35))

		expected := []Condition{
			ConditionVeryCold, ConditionCold, ConditionMild, ConditionHot, ConditionVeryHot,
		}
		require.Len(t, out.Rows, len(expected))
		for i, cond := range expected {
			assert.Equal(t, cond, out.Rows[i].Condition)
		}
	})

	t.Run("exactly one bucket matches any finite temperature", func(t *testing.T) {
		for _, temp := range []float64{-0.0001, 0, 9.999, 10, 19.999, 20, 29.999, 30} {
			cond := classifyTemperature(temp)
			assert.NotEqual(t, ConditionUnknown, cond, "temp %v", temp)
			assert.NotEmpty(t, cond)
		}
	})

	t.Run("idempotent on classified output", func(t *testing.T) {
		once := Classify(tableOf(-5, 12, 31))
		twice := Classify(once)

		require.Len(t, twice.Rows, len(once.Rows))
		for i := range once.Rows {
			assert.Equal(t, once.Rows[i].Condition, twice.Rows[i].Condition)
		}
	})

	t.Run("empty table", func(t *testing.T) {
		out := Classify(Table{})
		assert.Empty(t, out.Rows)
	})

	t.Run("preserves other derived columns", func(t *testing.T) {
		detected, _ := DetectAnomalies(tableOf(10, 20, 30), DefaultRollingWindow, DefaultAnomalySigma)
		out := Classify(detected)

		require.NotNil(t, out.Rows[2].RollingAvg)
		assert.Equal(t, 20.0, *out.Rows[2].RollingAvg)
		assert.Equal(t, AnomalyNormal, out.Rows[1].Anomaly)
	})
}
