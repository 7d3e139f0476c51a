package source

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hour(day, h int) time.Time {
	return time.Date(2024, 1, day, h, 0, 0, 0, time.UTC)
}

func TestDailyMeans(t *testing.T) {
	t.Run("one mean per calendar day", func(t *testing.T) {
		times := []time.Time{hour(1, 0), hour(1, 12), hour(2, 0), hour(2, 12)}
		temps := []float64{4, 8, 10, 14}

		rows := dailyMeans("İstanbul", times, temps)

		require.Len(t, rows, 2)
		assert.Equal(t, "İstanbul", rows[0].City)
		assert.Equal(t, "2024-01-01", rows[0].Date)
		assert.Equal(t, "6.00", rows[0].Temperature)
		assert.Equal(t, "2024-01-02", rows[1].Date)
		assert.Equal(t, "12.00", rows[1].Temperature)
	})

	t.Run("days come out in chronological order", func(t *testing.T) {
		times := []time.Time{hour(1, 6), hour(2, 6), hour(3, 6)}
		temps := []float64{1, 2, 3}

		rows := dailyMeans("Ankara", times, temps)

		require.Len(t, rows, 3)
		assert.Equal(t, "2024-01-01", rows[0].Date)
		assert.Equal(t, "2024-01-02", rows[1].Date)
		assert.Equal(t, "2024-01-03", rows[2].Date)
	})

	t.Run("extra hours without samples are ignored", func(t *testing.T) {
		times := []time.Time{hour(1, 0), hour(1, 1), hour(1, 2)}
		temps := []float64{3, 6}

		rows := dailyMeans("İzmir", times, temps)

		require.Len(t, rows, 1)
		assert.Equal(t, "4.50", rows[0].Temperature)
	})

	t.Run("no samples yields no rows", func(t *testing.T) {
		assert.Empty(t, dailyMeans("Bursa", nil, nil))
	})
}

func TestNewOpenMeteo(t *testing.T) {
	s, err := NewOpenMeteo(3, 5*time.Second, slog.Default())
	require.NoError(t, err)
	assert.Len(t, s.cities, 3)
}
