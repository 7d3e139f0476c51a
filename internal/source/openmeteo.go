package source

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
)

// OpenMeteo fetches hourly temperatures from the Open-Meteo forecast API and
// aggregates them to one daily mean per city. Cities that fail to fetch are
// skipped; the fetch only fails as a whole when no city delivered data, at
// which point the fallback source takes over.
type OpenMeteo struct {
	client  omgo.Client
	cities  []cityClimate
	timeout time.Duration
	logger  *slog.Logger
}

// NewOpenMeteo creates a live producer covering cityCount cities.
func NewOpenMeteo(cityCount int, timeout time.Duration, logger *slog.Logger) (*OpenMeteo, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("open-meteo client: %w", err)
	}
	return &OpenMeteo{
		client:  client,
		cities:  climates(cityCount),
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Fetch queries each city and assembles the raw table.
func (s *OpenMeteo) Fetch(ctx context.Context) (domain.RawTable, error) {
	table := domain.RawTable{
		Columns: []string{domain.ColumnCity, domain.ColumnDate, domain.ColumnTemperature},
	}

	var lastErr error
	fetched := 0
	for _, city := range s.cities {
		rows, err := s.fetchCity(ctx, city)
		if err != nil {
			s.logger.Warn("city fetch failed, skipping", "city", city.name, "error", err)
			lastErr = err
			continue
		}
		table.Rows = append(table.Rows, rows...)
		fetched++
	}

	if fetched == 0 && lastErr != nil {
		return domain.RawTable{}, fmt.Errorf("open-meteo fetch: %w", lastErr)
	}

	s.logger.Info("observations fetched from open-meteo", "cities", fetched, "rows", len(table.Rows))
	return table, nil
}

func (s *OpenMeteo) fetchCity(ctx context.Context, city cityClimate) ([]domain.RawObservation, error) {
	ctxFetch, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	location, err := omgo.NewLocation(city.lat, city.lon)
	if err != nil {
		return nil, fmt.Errorf("location: %w", err)
	}

	opts := &omgo.Options{
		Timezone:        "UTC",
		TemperatureUnit: "celsius",
		HourlyMetrics:   []string{"temperature_2m"},
	}
	forecast, err := s.client.Forecast(ctxFetch, location, opts)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}

	return dailyMeans(city.name, forecast.HourlyTimes, forecast.HourlyMetrics["temperature_2m"]), nil
}

// dailyMeans collapses an hourly temperature series into one mean per
// calendar day, in chronological order. Trailing hours without a matching
// temperature sample are ignored.
func dailyMeans(city string, times []time.Time, temps []float64) []domain.RawObservation {
	type bucket struct {
		sum   float64
		count int
	}

	var order []string
	buckets := make(map[string]*bucket)
	for i, t := range times {
		if i >= len(temps) {
			break
		}
		day := t.UTC().Format("2006-01-02")
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
			order = append(order, day)
		}
		b.sum += temps[i]
		b.count++
	}

	rows := make([]domain.RawObservation, 0, len(order))
	for _, day := range order {
		b := buckets[day]
		rows = append(rows, domain.RawObservation{
			City:        city,
			Date:        day,
			Temperature: strconv.FormatFloat(b.sum/float64(b.count), 'f', 2, 64),
		})
	}
	return rows
}
