package source

import (
	"context"
	"log/slog"
	"math/rand"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
)

// Mock generates synthetic per-city daily observations: 7-10 days per city
// drawn from each city's winter range with a small daily fluctuation. Dates
// start at the clock's current day, so a frozen clock plus a fixed seed
// yields a reproducible table.
type Mock struct {
	clock  clockwork.Clock
	rng    *rand.Rand
	cities []cityClimate
	logger *slog.Logger
}

// NewMock creates a synthetic producer covering cityCount cities. A zero
// seed derives one from the clock.
func NewMock(cityCount int, seed int64, clk clockwork.Clock, logger *slog.Logger) *Mock {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	if seed == 0 {
		seed = clk.Now().UnixNano()
	}
	return &Mock{
		clock:  clk,
		rng:    rand.New(rand.NewSource(seed)),
		cities: climates(cityCount),
		logger: logger,
	}
}

// Fetch produces the synthetic raw table. It never fails and never returns
// an empty table, which makes it the fallback of last resort.
func (m *Mock) Fetch(_ context.Context) (domain.RawTable, error) {
	table := domain.RawTable{
		Columns: []string{domain.ColumnCity, domain.ColumnDate, domain.ColumnTemperature},
	}

	start := m.clock.Now()
	for _, city := range m.cities {
		days := 7 + m.rng.Intn(4)
		for d := 0; d < days; d++ {
			span := city.maxTemp - city.minTemp + 1
			base := city.minTemp + m.rng.Intn(span)
			fluctuation := m.rng.Intn(7) - 3
			table.Rows = append(table.Rows, domain.RawObservation{
				City:        city.name,
				Date:        start.AddDate(0, 0, d).Format("2006-01-02"),
				Temperature: strconv.Itoa(base + fluctuation),
			})
		}
	}

	m.logger.Info("generated synthetic observations", "cities", len(m.cities), "rows", len(table.Rows))
	return table, nil
}
