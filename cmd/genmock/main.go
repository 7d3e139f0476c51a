// Command genmock writes a reproducible synthetic observation CSV for use as
// a file-source input. It uses the actual mock producer with a frozen clock
// and a fixed seed, so regenerating the fixture yields identical output.
//
// Usage:
//
//	go run ./cmd/genmock -out data/sample/observations.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
	"github.com/couchcryptid/weather-obs-pipeline/internal/source"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/sample/observations.csv", "output path for the fixture CSV")
	cities := flag.Int("cities", 10, "number of cities to cover")
	seed := flag.Int64("seed", 20240115, "generator seed")
	flag.Parse()

	// Fixed clock so fixture dates never drift between regenerations.
	clk := clockwork.NewFakeClockAt(time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mock := source.NewMock(*cities, *seed, clk, logger)
	table, err := mock.Fetch(context.Background())
	if err != nil {
		return fmt.Errorf("generate observations: %w", err)
	}

	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, []string{domain.ColumnCity, domain.ColumnDate, domain.ColumnTemperature})
	for _, row := range table.Rows {
		records = append(records, []string{row.City, row.Date, row.Temperature})
	}

	df := dataframe.LoadRecords(records)
	if df.Err != nil {
		return fmt.Errorf("build dataframe: %w", df.Err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}

	log.Printf("wrote %d rows to %s", df.Nrow(), *out)
	fmt.Println(df.Describe())
	return nil
}
