package source

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/weather-obs-pipeline/internal/domain"
)

// Fetcher is the producer contract shared by every source in this package.
// It mirrors the pipeline's Source port so decorators compose freely.
type Fetcher interface {
	Fetch(ctx context.Context) (domain.RawTable, error)
}

type fallbackSource struct {
	primary  Fetcher
	fallback Fetcher
	logger   *slog.Logger
}

// WithFallback returns a source that serves from primary and switches to
// fallback when primary errors or comes back empty-handed.
func WithFallback(primary, fallback Fetcher, logger *slog.Logger) Fetcher {
	return &fallbackSource{primary: primary, fallback: fallback, logger: logger}
}

func (s *fallbackSource) Fetch(ctx context.Context) (domain.RawTable, error) {
	table, err := s.primary.Fetch(ctx)
	if err == nil && len(table.Rows) > 0 {
		return table, nil
	}

	if err != nil {
		s.logger.Warn("primary source failed, falling back", "error", err)
	} else {
		s.logger.Warn("primary source returned no data, falling back")
	}
	return s.fallback.Fetch(ctx)
}
