package config

import (
	"fmt"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all pipeline settings, populated from environment variables.
type Config struct {
	// Source selects where raw observations come from. The openmeteo source
	// falls back to mock data when the API is unreachable.
	Source     string `validate:"oneof=mock file openmeteo"`
	InputPath  string `validate:"required_if=Source file"`
	OutputPath string

	RollingWindow int     `validate:"min=1"`
	AnomalySigma  float64 `validate:"gt=0"`
	MockCities    int     `validate:"min=1"`
	MockSeed      int64
	FetchTimeout  time.Duration `validate:"gt=0"`

	// HTTPAddr enables the health and metrics endpoint when non-empty.
	// When empty the process exits once the run completes.
	HTTPAddr        string
	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFormat       string `validate:"oneof=json text"`
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	rollingWindow, err := parseIntEnv("ROLLING_WINDOW", 3)
	if err != nil {
		return nil, err
	}

	mockCities, err := parseIntEnv("MOCK_CITIES", 10)
	if err != nil {
		return nil, err
	}

	mockSeed, err := parseIntEnv("MOCK_SEED", 0)
	if err != nil {
		return nil, err
	}

	anomalySigma, err := parseFloatEnv("ANOMALY_SIGMA", 2.0)
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDurationEnv("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Source:          sharedcfg.EnvOrDefault("SOURCE", "mock"),
		InputPath:       sharedcfg.EnvOrDefault("INPUT_PATH", ""),
		OutputPath:      sharedcfg.EnvOrDefault("OUTPUT_PATH", ""),
		RollingWindow:   int(rollingWindow),
		AnomalySigma:    anomalySigma,
		MockCities:      int(mockCities),
		MockSeed:        mockSeed,
		FetchTimeout:    fetchTimeout,
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ""),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func parseIntEnv(name string, def int64) (int64, error) {
	s := sharedcfg.EnvOrDefault(name, "")
	if s == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return n, nil
}

func parseFloatEnv(name string, def float64) (float64, error) {
	s := sharedcfg.EnvOrDefault(name, "")
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return f, nil
}

func parseDurationEnv(name string, def time.Duration) (time.Duration, error) {
	s := sharedcfg.EnvOrDefault(name, "")
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return d, nil
}
