package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type config struct {
	Table       string        `env:"DEMO_TABLE"`
	Cycles      int           `env:"DEMO_CYCLES" envDefault:"6"`
	Interval    time.Duration `env:"DEMO_INTERVAL" envDefault:"500ms"`
	SnapshotDir string        `env:"DEMO_SNAPSHOT_DIR"`
	MetricsAddr string        `env:"DEMO_METRICS_ADDR"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LOG_FORMAT" envDefault:"console"`
}

// loadConfig reads the environment, after a .env file in the working
// directory if there is one.
func loadConfig() (config, error) {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.Cycles < 1 {
		return config{}, fmt.Errorf("DEMO_CYCLES must be positive, got %d", cfg.Cycles)
	}
	if cfg.Interval <= 0 {
		return config{}, fmt.Errorf("DEMO_INTERVAL must be positive, got %s", cfg.Interval)
	}
	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = filepath.Join(os.TempDir(), "fsmx-demo")
	}
	return cfg, nil
}
