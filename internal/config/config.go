package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"StockDash/internal/series"
)

// Provider names accepted by data_source.provider.
const (
	ProviderAuto     = "auto"
	ProviderRapidAPI = "rapidapi"
	ProviderYahoo    = "yahoo"
	ProviderMock     = "mock"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr            string        `yaml:"addr"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	DataSource struct {
		Provider string `yaml:"provider"`
		BaseURL  string `yaml:"base_url"`
		Host     string `yaml:"host"`
		APIKey   string `yaml:"api_key"`
	} `yaml:"data_source"`
	Generator struct {
		series.Params `yaml:",inline"`
		Seed          uint64 `yaml:"seed"`
	} `yaml:"generator"`
	Schedule struct {
		RefreshCron string   `yaml:"refresh_cron"`
		Watchlist   []string `yaml:"watchlist"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Generator.Params = series.DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("RAPIDAPI_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("RAPIDAPI_HOST"); v != "" {
		cfg.DataSource.Host = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("WATCHLIST"); v != "" {
		cfg.Schedule.Watchlist = strings.Split(v, ",")
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("GENERATOR_SEED"); v != "" {
		seed, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse GENERATOR_SEED: %w", err)
		}
		cfg.Generator.Seed = seed
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 45 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = ProviderAuto
	}
	if len(cfg.Schedule.Watchlist) == 0 {
		cfg.Schedule.Watchlist = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA"}
	}
	for i, s := range cfg.Schedule.Watchlist {
		cfg.Schedule.Watchlist[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	return cfg, nil
}

// ResolvedProvider returns the concrete provider for "auto": RapidAPI when a
// key is configured, Yahoo otherwise.
func (c *Config) ResolvedProvider() string {
	if c.DataSource.Provider != ProviderAuto {
		return c.DataSource.Provider
	}
	if c.DataSource.APIKey != "" {
		return ProviderRapidAPI
	}
	return ProviderYahoo
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderAuto, ProviderRapidAPI, ProviderYahoo, ProviderMock:
	default:
		return fmt.Errorf("data_source.provider %q is not one of auto, rapidapi, yahoo, mock", c.DataSource.Provider)
	}
	if c.DataSource.Provider == ProviderRapidAPI && c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required for the rapidapi provider")
	}
	g := c.Generator.Params
	if g.FloorRatio <= 0 || g.FloorRatio > 1 {
		return fmt.Errorf("generator.floor_ratio must be in (0, 1]")
	}
	if g.Volatility < 0 {
		return fmt.Errorf("generator.volatility must not be negative")
	}
	if g.MinVolume < 0 || g.VolumeSpan <= 0 {
		return fmt.Errorf("generator.min_volume must be >= 0 and generator.volume_span positive")
	}
	return nil
}
