package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Index struct {
		Name         string `yaml:"name"`
		BaseURL      string `yaml:"base_url"`
		SymbolSuffix string `yaml:"symbol_suffix"` // appended for history lookups, e.g. ".NS"
	} `yaml:"index"`
	Analysis struct {
		TopN            int     `yaml:"top_n"`
		BelowHighMinPct float64 `yaml:"below_high_min_pct"`
		AboveLowMinPct  float64 `yaml:"above_low_min_pct"`
		HistoryDays     int     `yaml:"history_days"`
	} `yaml:"analysis"`
	Fetch struct {
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		MaxRetries     int     `yaml:"max_retries"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
	} `yaml:"fetch"`
	Output struct {
		DataDir      string `yaml:"data_dir"`
		ReportFile   string `yaml:"report_file"`
		GainersChart string `yaml:"gainers_chart"`
		LosersChart  string `yaml:"losers_chart"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables run history
	} `yaml:"database"`
	Log struct {
		File   string `yaml:"file"`
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is fine; defaults cover everything. Defaults are
// seeded before the file is parsed, so an explicit zero in the file (such as
// a disabled threshold screen) is preserved rather than mistaken for unset.
func Load(path string) (*Config, error) {
	// Best-effort .env so credentials-free local runs stay one command.
	_ = godotenv.Load()

	cfg := defaultConfig()

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
	if v := os.Getenv("INDEX_NAME"); v != "" {
		cfg.Index.Name = v
	}
	if v := os.Getenv("NSE_BASE_URL"); v != "" {
		cfg.Index.BaseURL = v
	}
	if v := os.Getenv("SYMBOL_SUFFIX"); v != "" {
		cfg.Index.SymbolSuffix = v
	}
	if v := os.Getenv("TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.TopN = n
		}
	}
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Output.DataDir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	return cfg, nil
}

// defaultConfig returns a fully populated baseline. Unmarshalling the YAML
// file on top of it only touches the keys the file actually sets.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Index.Name = "NIFTY 50"
	cfg.Index.BaseURL = "https://www.nseindia.com"
	cfg.Index.SymbolSuffix = ".NS"
	cfg.Analysis.TopN = 5
	cfg.Analysis.BelowHighMinPct = 30
	cfg.Analysis.AboveLowMinPct = 20
	cfg.Analysis.HistoryDays = 365
	cfg.Fetch.TimeoutSeconds = 10
	cfg.Fetch.MaxRetries = 3
	cfg.Fetch.RequestsPerSec = 4
	cfg.Output.DataDir = "data"
	cfg.Output.ReportFile = "results.txt"
	cfg.Output.GainersChart = "gainers.png"
	cfg.Output.LosersChart = "losers.png"
	cfg.Log.File = "indexpulse.log"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be at least 1")
	}
	if c.Analysis.HistoryDays < 30 {
		return fmt.Errorf("analysis.history_days must be at least 30 to derive 30-day returns")
	}
	if c.Analysis.BelowHighMinPct < 0 || c.Analysis.AboveLowMinPct < 0 {
		return fmt.Errorf("analysis thresholds must not be negative")
	}
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive")
	}
	if c.Fetch.RequestsPerSec <= 0 {
		return fmt.Errorf("fetch.requests_per_sec must be positive")
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}
