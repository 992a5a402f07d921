package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Refresh    RefreshConfig    `yaml:"refresh"`
	Providers  ProviderConfig   `yaml:"providers"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // debug, release
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type RefreshConfig struct {
	Interval         string   `yaml:"interval"`          // cron spec for bucket refresh
	Categories       []string `yaml:"categories"`        // scored topic buckets, processed in this order
	IngestCategories []string `yaml:"ingest_categories"` // rolling headline store
	BatchSize        int      `yaml:"batch_size"`        // provider fetch size per category
	IngestLimit      int      `yaml:"ingest_limit"`      // headlines kept per category
	FetchTimeout     int      `yaml:"fetch_timeout"`     // seconds, per external call
}

type ProviderConfig struct {
	GNewsKey   string `yaml:"gnews_key"`
	NewsAPIKey string `yaml:"newsapi_key"`
}

type SummarizerConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Load reads the yaml config file, falling back to defaults when it
// does not exist, then applies environment overrides.
func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: "8080",
			Mode: "debug",
		},
		Database: DatabaseConfig{
			Path: "data/newscred.db",
		},
		Refresh: RefreshConfig{
			Interval:         "*/30 * * * *", // every 30 minutes
			Categories:       []string{"business", "technology", "sports", "science"},
			IngestCategories: []string{"business", "entertainment", "sports", "science", "technology"},
			BatchSize:        15,
			IngestLimit:      10,
			FetchTimeout:     10,
		},
		Summarizer: SummarizerConfig{
			APIURL: "https://api.openai.com/v1",
			Model:  "gpt-4o-mini",
		},
	}

	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, err
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else {
		slog.Info("config file not found, using defaults", "path", configPath)
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}

	if dbPath := os.Getenv("DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}

	if key := os.Getenv("GNEWS_API_KEY"); key != "" {
		cfg.Providers.GNewsKey = key
	}

	if key := os.Getenv("NEWSAPI_KEY"); key != "" {
		cfg.Providers.NewsAPIKey = key
	}

	if u := os.Getenv("SUMMARIZER_API_URL"); u != "" {
		cfg.Summarizer.APIURL = u
	}

	if key := os.Getenv("SUMMARIZER_API_KEY"); key != "" {
		cfg.Summarizer.APIKey = key
	}

	if m := os.Getenv("SUMMARIZER_MODEL"); m != "" {
		cfg.Summarizer.Model = m
	}

	return cfg, nil
}

// GetServerAddress returns the listen address for the HTTP server.
func (c *Config) GetServerAddress() string {
	if _, err := strconv.Atoi(c.Server.Port); err == nil {
		return ":" + c.Server.Port
	}
	return c.Server.Port
}

// FetchTimeoutDuration returns the per-call timeout for external
// provider and feed requests.
func (c *RefreshConfig) FetchTimeoutDuration() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}
