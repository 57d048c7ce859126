// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/codr1/airbnbviz/internal/models"
)

const (
	SourceCSV      = "csv"
	SourceDatabase = "database"
)

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Filename string `yaml:"filename"`
	URL      string `yaml:"-"` // Loaded from environment
}

type DatasetConfig struct {
	Source      string `yaml:"source"`
	CSVPath     string `yaml:"csv_path"`
	RefreshCron string `yaml:"refresh_cron"`
}

type MongoConfig struct {
	URI        string `yaml:"-"` // Loaded from environment
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type DashboardConfig struct {
	ImagePath string `yaml:"image_path"`
	Caption   string `yaml:"caption"`
	Links     []Link `yaml:"links"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	TrustProxy        bool    `yaml:"trust_proxy"`
}

type Config struct {
	App struct {
		Name            string `yaml:"name"`
		Environment     string `yaml:"environment"`
		Port            int    `yaml:"port"`
		BaseURL         string `yaml:"base_url"`
		StaticDir       string `yaml:"static_dir"`
		HomeImagePath   string `yaml:"home_image_path"`
		ShutdownTimeout int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"app"`

	Dataset   DatasetConfig   `yaml:"dataset"`
	Database  DatabaseConfig  `yaml:"database"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Theme     models.Theme    `yaml:"theme"`

	Features struct {
		EnableDebug bool `yaml:"enable_debug"`
	} `yaml:"features"`
}

// Load loads both .env and yaml configuration
func Load(configPath string) (*Config, error) {
	envPath := filepath.Join(filepath.Dir(configPath), ".env")
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Load sensitive values from environment
	cfg.Database.URL = os.Getenv("DATABASE_URL")
	cfg.Mongo.URI = os.Getenv("MONGODB_URI")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Parse decodes yaml and fills defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.App.Environment == "" {
		c.App.Environment = "development"
	}
	if c.App.StaticDir == "" {
		c.App.StaticDir = "build/bin/static"
	}
	if c.App.ShutdownTimeout == 0 {
		c.App.ShutdownTimeout = 30
	}
	if c.Dataset.Source == "" {
		c.Dataset.Source = SourceCSV
	}
	if c.Mongo.Database == "" {
		c.Mongo.Database = "airbnb_analysis"
	}
	if c.Mongo.Collection == "" {
		c.Mongo.Collection = "airbnb_data"
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 40
	}

	defaultTheme := models.DefaultTheme()
	if strings.TrimSpace(c.Theme.PrimaryColor) == "" {
		c.Theme.PrimaryColor = defaultTheme.PrimaryColor
	}
	if strings.TrimSpace(c.Theme.SecondaryColor) == "" {
		c.Theme.SecondaryColor = defaultTheme.SecondaryColor
	}
	if strings.TrimSpace(c.Theme.AccentColor) == "" {
		c.Theme.AccentColor = defaultTheme.AccentColor
	}
}

// MongoEnabled reports whether a document store is configured for raw previews.
func (c *Config) MongoEnabled() bool {
	return strings.TrimSpace(c.Mongo.URI) != ""
}

func (c *Config) Validate() error {
	if c.App.Name == "" {
		return fmt.Errorf("app name is required")
	}
	if c.App.Port == 0 {
		return fmt.Errorf("app port is required")
	}

	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.CSVPath == "" {
			return fmt.Errorf("dataset csv_path is required for csv source")
		}
	case SourceDatabase:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported dataset source: %s", c.Dataset.Source)
	}

	if expr := strings.TrimSpace(c.Dataset.RefreshCron); expr != "" {
		if _, err := cronParser.Parse(expr); err != nil {
			return fmt.Errorf("invalid dataset refresh_cron %q: %w", expr, err)
		}
	}

	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit values must be positive")
	}

	for _, color := range []string{c.Theme.PrimaryColor, c.Theme.SecondaryColor, c.Theme.AccentColor} {
		if !models.IsHexColor(color) {
			return fmt.Errorf("theme color %q must be a #RRGGBB hex value", color)
		}
	}

	return nil
}

// Validate checks the settings needed to open the listings database.
func (d DatabaseConfig) Validate() error {
	switch d.Driver {
	case "sqlite":
		if d.Filename == "" {
			return fmt.Errorf("database filename is required for sqlite")
		}
	case "postgres":
		if d.URL == "" {
			return fmt.Errorf("DATABASE_URL is required for postgres")
		}
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver: %s", d.Driver)
	}
	return nil
}
