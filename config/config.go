package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Corpus  CorpusConfig
	Scraper ScraperConfig
	Search  SearchConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DataConfig holds dataset file locations
type DataConfig struct {
	RawPath      string `mapstructure:"raw_path"`
	EnrichedPath string `mapstructure:"enriched_path"`
}

// CorpusConfig holds in-memory corpus cache configuration
type CorpusConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ScraperConfig holds catalog scraper configuration
type ScraperConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	IndexURL   string        `mapstructure:"index_url"`
	Category   string        `mapstructure:"category"`
	Delay      time.Duration `mapstructure:"delay"`
	MaxRetries int           `mapstructure:"max_retries"`
	UserAgent  string        `mapstructure:"user_agent"`
}

// SearchConfig holds query engine configuration
type SearchConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/lensvault/")

	// Environment variable settings
	v.SetEnvPrefix("LENSVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Data defaults
	v.SetDefault("data.raw_path", "data/camera-products-scraped.json")
	v.SetDefault("data.enriched_path", "data/camera-products-enriched.json")

	// Corpus defaults
	v.SetDefault("corpus.ttl", "5m")

	// Scraper defaults
	v.SetDefault("scraper.base_url", "https://global.canon")
	v.SetDefault("scraper.index_url", "https://global.canon/en/c-museum/series_dcc.html")
	v.SetDefault("scraper.category", "Compact Digital Camera")
	v.SetDefault("scraper.delay", "2s")
	v.SetDefault("scraper.max_retries", 3)
	v.SetDefault("scraper.user_agent", "LensVault/1.0")

	// Search defaults
	v.SetDefault("search.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Data.RawPath == "" {
		return fmt.Errorf("raw dataset path is required (set LENSVAULT_DATA_RAW_PATH)")
	}
	if config.Data.EnrichedPath == "" {
		return fmt.Errorf("enriched dataset path is required (set LENSVAULT_DATA_ENRICHED_PATH)")
	}
	if config.Corpus.TTL <= 0 {
		return fmt.Errorf("corpus TTL must be positive, got: %s", config.Corpus.TTL)
	}
	if config.Scraper.MaxRetries <= 0 {
		return fmt.Errorf("scraper max retries must be positive, got: %d", config.Scraper.MaxRetries)
	}
	return nil
}
