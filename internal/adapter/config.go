package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "popcorn"

// Config holds all application configuration
type Config struct {
	OMDb      OMDbConfig      `mapstructure:"omdb"`
	Search    SearchConfig    `mapstructure:"search"`
	Rating    RatingConfig    `mapstructure:"rating"`
	Watchlist WatchlistConfig `mapstructure:"watchlist"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// OMDbConfig holds the movie provider settings
type OMDbConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
}

// SearchConfig holds search behaviour
type SearchConfig struct {
	MinQueryLength int `mapstructure:"min_query_length"`
}

// RatingConfig holds the star rating scale
type RatingConfig struct {
	Max int `mapstructure:"max"`
}

// WatchlistConfig controls whether the watch-list survives a restart.
// Persistence is off by default; the list then lives only in memory.
type WatchlistConfig struct {
	Persist bool   `mapstructure:"persist"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		OMDb: OMDbConfig{
			BaseURL:           "https://www.omdbapi.com/",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 5,
		},
		Search: SearchConfig{
			MinQueryLength: 3,
		},
		Rating: RatingConfig{
			Max: 10,
		},
		Watchlist: WatchlistConfig{
			Persist: false,
			Path:    defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	return filepath.Join(dataDir(), appName+".log")
}

// defaultDataPath returns where the watch-list database lives when persisted
func defaultDataPath() string {
	return filepath.Join(dataDir(), "watchlist.db")
}

func dataDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// setDefaults registers defaults with v so env overrides bind to every key
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("omdb.api_key", cfg.OMDb.APIKey)
	v.SetDefault("omdb.base_url", cfg.OMDb.BaseURL)
	v.SetDefault("omdb.timeout", cfg.OMDb.Timeout)
	v.SetDefault("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)
	v.SetDefault("search.min_query_length", cfg.Search.MinQueryLength)
	v.SetDefault("rating.max", cfg.Rating.Max)
	v.SetDefault("watchlist.persist", cfg.Watchlist.Persist)
	v.SetDefault("watchlist.path", cfg.Watchlist.Path)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
}

func newViper(configDirs ...string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides: POPCORN_OMDB_API_KEY, POPCORN_LOGGING_LEVEL, ...
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadFrom(newViper(defaultConfigPath(), "."))
}

func loadFrom(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Logging.File = expandHome(cfg.Logging.File)
	cfg.Watchlist.Path = expandHome(cfg.Watchlist.Path)
	return cfg, nil
}

// SaveConfig saves the current configuration to the default config file
func SaveConfig(cfg *Config) error {
	return saveTo(cfg, defaultConfigPath())
}

func saveTo(cfg *Config, configPath string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("omdb.api_key", cfg.OMDb.APIKey)
	v.Set("omdb.base_url", cfg.OMDb.BaseURL)
	v.Set("omdb.timeout", cfg.OMDb.Timeout.String())
	v.Set("omdb.requests_per_second", cfg.OMDb.RequestsPerSecond)

	v.Set("search.min_query_length", cfg.Search.MinQueryLength)
	v.Set("rating.max", cfg.Rating.Max)

	v.Set("watchlist.persist", cfg.Watchlist.Persist)
	v.Set("watchlist.path", cfg.Watchlist.Path)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.Set("logging.max_backups", cfg.Logging.MaxBackups)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds the API key
	return os.Chmod(configFile, 0600)
}

// IsConfigured returns true if an OMDb API key is set
func (c *Config) IsConfigured() bool {
	return strings.TrimSpace(c.OMDb.APIKey) != ""
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
