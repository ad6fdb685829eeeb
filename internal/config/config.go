package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"stringanalyzer/internal/storage"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort           string
	LogLevel          slog.Level
	LogFormat         string
	Store             storage.Options
	RateLimitRequests int
	RateLimitWindow   time.Duration
	CORSOrigins       []string
	ShutdownTimeout   time.Duration
}

// fileConfig is the optional YAML file named by CONFIG_FILE.
type fileConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Store struct {
		Driver   string `yaml:"driver"`
		Path     string `yaml:"path"`
		FilePath string `yaml:"file_path"`
		DSN      string `yaml:"dsn"`
	} `yaml:"store"`

	RateLimit struct {
		Requests string `yaml:"requests"`
		Window   string `yaml:"window"`
	} `yaml:"rate_limit"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`

	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

// Load reads configuration from environment variables and returns a Config struct.
// If a .env file exists in the current directory or a parent, it is loaded first.
// A YAML file named by CONFIG_FILE supplies defaults; environment variables
// always take precedence over it.
func Load() (*Config, error) {
	loadDotEnv()

	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	port := getEnv("API_PORT", getEnv("PORT", or(file.Server.Port, "3000")))

	cfg := &Config{
		APIPort:   port,
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", or(file.Log.Format, "text"))),
		Store: storage.Options{
			Driver:   strings.ToLower(getEnv("STORE_DRIVER", or(file.Store.Driver, storage.DriverSQLite))),
			Path:     getEnv("DB_PATH", or(file.Store.Path, "./data/strings.db")),
			FilePath: getEnv("STORE_FILE_PATH", or(file.Store.FilePath, "./data/strings.json")),
			DSN:      getEnv("DATABASE_URL", file.Store.DSN),
		},
	}

	if n, err := strconv.Atoi(cfg.APIPort); err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("API_PORT must be a valid port number, got %q", cfg.APIPort)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", or(file.Log.Level, "info")))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	requests, err := strconv.Atoi(getEnv("RATE_LIMIT_REQUESTS", or(file.RateLimit.Requests, "100")))
	if err != nil || requests < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_REQUESTS must be a non-negative integer")
	}
	cfg.RateLimitRequests = requests

	if cfg.RateLimitWindow, err = duration("RATE_LIMIT_WINDOW", or(file.RateLimit.Window, "15m")); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = duration("SHUTDOWN_TIMEOUT", or(file.ShutdownTimeout, "5s")); err != nil {
		return nil, err
	}

	origins := file.CORS.AllowedOrigins
	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		origins = splitList(raw)
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg.CORSOrigins = origins

	if err := validateStore(cfg.Store); err != nil {
		return nil, err
	}

	// Create the data directory for file-backed stores
	var dataFile string
	switch cfg.Store.Driver {
	case storage.DriverSQLite:
		dataFile = cfg.Store.Path
	case storage.DriverFile:
		dataFile = cfg.Store.FilePath
	}
	if dataFile != "" {
		if err := os.MkdirAll(filepath.Dir(dataFile), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.APIPort
}

func validateStore(opts storage.Options) error {
	switch opts.Driver {
	case storage.DriverSQLite, storage.DriverFile, storage.DriverMemory:
		return nil
	case storage.DriverPostgres, storage.DriverMySQL:
		if opts.DSN == "" {
			return fmt.Errorf("DATABASE_URL is required for STORE_DRIVER=%s", opts.Driver)
		}
		return nil
	default:
		return fmt.Errorf("STORE_DRIVER %q is not supported", opts.Driver)
	}
}

// loadDotEnv loads the nearest .env, walking up at most five directories.
// Variables already set in the environment are not overridden.
func loadDotEnv() {
	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return // Reached filesystem root
		}
		dir = parent
	}
}

func duration(key, defaultValue string) (time.Duration, error) {
	raw := getEnv(key, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", key)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
