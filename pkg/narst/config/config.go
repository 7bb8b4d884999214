package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config is the narst.yaml configuration
type Config struct {
	Store       string       `yaml:"store"`
	MemoryPath  string       `yaml:"memory_path"`
	DBPath      string       `yaml:"db_path"`
	LogLevel    string       `yaml:"log_level"`
	MaxSteps    int          `yaml:"max_steps"`
	Concurrency int          `yaml:"concurrency"`
	Preload     []string     `yaml:"preload"`
	Server      ServerConfig `yaml:"server"`
}

// ServerConfig configures the Narsese line server
type ServerConfig struct {
	Addr           string  `yaml:"addr"`
	MaxConns       int     `yaml:"max_conns"`
	LinesPerSecond float64 `yaml:"lines_per_second"`
	Burst          int     `yaml:"burst"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Store:       StoreMemory,
		MemoryPath:  "testmem.json",
		DBPath:      "narst.db",
		LogLevel:    "info",
		MaxSteps:    8,
		Concurrency: 4,
		Server: ServerConfig{
			Addr:           "127.0.0.1:7878",
			MaxConns:       16,
			LinesPerSecond: 50,
			Burst:          20,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path yields
// the defaults. Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv reads the .env file named by NARST_ENV (or .env by default)
// into the process environment. Missing files are ignored.
func LoadEnv() {
	envFile := os.Getenv("NARST_ENV")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)
}

// ApplyEnv overrides fields from NARST_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("NARST_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("NARST_MEMORY_PATH"); v != "" {
		c.MemoryPath = v
	}
	if v := os.Getenv("NARST_DB_PATH"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("NARST_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("NARST_MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("NARST_MAX_STEPS %q: %w", v, internalerr.ErrInvalidConfig)
		}
		c.MaxSteps = n
	}
	if v := os.Getenv("NARST_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db_path required for sqlite store: %w", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown store %q: %w", c.Store, internalerr.ErrInvalidConfig)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q: %w", c.LogLevel, internalerr.ErrInvalidConfig)
	}

	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative: %w", internalerr.ErrInvalidConfig)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive: %w", internalerr.ErrInvalidConfig)
	}
	if c.Server.MaxConns < 1 {
		return fmt.Errorf("server.max_conns must be positive: %w", internalerr.ErrInvalidConfig)
	}
	if c.Server.LinesPerSecond <= 0 || c.Server.Burst < 1 {
		return fmt.Errorf("server rate limit must be positive: %w", internalerr.ErrInvalidConfig)
	}
	return nil
}
