package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ntoxeg/narst/pkg/narst/internalerr"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"NARST_STORE", "NARST_MEMORY_PATH", "NARST_DB_PATH", "NARST_LOG_LEVEL", "NARST_MAX_STEPS", "NARST_ADDR"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreMemory {
		t.Errorf("store = %q, want %q", cfg.Store, StoreMemory)
	}
	if cfg.MemoryPath != "testmem.json" {
		t.Errorf("memory path = %q", cfg.MemoryPath)
	}
	if cfg.Server.Addr != "127.0.0.1:7878" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "narst.yaml", `
store: sqlite
db_path: /tmp/beliefs.db
log_level: debug
max_steps: 3
preload:
  - birds.nal
server:
  addr: 0.0.0.0:9000
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.DBPath != "/tmp/beliefs.db" {
		t.Errorf("store = %q db = %q", cfg.Store, cfg.DBPath)
	}
	if cfg.MaxSteps != 3 || cfg.LogLevel != "debug" {
		t.Errorf("max_steps = %d log_level = %q", cfg.MaxSteps, cfg.LogLevel)
	}
	if len(cfg.Preload) != 1 || cfg.Preload[0] != "birds.nal" {
		t.Errorf("preload = %v", cfg.Preload)
	}
	if cfg.Server.Addr != "0.0.0.0:9000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	// Unset keys keep their defaults.
	if cfg.Server.MaxConns != 16 || cfg.Concurrency != 4 {
		t.Errorf("defaults lost: max_conns = %d concurrency = %d", cfg.Server.MaxConns, cfg.Concurrency)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load("/nonexistent/narst.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "narst.yaml", "store: [memory\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NARST_STORE", "sqlite")
	t.Setenv("NARST_DB_PATH", "env.db")
	t.Setenv("NARST_MAX_STEPS", "12")
	t.Setenv("NARST_ADDR", "127.0.0.1:0")
	t.Setenv("NARST_LOG_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.DBPath != "env.db" {
		t.Errorf("store = %q db = %q", cfg.Store, cfg.DBPath)
	}
	if cfg.MaxSteps != 12 {
		t.Errorf("max_steps = %d", cfg.MaxSteps)
	}
	if cfg.Server.Addr != "127.0.0.1:0" || cfg.LogLevel != "warn" {
		t.Errorf("addr = %q log_level = %q", cfg.Server.Addr, cfg.LogLevel)
	}
}

func TestEnvRejectsBadNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("NARST_MAX_STEPS", "many")

	_, err := Load("")
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set.
	os.Unsetenv("NARST_MEMORY_PATH")
	path := writeFile(t, "test.env", "NARST_MEMORY_PATH=from-dotenv.json\n")
	t.Setenv("NARST_ENV", path)

	LoadEnv()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MemoryPath != "from-dotenv.json" {
		t.Errorf("memory path = %q", cfg.MemoryPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Store = "postgres" }},
		{"sqlite without path", func(c *Config) { c.Store = StoreSQLite; c.DBPath = "" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"negative steps", func(c *Config) { c.MaxSteps = -1 }},
		{"zero concurrency", func(c *Config) { c.Concurrency = 0 }},
		{"zero conns", func(c *Config) { c.Server.MaxConns = 0 }},
		{"zero rate", func(c *Config) { c.Server.LinesPerSecond = 0 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, internalerr.ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
