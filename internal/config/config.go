// Package config loads client configuration from the environment, with an
// optional .env file for development setups.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the CLI needs before a command runs.
// Flags override these values; these override the built-in defaults.
type Config struct {
	BaseURL  string        // server base URL
	Timeout  time.Duration // per-command deadline
	DataDir  string        // where session and settings files live
	Insecure bool          // skip TLS verification (dev)
}

// Load reads FIML_* variables, after sourcing a .env file if one exists in
// the working directory. A missing .env is not an error.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		BaseURL: "http://localhost:8080",
		Timeout: 30 * time.Second,
		DataDir: defaultDataDir(),
	}
	if v := os.Getenv("FIML_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("FIML_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if v := os.Getenv("FIML_CONFIG_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FIML_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Insecure = b
		}
	}
	return cfg
}

// defaultDataDir follows XDG, falling back to ~/.config.
func defaultDataDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "fiml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "fiml")
}
