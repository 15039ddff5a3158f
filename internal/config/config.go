// Package config loads client configuration.
//
// Precedence (highest to lowest):
//  1. GQTODO_* environment variables (GQTODO_ENDPOINT, GQTODO_LOG_LEVEL, ...)
//  2. YAML config file (~/.config/gqtodo/config.yaml)
//  3. Defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "GQTODO_"

// Config is the full client configuration.
type Config struct {
	Endpoint string        `koanf:"endpoint"` // GraphQL endpoint URL
	Timeout  time.Duration `koanf:"timeout"`  // per-request HTTP timeout
	Theme    string        `koanf:"theme"`    // classic | neon | mono
	Log      LogConfig     `koanf:"log"`
}

// LogConfig controls the file-backed logger. The TUI owns the terminal, so
// logs never go to stdout.
type LogConfig struct {
	Level string `koanf:"level"` // debug | info | warn | error
	File  string `koanf:"file"`  // empty disables logging
}

var defaultYAML = []byte(`
endpoint: http://localhost:4000
timeout: 30s
theme: classic
log:
  level: info
  file: ""
`)

// DefaultPath returns ~/.config/gqtodo/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".config", "gqtodo", "config.yaml"), nil
}

// Load reads configuration from the given YAML file (DefaultPath when
// empty), then applies environment overrides. A missing file is not an
// error; defaults still apply.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultYAML), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}
	if content, err := os.ReadFile(configPath); err == nil {
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// GQTODO_LOG_LEVEL -> log.level, GQTODO_ENDPOINT -> endpoint
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("endpoint must not be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %v", cfg.Timeout)
	}
	return &cfg, nil
}
