// internal/config/config.go
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		// URL is the daemon address the TUI client talks to.
		URL string `yaml:"url"`
		// Host and Port are the daemon's listen address.
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		// LogRequests turns on per-request logging in the daemon.
		LogRequests bool `yaml:"log_requests"`
	} `yaml:"server"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
}

// Load reads config.yaml from the user config dir, expanding environment
// variables. A missing file yields the defaults.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return defaults if no config file
		return defaultConfig(), nil
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = "http://127.0.0.1:3000"
	}
}

func ConfigPath() string {
	configDir, _ := os.UserConfigDir()
	if configDir == "" {
		configDir = os.ExpandEnv("$HOME/.config")
	}
	return filepath.Join(configDir, "vetchat", "config.yaml")
}
