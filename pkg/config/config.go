// Package config provides configuration for the finledger binaries.
// Values come from an optional YAML file, a .env file and environment
// variables, with the environment winning.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultDBPath is used when no database path is configured.
const DefaultDBPath = "./data/finledger.db"

// DefaultListenAddr is the HTTP server's default bind address.
const DefaultListenAddr = ":8080"

// Config represents the application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Debug    bool           `yaml:"debug"`
}

// DatabaseConfig represents ledger store configuration.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Load loads configuration. It reads the YAML file named by
// FINLEDGER_CONFIG (or finledger.yaml in the working directory, when
// present), loads a .env file if one exists, then applies environment
// variables on top. You can optionally pass a custom .env path.
func Load(envPath ...string) (*Config, error) {
	// Load .env file
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	cfg := &Config{
		Database: DatabaseConfig{Path: DefaultDBPath},
		Server:   ServerConfig{ListenAddr: DefaultListenAddr},
	}

	yamlPath := os.Getenv("FINLEDGER_CONFIG")
	if yamlPath == "" {
		if _, err := os.Stat("finledger.yaml"); err == nil {
			yamlPath = "finledger.yaml"
		}
	}
	if yamlPath != "" {
		if err := cfg.applyYAML(yamlPath); err != nil {
			return nil, err
		}
	}

	// Environment variables override file values.
	if v := os.Getenv("FINLEDGER_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("FINLEDGER_LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if os.Getenv("FINLEDGER_DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, nil
}

func (c *Config) applyYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if fileCfg.Database.Path != "" {
		c.Database.Path = fileCfg.Database.Path
	}
	if fileCfg.Server.ListenAddr != "" {
		c.Server.ListenAddr = fileCfg.Server.ListenAddr
	}
	if fileCfg.Debug {
		c.Debug = true
	}
	return nil
}
