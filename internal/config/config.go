// Package config provides configuration management for hostsadmin.
//
// Config file locations (priority order):
//  1. $HOSTSADMIN_CONFIG
//  2. ./hostsadmin.yaml
//  3. ~/.config/hostsadmin/config.yaml
//  4. /etc/hostsadmin/config.yaml
//
// The data directory is resolved separately: $HOSTSADMIN_DATA_DIR beats
// the config file's data_dir, which beats the runtime mode's default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	Version int    `yaml:"version"`
	Addr    string `yaml:"addr"`
	Mode    Mode   `yaml:"mode"`
	DataDir string `yaml:"data_dir"`

	// SerializeWrites makes every mutation hold a shared lock across its
	// read-modify-write cycle. Off by default: the unlocked behavior
	// (last write wins under concurrent tabs) matches the original tool.
	SerializeWrites bool `yaml:"serialize_writes"`

	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig holds the single admin credential pair. PasswordHash, when
// set, takes precedence over the plain Password.
type AuthConfig struct {
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	PasswordHash string `yaml:"password_hash,omitempty"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Addr:    ":3000",
		Mode:    ModeDevelopment,
		Auth:    AuthConfig{Username: "admin", Password: "123456"},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Mode == "" {
		c.Mode = ModeDevelopment
	}
	if c.Auth.Username == "" {
		c.Auth.Username = "admin"
	}
	if c.Auth.Password == "" && c.Auth.PasswordHash == "" {
		c.Auth.Password = "123456"
	}
}

// EffectiveMode returns the mode to use ($HOSTSADMIN_MODE > config > default)
func (c *Config) EffectiveMode() Mode {
	if env := os.Getenv(EnvMode); env != "" {
		return ParseMode(env)
	}
	if c.Mode != "" {
		return c.Mode
	}
	return ModeDevelopment
}

// EffectiveDataDir resolves the data directory
// ($HOSTSADMIN_DATA_DIR > config data_dir > mode default)
func (c *Config) EffectiveDataDir() string {
	if env := os.Getenv(EnvDataDir); env != "" {
		return env
	}
	if c.DataDir != "" {
		return c.DataDir
	}
	return c.EffectiveMode().DefaultDataDir()
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	return fmt.Sprintf("Mode: %s, Addr: %s, Data dir: %s, Serialized writes: %v",
		c.EffectiveMode(), c.Addr, c.EffectiveDataDir(), c.SerializeWrites)
}
