package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Supported password hashers for [AuthConfig.Hasher].
const (
	HasherPlain  = "plain"
	HasherBcrypt = "bcrypt"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Files    FilesConfig    `toml:"files"`
	Database DatabaseConfig `toml:"database"`
	Auth     AuthConfig     `toml:"auth"`
	Log      LogConfig      `toml:"log"`
}

// FilesConfig contains the backing file paths for each store.
type FilesConfig struct {
	Catalog     string `toml:"catalog"`
	Credentials string `toml:"credentials"`
	Watchlist   string `toml:"watchlist"`
}

// DatabaseConfig contains settings for the SQLite catalog mirror.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// AuthConfig selects how passwords are stored and how fast logins may be retried.
type AuthConfig struct {
	Hasher     string  `toml:"hasher"`
	BcryptCost int     `toml:"bcrypt_cost"`
	LoginRate  float64 `toml:"login_rate"`
	LoginBurst int     `toml:"login_burst"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate rejects empty file paths and unknown hashers.
func (c *Config) Validate() error {
	paths := map[string]string{
		"files.catalog":     c.Files.Catalog,
		"files.credentials": c.Files.Credentials,
		"files.watchlist":   c.Files.Watchlist,
	}
	for key, value := range paths {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%w: %s must be set", ErrInvalidConfig, key)
		}
	}

	switch c.Auth.Hasher {
	case HasherPlain, HasherBcrypt:
	default:
		return fmt.Errorf("%w: unknown auth.hasher %q", ErrInvalidConfig, c.Auth.Hasher)
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
