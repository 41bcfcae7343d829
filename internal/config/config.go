// Package config defines the campusgate configuration file format and its
// defaults. Environment overrides are applied by the CLI layer via viper.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration file.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Google   GoogleConfig   `yaml:"google"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig controls the HTTP server behavior.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
	FrontendOrigin  string `yaml:"frontend_origin"`
}

// DatabaseConfig locates the relational store. Either set DSN directly, or
// set the host/user/password/name fields and let DSN be derived.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	DSN      string `yaml:"dsn"`
}

// ResolveDSN returns the connection string for the configured driver.
func (d DatabaseConfig) ResolveDSN() (string, error) {
	if d.DSN != "" {
		return d.DSN, nil
	}
	switch d.Driver {
	case "mysql":
		port := d.Port
		if port == 0 {
			port = 3306
		}
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			d.User, d.Password, d.Host, port, d.Name), nil
	case "sqlite":
		if d.Name == "" {
			return ":memory:", nil
		}
		return d.Name, nil
	default:
		return "", fmt.Errorf("unsupported database driver: %q", d.Driver)
	}
}

// AuthConfig controls token issuance. StudentSecret and AdminSecret must
// differ so the two token classes are never interchangeable.
type AuthConfig struct {
	StudentSecret string `yaml:"student_secret"`
	AdminSecret   string `yaml:"admin_secret"`
	TokenTTL      string `yaml:"token_ttl"`
}

// TTL returns the parsed token lifetime, defaulting to 24h.
func (a AuthConfig) TTL() time.Duration {
	ttl, err := time.ParseDuration(a.TokenTTL)
	if err != nil || ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}

// GoogleConfig holds the OAuth client ID used as the expected audience when
// verifying Google ID tokens.
type GoogleConfig struct {
	ClientID string `yaml:"client_id"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ShutdownTimeout: "30s",
			FrontendOrigin:  "http://localhost:3000",
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Name:   "campusgate.db",
		},
		Auth: AuthConfig{
			TokenTTL: "24h",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file, applying defaults for unset fields. A
// missing file is not an error; defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return cfg, nil
}

// ShutdownTimeoutDuration returns the parsed shutdown timeout, defaulting
// to 30s.
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(s.ShutdownTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}
