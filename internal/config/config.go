// Package config provides YAML-based configuration loading for Threadline.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config is the top-level Threadline configuration, loaded from config.yaml.
type Config struct {
	EnvironmentURL string         `yaml:"environment_url"`
	Viewer         ViewerConfig   `yaml:"viewer"`
	Database       DatabaseConfig `yaml:"database"`
	Server         ServerConfig   `yaml:"server"`
	Display        DisplayConfig  `yaml:"display"`
}

// ViewerConfig identifies who the conversation views are rendered for.
type ViewerConfig struct {
	AccountID int64 `yaml:"account_id"`
	Offline   bool  `yaml:"offline"`
}

// DatabaseConfig holds connection settings for the action store. The mysql
// driver also serves Dolt SQL servers.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ServerConfig configures the JSON view server.
type ServerConfig struct {
	Port    int    `yaml:"port"`
	Refresh string `yaml:"refresh"`
}

// DisplayConfig tunes how summaries are rendered.
type DisplayConfig struct {
	LastMessageMaxLength int `yaml:"last_message_max_length"`
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	DefaultEnvironmentURL = "https://new.expensify.com"
	DefaultRefresh        = "* * * * *"
)

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.EnvironmentURL == "" {
		c.EnvironmentURL = DefaultEnvironmentURL
	}
	c.EnvironmentURL = strings.TrimRight(c.EnvironmentURL, "/")

	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			c.Database.Path = "threadline.db"
		}
	case DriverMySQL:
		if c.Database.Host == "" {
			c.Database.Host = "127.0.0.1"
		}
		if c.Database.Port == 0 {
			c.Database.Port = 3306
		}
		if c.Database.User == "" {
			c.Database.User = "root"
		}
		if c.Database.Name == "" {
			c.Database.Name = "threadline"
		}
	}

	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Refresh == "" {
		c.Server.Refresh = DefaultRefresh
	}
	if c.Display.LastMessageMaxLength == 0 {
		c.Display.LastMessageMaxLength = 200
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	if c.Viewer.AccountID <= 0 {
		errs = append(errs, "viewer.account_id is required")
	}
	if c.Database.Driver != DriverSQLite && c.Database.Driver != DriverMySQL {
		errs = append(errs, fmt.Sprintf("database.driver %q is not one of sqlite, mysql", c.Database.Driver))
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if _, err := cron.ParseStandard(c.Server.Refresh); err != nil {
		errs = append(errs, fmt.Sprintf("server.refresh %q: %v", c.Server.Refresh, err))
	}
	if c.Display.LastMessageMaxLength < 0 {
		errs = append(errs, "display.last_message_max_length must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
