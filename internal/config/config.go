// Package config loads the portfolio server configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

const envPrefix = "PORTFOLIO_"

type Config struct {
	Port         int          `koanf:"port" yaml:"port"`
	ContentDir   string       `koanf:"content_dir" yaml:"content_dir"`
	DBPath       string       `koanf:"db_path" yaml:"db_path"`
	GinMode      string       `koanf:"gin_mode" yaml:"gin_mode"`
	DefaultColor string       `koanf:"default_color" yaml:"default_color"`
	Admin        AdminConfig  `koanf:"admin" yaml:"admin"`
	SMTP         SMTPConfig   `koanf:"smtp" yaml:"smtp"`
	GitHub       GitHubConfig `koanf:"github" yaml:"github"`
}

type AdminConfig struct {
	Username string `koanf:"username" yaml:"username"`
	Password string `koanf:"password" yaml:"password"`
}

type SMTPConfig struct {
	Host string `koanf:"host" yaml:"host"`
	Port string `koanf:"port" yaml:"port"`
	User string `koanf:"user" yaml:"user"`
	Pass string `koanf:"pass" yaml:"pass"`
	To   string `koanf:"to" yaml:"to"`
}

// Enabled reports whether credentials are set for sending mail.
func (s SMTPConfig) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

type GitHubConfig struct {
	APIBase  string        `koanf:"api_base" yaml:"api_base"`
	CacheTTL time.Duration `koanf:"cache_ttl" yaml:"cache_ttl"`
}

func DefaultConfig() *Config {
	return &Config{
		Port:       8080,
		ContentDir: "config",
		DBPath:     "data/portfolio.db",
		GinMode:    "release",
		SMTP: SMTPConfig{
			Host: "smtp.gmail.com",
			Port: "587",
		},
		GitHub: GitHubConfig{
			APIBase:  "https://github-contributions-api.jogruber.de/v4",
			CacheTTL: time.Hour,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PORTFOLIO_*). Nested keys use a double
// underscore: PORTFOLIO_SMTP__HOST sets smtp.host.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validGinModes = map[string]bool{
	"debug":   true,
	"release": true,
	"test":    true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if !validGinModes[c.GinMode] {
		return fmt.Errorf("invalid gin_mode %q: must be one of debug, release, test", c.GinMode)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path is required")
	}
	if c.GitHub.CacheTTL < 0 {
		return fmt.Errorf("github.cache_ttl must be non-negative")
	}
	if (c.SMTP.User == "") != (c.SMTP.Pass == "") {
		return fmt.Errorf("smtp.user and smtp.pass must be set together")
	}
	return nil
}
