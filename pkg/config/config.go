// Package config holds the YAML configuration for the docs server.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"go.mau.fi/util/ptr"
	"go.mau.fi/zeroconfig"
	"gopkg.in/yaml.v3"
)

// Version is the server release, reported by -version and stamped into the
// default User-Agent.
const Version = "0.1.0"

const (
	DefaultBaseURL      = "https://docs.paymanai.com"
	DefaultTimeoutSecs  = 30
	DefaultMaxChars     = 50_000
	DefaultCacheTTLSecs = 3600
	DefaultSchedule     = "@hourly"
	DefaultTokenModel   = "gpt-4o"
	DefaultUserAgent    = "payman-docs-mcp/" + Version
)

// Config is the root configuration.
type Config struct {
	BaseURL string            `yaml:"base_url"`
	Fetch   FetchConfig       `yaml:"fetch"`
	Cache   CacheConfig       `yaml:"cache"`
	Refresh RefreshConfig     `yaml:"refresh"`
	Tokens  TokensConfig      `yaml:"tokens"`
	Logging zeroconfig.Config `yaml:"logging"`
}

// FetchConfig controls the outbound HTTP fetcher.
type FetchConfig struct {
	TimeoutSecs int    `yaml:"timeout_seconds"`
	UserAgent   string `yaml:"user_agent"`
	MaxChars    int    `yaml:"max_chars"`
}

// CacheConfig controls document freshness.
type CacheConfig struct {
	TTLSecs int `yaml:"ttl_seconds"`
}

// RefreshConfig controls background cache warming.
type RefreshConfig struct {
	Enabled  *bool  `yaml:"enabled"`
	Schedule string `yaml:"schedule"`
	OnStart  *bool  `yaml:"on_start"`
}

// TokensConfig controls response token estimation in logs.
type TokensConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Model   string `yaml:"model"`
}

func (c *Config) WithDefaults() *Config {
	if c == nil {
		c = &Config{}
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.Fetch = c.Fetch.withDefaults()
	c.Cache = c.Cache.withDefaults()
	c.Refresh = c.Refresh.withDefaults()
	c.Tokens = c.Tokens.withDefaults()
	if len(c.Logging.Writers) == 0 {
		// Stdout carries the MCP protocol stream in stdio mode, so logs
		// default to stderr.
		c.Logging.Writers = []zeroconfig.WriterConfig{{
			Type:   zeroconfig.WriterTypeStderr,
			Format: zeroconfig.LogFormatPrettyColored,
		}}
	}
	if c.Logging.MinLevel == nil {
		c.Logging.MinLevel = ptr.Ptr(zerolog.InfoLevel)
	}
	return c
}

func (c FetchConfig) withDefaults() FetchConfig {
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = DefaultTimeoutSecs
	}
	if strings.TrimSpace(c.UserAgent) == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.MaxChars <= 0 {
		c.MaxChars = DefaultMaxChars
	}
	return c
}

func (c CacheConfig) withDefaults() CacheConfig {
	if c.TTLSecs <= 0 {
		c.TTLSecs = DefaultCacheTTLSecs
	}
	return c
}

func (c RefreshConfig) withDefaults() RefreshConfig {
	if strings.TrimSpace(c.Schedule) == "" {
		c.Schedule = DefaultSchedule
	}
	return c
}

func (c TokensConfig) withDefaults() TokensConfig {
	if strings.TrimSpace(c.Model) == "" {
		c.Model = DefaultTokenModel
	}
	return c
}

// IsEnabled reports whether scheduled refresh is on. Defaults to off.
func (c RefreshConfig) IsEnabled() bool {
	return isEnabled(c.Enabled, false)
}

// PrewarmOnStart reports whether all topics are fetched at startup. Defaults to off.
func (c RefreshConfig) PrewarmOnStart() bool {
	return isEnabled(c.OnStart, false)
}

// IsEnabled reports whether token estimation is on. Defaults to on.
func (c TokensConfig) IsEnabled() bool {
	return isEnabled(c.Enabled, true)
}

func isEnabled(flag *bool, fallback bool) bool {
	if flag == nil {
		return fallback
	}
	return *flag
}

// Load reads the YAML config at path and applies defaults. An empty path
// yields pure defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	return cfg.WithDefaults(), nil
}
