// Package config loads gateway configuration from YAML with environment
// variable expansion, or directly from the environment when no file is used.
package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/openwebgate/vaultrelay/internal/model"
)

// Defaults applied when a value is not configured.
const (
	DefaultAddr         = ":9880"
	DefaultStoreTimeout = 30 * time.Second
	DefaultVaultMount   = "secret"
)

// Config represents the complete vaultrelay configuration.
type Config struct {
	Server          ServerConfig       `yaml:"server"`
	Upstream        UpstreamConfig     `yaml:"upstream"`
	ConnectionStore StoreConfig        `yaml:"connection_store"`
	Vault           VaultConfig        `yaml:"vault"`
	Admin           AdminConfig        `yaml:"admin"`
	Logging         LoggingConfig      `yaml:"logging"`
	Models          []model.Descriptor `yaml:"models"`
}

// ServerConfig holds the listen address.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// UpstreamConfig holds the downstream agent runtime endpoint that chat
// requests are forwarded to.
type UpstreamConfig struct {
	ChatURL string `yaml:"chat_url"`
}

// StoreConfig holds the remote connection store settings.
type StoreConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	TimeoutRaw string `yaml:"timeout"`
}

// VaultConfig describes the backend vault layout, used only for diagnostics.
type VaultConfig struct {
	Mount string `yaml:"mount"`
}

// AdminConfig holds the admin API key protecting diagnostic endpoints.
type AdminConfig struct {
	APIKey string `yaml:"api_key"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads a configuration file from the given path and returns a parsed
// Config. Environment variables in the format ${VAR_NAME} are expanded and
// duration strings are parsed into time.Duration values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := envVarPattern.ReplaceAllStringFunc(string(data), func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a configuration from environment variables alone, for
// deployments without a config file.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Server:   ServerConfig{Addr: addrFromEnv()},
		Upstream: UpstreamConfig{ChatURL: os.Getenv("UPSTREAM_CHAT_URL")},
		ConnectionStore: StoreConfig{
			BaseURL:    os.Getenv("CONNECTION_STORE_URL"),
			TimeoutRaw: os.Getenv("CONNECTION_STORE_TIMEOUT"),
		},
		Vault:   VaultConfig{Mount: os.Getenv("VAULT_MOUNT_PATH")},
		Admin:   AdminConfig{APIKey: os.Getenv("ADMIN_API_KEY")},
		Logging: LoggingConfig{Level: os.Getenv("LOG_LEVEL")},
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func addrFromEnv() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ""
}

// finalize applies defaults, parses raw durations, and validates required
// fields.
func (c *Config) finalize() error {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Vault.Mount == "" {
		c.Vault.Mount = DefaultVaultMount
	}

	c.ConnectionStore.Timeout = DefaultStoreTimeout
	if c.ConnectionStore.TimeoutRaw != "" {
		d, err := time.ParseDuration(c.ConnectionStore.TimeoutRaw)
		if err != nil {
			return fmt.Errorf("parsing connection_store.timeout: %w", err)
		}
		c.ConnectionStore.Timeout = d
	}

	if c.Upstream.ChatURL == "" {
		return fmt.Errorf("upstream.chat_url is required")
	}
	if c.ConnectionStore.BaseURL == "" {
		return fmt.Errorf("connection_store.base_url is required")
	}
	return nil
}
