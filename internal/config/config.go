package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/viper"
)

// Default row counts per entity.
const (
	DefaultNumCategories   = 10
	DefaultNumUsers        = 3000
	DefaultNumConfigs      = 2000
	DefaultNumEnvironments = 2000
	DefaultNumSourceCtrl   = 20
	DefaultNumTesting      = 20
	DefaultNumServices     = 50
	DefaultNumPipelines    = 50
	DefaultNumSteps        = 5
	DefaultNumDeployments  = 50000
	DefaultNumLogs         = 200000
	DefaultNumUses         = 1000
	DefaultNumAccesses     = 1000

	DefaultBatchSize         = 500
	DefaultMaxAttemptsFactor = 50
)

// Count keys as they appear under `counts` in the config file and in --count.
const (
	CountCategories   = "categories"
	CountUsers        = "users"
	CountConfigs      = "configs"
	CountEnvironments = "environments"
	CountSourceCtrl   = "source_ctrl"
	CountTesting      = "testing"
	CountServices     = "services"
	CountPipelines    = "pipelines"
	CountSteps        = "steps"
	CountDeployments  = "deployments"
	CountLogs         = "logs"
	CountUses         = "uses"
	CountAccesses     = "accesses"
)

var ErrUnsupportedProvider = errors.New("unsupported database provider")

var supportedProviders = []string{"sqlite3", "sqlite", "postgresql", "postgres", "mysql"}

type Config struct {
	Database          Database       `json:"database" yaml:"database" mapstructure:"database"`
	Counts            map[string]int `json:"counts" yaml:"counts" mapstructure:"counts"`
	BatchSize         int            `json:"batch_size" yaml:"batch_size" mapstructure:"batch_size"`
	RandomSeed        uint64         `json:"random_seed" yaml:"random_seed" mapstructure:"random_seed"` // 0 picks a time based seed
	MaxAttemptsFactor int            `json:"max_attempts_factor" yaml:"max_attempts_factor" mapstructure:"max_attempts_factor"`
	Log               Log            `json:"log" yaml:"log" mapstructure:"log"`
}

type Database struct {
	Provider string `json:"provider" yaml:"provider" mapstructure:"provider"`
	URL      string `json:"url" yaml:"url" mapstructure:"url"`
	URLEnv   string `json:"url_env" yaml:"url_env" mapstructure:"url_env"`
}

type Log struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level"`
	Format string `json:"format" yaml:"format" mapstructure:"format"` // text or json
}

// DefaultCounts returns a fresh map with the stock row count of every entity.
func DefaultCounts() map[string]int {
	return map[string]int{
		CountCategories:   DefaultNumCategories,
		CountUsers:        DefaultNumUsers,
		CountConfigs:      DefaultNumConfigs,
		CountEnvironments: DefaultNumEnvironments,
		CountSourceCtrl:   DefaultNumSourceCtrl,
		CountTesting:      DefaultNumTesting,
		CountServices:     DefaultNumServices,
		CountPipelines:    DefaultNumPipelines,
		CountSteps:        DefaultNumSteps,
		CountDeployments:  DefaultNumDeployments,
		CountLogs:         DefaultNumLogs,
		CountUses:         DefaultNumUses,
		CountAccesses:     DefaultNumAccesses,
	}
}

func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the configuration that viper collected from the config file,
// environment and bound flags, and fills in defaults.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.Provider == "" {
		c.Database.Provider = "sqlite3"
	}
	if c.Database.URL == "" {
		c.Database.URL = "devops_management.db"
	}
	if c.Database.URLEnv == "" {
		c.Database.URLEnv = "DATABASE_URL"
	}

	counts := DefaultCounts()
	for key, n := range c.Counts {
		counts[key] = n
	}
	c.Counts = counts

	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.MaxAttemptsFactor == 0 {
		c.MaxAttemptsFactor = DefaultMaxAttemptsFactor
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// GetDatabaseURL prefers the environment variable named by url_env and falls
// back to the configured url.
func (c *Config) GetDatabaseURL() (string, error) {
	if c.Database.URLEnv != "" {
		if dbURL := os.Getenv(c.Database.URLEnv); dbURL != "" {
			return dbURL, nil
		}
	}
	if c.Database.URL == "" {
		return "", fmt.Errorf("database URL not set: configure database.url or export %s", c.Database.URLEnv)
	}
	return c.Database.URL, nil
}

// Count returns the configured row count for key.
func (c *Config) Count(key string) int {
	return c.Counts[key]
}

func (c *Config) Validate() error {
	supported := false
	for _, provider := range supportedProviders {
		if c.Database.Provider == provider {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("%w: %s. Supported providers: %v", ErrUnsupportedProvider, c.Database.Provider, supportedProviders)
	}

	known := DefaultCounts()
	keys := make([]string, 0, len(c.Counts))
	for key := range c.Counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("unknown count %q", key)
		}
		if c.Counts[key] < 0 {
			return fmt.Errorf("count %s cannot be negative: %d", key, c.Counts[key])
		}
	}

	if c.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be positive, got %d", c.BatchSize)
	}
	if c.MaxAttemptsFactor <= 0 {
		return fmt.Errorf("max_attempts_factor must be positive, got %d", c.MaxAttemptsFactor)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}
