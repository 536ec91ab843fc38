package config_test

import (
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/spf13/viper"

	"github.com/maxlayn1/DevOps-App-Database/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	c := qt.New(t)

	cfg := config.DefaultConfig()

	c.Assert(cfg.Database.Provider, qt.Equals, "sqlite3")
	c.Assert(cfg.Database.URL, qt.Equals, "devops_management.db")
	c.Assert(cfg.Database.URLEnv, qt.Equals, "DATABASE_URL")
	c.Assert(cfg.BatchSize, qt.Equals, config.DefaultBatchSize)
	c.Assert(cfg.Count(config.CountUsers), qt.Equals, 3000)
	c.Assert(cfg.Count(config.CountLogs), qt.Equals, 200000)
	c.Assert(cfg.Counts, qt.HasLen, 13)
	c.Assert(cfg.Validate(), qt.IsNil)
}

func TestLoadFromFile(t *testing.T) {
	c := qt.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "seed.config.yaml")
	content := `
database:
  provider: postgres
  url: postgres://localhost/devops
counts:
  users: 3
  configs: 2
batch_size: 50
log:
  format: json
`
	c.Assert(os.WriteFile(path, []byte(content), 0o644), qt.IsNil)

	v := viper.New()
	v.SetConfigFile(path)
	c.Assert(v.ReadInConfig(), qt.IsNil)

	cfg, err := config.LoadFrom(v)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Database.Provider, qt.Equals, "postgres")
	c.Assert(cfg.Count(config.CountUsers), qt.Equals, 3)
	c.Assert(cfg.Count(config.CountConfigs), qt.Equals, 2)
	// untouched counts keep their defaults
	c.Assert(cfg.Count(config.CountEnvironments), qt.Equals, config.DefaultNumEnvironments)
	c.Assert(cfg.BatchSize, qt.Equals, 50)
	c.Assert(cfg.Log.Format, qt.Equals, "json")
	c.Assert(cfg.Log.Level, qt.Equals, "info")
}

func TestGetDatabaseURL(t *testing.T) {
	c := qt.New(t)

	cfg := config.DefaultConfig()
	cfg.Database.URLEnv = "DEVOPS_SEED_TEST_URL"

	t.Setenv("DEVOPS_SEED_TEST_URL", "")
	url, err := cfg.GetDatabaseURL()
	c.Assert(err, qt.IsNil)
	c.Assert(url, qt.Equals, "devops_management.db")

	t.Setenv("DEVOPS_SEED_TEST_URL", "file:other.db")
	url, err = cfg.GetDatabaseURL()
	c.Assert(err, qt.IsNil)
	c.Assert(url, qt.Equals, "file:other.db")

	t.Setenv("DEVOPS_SEED_TEST_URL", "")
	cfg.Database.URL = ""
	_, err = cfg.GetDatabaseURL()
	c.Assert(err, qt.ErrorMatches, `database URL not set.*DEVOPS_SEED_TEST_URL`)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		errMsg string
	}{
		{
			name:   "unsupported provider",
			mutate: func(cfg *config.Config) { cfg.Database.Provider = "oracle" },
			errMsg: `unsupported database provider: oracle.*`,
		},
		{
			name:   "negative count",
			mutate: func(cfg *config.Config) { cfg.Counts[config.CountLogs] = -1 },
			errMsg: `count logs cannot be negative: -1`,
		},
		{
			name:   "unknown count",
			mutate: func(cfg *config.Config) { cfg.Counts["widgets"] = 4 },
			errMsg: `unknown count "widgets"`,
		},
		{
			name:   "zero batch size",
			mutate: func(cfg *config.Config) { cfg.BatchSize = 0 },
			errMsg: `batch_size must be positive, got 0`,
		},
		{
			name:   "bad log format",
			mutate: func(cfg *config.Config) { cfg.Log.Format = "xml" },
			errMsg: `log.format must be text or json, got "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			c.Assert(cfg.Validate(), qt.ErrorMatches, tt.errMsg)
		})
	}
}

func TestValidateUnsupportedProviderIs(t *testing.T) {
	c := qt.New(t)

	cfg := config.DefaultConfig()
	cfg.Database.Provider = "mssql"
	c.Assert(cfg.Validate(), qt.ErrorIs, config.ErrUnsupportedProvider)
}
