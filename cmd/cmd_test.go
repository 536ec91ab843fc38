package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/maxlayn1/DevOps-App-Database/internal/database"
)

const smallCounts = "categories=4,users=12,configs=6,environments=5,source_ctrl=3,testing=3," +
	"services=4,pipelines=6,steps=5,deployments=40,logs=90,uses=30,accesses=20"

// execute runs a fresh command tree so no flag state leaks between calls.
func execute(c *qt.C, args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd := NewRootCommand()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func tableCount(c *qt.C, path string) int {
	store, err := database.Open(context.Background(), "sqlite", path)
	c.Assert(err, qt.IsNil)
	defer store.Close()

	var tables int
	err = store.DB().QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'",
	).Scan(&tables)
	c.Assert(err, qt.IsNil)
	return tables
}

func TestSeedCommandCreatesSchemaAndVerifies(t *testing.T) {
	c := qt.New(t)
	t.Setenv("DATABASE_URL", "")
	path := filepath.Join(t.TempDir(), "seed.db")

	out, err := execute(c, "seed",
		"--provider", "sqlite",
		"--url", path,
		"--count", smallCounts,
		"--seed", "7",
		"--create-schema",
		"--verify",
	)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "beginning database seeding")
	c.Assert(out, qt.Contains, "database seeding complete")
	c.Assert(out, qt.Contains, "Verified 13 tables")

	store, err := database.Open(context.Background(), "sqlite", path)
	c.Assert(err, qt.IsNil)

	users, err := store.Count(context.Background(), "User")
	c.Assert(err, qt.IsNil)
	c.Assert(users, qt.Equals, int64(12))

	steps, err := store.Count(context.Background(), "Pipeline_Step")
	c.Assert(err, qt.IsNil)
	c.Assert(steps, qt.Equals, int64(30))
	c.Assert(store.Close(), qt.IsNil)

	out, err = execute(c, "verify", "--provider", "sqlite", "--url", path, "--count", smallCounts)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Database matches the configured counts")

	_, err = execute(c, "verify", "--provider", "sqlite", "--url", path, "--count", smallCounts+",categories=5")
	c.Assert(err, qt.ErrorMatches, `(?s).*verification failed: Tool_Category has 4 rows, want 5.*`)
}

func TestSeedCommandDryRunPrintsPlan(t *testing.T) {
	c := qt.New(t)
	path := filepath.Join(t.TempDir(), "untouched.db")

	out, err := execute(c, "seed", "--provider", "sqlite", "--url", path, "--count", "users=3,configs=2", "--dry-run")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "provider: sqlite\n")
	c.Assert(out, qt.Contains, "- entity: ToolCategory\n")
	c.Assert(out, qt.Contains, "table: Config_File\n")
	c.Assert(out, qt.Contains, "total_rows:")
	c.Assert(out, qt.Not(qt.Contains), "beginning database seeding")

	_, err = os.Stat(path)
	c.Assert(os.IsNotExist(err), qt.IsTrue)
}

func TestSeedCommandInvalidCountsLeaveNoTables(t *testing.T) {
	c := qt.New(t)
	t.Setenv("DATABASE_URL", "")
	path := filepath.Join(t.TempDir(), "seed.db")

	_, err := execute(c, "seed",
		"--provider", "sqlite",
		"--url", path,
		"--count", smallCounts+",users=0",
		"--create-schema",
	)
	c.Assert(err, qt.ErrorMatches, `referenced entity has no rows: .*`)
	c.Assert(tableCount(c, path), qt.Equals, 0)
}

func TestSeedCommandRejectsBadConfig(t *testing.T) {
	c := qt.New(t)

	_, err := execute(c, "seed", "--provider", "oracle", "--dry-run")
	c.Assert(err, qt.ErrorMatches, `invalid config: unsupported database provider: oracle.*`)
}

func TestPlanCommand(t *testing.T) {
	c := qt.New(t)

	out, err := execute(c, "plan", "-o", "yaml", "--count", "users=3")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Matches, `(?s).*table: User\n\s+rows: 3\n.*`)

	out, err = execute(c, "plan")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "Seeding plan")
	c.Assert(out, qt.Contains, "Pipeline_Step")
	c.Assert(out, qt.Contains, "Total:")

	_, err = execute(c, "plan", "--output", "xml")
	c.Assert(err, qt.ErrorMatches, `unknown plan format "xml".*`)
}

func TestSchemaPrintCommand(t *testing.T) {
	c := qt.New(t)

	out, err := execute(c, "schema", "print", "--provider", "postgres")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Contains, "CREATE TABLE IF NOT EXISTS")
	c.Assert(out, qt.Contains, "SERIAL")
}

func TestVersionCommand(t *testing.T) {
	c := qt.New(t)

	out, err := execute(c, "version")
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Matches, `devops-seed version 1\.0\.0 \(go.*\)\n`)
}
