package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/maxlayn1/DevOps-App-Database/internal/config"
	"github.com/maxlayn1/DevOps-App-Database/internal/seeder"
)

const (
	providerFlag     = "provider"
	urlFlag          = "url"
	countFlag        = "count"
	batchSizeFlag    = "batch-size"
	seedFlag         = "seed"
	dryRunFlag       = "dry-run"
	createSchemaFlag = "create-schema"
	verifyFlag       = "verify"
)

// connectionFlags returns a fresh flag set for each command that talks to
// the database.
func connectionFlags() map[string]cobraflags.Flag {
	return map[string]cobraflags.Flag{
		providerFlag: &cobraflags.StringFlag{
			Name:  providerFlag,
			Value: "",
			Usage: "Database provider (sqlite3, sqlite, postgres, mysql). Overrides database.provider",
		},
		urlFlag: &cobraflags.StringFlag{
			Name:  urlFlag,
			Value: "",
			Usage: "Database URL or file path. Overrides database.url and the url_env variable",
		},
	}
}

func newSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with synthetic rows",
		Long: `Generate randomized rows for every DevOps table and bulk insert them in
foreign key order inside a single transaction. The schema must already exist
unless --create-schema is given.

Examples:
  devops-seed seed                                   # defaults, ./devops_management.db
  devops-seed seed --count users=3,configs=2         # override row counts
  devops-seed seed --provider postgres --url postgres://localhost/devops
  devops-seed seed --dry-run                         # print the plan only`,
		RunE: runSeed,
	}

	cobraflags.RegisterMap(seedCmd, connectionFlags())
	addCountFlags(seedCmd)
	seedCmd.Flags().Int(batchSizeFlag, config.DefaultBatchSize, "Rows per INSERT statement (capped by the driver's parameter limit)")
	seedCmd.Flags().Uint64(seedFlag, 0, "Random seed; 0 picks one from the clock")
	seedCmd.Flags().Bool(dryRunFlag, false, "Print the seeding plan without touching the database")
	seedCmd.Flags().Bool(createSchemaFlag, false, "Create the DevOps tables before seeding")
	seedCmd.Flags().Bool(verifyFlag, false, "Check counts and foreign key ranges after seeding")
	return seedCmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	dryRun, _ := flags.GetBool(dryRunFlag)
	createSchema, _ := flags.GetBool(createSchemaFlag)
	verify, _ := flags.GetBool(verifyFlag)
	out := cmd.OutOrStdout()

	if dryRun {
		return printPlan(out, cfg, "yaml")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	// Targets are validated here, before any DDL runs.
	s, err := seeder.New(store, cfg, seeder.WithLogger(log), seeder.WithOutput(out))
	if err != nil {
		return err
	}

	if createSchema {
		if err := store.ApplySchema(ctx); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		log.WithField("provider", store.Dialect().Name()).Info("schema created")
	}

	report, err := s.Seed(ctx)
	if err != nil {
		return err
	}
	log.WithField("rows", report.Total()).WithField("duration", report.Duration.String()).Info("seed finished")

	if verify {
		if err := seeder.Verify(ctx, store, s.Targets()); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(out, "✅ Verified %d tables\n", len(report.Batches))
	}
	return nil
}

// applySeedFlags copies explicitly set seeding flags onto cfg.
func applySeedFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Lookup(countFlag) != nil && flags.Changed(countFlag) {
		counts, err := flags.GetStringToInt(countFlag)
		if err != nil {
			return err
		}
		for key, n := range counts {
			cfg.Counts[key] = n
		}
	}
	if flags.Lookup(batchSizeFlag) != nil && flags.Changed(batchSizeFlag) {
		n, err := flags.GetInt(batchSizeFlag)
		if err != nil {
			return err
		}
		cfg.BatchSize = n
	}
	if flags.Lookup(seedFlag) != nil && flags.Changed(seedFlag) {
		n, err := flags.GetUint64(seedFlag)
		if err != nil {
			return err
		}
		cfg.RandomSeed = n
	}
	return nil
}

// addCountFlags registers the row-count flag shared by seed, plan and verify.
func addCountFlags(cmd *cobra.Command) {
	cmd.Flags().StringToInt(countFlag, nil, "Row count overrides, e.g. users=3,configs=2,logs=100")
}
