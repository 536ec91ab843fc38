package cmd

import (
	"github.com/fatih/color"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/maxlayn1/DevOps-App-Database/internal/seeder"
)

func newVerifyCommand() *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a seeded database against the configured row counts",
		Long: `Compare row counts, key ranges, foreign key ranges, relation uniqueness and
pipeline step numbering with what a seed run using the same configuration
would have produced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			targets := seeder.TargetsFromConfig(cfg)
			if err := seeder.Verify(ctx, store, targets); err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), "✅ Database matches the configured counts")
			return nil
		},
	}

	cobraflags.RegisterMap(verifyCmd, connectionFlags())
	addCountFlags(verifyCmd)
	return verifyCmd
}
