package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/maxlayn1/DevOps-App-Database/internal/database"
)

func newSchemaCommand() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or apply the DevOps table definitions",
	}

	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the CREATE TABLE script for the configured provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			dialect, err := database.NewDialect(cfg.Database.Provider)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), dialect.SchemaSQL())
			return nil
		},
	}

	applyCmd := &cobra.Command{
		Use:   "apply",
		Short: "Create any missing DevOps tables",
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

			if err := store.ApplySchema(ctx); err != nil {
				return fmt.Errorf("failed to create schema: %w", err)
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✅ Schema applied (%s)\n", store.Dialect().Name())
			return nil
		},
	}

	cobraflags.RegisterMap(printCmd, connectionFlags())
	cobraflags.RegisterMap(applyCmd, connectionFlags())
	schemaCmd.AddCommand(printCmd, applyCmd)
	return schemaCmd
}
