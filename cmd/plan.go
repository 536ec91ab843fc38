package cmd

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/maxlayn1/DevOps-App-Database/internal/config"
	"github.com/maxlayn1/DevOps-App-Database/internal/seeder"
)

func newPlanCommand() *cobra.Command {
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the insertion order and row counts without seeding",
		Long: `Print every table in the order it would be seeded together with its row
count and the tables it references. Nothing is written to the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("output")
			return printPlan(cmd.OutOrStdout(), cfg, format)
		},
	}

	addCountFlags(planCmd)
	planCmd.Flags().StringP("output", "o", "table", "Output format (table, yaml)")
	return planCmd
}

func printPlan(w io.Writer, cfg *config.Config, format string) error {
	plan, err := seeder.BuildPlan(cfg)
	if err != nil {
		return err
	}

	switch format {
	case "yaml":
		out, err := plan.YAML()
		if err != nil {
			return fmt.Errorf("failed to encode plan: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "table":
		color.New(color.FgCyan).Fprintf(w, "📋 Seeding plan (%s)\n\n", plan.Provider)
		for i, step := range plan.Steps {
			fmt.Fprintf(w, "  %2d. ", i+1)
			color.New(color.FgGreen, color.Bold).Fprintf(w, "%-16s", step.Table)
			fmt.Fprintf(w, "%8d rows", step.Rows)
			if len(step.DependsOn) > 0 {
				color.New(color.FgHiBlack).Fprintf(w, "  after %v", step.DependsOn)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
		color.New(color.FgGreen).Fprintf(w, "Total: %d rows\n", plan.Total)
	default:
		return fmt.Errorf("unknown plan format %q (use table or yaml)", format)
	}
	return nil
}
