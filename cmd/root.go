package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Version = "1.0.0"

func showBanner(w io.Writer) {
	green := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔══════════════════════════════════════════════╗",
		"║        devops-seed  ·  synthetic data        ║",
		"║   users · environments · pipelines · logs    ║",
		"╚══════════════════════════════════════════════╝",
	}
	for _, line := range banner {
		green.Fprintln(w, line)
	}

	fmt.Fprint(w, "                ")
	color.New(color.FgCyan, color.Bold).Fprint(w, "Version: ")
	color.New(color.FgYellow, color.Bold).Fprintf(w, "%s\n", Version)
}

// NewRootCommand builds the whole command tree. Every call gets its own
// flag state.
func NewRootCommand() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "devops-seed",
		Short: "Populate a DevOps management database with synthetic data",
		Long: `
devops-seed fills an existing DevOps management schema (users, environments,
config files, tools, services, pipelines, deployments, logs and grants) with
randomized rows, inserting every table after the tables it references.

Database Support:
- SQLite (sqlite3 via cgo, or the pure Go sqlite driver)
- PostgreSQL
- MySQL`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig(cfgFile)
		},
		Run: func(cmd *cobra.Command, args []string) {
			showVersion, _ := cmd.Flags().GetBool("version")
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "devops-seed version %s\n", Version)
				return
			}

			showBanner(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout())
			_ = cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./seed.config.yaml or ./seed.config.json)")
	rootCmd.PersistentFlags().String("log-level", "", "diagnostic log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "diagnostic log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")

	rootCmd.AddCommand(
		newSeedCommand(),
		newPlanCommand(),
		newSchemaCommand(),
		newVerifyCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the CLI with a context that is cancelled on SIGINT/SIGTERM.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

func initConfig(cfgFile string) {
	if err := godotenv.Load(); err != nil {
		_ = godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("seed.config")
	}

	viper.SetEnvPrefix("DEVOPS_SEED")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing || cfgFile != "" {
			color.Yellow("⚠️  Could not read config: %v", err)
		}
	}
}
