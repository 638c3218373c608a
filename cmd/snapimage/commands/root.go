// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/imamik/snapimage/cmd/snapimage/handlers"
)

// Root returns the root command for the snapimage CLI.
func Root() *cobra.Command {
	var global handlers.GlobalOptions

	cmd := &cobra.Command{
		Use:           "snapimage",
		Short:         "Create and delete Hetzner Cloud snapshot images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// A missing .env is fine.
			_ = godotenv.Load()
			if global.MetricsFile == "" {
				global.MetricsFile = os.Getenv("SNAPIMAGE_METRICS_FILE")
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&global.Token, "token", "", "Hetzner Cloud API token (default $HCLOUD_TOKEN)")
	flags.StringVar(&global.Credentials, "credentials", "", "Path to a YAML credentials file with token and endpoint keys")
	flags.StringVar(&global.Endpoint, "endpoint", "", "Hetzner Cloud API endpoint (default $HCLOUD_ENDPOINT or the public API)")
	flags.StringVar(&global.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	flags.StringVar(&global.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&global.LogFormat, "log-format", "", "Log format: console or json (default console on a terminal)")
	flags.StringVar(&global.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit (default $SNAPIMAGE_METRICS_FILE)")

	cmd.AddCommand(Create(&global))
	cmd.AddCommand(Delete(&global))
	cmd.AddCommand(Module(&global))
	cmd.AddCommand(Version())

	return cmd
}
