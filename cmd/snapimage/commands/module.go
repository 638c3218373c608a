package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/snapimage/cmd/snapimage/handlers"
)

// Module returns the module command.
//
// The module command implements the task module protocol: it reads the
// argument file, reconciles the request and writes one JSON document to
// stdout.
func Module(global *handlers.GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "module ARGS_FILE",
		Short: "Run as a task module with a JSON or YAML argument file",
		Long: `Module reads parameters from ARGS_FILE and prints a single JSON result.

Parameters:
  image_name         Name of the image (required)
  state              present or absent (default present)
  instance_id        Server to snapshot (required for present)
  instance_name      Accepted, not used
  meta               Image metadata (accepted, not sent)
  wait               Wait for the operation to finish (default no)
  wait_timeout       Seconds to wait (default 300)
  bound_create_wait  Apply wait_timeout to the create wait (default no)
  api_token          API token (default $HCLOUD_TOKEN)
  credentials        Path to a YAML credentials file
  endpoint           API endpoint

The process exits with status 1 when the result reports a failure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.Module(cmd.Context(), *global, args[0])
		},
	}
}
