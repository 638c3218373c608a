package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/snapimage/cmd/snapimage/handlers"
)

// Create returns the create command.
//
// The create command requests a snapshot image of a server and, with
// --wait, polls it until it becomes ACTIVE or ERROR.
func Create(global *handlers.GlobalOptions) *cobra.Command {
	var opts handlers.CreateOptions

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a snapshot image of a server",
		Long: `Create requests a snapshot image of a server.

Each invocation creates a new image, even if one with the same name exists.
With --wait the command polls the image until it is ACTIVE or ERROR and
fails if it ends in ERROR. The wait is bounded only by interruption unless
--bound-create-wait is given, in which case --wait-timeout applies.

Example:
  snapimage create --instance-id 42 --name nightly --wait`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Create(cmd.Context(), *global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.InstanceID, "instance-id", "", "ID of the server to snapshot (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Name of the snapshot image (required)")
	cmd.Flags().StringToStringVar(&opts.Meta, "meta", nil, "Image metadata as key=value (accepted, not sent)")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "Wait for the image to become ACTIVE or ERROR")
	cmd.Flags().DurationVar(&opts.WaitTimeout, "wait-timeout", 0, "Maximum wait with --bound-create-wait (default $HCLOUD_TIMEOUT_IMAGE_WAIT or 5m)")
	cmd.Flags().BoolVar(&opts.BoundCreateWait, "bound-create-wait", false, "Apply --wait-timeout to the create wait")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format: text or json")
	_ = cmd.MarkFlagRequired("instance-id")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
