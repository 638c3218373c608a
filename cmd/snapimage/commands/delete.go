package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/snapimage/cmd/snapimage/handlers"
)

// Delete returns the delete command.
//
// The delete command removes every snapshot image with a given name.
func Delete(global *handlers.GlobalOptions) *cobra.Command {
	var opts handlers.DeleteOptions

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete all snapshot images with a name",
		Long: `Delete removes every snapshot image whose name matches exactly.

Images are deleted one at a time. The first failed deletion stops the run;
images deleted before it are still reported. With --wait each deletion is
followed by polling until the image is gone or --wait-timeout elapses.

On a terminal the matching images are listed and confirmation is requested
unless --yes is given.

Example:
  snapimage delete --name nightly --wait --yes

WARNING: Deleted images cannot be recovered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Delete(cmd.Context(), *global, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Name of the images to delete (required)")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "Wait until each deleted image is gone")
	cmd.Flags().DurationVar(&opts.WaitTimeout, "wait-timeout", 0, "Maximum wait per image (default $HCLOUD_TIMEOUT_IMAGE_WAIT or 5m)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "Skip the confirmation prompt")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", handlers.OutputText, "Output format: text or json")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
