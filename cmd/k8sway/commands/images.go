package commands

import (
	"github.com/spf13/cobra"

	"github.com/napo-io/k8sway/cmd/k8sway/handlers"
)

// Images returns the command that resolves the region to image mapping.
//
// Flags:
//
//	--output, -o: Write the mapping as YAML to this file
func Images(opts *handlers.Options) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Resolve the newest machine image in every region",
		Long: `Images queries every configured region (or every region enabled for the
account) for images matching image.namePattern from image.owner and selects
the newest one per region.

Regions without a match are reported. The deployment region must resolve,
and with image.strict every region must.

The saved mapping can be passed to "k8sway synth --images-file".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Images(cmd.Context(), *opts, outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the image mapping to this YAML file")

	return cmd
}
