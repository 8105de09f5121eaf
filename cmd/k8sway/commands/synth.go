package commands

import (
	"github.com/spf13/cobra"

	"github.com/napo-io/k8sway/cmd/k8sway/handlers"
)

// Synth returns the command that writes the CloudFormation template.
func Synth(opts *handlers.Options) *cobra.Command {
	var so handlers.SynthOptions

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Write the CloudFormation template without deploying it",
		Long: `Synth runs every deploy phase up to template synthesis and writes the
template instead of submitting it.

Example:
  k8sway synth --format yaml -o template.yaml
  k8sway images -o images.yaml && k8sway synth --images-file images.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Synth(cmd.Context(), *opts, so)
		},
	}

	cmd.Flags().StringVar(&so.ImagesFile, "images-file", "", "Use a mapping saved by \"k8sway images\" instead of looking images up")
	cmd.Flags().StringVarP(&so.Format, "format", "f", "json", "Template format: json or yaml")
	cmd.Flags().StringVarP(&so.Output, "output", "o", "-", "Template path (- for stdout)")

	return cmd
}
