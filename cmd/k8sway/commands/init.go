package commands

import (
	"github.com/spf13/cobra"

	"github.com/napo-io/k8sway/cmd/k8sway/handlers"
	"github.com/napo-io/k8sway/internal/config"
)

// Init returns the command for interactively creating a configuration.
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a k8sway configuration file.

The wizard asks for the settings that have no safe default:

  - Project and owner tags
  - Deployment region
  - Route53 hosted zone
  - EC2 key pair name (optional)
  - Control-plane access policy
  - Worker count and instance type

Everything else uses the standard four-role cluster defaults and can be
edited in the generated YAML.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
