package commands

import (
	"github.com/spf13/cobra"

	"github.com/napo-io/k8sway/cmd/k8sway/handlers"
)

// Deploy returns the deploy command.
func Deploy(opts *handlers.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "deploy",
		Short: "Create or update the cluster stack",
		Long: `Deploy creates or updates the CloudFormation stack of the cluster.

The command runs these phases in order:
  - validation:     check the configuration
  - workstation:    determine the address allowed to administer the cluster
  - images:         resolve the newest machine image per region
  - infrastructure: look up the hosted zone, declare and synthesize the topology
  - deploy:         upload the template if needed, submit it and wait

Templates above the inline limit need stack.templateBucket.

Example:
  k8sway deploy -c k8sway.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deploy(cmd.Context(), *opts)
		},
	}
}
