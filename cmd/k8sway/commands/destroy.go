package commands

import (
	"github.com/spf13/cobra"

	"github.com/napo-io/k8sway/cmd/k8sway/handlers"
)

// Destroy returns the destroy command.
func Destroy(opts *handlers.Options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "destroy",
		Short: "Delete the cluster stack and every resource in it",
		Long: `Destroy deletes the CloudFormation stack of the cluster and waits until
CloudFormation has removed every resource it created: node groups, load
balancers, DNS records, security groups, NAT gateways and the VPC.

A stack that does not exist is not an error.

Example:
  k8sway destroy -c k8sway.yaml

WARNING: This operation is irreversible.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Destroy(cmd.Context(), *opts, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
