// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/napo-io/k8sway/cmd/k8sway/handlers"
)

// Root returns the root command for the k8sway CLI.
//
// Global flags are bound once here and handed to every subcommand.
func Root() *cobra.Command {
	opts := &handlers.Options{}

	cmd := &cobra.Command{
		Use:   "k8sway",
		Short: "Declare and deploy the AWS infrastructure for a hand-built Kubernetes cluster",
		Long: `k8sway resolves machine images, declares the network, security groups,
node groups, load balancers and DNS records of a Kubernetes cluster built the
hard way, and deploys them as a single CloudFormation stack.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: nearest k8sway.yaml)")
	flags.StringVar(&opts.LogFormat, "log-format", handlers.LogFormatText, "Log format: text or json")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "Write image lookup metrics in Prometheus text format to this file")
	flags.StringVar(&opts.Profile, "profile", "", "AWS shared config profile")
	flags.StringVar(&opts.Region, "region", "", "Override the configured deployment region")
	flags.BoolVar(&opts.Plain, "plain", false, "Disable the interactive progress view")

	// Core commands
	cmd.AddCommand(Init())
	cmd.AddCommand(Deploy(opts))
	cmd.AddCommand(Destroy(opts))

	// Utility commands
	cmd.AddCommand(Images(opts))
	cmd.AddCommand(Synth(opts))
	cmd.AddCommand(Keypair(opts))
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
