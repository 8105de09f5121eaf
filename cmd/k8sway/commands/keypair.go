package commands

import (
	"github.com/spf13/cobra"

	"github.com/napo-io/k8sway/cmd/k8sway/handlers"
	"github.com/napo-io/k8sway/internal/util/keygen"
)

// Keypair returns the command that creates and imports an EC2 key pair.
func Keypair(opts *handlers.Options) *cobra.Command {
	var ko handlers.KeypairOptions

	cmd := &cobra.Command{
		Use:   "keypair",
		Short: "Generate an SSH key pair and import it into EC2",
		Long: `Keypair generates a new key pair, imports the public key into EC2 in the
deployment region and writes the private key to a file readable only by
the current user.

The name defaults to keyPair from the configuration. An EC2 key pair of
the same name is only replaced with --replace.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Keypair(cmd.Context(), *opts, ko)
		},
	}

	cmd.Flags().StringVar(&ko.Name, "name", "", "Key pair name (default: keyPair from the configuration)")
	cmd.Flags().StringVarP(&ko.Output, "output", "o", "", "Private key path (default: <name>.pem)")
	cmd.Flags().StringVar(&ko.Algorithm, "algorithm", keygen.AlgorithmRSA, "Key algorithm: rsa or ed25519")
	cmd.Flags().BoolVar(&ko.Force, "force", false, "Overwrite an existing private key file")
	cmd.Flags().BoolVar(&ko.Replace, "replace", false, "Delete an existing EC2 key pair of the same name first")

	return cmd
}
