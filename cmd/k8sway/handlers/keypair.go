package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/napo-io/k8sway/internal/util/keygen"
	"github.com/napo-io/k8sway/internal/util/tags"
)

// KeypairOptions controls key pair creation.
type KeypairOptions struct {
	// Name defaults to the configured keyPair.
	Name string
	// Output is the private key path; defaults to <name>.pem.
	Output    string
	Algorithm string
	// Force overwrites an existing private key file.
	Force bool
	// Replace deletes an EC2 key pair of the same name before importing.
	Replace bool
}

// Factory function variables for keypair - can be replaced in tests.
var (
	// generateKeyPair creates a new key pair.
	generateKeyPair = keygen.Generate

	// writeFile writes data to a file.
	writeFile = os.WriteFile

	// removeFile deletes a file.
	removeFile = os.Remove

	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
)

// Keypair generates a key pair, imports the public key into EC2 in the
// deployment region and writes the private key with mode 0600.
func Keypair(ctx context.Context, opts Options, ko KeypairOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	name := ko.Name
	if name == "" {
		name = cfg.KeyPair
	}
	if name == "" {
		return errors.New("no key pair name: set keyPair in the configuration or pass --name")
	}

	output := ko.Output
	if output == "" {
		output = name + ".pem"
	}
	if !ko.Force && fileExists(output) {
		return fmt.Errorf("%s already exists; pass --force to overwrite", output)
	}

	client, err := newAWSClient(ctx, cfg, opts.Profile)
	if err != nil {
		return err
	}

	exists, err := client.KeyPairExists(ctx, cfg.Region, name)
	if err != nil {
		return fmt.Errorf("failed to check key pair %s: %w", name, err)
	}
	if exists && !ko.Replace {
		return fmt.Errorf("key pair %s already exists in %s; pass --replace to replace it", name, cfg.Region)
	}

	kp, err := generateKeyPair(ko.Algorithm)
	if err != nil {
		return err
	}

	if exists {
		if err := client.DeleteKeyPair(ctx, cfg.Region, name); err != nil {
			return fmt.Errorf("failed to delete key pair %s: %w", name, err)
		}
		fmt.Fprintf(stdout, "Deleted existing key pair %s in %s\n", name, cfg.Region)
	}

	// Written before the import; removed again if the import fails.
	if err := writeFile(output, kp.PrivateKey, 0600); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	id, err := client.ImportKeyPair(ctx, cfg.Region, name, kp.PublicKey, tags.NewBuilder(cfg.Project, cfg.Owner).Map())
	if err != nil {
		_ = removeFile(output)
		return fmt.Errorf("failed to import key pair %s: %w", name, err)
	}

	fmt.Fprintf(stdout, "Imported key pair %s (%s) in %s\n", name, id, cfg.Region)
	fmt.Fprintf(stdout, "  Fingerprint: %s\n", kp.Fingerprint)
	fmt.Fprintf(stdout, "  Private key: %s\n", output)
	if cfg.KeyPair != name {
		fmt.Fprintf(stdout, "\nSet keyPair: %s in your configuration to attach it to the cluster.\n", name)
	}
	return nil
}
