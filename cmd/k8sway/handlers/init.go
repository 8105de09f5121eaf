package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/napo-io/k8sway/internal/config"
)

// Factory function variables for init - can be replaced in tests.
var (
	// runWizard runs the interactive configuration wizard.
	runWizard = config.RunWizard

	// writeConfig writes the config to a file.
	writeConfig = config.WriteFile
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return err
	}

	cfg := result.ToConfig()
	if err := writeConfig(cfg, outputPath); err != nil {
		return err
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, titleStyle.Render("k8sway - Kubernetes the right hard way on AWS"))
	fmt.Fprintln(stdout, dimStyle.Render(strings.Repeat("=", 45)))
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard asks for the settings that have no safe default.")
	fmt.Fprintln(stdout, "Everything else can be tuned in the generated YAML.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, cfg *config.Config) {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(greenStyle.Render("Configuration saved!"))
	fmt.Fprintf(&b, "\n\n  File: %s\n\n", outputPath)

	b.WriteString(sectionStyle.Render("Cluster Summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  Project:       %s\n", cfg.Project)
	fmt.Fprintf(&b, "  Region:        %s\n", cfg.Region)
	fmt.Fprintf(&b, "  Hosted zone:   %s\n", cfg.DNS.Zone)
	fmt.Fprintf(&b, "  Access policy: %s\n", cfg.AccessPolicy)
	fmt.Fprintf(&b, "  Nodes:         bastion %d, etcd %d, master %d, worker %d\n",
		cfg.Nodes.Bastion.Desired, cfg.Nodes.Etcd.Desired, cfg.Nodes.Master.Desired, cfg.Nodes.Worker.Desired)
	fmt.Fprintf(&b, "  Stack:         %s\n\n", cfg.Stack.Name)

	b.WriteString(sectionStyle.Render("Next Steps"))
	b.WriteString("\n")
	if cfg.KeyPair != "" {
		fmt.Fprintf(&b, "  1. Create the key pair (skip if %s exists):\n", cfg.KeyPair)
		b.WriteString("     k8sway keypair\n\n")
	} else {
		b.WriteString("  1. Optionally create a key pair for SSH access:\n")
		b.WriteString("     k8sway keypair --name <name>\n\n")
	}
	b.WriteString("  2. Preview the template:\n")
	b.WriteString("     k8sway synth -o template.json\n\n")
	b.WriteString("  3. Deploy the stack:\n")
	b.WriteString("     k8sway deploy\n")

	fmt.Fprintln(stdout, b.String())
}
