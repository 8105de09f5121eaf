package handlers

import (
	"context"
	"fmt"

	"github.com/napo-io/k8sway/internal/cfn"
	"github.com/napo-io/k8sway/internal/provisioning"
	imagephase "github.com/napo-io/k8sway/internal/provisioning/image"
	"github.com/napo-io/k8sway/internal/provisioning/infrastructure"
	"github.com/napo-io/k8sway/internal/ui/tui"
)

// SynthOptions controls template synthesis.
type SynthOptions struct {
	// ImagesFile skips the image lookup and reads a saved mapping.
	ImagesFile string
	// Format is "json" or "yaml".
	Format string
	// Output is the template path; "-" or empty writes to stdout.
	Output string
}

// Synth declares the cluster and writes its CloudFormation template without
// touching any stack.
func Synth(ctx context.Context, opts Options, so SynthOptions) error {
	format, err := cfn.ParseFormat(so.Format)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	client, err := newAWSClient(ctx, cfg, opts.Profile)
	if err != nil {
		return err
	}

	var images provisioning.Phase = imagephase.NewProvisioner()
	if so.ImagesFile != "" {
		images = imagephase.NewFileProvisioner(so.ImagesFile)
	}

	// The template may go to stdout, so progress stays in the log.
	opts.Plain = true
	pCtx, err := execute(ctx, opts, cfg, client, nil, tui.Model{},
		provisioning.NewValidationPhase(),
		provisioning.NewWorkstationPhase(),
		images,
		infrastructure.NewProvisioner().WithFormat(format),
	)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	if so.Output == "" || so.Output == "-" {
		_, err := stdout.Write(pCtx.State.TemplateBody)
		return err
	}
	if err := cfn.WriteFile(pCtx.State.Template, format, so.Output); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Template written to %s (%d bytes)\n", so.Output, len(pCtx.State.TemplateBody))
	return nil
}
