package handlers

import (
	"context"
	"fmt"

	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/provisioning"
	imagephase "github.com/napo-io/k8sway/internal/provisioning/image"
	"github.com/napo-io/k8sway/internal/provisioning/infrastructure"
	"github.com/napo-io/k8sway/internal/provisioning/stack"
	"github.com/napo-io/k8sway/internal/ui/tui"
)

// Deploy creates or updates the cluster stack.
//
// The pipeline validates the configuration, determines the workstation
// address, resolves images, declares and synthesizes the topology, and
// finally submits the template and waits for the stack to settle.
func Deploy(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	client, err := newAWSClient(ctx, cfg, opts.Profile)
	if err != nil {
		return err
	}

	metrics := image.NewMetrics()
	defer writeMetrics(metrics, opts.MetricsFile)

	pCtx, err := execute(ctx, opts, cfg, client, metrics, tui.NewDeployModel(cfg.Stack.Name, cfg.Region),
		provisioning.NewValidationPhase(),
		provisioning.NewWorkstationPhase(),
		imagephase.NewProvisioner(),
		infrastructure.NewProvisioner(),
		stack.NewProvisioner(),
	)
	if err != nil {
		return fmt.Errorf("deploy failed: %w", err)
	}

	if pCtx.State.Stack != nil {
		fmt.Fprint(stdout, renderStackSummary(pCtx.State.Stack, pCtx.State.StackChanged))
	}
	return nil
}
