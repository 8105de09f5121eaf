package handlers

import (
	"context"
	"fmt"

	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/provisioning"
	imagephase "github.com/napo-io/k8sway/internal/provisioning/image"
	"github.com/napo-io/k8sway/internal/ui/tui"
)

// Images resolves the newest machine image in every configured region and
// writes the region to image mapping to outputPath.
//
// A partial result is still summarized when the lookup fails.
func Images(ctx context.Context, opts Options, outputPath string) error {
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

	opts.Plain = true
	pCtx, runErr := execute(ctx, opts, cfg, client, metrics, tui.Model{},
		provisioning.NewImageValidationPhase(),
		imagephase.NewProvisioner(),
	)

	if pCtx != nil && pCtx.State.ImageResult != nil {
		fmt.Fprint(stdout, renderImageSummary(pCtx.State.ImageResult))
	}
	if runErr != nil {
		return fmt.Errorf("image lookup failed: %w", runErr)
	}

	if outputPath == "" {
		return nil
	}
	query := image.Query{NamePattern: cfg.Image.NamePattern, Owner: cfg.Image.Owner}
	if err := pCtx.State.Images.Save(outputPath, query); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nImage mapping written to %s\n", outputPath)
	return nil
}
