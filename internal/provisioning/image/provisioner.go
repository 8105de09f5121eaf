package image

import (
	"context"
	"fmt"

	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/provisioning"
	"github.com/napo-io/k8sway/internal/util/retry"
)

// Provisioner resolves the region to image mapping.
type Provisioner struct{}

// NewProvisioner creates a new image provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "images"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	cfg := ctx.Config
	observer := ctx.Observer.WithFields(map[string]string{"phase": p.Name()})

	opts := []image.Option{
		image.WithRegionLister(ctx.AWS),
		image.WithConcurrency(cfg.Image.Concurrency),
		image.WithMetrics(ctx.Metrics),
		image.WithProgress(func(r image.RegionResult) {
			provisioning.LogImageResolved(observer, p.Name(), r.Region, r.Image.ID, r.Image.Name, r.Duration, r.Err)
		}),
	}
	if ctx.Timeouts != nil {
		opts = append(opts, image.WithRetry(
			retry.WithMaxRetries(ctx.Timeouts.RetryMaxAttempts),
			retry.WithInitialDelay(ctx.Timeouts.RetryInitialDelay),
		))
	}

	lookupCtx := ctx.Context
	if ctx.Timeouts != nil && ctx.Timeouts.ImageLookup > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, ctx.Timeouts.ImageLookup)
		defer cancel()
	}

	resolver := image.NewResolver(ctx.AWS, opts...)
	res, err := resolver.Resolve(lookupCtx, cfg.Image.Regions, image.Query{
		NamePattern: cfg.Image.NamePattern,
		Owner:       cfg.Image.Owner,
	})
	if res == nil {
		return fmt.Errorf("failed to resolve images: %w", err)
	}

	ctx.State.ImageResult = res
	ctx.State.Images = res.Mapping

	if err != nil {
		if cfg.Image.Strict {
			return fmt.Errorf("image lookup failed in %d region(s): %w", len(res.Failures()), err)
		}
		for region, ferr := range res.Failures() {
			provisioning.LogValidation(observer, p.Name(), region, ferr.Error(), false)
		}
	}
	if err := res.Require(cfg.Region); err != nil {
		return fmt.Errorf("no usable image for deployment region %s: %w", cfg.Region, err)
	}

	ctx.Observer.Printf("[%s] Resolved images in %d of %d regions", p.Name(), res.Mapping.Len(), len(res.Regions()))
	return nil
}
