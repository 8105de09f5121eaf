package infrastructure

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/provisioning"
)

// ResolveHostedZone looks up the ID of the configured hosted zone unless
// the configuration pins it.
func (p *Provisioner) ResolveHostedZone(ctx *provisioning.Context) error {
	zone := ctx.Config.DNS.Zone

	if id := aws.BareZoneID(ctx.Config.DNS.ZoneID); id != "" {
		ctx.State.HostedZoneID = id
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "hosted zone", zone, id)
		return nil
	}

	id, err := ctx.AWS.HostedZoneID(ctx, zone)
	if err != nil {
		return fmt.Errorf("failed to resolve hosted zone %s: %w", zone, err)
	}

	ctx.State.HostedZoneID = id
	provisioning.LogResourceExists(ctx.Observer, p.Name(), "hosted zone", zone, id)
	return nil
}
