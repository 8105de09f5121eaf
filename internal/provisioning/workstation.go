package provisioning

import (
	"context"
	"fmt"
)

// WorkstationPhase determines the address allowed through the public entry
// points. A configured CIDR wins; otherwise the current public IPv4 address
// is looked up and suffixed with /32.
type WorkstationPhase struct{}

// NewWorkstationPhase creates a new workstation phase.
func NewWorkstationPhase() *WorkstationPhase {
	return &WorkstationPhase{}
}

// Name implements the Phase interface.
func (p *WorkstationPhase) Name() string {
	return "workstation"
}

// Provision implements the Phase interface.
func (p *WorkstationPhase) Provision(ctx *Context) error {
	if cidr := ctx.Config.WorkstationCIDR; cidr != "" {
		ctx.State.WorkstationCIDR = cidr
		ctx.Observer.Printf("[%s] Using configured workstation CIDR %s", p.Name(), cidr)
		return nil
	}

	lookupCtx := ctx.Context
	if ctx.Timeouts != nil && ctx.Timeouts.PublicIP > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, ctx.Timeouts.PublicIP)
		defer cancel()
	}

	ip, err := ctx.AWS.GetPublicIP(lookupCtx)
	if err != nil {
		return fmt.Errorf("failed to determine workstation address: %w", err)
	}

	ctx.State.WorkstationCIDR = ip + "/32"
	ctx.Observer.Printf("[%s] Workstation address is %s", p.Name(), ctx.State.WorkstationCIDR)
	return nil
}
