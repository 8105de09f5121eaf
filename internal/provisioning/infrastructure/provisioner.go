package infrastructure

import (
	"github.com/napo-io/k8sway/internal/cfn"
	"github.com/napo-io/k8sway/internal/provisioning"
)

// Provisioner handles infrastructure declaration (hosted zone, topology, template).
type Provisioner struct {
	format cfn.Format
}

// NewProvisioner creates a new infrastructure provisioner rendering the
// template body as JSON.
func NewProvisioner() *Provisioner {
	return &Provisioner{format: cfn.FormatJSON}
}

// WithFormat sets the rendering format of the template body.
func (p *Provisioner) WithFormat(f cfn.Format) *Provisioner {
	p.format = f
	return p
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "infrastructure"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	// 1. Hosted zone
	if err := p.ResolveHostedZone(ctx); err != nil {
		return err
	}

	// 2. Topology
	if err := p.DeclareTopology(ctx); err != nil {
		return err
	}

	// 3. Template
	return p.SynthesizeTemplate(ctx)
}
