package infrastructure

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/cfn"
	"github.com/napo-io/k8sway/internal/provisioning"
)

// SynthesizeTemplate renders the declared topology.
func (p *Provisioner) SynthesizeTemplate(ctx *provisioning.Context) error {
	if ctx.State.Topology == nil {
		return fmt.Errorf("no topology declared")
	}

	tmpl, err := cfn.Synthesize(ctx.State.Topology)
	if err != nil {
		return fmt.Errorf("failed to synthesize template: %w", err)
	}
	body, err := cfn.Render(tmpl, p.format)
	if err != nil {
		return err
	}

	ctx.State.Template = tmpl
	ctx.State.TemplateBody = body
	ctx.Observer.Printf("[%s] Synthesized %d resources (%d bytes)", p.Name(), len(tmpl.Resources), len(body))
	return nil
}
