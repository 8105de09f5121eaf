package destroy

import (
	"errors"
	"fmt"
	"time"

	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/provisioning"
	"github.com/napo-io/k8sway/internal/provisioning/stack"
)

// Provisioner handles cluster destruction.
type Provisioner struct{}

// NewProvisioner creates a new destroy provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "destroy"
}

// Provision deletes the cluster stack. A stack that does not exist is not
// an error.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	name := ctx.Config.Stack.Name

	existing, err := ctx.AWS.DescribeStack(ctx, name)
	if errors.Is(err, aws.ErrStackNotFound) {
		ctx.Observer.Printf("[%s] Stack %s does not exist, nothing to delete", p.Name(), name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to describe stack %s: %w", name, err)
	}

	provisioning.LogResourceDeleting(ctx.Observer, p.Name(), "stack", name)
	if err := ctx.AWS.DeleteStack(ctx, name); err != nil {
		return fmt.Errorf("failed to delete stack %s: %w", name, err)
	}

	var timeout time.Duration
	if ctx.Timeouts != nil {
		timeout = ctx.Timeouts.StackDelete
	}
	// Deleted stacks can only be described by ID.
	id := existing.ID
	if id == "" {
		id = name
	}
	final, err := stack.WaitForStack(ctx, p.Name(), id, timeout)
	if final != nil {
		ctx.State.Stack = final
	}
	if err != nil {
		return err
	}

	provisioning.LogResourceDeleted(ctx.Observer, p.Name(), "stack", name)
	return nil
}
