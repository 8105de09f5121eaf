package stack

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/napo-io/k8sway/internal/cfn"
	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/provisioning"
	"github.com/napo-io/k8sway/internal/util/tags"
)

// Provisioner creates or updates the cluster stack.
type Provisioner struct{}

// NewProvisioner creates a new stack provisioner.
func NewProvisioner() *Provisioner {
	return &Provisioner{}
}

// Name implements the provisioning.Phase interface.
func (p *Provisioner) Name() string {
	return "deploy"
}

// Provision implements the provisioning.Phase interface.
func (p *Provisioner) Provision(ctx *provisioning.Context) error {
	body := ctx.State.TemplateBody
	if len(body) == 0 {
		return errors.New("no template synthesized")
	}
	name := ctx.Config.Stack.Name

	in := aws.StackInput{
		Name: name,
		Tags: tags.NewBuilder(ctx.Config.Project, ctx.Config.Owner).Map(),
	}

	if err := p.stageTemplate(ctx, body, &in); err != nil {
		return err
	}

	if err := ctx.AWS.ValidateTemplate(ctx, in.TemplateBody, in.TemplateURL); err != nil {
		return fmt.Errorf("template rejected by CloudFormation: %w", err)
	}

	ctx.Observer.Printf("[%s] Submitting stack %s", p.Name(), name)
	changed, err := ctx.AWS.DeployStack(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to deploy stack %s: %w", name, err)
	}
	ctx.State.StackChanged = changed

	if !changed {
		stack, err := ctx.AWS.DescribeStack(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to describe stack %s: %w", name, err)
		}
		ctx.State.Stack = stack
		provisioning.LogResourceExists(ctx.Observer, p.Name(), "stack", name, stack.ID)
		ctx.Observer.Printf("[%s] Stack %s is up to date", p.Name(), name)
		return nil
	}

	var timeout time.Duration
	if ctx.Timeouts != nil {
		timeout = ctx.Timeouts.StackCreate
	}
	stack, err := WaitForStack(ctx, p.Name(), name, timeout)
	if stack != nil {
		ctx.State.Stack = stack
	}
	if err != nil {
		return err
	}

	provisioning.LogResourceCreated(ctx.Observer, p.Name(), "stack", name, stack.ID)
	for _, key := range sortedKeys(stack.Outputs) {
		ctx.Observer.Printf("[%s] %s = %s", p.Name(), key, stack.Outputs[key])
	}
	return nil
}

// stageTemplate fills in the template body or URL. Templates above the
// inline limit, or any template when a bucket is configured, go through S3.
func (p *Provisioner) stageTemplate(ctx *provisioning.Context, body []byte, in *aws.StackInput) error {
	bucket := ctx.Config.Stack.TemplateBucket
	if bucket == "" {
		if !cfn.FitsInline(body) {
			return fmt.Errorf("template is %d bytes, above the %d byte inline limit; set stack.templateBucket", len(body), cfn.MaxInlineBodySize)
		}
		in.TemplateBody = string(body)
		return nil
	}

	if err := ctx.AWS.EnsureBucket(ctx, bucket); err != nil {
		return fmt.Errorf("failed to prepare template bucket %s: %w", bucket, err)
	}
	url, err := ctx.AWS.UploadTemplate(ctx, bucket, TemplateKey(in.Name, body), body)
	if err != nil {
		return fmt.Errorf("failed to upload template: %w", err)
	}

	in.TemplateURL = url
	ctx.State.TemplateURL = url
	ctx.Observer.Printf("[%s] Uploaded template to %s", p.Name(), url)
	return nil
}

// TemplateKey returns the object key of a template: the stack name and a
// content hash, so identical templates share a key.
func TemplateKey(stack string, body []byte) string {
	sum := sha256.Sum256(body)
	return fmt.Sprintf("%s/template-%s.json", stack, hex.EncodeToString(sum[:6]))
}

// WaitForStack waits up to timeout for the stack to settle, forwarding
// stack events to the observer.
func WaitForStack(ctx *provisioning.Context, phase, name string, timeout time.Duration) (*aws.Stack, error) {
	waitCtx := ctx.Context
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	stack, err := ctx.AWS.WaitForStack(waitCtx, name, func(e aws.StackEvent) {
		provisioning.LogStackEvent(ctx.Observer, phase, e.LogicalID, e.ResourceType, e.Status, e.Reason, e.Timestamp)
	})
	if err != nil {
		if errors.Is(err, aws.ErrStackFailed) {
			if ev, ok := firstFailure(ctx, name); ok {
				return stack, fmt.Errorf("stack %s did not settle: %w; %s (%s) failed: %s", name, err, ev.LogicalID, ev.ResourceType, ev.Reason)
			}
		}
		return stack, fmt.Errorf("stack %s did not settle: %w", name, err)
	}
	return stack, nil
}

const stackResourceType = "AWS::CloudFormation::Stack"

var operationStarts = map[string]bool{
	"CREATE_IN_PROGRESS": true,
	"UPDATE_IN_PROGRESS": true,
	"DELETE_IN_PROGRESS": true,
}

// firstFailure returns the earliest failed resource event of the stack's
// latest operation. Later failures are usually cancellations it caused.
func firstFailure(ctx *provisioning.Context, name string) (aws.StackEvent, bool) {
	events, err := ctx.AWS.StackEvents(ctx, name)
	if err != nil {
		return aws.StackEvent{}, false
	}
	var (
		found aws.StackEvent
		ok    bool
	)
	for _, e := range events {
		if e.ResourceType == stackResourceType && operationStarts[e.Status] {
			found, ok = aws.StackEvent{}, false
			continue
		}
		if !ok && strings.HasSuffix(e.Status, "_FAILED") && e.Reason != "" {
			found, ok = e, true
		}
	}
	return found, ok
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
