package aws

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	cftypes "github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// eventClockSkew widens the event window when waiting so that events
// stamped slightly before the wait started are still reported.
const eventClockSkew = 30 * time.Second

// ValidateTemplate asks CloudFormation to validate a template given inline
// or by URL.
func (c *RealClient) ValidateTemplate(ctx context.Context, body, url string) error {
	in := &cloudformation.ValidateTemplateInput{}
	if url != "" {
		in.TemplateURL = aws.String(url)
	} else {
		in.TemplateBody = aws.String(body)
	}
	if _, err := c.cfn.ValidateTemplate(ctx, in); err != nil {
		return fmt.Errorf("template validation failed: %w", err)
	}
	return nil
}

// DeployStack creates the stack if it does not exist and updates it otherwise.
func (c *RealClient) DeployStack(ctx context.Context, in StackInput) (bool, error) {
	existing, err := c.DescribeStack(ctx, in.Name)
	if err != nil && !IsNotFound(err) {
		return false, err
	}

	if existing == nil {
		_, err := c.cfn.CreateStack(ctx, &cloudformation.CreateStackInput{
			StackName:    aws.String(in.Name),
			TemplateBody: optionalString(in.TemplateBody, in.TemplateURL == ""),
			TemplateURL:  optionalString(in.TemplateURL, in.TemplateURL != ""),
			Parameters:   cfnParameters(in.Parameters),
			Capabilities: []cftypes.Capability{cftypes.CapabilityCapabilityNamedIam},
			Tags:         cfnTags(in.Tags),
			OnFailure:    cftypes.OnFailureRollback,
		})
		if err != nil {
			return false, fmt.Errorf("failed to create stack %s: %w", in.Name, err)
		}
		return true, nil
	}

	if existing.Status == string(cftypes.StackStatusRollbackComplete) {
		return false, fmt.Errorf("stack %s is in %s and cannot be updated; destroy it first", in.Name, existing.Status)
	}

	_, err = c.cfn.UpdateStack(ctx, &cloudformation.UpdateStackInput{
		StackName:    aws.String(in.Name),
		TemplateBody: optionalString(in.TemplateBody, in.TemplateURL == ""),
		TemplateURL:  optionalString(in.TemplateURL, in.TemplateURL != ""),
		Parameters:   cfnParameters(in.Parameters),
		Capabilities: []cftypes.Capability{cftypes.CapabilityCapabilityNamedIam},
		Tags:         cfnTags(in.Tags),
	})
	if err != nil {
		if isNoUpdates(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to update stack %s: %w", in.Name, err)
	}
	return true, nil
}

// DescribeStack returns the current state of the named stack.
func (c *RealClient) DescribeStack(ctx context.Context, name string) (*Stack, error) {
	out, err := c.cfn.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(name),
	})
	if err != nil {
		if isStackMissing(err) {
			return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
		}
		return nil, fmt.Errorf("failed to describe stack %s: %w", name, err)
	}
	if len(out.Stacks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
	}

	s := out.Stacks[0]
	stack := &Stack{
		ID:           aws.ToString(s.StackId),
		Name:         aws.ToString(s.StackName),
		Status:       string(s.StackStatus),
		StatusReason: aws.ToString(s.StackStatusReason),
		Outputs:      make(map[string]string, len(s.Outputs)),
	}
	for _, o := range s.Outputs {
		stack.Outputs[aws.ToString(o.OutputKey)] = aws.ToString(o.OutputValue)
	}
	return stack, nil
}

// StackEvents returns every event of the named stack, oldest first.
func (c *RealClient) StackEvents(ctx context.Context, name string) ([]StackEvent, error) {
	return c.collectEvents(ctx, name, func(StackEvent) bool { return false })
}

// DeleteStack requests deletion of the named stack. Deleting a missing
// stack is not an error.
func (c *RealClient) DeleteStack(ctx context.Context, name string) error {
	_, err := c.cfn.DeleteStack(ctx, &cloudformation.DeleteStackInput{
		StackName: aws.String(name),
	})
	if err != nil && !isStackMissing(err) {
		return fmt.Errorf("failed to delete stack %s: %w", name, err)
	}
	return nil
}

// WaitForStack polls the stack until it settles. A stack that no longer
// exists is reported as DELETE_COMPLETE.
func (c *RealClient) WaitForStack(ctx context.Context, name string, onEvent func(StackEvent)) (*Stack, error) {
	since := time.Now().Add(-eventClockSkew)
	seen := make(map[string]bool)

	poll := 10 * time.Second
	if c.timeouts != nil && c.timeouts.StackPoll > 0 {
		poll = c.timeouts.StackPoll
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		if onEvent != nil {
			events, err := c.collectEvents(ctx, name, func(ev StackEvent) bool {
				return seen[ev.ID] || ev.Timestamp.Before(since)
			})
			if err != nil && !IsNotFound(err) {
				return nil, err
			}
			for _, ev := range events {
				seen[ev.ID] = true
				onEvent(ev)
			}
		}

		stack, err := c.DescribeStack(ctx, name)
		if err != nil {
			if IsNotFound(err) {
				return &Stack{Name: name, Status: string(cftypes.StackStatusDeleteComplete)}, nil
			}
			return nil, err
		}

		if IsTerminalStatus(stack.Status) {
			if !IsSuccessStatus(stack.Status) {
				return stack, fmt.Errorf("%w: %s is %s: %s", ErrStackFailed, name, stack.Status, stack.StatusReason)
			}
			return stack, nil
		}

		select {
		case <-ctx.Done():
			return stack, fmt.Errorf("timed out waiting for stack %s (last status %s): %w", name, stack.Status, ctx.Err())
		case <-ticker.C:
		}
	}
}

// IsTerminalStatus reports whether a stack status will not change without
// another operation.
func IsTerminalStatus(status string) bool {
	return !strings.HasSuffix(status, "_IN_PROGRESS") &&
		(strings.HasSuffix(status, "_COMPLETE") || strings.HasSuffix(status, "_FAILED"))
}

// IsSuccessStatus reports whether a terminal status means the requested
// operation succeeded.
func IsSuccessStatus(status string) bool {
	switch cftypes.StackStatus(status) {
	case cftypes.StackStatusCreateComplete,
		cftypes.StackStatusUpdateComplete,
		cftypes.StackStatusDeleteComplete,
		cftypes.StackStatusImportComplete:
		return true
	}
	return false
}

// collectEvents pages through stack events newest first until stop returns
// true, then returns the collected events oldest first.
func (c *RealClient) collectEvents(ctx context.Context, name string, stop func(StackEvent) bool) ([]StackEvent, error) {
	in := &cloudformation.DescribeStackEventsInput{StackName: aws.String(name)}
	var events []StackEvent

pages:
	for {
		out, err := c.cfn.DescribeStackEvents(ctx, in)
		if err != nil {
			if isStackMissing(err) {
				return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
			}
			return nil, fmt.Errorf("failed to describe events of stack %s: %w", name, err)
		}
		for _, e := range out.StackEvents {
			ev := StackEvent{
				ID:           aws.ToString(e.EventId),
				LogicalID:    aws.ToString(e.LogicalResourceId),
				ResourceType: aws.ToString(e.ResourceType),
				Status:       string(e.ResourceStatus),
				Reason:       aws.ToString(e.ResourceStatusReason),
				Timestamp:    aws.ToTime(e.Timestamp),
			}
			if stop(ev) {
				break pages
			}
			events = append(events, ev)
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		in.NextToken = out.NextToken
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}
	return events, nil
}

func optionalString(s string, set bool) *string {
	if !set {
		return nil
	}
	return aws.String(s)
}

func cfnParameters(params []StackParameter) []cftypes.Parameter {
	if len(params) == 0 {
		return nil
	}
	out := make([]cftypes.Parameter, 0, len(params))
	for _, p := range params {
		out = append(out, cftypes.Parameter{
			ParameterKey:   aws.String(p.Key),
			ParameterValue: aws.String(p.Value),
		})
	}
	return out
}

func cfnTags(tags map[string]string) []cftypes.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]cftypes.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, cftypes.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}
