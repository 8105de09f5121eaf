package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/napo-io/k8sway/internal/platform/aws"
)

func TestRenderStackSummary(t *testing.T) {
	t.Parallel()

	stack := &aws.Stack{
		Name:   "demo",
		Status: "UPDATE_COMPLETE",
		Outputs: map[string]string{
			"VpcId":                 "vpc-1",
			"BastionLbDnsName":      "bastion.elb",
			"ApiInternalRecordName": "api-internal.example.com",
		},
	}

	out := renderStackSummary(stack, true)
	assert.Contains(t, out, "Stack demo")
	assert.Contains(t, out, "Outputs")
	// Sorted by key.
	assert.Less(t, strings.Index(out, "ApiInternalRecordName"), strings.Index(out, "BastionLbDnsName"))
	assert.Less(t, strings.Index(out, "BastionLbDnsName"), strings.Index(out, "VpcId"))

	out = renderStackSummary(&aws.Stack{Name: "demo", Status: "CREATE_COMPLETE"}, false)
	assert.Contains(t, out, "(no changes)")
	assert.NotContains(t, out, "Outputs")
}
