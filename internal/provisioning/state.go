package provisioning

import (
	"github.com/napo-io/k8sway/internal/cfn"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/topology"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	// WorkstationCIDR is the operator address allowed through the public
	// entry points (populated by the workstation phase).
	WorkstationCIDR string

	// Image results (populated by the image phase)
	Images      *image.Mapping
	ImageResult *image.Result

	// Infrastructure results (populated by the infrastructure phases)
	HostedZoneID string
	Topology     *topology.Topology
	Template     *cfn.Template
	TemplateBody []byte

	// Stack results (populated by the stack phases)
	TemplateURL  string
	StackChanged bool
	Stack        *aws.Stack
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
