package cfn

import (
	"errors"
	"fmt"

	"github.com/napo-io/k8sway/internal/topology"
	"github.com/napo-io/k8sway/internal/util/naming"
	"github.com/napo-io/k8sway/internal/util/tags"
)

// Resource types.
const (
	TypeVPC                    = "AWS::EC2::VPC"
	TypeInternetGateway        = "AWS::EC2::InternetGateway"
	TypeGatewayAttachment      = "AWS::EC2::VPCGatewayAttachment"
	TypeSubnet                 = "AWS::EC2::Subnet"
	TypeRouteTable             = "AWS::EC2::RouteTable"
	TypeRoute                  = "AWS::EC2::Route"
	TypeSubnetRouteAssociation = "AWS::EC2::SubnetRouteTableAssociation"
	TypeEIP                    = "AWS::EC2::EIP"
	TypeNatGateway             = "AWS::EC2::NatGateway"
	TypeSecurityGroup          = "AWS::EC2::SecurityGroup"
	TypeSecurityGroupIngress   = "AWS::EC2::SecurityGroupIngress"
	TypeLaunchTemplate         = "AWS::EC2::LaunchTemplate"
	TypeIAMRole                = "AWS::IAM::Role"
	TypeInstanceProfile        = "AWS::IAM::InstanceProfile"
	TypeAutoScalingGroup       = "AWS::AutoScaling::AutoScalingGroup"
	TypeClassicLoadBalancer    = "AWS::ElasticLoadBalancing::LoadBalancer"
	TypeRecordSet              = "AWS::Route53::RecordSet"
)

// ParamTypeSSMImageID resolves an image ID from an SSM parameter at deploy time.
const ParamTypeSSMImageID = "AWS::SSM::Parameter::Value<AWS::EC2::Image::Id>"

// ImageMapName is the mapping holding one image per region under ImageMapKey.
const (
	ImageMapName = "AmiMap"
	ImageMapKey  = "ami"
)

const (
	vpcID                = "Vpc"
	internetGatewayID    = "InternetGateway"
	gatewayAttachmentID  = "InternetGatewayAttachment"
	publicRouteTableID   = "PublicRouteTable"
	publicDefaultRouteID = "PublicDefaultRoute"
)

// synthesizer carries shared state while resources are emitted.
type synthesizer struct {
	topo *topology.Topology
	meta topology.Meta
	tmpl *Template
	errs []error

	publicSubnets  []string
	privateSubnets []string
	privateRoutes  []string

	// imageParams maps an SSM parameter name to its template parameter ID.
	imageParams map[string]string
}

// Synthesize translates a topology into a template. The result is
// deterministic for a given topology.
func Synthesize(topo *topology.Topology) (*Template, error) {
	if topo == nil {
		return nil, errors.New("topology is required")
	}
	if err := topo.Validate(); err != nil {
		return nil, fmt.Errorf("invalid topology: %w", err)
	}

	meta := topo.Meta()
	s := &synthesizer{
		topo: topo,
		meta: meta,
		tmpl: NewTemplate(fmt.Sprintf("Kubernetes the hard way: %s (%s)", meta.Project, meta.StackName)),
	}

	s.network()
	s.images()
	s.securityGroups()
	s.nodeGroups()
	s.loadBalancers()
	s.records()
	s.outputs()

	if err := errors.Join(s.errs...); err != nil {
		return nil, err
	}
	return s.tmpl, nil
}

func (s *synthesizer) add(id string, r Resource) {
	if err := s.tmpl.AddResource(id, r); err != nil {
		s.errs = append(s.errs, err)
	}
}

func (s *synthesizer) tags(name string, extra map[string]string) []tags.Tag {
	b := tags.NewBuilder(s.meta.Project, s.meta.Owner)
	if name != "" {
		b.WithName(name)
	}
	for k, v := range extra {
		b.With(k, v)
	}
	return b.Build()
}

// securityGroupID returns the logical ID of a topology security group.
func securityGroupID(name string) string {
	return naming.LogicalID(name, "sg")
}

func groupIDOf(name string) map[string]any {
	return GetAtt(securityGroupID(name), "GroupId")
}
