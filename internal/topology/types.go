package topology

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/config"
)

// Protocol values for PortRange.
const (
	ProtocolTCP = "tcp"
	ProtocolAll = "-1"
)

// PortRange is a protocol and inclusive port range.
type PortRange struct {
	Protocol string
	From     int32
	To       int32
}

// TCP returns a single TCP port.
func TCP(port int32) PortRange {
	return PortRange{Protocol: ProtocolTCP, From: port, To: port}
}

// TCPRange returns an inclusive TCP port range.
func TCPRange(from, to int32) PortRange {
	return PortRange{Protocol: ProtocolTCP, From: from, To: to}
}

// AllTraffic matches every protocol and port.
func AllTraffic() PortRange {
	return PortRange{Protocol: ProtocolAll, From: -1, To: -1}
}

// IsAll reports whether the range matches all traffic.
func (p PortRange) IsAll() bool {
	return p.Protocol == ProtocolAll
}

func (p PortRange) String() string {
	switch {
	case p.IsAll():
		return "all"
	case p.From == p.To:
		return fmt.Sprintf("%s/%d", p.Protocol, p.From)
	default:
		return fmt.Sprintf("%s/%d-%d", p.Protocol, p.From, p.To)
	}
}

func (p PortRange) validate() error {
	if p.IsAll() {
		return nil
	}
	if p.Protocol != ProtocolTCP {
		return fmt.Errorf("%w: unsupported protocol %q", ErrInvalid, p.Protocol)
	}
	if p.From < 0 || p.To > 65535 || p.From > p.To {
		return fmt.Errorf("%w: bad port range %d-%d", ErrInvalid, p.From, p.To)
	}
	return nil
}

// Peer is the source of an ingress rule: a security group or a CIDR.
type Peer struct {
	Group string
	CIDR  string
}

// GroupPeer returns a peer referring to a declared security group.
func GroupPeer(name string) Peer {
	return Peer{Group: name}
}

// CIDRPeer returns a peer matching an IPv4 CIDR.
func CIDRPeer(cidr string) Peer {
	return Peer{CIDR: cidr}
}

// AnyIPv4 matches every IPv4 address.
func AnyIPv4() Peer {
	return Peer{CIDR: "0.0.0.0/0"}
}

// IsGroup reports whether the peer refers to a security group.
func (p Peer) IsGroup() bool {
	return p.Group != ""
}

func (p Peer) String() string {
	if p.IsGroup() {
		return "sg:" + p.Group
	}
	return p.CIDR
}

// SecurityGroup is a named set of ingress rules attached to resources.
type SecurityGroup struct {
	Name        string
	Description string

	seq int
}

// IngressRule allows traffic from Peer to the Target group.
type IngressRule struct {
	Target      string
	Peer        Peer
	Ports       PortRange
	Description string

	seq int
}

// ImageKind selects where a node group's image comes from.
type ImageKind string

const (
	// ImageFromMapping looks the image up in the resolved region map.
	ImageFromMapping ImageKind = "mapping"
	// ImageFromSSM reads the image ID from a public SSM parameter.
	ImageFromSSM ImageKind = "ssm"
)

// ImageRef describes the machine image of a node group.
type ImageRef struct {
	Kind ImageKind
	// Parameter is the SSM parameter name when Kind is ImageFromSSM.
	Parameter string
}

// PolicyStatement is one IAM policy statement.
type PolicyStatement struct {
	Effect   string   `json:"Effect"`
	Action   []string `json:"Action"`
	Resource []string `json:"Resource"`
}

// NodeGroup is the autoscaling group of one role.
type NodeGroup struct {
	Role         string
	Name         string
	Min          int
	Max          int
	Desired      int
	InstanceType string
	Subnet       config.SubnetPlacement
	Image        ImageRef
	UserData     []string
	// SecurityGroup must be declared before the node group.
	SecurityGroup string
	IAM           []PolicyStatement
	Tags          map[string]string

	// LoadBalancers is filled in as load balancers targeting the group
	// are declared.
	LoadBalancers []string

	seq int
}

// Scheme is the exposure of a load balancer.
type Scheme string

const (
	SchemeInternetFacing Scheme = "internet-facing"
	SchemeInternal       Scheme = "internal"
)

// LoadBalancer is a classic TCP load balancer in front of one node group.
type LoadBalancer struct {
	// ID is the declaration key, e.g. "master-public".
	ID              string
	Name            string
	Scheme          Scheme
	Port            int32
	HealthCheckPort int32
	SecurityGroup   string
	// Target is the role of the node group behind the load balancer.
	Target string
	Tags   map[string]string

	seq int
}

// Subnet returns the subnet placement implied by the scheme.
func (lb LoadBalancer) Subnet() config.SubnetPlacement {
	if lb.Scheme == SchemeInternetFacing {
		return config.SubnetPublic
	}
	return config.SubnetPrivate
}

// AliasRecord is an A record aliasing a load balancer.
type AliasRecord struct {
	// Name is the fully qualified record name with a trailing dot.
	Name         string
	LoadBalancer string
	Comment      string

	seq int
}

// Network describes the VPC and its subnets.
type Network struct {
	CIDR           string
	PublicSubnets  []string
	PrivateSubnets []string
}

// AZs returns the number of availability zones the network spans.
func (n Network) AZs() int {
	return len(n.PublicSubnets)
}

// Meta holds cluster-wide settings carried into the template.
type Meta struct {
	Project   string
	Owner     string
	Region    string
	StackName string
	KeyPair   string
	Zone      string
	ZoneID    string
}
