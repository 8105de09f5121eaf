package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config is the full description of a cluster stack.
type Config struct {
	// Project is applied as the Project tag and prefixes Name tags.
	Project string `yaml:"project"`

	// Owner is applied as the Owner tag.
	Owner string `yaml:"owner"`

	// Account is the AWS account ID the stack is deployed to (optional).
	Account string `yaml:"account,omitempty"`

	// Region is the AWS region the stack is deployed to.
	Region string `yaml:"region"`

	// KeyPair is the EC2 key pair name attached to every instance.
	KeyPair string `yaml:"keyPair,omitempty"`

	// WorkstationCIDR restricts administrative access. When empty, the
	// current public IPv4 address is looked up and suffixed with /32.
	WorkstationCIDR string `yaml:"workstationCidr,omitempty"`

	// AccessPolicy selects the control-plane load balancer exposure.
	AccessPolicy AccessPolicy `yaml:"accessPolicy"`

	Network    NetworkConfig `yaml:"network"`
	DNS        DNSConfig     `yaml:"dns"`
	Kubernetes K8sConfig     `yaml:"kubernetes"`
	Image      ImageConfig   `yaml:"image"`
	Nodes      NodesConfig   `yaml:"nodes"`
	Stack      StackConfig   `yaml:"stack"`
}

// NetworkConfig describes the VPC layout.
type NetworkConfig struct {
	// VPCCIDR is the VPC IPv4 range.
	VPCCIDR string `yaml:"vpcCidr"`

	// MaxAZs is the number of availability zones to spread subnets over.
	MaxAZs int `yaml:"maxAzs"`

	// SubnetMask is the prefix length of every public and private subnet.
	SubnetMask int `yaml:"subnetMask"`
}

// DNSConfig describes the Route53 hosted zone records are created in.
type DNSConfig struct {
	// Zone is the FQDN of the hosted zone, e.g. "k8s.example.com".
	Zone string `yaml:"zone"`

	// ZoneID skips the hosted zone lookup when set.
	ZoneID string `yaml:"zoneId,omitempty"`

	// TTL of self-registered instance records in seconds.
	TTL int64 `yaml:"ttl"`
}

// K8sConfig holds settings exported to the nodes' environment.
type K8sConfig struct {
	// PodCIDRPrefix is the first two octets of per-worker pod ranges,
	// e.g. "10.200" yields POD_CIDR=10.200.<n>.0/24.
	PodCIDRPrefix string `yaml:"podCidrPrefix"`
}

// ImageConfig controls the regional machine image lookup.
type ImageConfig struct {
	// NamePattern is the image name glob passed to the "name" filter.
	NamePattern string `yaml:"namePattern"`

	// Owner is the image publisher account ID.
	Owner string `yaml:"owner"`

	// Regions restricts the lookup. Empty means every region the account
	// can see.
	Regions []string `yaml:"regions,omitempty"`

	// Strict fails the run when any region fails to resolve. Otherwise
	// only the deployment region is required.
	Strict bool `yaml:"strict,omitempty"`

	// Concurrency bounds the number of regions queried at once.
	Concurrency int `yaml:"concurrency"`
}

// NodesConfig holds per-role node group sizing.
type NodesConfig struct {
	Bastion NodeGroupConfig `yaml:"bastion"`
	Etcd    NodeGroupConfig `yaml:"etcd"`
	Master  NodeGroupConfig `yaml:"master"`
	Worker  NodeGroupConfig `yaml:"worker"`
}

// NodeGroupConfig sizes one autoscaling group.
type NodeGroupConfig struct {
	Min          int    `yaml:"min"`
	Max          int    `yaml:"max"`
	Desired      int    `yaml:"desired"`
	InstanceType string `yaml:"instanceType"`

	// Subnet is "private" (default) or "public".
	Subnet SubnetPlacement `yaml:"subnet"`

	// sized records that a capacity was given explicitly, so a group
	// scaled to zero is not defaulted.
	sized bool
}

// SetCapacity sizes the group explicitly. Zero capacities are kept.
func (n *NodeGroupConfig) SetCapacity(lo, hi, desired int) {
	n.Min, n.Max, n.Desired = lo, hi, desired
	n.sized = true
}

// UnmarshalYAML decodes the group and notes whether min, max or desired
// appear in the document.
func (n *NodeGroupConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain NodeGroupConfig
	if err := value.Decode((*plain)(n)); err != nil {
		return err
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch value.Content[i].Value {
		case "min", "max", "desired":
			n.sized = true
		}
	}
	return nil
}

// StackConfig controls the CloudFormation stack.
type StackConfig struct {
	// Name is the CloudFormation stack name.
	Name string `yaml:"name"`

	// TemplateBucket receives the template before create/update. Required
	// when the template exceeds the inline body limit.
	TemplateBucket string `yaml:"templateBucket,omitempty"`
}

// AccessPolicy selects how widely the control-plane API is exposed.
type AccessPolicy string

const (
	// AccessPolicyWorkstation limits the private API load balancer to the
	// master and worker security groups and public entry points to the
	// workstation address.
	AccessPolicyWorkstation AccessPolicy = "workstation"

	// AccessPolicyOpen additionally opens the private API load balancer
	// to 0.0.0.0/0.
	AccessPolicyOpen AccessPolicy = "open"
)

// IsValid reports whether p is a known policy.
func (p AccessPolicy) IsValid() bool {
	switch p {
	case AccessPolicyWorkstation, AccessPolicyOpen:
		return true
	default:
		return false
	}
}

// SubnetPlacement selects the subnet tier of a node group.
type SubnetPlacement string

const (
	SubnetPrivate SubnetPlacement = "private"
	SubnetPublic  SubnetPlacement = "public"
)

// IsValid reports whether s is a known placement.
func (s SubnetPlacement) IsValid() bool {
	return s == SubnetPrivate || s == SubnetPublic
}

// NodeGroup returns the sizing for a role name.
func (n *NodesConfig) NodeGroup(role string) (NodeGroupConfig, error) {
	switch role {
	case RoleBastion:
		return n.Bastion, nil
	case RoleEtcd:
		return n.Etcd, nil
	case RoleMaster:
		return n.Master, nil
	case RoleWorker:
		return n.Worker, nil
	default:
		return NodeGroupConfig{}, fmt.Errorf("unknown role %q", role)
	}
}
