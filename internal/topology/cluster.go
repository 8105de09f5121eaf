package topology

import (
	"errors"
	"fmt"
	"net"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/util/naming"
	"github.com/napo-io/k8sway/internal/util/tags"
)

// Load balancer IDs.
const (
	LBBastion       = "bastion"
	LBMasterPublic  = "master-public"
	LBMasterPrivate = "master-private"
)

// DNS host labels of the alias records.
const (
	HostBastion     = "bastion"
	HostAPI         = "api"
	HostAPIInternal = "api-internal"
)

// ClusterInput is everything BuildCluster needs.
type ClusterInput struct {
	Config          *config.Config
	Images          *image.Mapping
	HostedZoneID    string
	WorkstationCIDR string
}

// BuildCluster declares the four-role cluster. Missing images, hosted zone
// or workstation address are reported before anything is declared.
func BuildCluster(in ClusterInput) (*Topology, error) {
	cfg := in.Config
	if cfg == nil {
		return nil, errors.New("cluster configuration is required")
	}
	if _, ok := in.Images.Get(cfg.Region); !ok {
		return nil, &image.NoImageError{Region: cfg.Region, NamePattern: cfg.Image.NamePattern}
	}
	if in.HostedZoneID == "" {
		return nil, fmt.Errorf("hosted zone ID for %s is required", cfg.DNS.Zone)
	}
	if _, _, err := net.ParseCIDR(in.WorkstationCIDR); err != nil {
		return nil, fmt.Errorf("invalid workstation CIDR %q: %w", in.WorkstationCIDR, err)
	}

	layout, err := cfg.Network.Subnets()
	if err != nil {
		return nil, fmt.Errorf("failed to compute subnets: %w", err)
	}

	b := NewBuilder(Meta{
		Project:   cfg.Project,
		Owner:     cfg.Owner,
		Region:    cfg.Region,
		StackName: cfg.Stack.Name,
		KeyPair:   cfg.KeyPair,
		Zone:      cfg.DNS.Zone,
		ZoneID:    in.HostedZoneID,
	})

	if err := b.DeclareNetwork(Network{
		CIDR:           cfg.Network.VPCCIDR,
		PublicSubnets:  layout.Public,
		PrivateSubnets: layout.Private,
	}); err != nil {
		return nil, err
	}
	if err := b.DeclareImages(in.Images); err != nil {
		return nil, err
	}

	for _, g := range ClusterGroups() {
		if err := b.DeclareSecurityGroup(g.Name, g.Description); err != nil {
			return nil, err
		}
	}

	for _, role := range config.Roles() {
		ng, err := nodeGroupFor(cfg, role, in.HostedZoneID)
		if err != nil {
			return nil, err
		}
		if err := b.DeclareNodeGroup(ng); err != nil {
			return nil, err
		}
	}

	for _, lb := range clusterLoadBalancers(cfg) {
		if err := b.DeclareLoadBalancer(lb); err != nil {
			return nil, err
		}
	}

	for _, r := range []AliasRecord{
		{Name: naming.RecordName(HostBastion, cfg.DNS.Zone), LoadBalancer: LBBastion, Comment: "Bastion Host LB"},
		{Name: naming.RecordName(HostAPI, cfg.DNS.Zone), LoadBalancer: LBMasterPublic, Comment: "Kubernetes API public LB"},
		{Name: naming.RecordName(HostAPIInternal, cfg.DNS.Zone), LoadBalancer: LBMasterPrivate, Comment: "Kubernetes API internal LB"},
	} {
		if err := b.DeclareRecord(r); err != nil {
			return nil, err
		}
	}

	if err := b.Seal(); err != nil {
		return nil, err
	}

	for _, r := range AccessRules(cfg.AccessPolicy, in.WorkstationCIDR) {
		if err := b.Allow(r.Target, r.Peer, r.Ports, r.Description); err != nil {
			return nil, err
		}
	}

	return b.Build()
}

// nameTags maps roles to the Name tag suffix of their instances.
var nameTags = map[string]string{
	config.RoleBastion: "bastion",
	config.RoleEtcd:    "etcd",
	config.RoleMaster:  "k8s-master",
	config.RoleWorker:  "k8s-worker",
}

func nodeGroupFor(cfg *config.Config, role, zoneID string) (NodeGroup, error) {
	sizing, err := cfg.Nodes.NodeGroup(role)
	if err != nil {
		return NodeGroup{}, err
	}

	script, err := BootScript(BootScriptInput{
		Role:          role,
		Zone:          cfg.DNS.Zone,
		ZoneID:        zoneID,
		PodCIDRPrefix: cfg.Kubernetes.PodCIDRPrefix,
		TTL:           cfg.DNS.TTL,
	})
	if err != nil {
		return NodeGroup{}, fmt.Errorf("boot script for %s: %w", role, err)
	}

	img := ImageRef{Kind: ImageFromMapping}
	if role == config.RoleBastion {
		img = ImageRef{Kind: ImageFromSSM, Parameter: AmazonLinuxParameter}
	}

	statements := []PolicyStatement{SharedStatement()}
	if RegistersDNS(role) {
		statements = append(statements, DNSChangeStatement(zoneID))
	}

	return NodeGroup{
		Role:          role,
		Name:          naming.AutoScalingGroup(cfg.Stack.Name, role),
		Min:           sizing.Min,
		Max:           sizing.Max,
		Desired:       sizing.Desired,
		InstanceType:  sizing.InstanceType,
		Subnet:        sizing.Subnet,
		Image:         img,
		UserData:      script,
		SecurityGroup: role,
		IAM:           statements,
		Tags: tags.NewBuilder(cfg.Project, cfg.Owner).
			WithName(cfg.Project + "-" + nameTags[role]).
			WithRole(role).
			Map(),
	}, nil
}

func clusterLoadBalancers(cfg *config.Config) []LoadBalancer {
	stack := cfg.Stack.Name
	tag := func(suffix string) map[string]string {
		return tags.NewBuilder(cfg.Project, cfg.Owner).WithName(cfg.Project + "-" + suffix).Map()
	}

	return []LoadBalancer{
		{
			ID:            LBBastion,
			Name:          naming.LoadBalancer(stack, naming.SuffixBastionLB),
			Scheme:        SchemeInternetFacing,
			Port:          config.SSHPort,
			SecurityGroup: GroupBastionLB,
			Target:        config.RoleBastion,
			Tags:          tag("bastion-lb"),
		},
		{
			ID:            LBMasterPublic,
			Name:          naming.LoadBalancer(stack, naming.SuffixMasterPublicLB),
			Scheme:        SchemeInternetFacing,
			Port:          config.KubeAPIPort,
			SecurityGroup: GroupMasterPublicLB,
			Target:        config.RoleMaster,
			Tags:          tag("master-lb"),
		},
		{
			ID:            LBMasterPrivate,
			Name:          naming.LoadBalancer(stack, naming.SuffixMasterPrivateLB),
			Scheme:        SchemeInternal,
			Port:          config.KubeAPIPort,
			SecurityGroup: GroupMasterPrivateLB,
			Target:        config.RoleMaster,
			Tags:          tag("master-private-lb"),
		},
	}
}
