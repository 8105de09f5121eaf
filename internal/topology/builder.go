package topology

import (
	"fmt"
	"net"

	"github.com/napo-io/k8sway/internal/image"
)

// Builder accumulates declarations in two phases. It is not safe for
// concurrent use.
type Builder struct {
	meta   Meta
	sealed bool
	seq    int

	network *Network
	images  *image.Mapping

	groups     map[string]*SecurityGroup
	groupOrder []string

	nodeGroups map[string]*NodeGroup
	nodeOrder  []string

	lbs     map[string]*LoadBalancer
	lbOrder []string

	records []AliasRecord
	rules   []IngressRule
}

// NewBuilder starts a declaration for the cluster described by meta.
func NewBuilder(meta Meta) *Builder {
	return &Builder{
		meta:       meta,
		groups:     make(map[string]*SecurityGroup),
		nodeGroups: make(map[string]*NodeGroup),
		lbs:        make(map[string]*LoadBalancer),
	}
}

func (b *Builder) next() int {
	b.seq++
	return b.seq
}

func (b *Builder) declaring(what string) error {
	if b.sealed {
		return fmt.Errorf("declare %s: %w", what, ErrSealed)
	}
	return nil
}

// DeclareNetwork sets the VPC layout. It may be declared once.
func (b *Builder) DeclareNetwork(n Network) error {
	if err := b.declaring("network"); err != nil {
		return err
	}
	if b.network != nil {
		return fmt.Errorf("network: %w", ErrDuplicate)
	}
	if _, _, err := net.ParseCIDR(n.CIDR); err != nil {
		return fmt.Errorf("%w: network CIDR %q", ErrInvalid, n.CIDR)
	}
	if len(n.PublicSubnets) == 0 || len(n.PublicSubnets) != len(n.PrivateSubnets) {
		return fmt.Errorf("%w: network needs one public and one private subnet per zone", ErrInvalid)
	}

	n.PublicSubnets = append([]string(nil), n.PublicSubnets...)
	n.PrivateSubnets = append([]string(nil), n.PrivateSubnets...)
	b.network = &n
	return nil
}

// DeclareImages sets the region to image mapping used by node groups with
// ImageFromMapping. The mapping must contain the cluster's region.
func (b *Builder) DeclareImages(m *image.Mapping) error {
	if err := b.declaring("images"); err != nil {
		return err
	}
	if _, ok := m.Get(b.meta.Region); !ok {
		return fmt.Errorf("images: %w", &image.NoImageError{Region: b.meta.Region})
	}
	b.images = m
	return nil
}

// DeclareSecurityGroup declares an empty security group.
func (b *Builder) DeclareSecurityGroup(name, description string) error {
	if err := b.declaring("security group " + name); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("%w: security group without a name", ErrInvalid)
	}
	if _, ok := b.groups[name]; ok {
		return fmt.Errorf("security group %s: %w", name, ErrDuplicate)
	}

	b.groups[name] = &SecurityGroup{Name: name, Description: description, seq: b.next()}
	b.groupOrder = append(b.groupOrder, name)
	return nil
}

// DeclareNodeGroup declares the node group of a role. Its security group
// must already be declared.
func (b *Builder) DeclareNodeGroup(ng NodeGroup) error {
	if err := b.declaring("node group " + ng.Role); err != nil {
		return err
	}
	if ng.Role == "" {
		return fmt.Errorf("%w: node group without a role", ErrInvalid)
	}
	if _, ok := b.nodeGroups[ng.Role]; ok {
		return fmt.Errorf("node group %s: %w", ng.Role, ErrDuplicate)
	}
	if ng.Min < 0 || ng.Min > ng.Max || ng.Desired < ng.Min || ng.Desired > ng.Max {
		return fmt.Errorf("%w: node group %s capacity min=%d desired=%d max=%d", ErrInvalid, ng.Role, ng.Min, ng.Desired, ng.Max)
	}
	if _, ok := b.groups[ng.SecurityGroup]; !ok {
		return fmt.Errorf("node group %s: security group %q: %w", ng.Role, ng.SecurityGroup, ErrForwardReference)
	}
	if b.network == nil {
		return fmt.Errorf("node group %s: network: %w", ng.Role, ErrForwardReference)
	}
	switch ng.Image.Kind {
	case ImageFromMapping:
		if b.images == nil {
			return fmt.Errorf("node group %s: image mapping: %w", ng.Role, ErrForwardReference)
		}
	case ImageFromSSM:
		if ng.Image.Parameter == "" {
			return fmt.Errorf("%w: node group %s has no SSM image parameter", ErrInvalid, ng.Role)
		}
	default:
		return fmt.Errorf("%w: node group %s has image kind %q", ErrInvalid, ng.Role, ng.Image.Kind)
	}

	ng.UserData = append([]string(nil), ng.UserData...)
	ng.IAM = cloneStatements(ng.IAM)
	ng.Tags = copyTags(ng.Tags)
	ng.LoadBalancers = nil
	ng.seq = b.next()

	b.nodeGroups[ng.Role] = &ng
	b.nodeOrder = append(b.nodeOrder, ng.Role)
	return nil
}

// DeclareLoadBalancer declares a load balancer in front of a declared node
// group, guarded by a declared security group.
func (b *Builder) DeclareLoadBalancer(lb LoadBalancer) error {
	if err := b.declaring("load balancer " + lb.ID); err != nil {
		return err
	}
	if lb.ID == "" || lb.Port <= 0 {
		return fmt.Errorf("%w: load balancer %q needs an ID and a port", ErrInvalid, lb.ID)
	}
	if _, ok := b.lbs[lb.ID]; ok {
		return fmt.Errorf("load balancer %s: %w", lb.ID, ErrDuplicate)
	}
	if _, ok := b.groups[lb.SecurityGroup]; !ok {
		return fmt.Errorf("load balancer %s: security group %q: %w", lb.ID, lb.SecurityGroup, ErrForwardReference)
	}
	target, ok := b.nodeGroups[lb.Target]
	if !ok {
		return fmt.Errorf("load balancer %s: node group %q: %w", lb.ID, lb.Target, ErrForwardReference)
	}
	if lb.HealthCheckPort == 0 {
		lb.HealthCheckPort = lb.Port
	}

	lb.Tags = copyTags(lb.Tags)
	lb.seq = b.next()
	b.lbs[lb.ID] = &lb
	b.lbOrder = append(b.lbOrder, lb.ID)
	target.LoadBalancers = append(target.LoadBalancers, lb.ID)
	return nil
}

// DeclareRecord declares an alias record for a declared load balancer.
func (b *Builder) DeclareRecord(r AliasRecord) error {
	if err := b.declaring("record " + r.Name); err != nil {
		return err
	}
	if r.Name == "" {
		return fmt.Errorf("%w: record without a name", ErrInvalid)
	}
	for _, existing := range b.records {
		if existing.Name == r.Name {
			return fmt.Errorf("record %s: %w", r.Name, ErrDuplicate)
		}
	}
	if _, ok := b.lbs[r.LoadBalancer]; !ok {
		return fmt.Errorf("record %s: load balancer %q: %w", r.Name, r.LoadBalancer, ErrForwardReference)
	}

	r.seq = b.next()
	b.records = append(b.records, r)
	return nil
}

// Seal ends the declaration phase.
func (b *Builder) Seal() error {
	if b.sealed {
		return ErrSealed
	}
	if b.network == nil {
		return fmt.Errorf("seal: network: %w", ErrForwardReference)
	}
	b.sealed = true
	return nil
}

// Allow adds an ingress rule to the target group. Group peers must have
// been declared before Seal.
func (b *Builder) Allow(target string, peer Peer, ports PortRange, description string) error {
	if !b.sealed {
		return fmt.Errorf("allow %s -> %s: %w", peer, target, ErrNotSealed)
	}
	if _, ok := b.groups[target]; !ok {
		return fmt.Errorf("allow %s -> %s: target group: %w", peer, target, ErrForwardReference)
	}
	if peer.IsGroup() {
		if _, ok := b.groups[peer.Group]; !ok {
			return fmt.Errorf("allow %s -> %s: peer group: %w", peer, target, ErrForwardReference)
		}
	} else if _, _, err := net.ParseCIDR(peer.CIDR); err != nil {
		return fmt.Errorf("%w: rule peer %q is neither a group nor a CIDR", ErrInvalid, peer.CIDR)
	}
	if err := ports.validate(); err != nil {
		return fmt.Errorf("allow %s -> %s: %w", peer, target, err)
	}

	b.rules = append(b.rules, IngressRule{
		Target:      target,
		Peer:        peer,
		Ports:       ports,
		Description: description,
		seq:         b.next(),
	})
	return nil
}

// Build returns the immutable topology.
func (b *Builder) Build() (*Topology, error) {
	if !b.sealed {
		return nil, fmt.Errorf("build: %w", ErrNotSealed)
	}

	t := &Topology{
		meta:    b.meta,
		network: *b.network,
		images:  b.images,
		groups:  make([]SecurityGroup, 0, len(b.groupOrder)),
		rules:   append([]IngressRule(nil), b.rules...),
		records: append([]AliasRecord(nil), b.records...),
	}
	for _, name := range b.groupOrder {
		t.groups = append(t.groups, *b.groups[name])
	}
	for _, role := range b.nodeOrder {
		ng := *b.nodeGroups[role]
		ng.LoadBalancers = append([]string(nil), ng.LoadBalancers...)
		t.nodeGroups = append(t.nodeGroups, ng)
	}
	for _, id := range b.lbOrder {
		t.lbs = append(t.lbs, *b.lbs[id])
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func copyTags(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
