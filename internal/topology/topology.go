package topology

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/image"
)

// Topology is the immutable result of a Builder. Accessors return copies.
type Topology struct {
	meta       Meta
	network    Network
	images     *image.Mapping
	groups     []SecurityGroup
	nodeGroups []NodeGroup
	lbs        []LoadBalancer
	records    []AliasRecord
	rules      []IngressRule
}

// Meta returns the cluster-wide settings.
func (t *Topology) Meta() Meta {
	return t.meta
}

// Network returns the VPC layout.
func (t *Topology) Network() Network {
	n := t.network
	n.PublicSubnets = append([]string(nil), n.PublicSubnets...)
	n.PrivateSubnets = append([]string(nil), n.PrivateSubnets...)
	return n
}

// Images returns the region to image mapping, or nil if none was declared.
func (t *Topology) Images() *image.Mapping {
	return t.images
}

// SecurityGroups returns the groups in declaration order.
func (t *Topology) SecurityGroups() []SecurityGroup {
	return append([]SecurityGroup(nil), t.groups...)
}

// NodeGroups returns the node groups in declaration order.
func (t *Topology) NodeGroups() []NodeGroup {
	out := make([]NodeGroup, len(t.nodeGroups))
	for i, ng := range t.nodeGroups {
		out[i] = cloneNodeGroup(ng)
	}
	return out
}

// NodeGroup returns the node group of role.
func (t *Topology) NodeGroup(role string) (NodeGroup, bool) {
	for _, ng := range t.nodeGroups {
		if ng.Role == role {
			return cloneNodeGroup(ng), true
		}
	}
	return NodeGroup{}, false
}

// LoadBalancers returns the load balancers in declaration order.
func (t *Topology) LoadBalancers() []LoadBalancer {
	out := make([]LoadBalancer, len(t.lbs))
	for i, lb := range t.lbs {
		lb.Tags = copyTags(lb.Tags)
		out[i] = lb
	}
	return out
}

// LoadBalancer returns the load balancer with the given ID.
func (t *Topology) LoadBalancer(id string) (LoadBalancer, bool) {
	for _, lb := range t.lbs {
		if lb.ID == id {
			lb.Tags = copyTags(lb.Tags)
			return lb, true
		}
	}
	return LoadBalancer{}, false
}

// Records returns the alias records in declaration order.
func (t *Topology) Records() []AliasRecord {
	return append([]AliasRecord(nil), t.records...)
}

// Rules returns the ingress rules in the order they were added.
func (t *Topology) Rules() []IngressRule {
	return append([]IngressRule(nil), t.rules...)
}

// RulesFor returns the rules whose target is group.
func (t *Topology) RulesFor(group string) []IngressRule {
	var out []IngressRule
	for _, r := range t.rules {
		if r.Target == group {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks that every reference points at something declared
// earlier than the referencing item.
func (t *Topology) Validate() error {
	groupSeq := make(map[string]int, len(t.groups))
	for _, g := range t.groups {
		groupSeq[g.Name] = g.seq
	}
	declaredBefore := func(name string, seq int) bool {
		s, ok := groupSeq[name]
		return ok && s < seq
	}

	nodeSeq := make(map[string]int, len(t.nodeGroups))
	for _, ng := range t.nodeGroups {
		if !declaredBefore(ng.SecurityGroup, ng.seq) {
			return fmt.Errorf("node group %s: security group %q: %w", ng.Role, ng.SecurityGroup, ErrForwardReference)
		}
		nodeSeq[ng.Role] = ng.seq
	}

	lbSeq := make(map[string]int, len(t.lbs))
	for _, lb := range t.lbs {
		if !declaredBefore(lb.SecurityGroup, lb.seq) {
			return fmt.Errorf("load balancer %s: security group %q: %w", lb.ID, lb.SecurityGroup, ErrForwardReference)
		}
		if s, ok := nodeSeq[lb.Target]; !ok || s >= lb.seq {
			return fmt.Errorf("load balancer %s: node group %q: %w", lb.ID, lb.Target, ErrForwardReference)
		}
		lbSeq[lb.ID] = lb.seq
	}

	for _, r := range t.records {
		if s, ok := lbSeq[r.LoadBalancer]; !ok || s >= r.seq {
			return fmt.Errorf("record %s: load balancer %q: %w", r.Name, r.LoadBalancer, ErrForwardReference)
		}
	}

	for _, r := range t.rules {
		if !declaredBefore(r.Target, r.seq) {
			return fmt.Errorf("rule %q: target %q: %w", r.Description, r.Target, ErrForwardReference)
		}
		if r.Peer.IsGroup() && !declaredBefore(r.Peer.Group, r.seq) {
			return fmt.Errorf("rule %q: peer %q: %w", r.Description, r.Peer.Group, ErrForwardReference)
		}
	}
	return nil
}

func cloneNodeGroup(ng NodeGroup) NodeGroup {
	ng.UserData = append([]string(nil), ng.UserData...)
	ng.IAM = cloneStatements(ng.IAM)
	ng.LoadBalancers = append([]string(nil), ng.LoadBalancers...)
	ng.Tags = copyTags(ng.Tags)
	return ng
}

func cloneStatements(in []PolicyStatement) []PolicyStatement {
	if in == nil {
		return nil
	}
	out := make([]PolicyStatement, len(in))
	for i, st := range in {
		out[i] = PolicyStatement{
			Effect:   st.Effect,
			Action:   append([]string(nil), st.Action...),
			Resource: append([]string(nil), st.Resource...),
		}
	}
	return out
}
