package topology

import (
	"github.com/napo-io/k8sway/internal/config"
)

// Security group names.
const (
	GroupBastionLB       = "bastion-lb"
	GroupMasterPublicLB  = "master-public-lb"
	GroupMasterPrivateLB = "master-private-lb"
	GroupBastion         = config.RoleBastion
	GroupEtcd            = config.RoleEtcd
	GroupMaster          = config.RoleMaster
	GroupWorker          = config.RoleWorker
)

// GroupDeclaration names a security group and its description.
type GroupDeclaration struct {
	Name        string
	Description string
}

// ClusterGroups returns the security groups of the cluster in declaration
// order: load balancer groups first, then one per role.
func ClusterGroups() []GroupDeclaration {
	return []GroupDeclaration{
		{GroupBastionLB, "Bastion-LB"},
		{GroupMasterPublicLB, "K8s MasterPublicLB"},
		{GroupMasterPrivateLB, "K8s MasterPrivateLB"},
		{GroupBastion, "Bastion"},
		{GroupEtcd, "etcd"},
		{GroupMaster, "K8s Master"},
		{GroupWorker, "K8s Worker"},
	}
}

// RuleSpec describes one ingress rule before it is added to a builder.
type RuleSpec struct {
	Target      string
	Peer        Peer
	Ports       PortRange
	Description string
}

// AccessRules returns the ingress rules for policy. workstation is the
// operator's address in CIDR form.
func AccessRules(policy config.AccessPolicy, workstation string) []RuleSpec {
	ssh := TCP(config.SSHPort)
	api := TCP(config.KubeAPIPort)
	etcd := TCPRange(config.EtcdClientPort, config.EtcdPeerPort)
	ws := CIDRPeer(workstation)

	rules := []RuleSpec{
		{GroupBastionLB, ws, ssh, "SSH: Workstation - BastionLB"},
		{GroupMasterPublicLB, ws, api, "kubectl: Workstation - MasterPublicLB"},
		{GroupMasterPublicLB, GroupPeer(GroupMaster), api, "kubeapi: Masters - MasterPublicLB"},
	}

	if policy == config.AccessPolicyOpen {
		rules = append(rules,
			RuleSpec{GroupMasterPrivateLB, AnyIPv4(), api, "kubectl: ALL - MasterPrivateLB"},
		)
	} else {
		rules = append(rules,
			RuleSpec{GroupMasterPrivateLB, GroupPeer(GroupMaster), api, "kubeapi: Masters - MasterPrivateLB"},
			RuleSpec{GroupMasterPrivateLB, GroupPeer(GroupWorker), api, "kubeapi: Workers - MasterPrivateLB"},
		)
	}

	rules = append(rules,
		RuleSpec{GroupBastion, GroupPeer(GroupBastionLB), ssh, "SSH: BastionLB - Bastion"},

		RuleSpec{GroupEtcd, GroupPeer(GroupBastion), ssh, "SSH: Bastion - Etcds"},
		RuleSpec{GroupEtcd, GroupPeer(GroupMaster), etcd, "etcd: Masters - Etcds"},
		RuleSpec{GroupEtcd, GroupPeer(GroupEtcd), etcd, "etcd: Etcds - Etcds"},

		RuleSpec{GroupMaster, GroupPeer(GroupWorker), AllTraffic(), "ALL: Workers - Masters"},
		RuleSpec{GroupMaster, GroupPeer(GroupBastion), ssh, "SSH: Bastion - Masters"},
		RuleSpec{GroupMaster, GroupPeer(GroupBastion), api, "kubectl: Bastion - Masters"},
		RuleSpec{GroupMaster, GroupPeer(GroupMasterPublicLB), api, "kubectl: MasterPublicLB - Masters"},
		RuleSpec{GroupMaster, GroupPeer(GroupMasterPrivateLB), api, "kubectl: MasterPrivateLB - Masters"},
		RuleSpec{GroupMaster, GroupPeer(GroupWorker), api, "kubectl: Workers - Masters"},

		RuleSpec{GroupWorker, GroupPeer(GroupMaster), AllTraffic(), "ALL: Masters - Workers"},
		RuleSpec{GroupWorker, GroupPeer(GroupBastion), ssh, "SSH: Bastion - Workers"},
		RuleSpec{GroupWorker, GroupPeer(GroupBastion), api, "kubectl: Bastion - Workers"},
	)
	return rules
}
