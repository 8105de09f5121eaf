package config

// Node roles in build order.
const (
	RoleBastion = "bastion"
	RoleEtcd    = "etcd"
	RoleMaster  = "master"
	RoleWorker  = "worker"
)

// Roles returns every role in the order node groups are declared.
func Roles() []string {
	return []string{RoleBastion, RoleEtcd, RoleMaster, RoleWorker}
}

// Common port numbers used throughout the application.
const (
	// SSHPort is the port bastion and node SSH listens on.
	SSHPort = 22

	// KubeAPIPort is the standard Kubernetes API server port.
	KubeAPIPort = 6443

	// EtcdClientPort and EtcdPeerPort bound the etcd port range.
	EtcdClientPort = 2379
	EtcdPeerPort   = 2380
)

// Defaults of the standard four-role cluster.
const (
	DefaultProject       = "k8s-the-right-hard-way-aws"
	DefaultOwner         = "napo.io"
	DefaultRegion        = "us-east-1"
	DefaultVPCCIDR       = "10.5.0.0/16"
	DefaultMaxAZs        = 2
	DefaultSubnetMask    = 24
	DefaultPodCIDRPrefix = "10.200"
	DefaultDNSTTL        = 300
	DefaultInstanceType  = "t3a.small"
	DefaultStackName     = "k8s-right-hard-way"

	// DefaultImageNamePattern matches Ubuntu 18.04 server images.
	DefaultImageNamePattern = "ubuntu/images/hvm-ssd/ubuntu-bionic-18.04-amd64-server-*"

	// DefaultImageOwner is Canonical's publisher account.
	DefaultImageOwner = "099720109477"

	DefaultImageConcurrency = 8

	// DefaultConfigFilename is looked up when no --config is given.
	DefaultConfigFilename = "k8sway.yaml"
)
