package config

// Default returns the configuration of the standard four-role cluster.
// DNS zone and key pair have no sensible default and stay empty.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Project == "" {
		c.Project = DefaultProject
	}
	if c.Owner == "" {
		c.Owner = DefaultOwner
	}
	if c.Region == "" {
		c.Region = DefaultRegion
	}
	if c.AccessPolicy == "" {
		c.AccessPolicy = AccessPolicyWorkstation
	}

	if c.Network.VPCCIDR == "" {
		c.Network.VPCCIDR = DefaultVPCCIDR
	}
	if c.Network.MaxAZs == 0 {
		c.Network.MaxAZs = DefaultMaxAZs
	}
	if c.Network.SubnetMask == 0 {
		c.Network.SubnetMask = DefaultSubnetMask
	}

	if c.DNS.TTL == 0 {
		c.DNS.TTL = DefaultDNSTTL
	}
	if c.Kubernetes.PodCIDRPrefix == "" {
		c.Kubernetes.PodCIDRPrefix = DefaultPodCIDRPrefix
	}

	if c.Image.NamePattern == "" {
		c.Image.NamePattern = DefaultImageNamePattern
	}
	if c.Image.Owner == "" {
		c.Image.Owner = DefaultImageOwner
	}
	if c.Image.Concurrency == 0 {
		c.Image.Concurrency = DefaultImageConcurrency
	}

	applyNodeDefaults(&c.Nodes.Bastion, 1)
	applyNodeDefaults(&c.Nodes.Etcd, 3)
	applyNodeDefaults(&c.Nodes.Master, 3)
	applyNodeDefaults(&c.Nodes.Worker, 3)

	if c.Stack.Name == "" {
		c.Stack.Name = DefaultStackName
	}
}

// applyNodeDefaults sizes a group that was never sized to count instances.
// A group with only Desired set gets min and max pinned to it. A group
// explicitly sized to zero stays at zero.
func applyNodeDefaults(n *NodeGroupConfig, count int) {
	if !n.sized && n.Desired == 0 && n.Min == 0 && n.Max == 0 {
		n.Min, n.Max, n.Desired = count, count, count
	}
	if n.Desired != 0 && n.Min == 0 && n.Max == 0 {
		n.Min, n.Max = n.Desired, n.Desired
	}
	n.sized = true
	if n.InstanceType == "" {
		n.InstanceType = DefaultInstanceType
	}
	if n.Subnet == "" {
		n.Subnet = SubnetPrivate
	}
}
