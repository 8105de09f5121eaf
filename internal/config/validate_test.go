package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := Default()
	cfg.DNS.Zone = "k8s.example.com"
	cfg.KeyPair = "ops"
	return cfg
}

func fields(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestValidate_Default(t *testing.T) {
	t.Parallel()
	require.NoError(t, validConfig().Validate())
	assert.Empty(t, validConfig().Warnings())
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing zone", func(c *Config) { c.DNS.Zone = "" }, "dns.zone"},
		{"bad zone", func(c *Config) { c.DNS.Zone = "not a zone" }, "dns.zone"},
		{"bad region", func(c *Config) { c.Region = "moon-1" }, "region"},
		{"bad policy", func(c *Config) { c.AccessPolicy = "everyone" }, "accessPolicy"},
		{"bad workstation", func(c *Config) { c.WorkstationCIDR = "1.2.3.4" }, "workstationCidr"},
		{"bad vpc", func(c *Config) { c.Network.VPCCIDR = "10.0.0.0" }, "network.vpcCidr"},
		{"vpc too large", func(c *Config) { c.Network.VPCCIDR = "10.0.0.0/8" }, "network.vpcCidr"},
		{"too many azs", func(c *Config) { c.Network.MaxAZs = 7 }, "network.maxAzs"},
		{"subnets do not fit", func(c *Config) { c.Network.VPCCIDR = "10.0.0.0/23" }, "network.subnetMask"},
		{"bad pod prefix", func(c *Config) { c.Kubernetes.PodCIDRPrefix = "10.200.0" }, "kubernetes.podCidrPrefix"},
		{"min above max", func(c *Config) { c.Nodes.Worker.Min = 4 }, "nodes.worker"},
		{"desired out of range", func(c *Config) { c.Nodes.Etcd.Desired = 5 }, "nodes.etcd"},
		{"bad instance type", func(c *Config) { c.Nodes.Master.InstanceType = "large" }, "nodes.master.instanceType"},
		{"bad subnet", func(c *Config) { c.Nodes.Bastion.Subnet = "dmz" }, "nodes.bastion.subnet"},
		{"no masters", func(c *Config) { c.Nodes.Master = NodeGroupConfig{InstanceType: "t3a.small", Subnet: SubnetPrivate} }, "nodes.master.desired"},
		{"region not looked up", func(c *Config) { c.Image.Regions = []string{"eu-west-1"} }, "image.regions"},
		{"no stack name", func(c *Config) { c.Stack.Name = "" }, "stack.name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.KeyPair = ""
	cfg.AccessPolicy = AccessPolicyOpen
	cfg.Nodes.Etcd = NodeGroupConfig{Min: 2, Max: 2, Desired: 2, InstanceType: "t3a.small", Subnet: SubnetPrivate}

	require.NoError(t, cfg.Validate())
	assert.ElementsMatch(t, []string{"keyPair", "accessPolicy", "nodes.etcd.desired"}, fields(cfg.Warnings()))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	ve := ValidationError{Field: "region", Message: "bad", Severity: SeverityError}
	assert.Equal(t, "[error] region: bad", ve.Error())
	assert.True(t, ve.IsError())
	assert.False(t, ValidationError{Severity: SeverityWarning}.IsError())
}

func TestNodeGroup(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	for _, role := range Roles() {
		_, err := cfg.Nodes.NodeGroup(role)
		require.NoError(t, err)
	}
	_, err := cfg.Nodes.NodeGroup("gpu")
	require.Error(t, err)
}
