package topology

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/image"
)

func clusterInput() ClusterInput {
	cfg := config.Default()
	cfg.DNS.Zone = "example.com"
	cfg.KeyPair = "k8s"
	return ClusterInput{
		Config:          cfg,
		Images:          image.NewMapping(map[string]string{"us-east-1": "ami-123", "eu-west-1": "ami-456"}),
		HostedZoneID:    "Z1",
		WorkstationCIDR: "198.51.100.7/32",
	}
}

func TestBuildCluster(t *testing.T) {
	t.Parallel()

	topo, err := BuildCluster(clusterInput())
	require.NoError(t, err)
	require.NoError(t, topo.Validate())

	assert.Equal(t, 2, topo.Network().AZs())
	assert.Len(t, topo.SecurityGroups(), 7)
	assert.Len(t, topo.LoadBalancers(), 3)
	assert.Len(t, topo.Records(), 3)
	assert.Len(t, topo.Rules(), 18)

	counts := map[string]int{}
	for _, ng := range topo.NodeGroups() {
		counts[ng.Role] = ng.Desired
		if RegistersDNS(ng.Role) {
			assert.Len(t, ng.IAM, 2, ng.Role)
			assert.Equal(t, DNSChangeStatement("Z1"), ng.IAM[1], ng.Role)
		} else {
			assert.Equal(t, []PolicyStatement{SharedStatement()}, ng.IAM, ng.Role)
		}
		assert.Equal(t, "k8s-the-right-hard-way-aws", ng.Tags["Project"])
		assert.Equal(t, ng.Role, ng.Tags["Role"])
	}
	assert.Equal(t, map[string]int{"bastion": 1, "etcd": 3, "master": 3, "worker": 3}, counts)

	bastion, ok := topo.NodeGroup(config.RoleBastion)
	require.True(t, ok)
	assert.Equal(t, ImageFromSSM, bastion.Image.Kind)
	assert.Equal(t, "k8s-the-right-hard-way-aws-bastion", bastion.Tags["Name"])
	assert.Equal(t, []string{LBBastion}, bastion.LoadBalancers)

	master, ok := topo.NodeGroup(config.RoleMaster)
	require.True(t, ok)
	assert.Equal(t, ImageFromMapping, master.Image.Kind)
	assert.Equal(t, "k8s-the-right-hard-way-aws-k8s-master", master.Tags["Name"])
	assert.Equal(t, []string{LBMasterPublic, LBMasterPrivate}, master.LoadBalancers)

	lb, ok := topo.LoadBalancer(LBMasterPrivate)
	require.True(t, ok)
	assert.Equal(t, SchemeInternal, lb.Scheme)
	assert.LessOrEqual(t, len(lb.Name), 32)

	names := []string{}
	for _, r := range topo.Records() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"bastion.example.com.", "api.example.com.", "api-internal.example.com."}, names)
}

func TestBuildCluster_OpenPolicy(t *testing.T) {
	t.Parallel()

	in := clusterInput()
	in.Config.AccessPolicy = config.AccessPolicyOpen

	topo, err := BuildCluster(in)
	require.NoError(t, err)

	var open bool
	for _, r := range topo.RulesFor(GroupMasterPrivateLB) {
		if r.Peer.CIDR == "0.0.0.0/0" {
			open = true
		}
	}
	assert.True(t, open)
}

func TestBuildCluster_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *ClusterInput)
		wantErr string
	}{
		{
			name:    "no image in region",
			mutate:  func(in *ClusterInput) { in.Config.Region = "ap-south-1" },
			wantErr: "ap-south-1",
		},
		{
			name:    "missing hosted zone",
			mutate:  func(in *ClusterInput) { in.HostedZoneID = "" },
			wantErr: "hosted zone",
		},
		{
			name:    "bad workstation address",
			mutate:  func(in *ClusterInput) { in.WorkstationCIDR = "198.51.100.7" },
			wantErr: "workstation CIDR",
		},
		{
			name:    "nil config",
			mutate:  func(in *ClusterInput) { in.Config = nil },
			wantErr: "configuration is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			in := clusterInput()
			tt.mutate(&in)

			_, err := BuildCluster(in)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildCluster_NoImageIsTyped(t *testing.T) {
	t.Parallel()

	in := clusterInput()
	in.Images = image.NewMapping(nil)

	_, err := BuildCluster(in)
	assert.ErrorIs(t, err, image.ErrNoImageInRegion)
}

func TestBuildCluster_UserDataRegistersNodes(t *testing.T) {
	t.Parallel()

	topo, err := BuildCluster(clusterInput())
	require.NoError(t, err)

	worker, _ := topo.NodeGroup(config.RoleWorker)
	script := RenderUserData(worker.UserData)
	assert.True(t, strings.HasPrefix(script, "#!/bin/bash\n"))
	assert.Contains(t, script, "--hosted-zone-id Z1")
	assert.Contains(t, script, "POD_CIDR=10.200.")
}
