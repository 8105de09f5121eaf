package cfn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/topology"
	"github.com/napo-io/k8sway/internal/util/tags"
)

func TestSynthesize_NodeGroups(t *testing.T) {
	t.Parallel()

	tmpl, err := Synthesize(testCluster(t, nil))
	require.NoError(t, err)

	asgs := tmpl.ResourcesOfType(TypeAutoScalingGroup)
	assert.Equal(t, []string{"BastionAsg", "EtcdAsg", "MasterAsg", "WorkerAsg"}, asgs)

	tests := []struct {
		id      string
		desired string
		lbs     int
	}{
		{id: "BastionAsg", desired: "1", lbs: 1},
		{id: "EtcdAsg", desired: "3", lbs: 0},
		{id: "MasterAsg", desired: "3", lbs: 2},
		{id: "WorkerAsg", desired: "3", lbs: 0},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			props := tmpl.Resources[tt.id].Properties
			assert.Equal(t, tt.desired, props["DesiredCapacity"])
			assert.Equal(t, tt.desired, props["MinSize"])
			assert.Equal(t, tt.desired, props["MaxSize"])

			lbs, _ := props["LoadBalancerNames"].([]any)
			assert.Len(t, lbs, tt.lbs)
			assert.Len(t, props["VPCZoneIdentifier"], 2)
		})
	}
}

func TestSynthesize_IngressReferencesDeclaredGroups(t *testing.T) {
	t.Parallel()

	tmpl, err := Synthesize(testCluster(t, nil))
	require.NoError(t, err)

	groups := map[string]bool{}
	for _, id := range tmpl.ResourcesOfType(TypeSecurityGroup) {
		groups[id] = true
	}
	require.Len(t, groups, 7)

	ingress := tmpl.ResourcesOfType(TypeSecurityGroupIngress)
	assert.Len(t, ingress, 18)

	for _, id := range ingress {
		props := tmpl.Resources[id].Properties

		target, ok := getAttTarget(props["GroupId"])
		require.True(t, ok, id)
		assert.True(t, groups[target], "%s targets undeclared %s", id, target)

		if src, ok := props["SourceSecurityGroupId"]; ok {
			peer, ok := getAttTarget(src)
			require.True(t, ok, id)
			assert.True(t, groups[peer], "%s references undeclared %s", id, peer)
		} else {
			assert.NotEmpty(t, props["CidrIp"], id)
		}
	}
}

func TestSynthesize_ImageMap(t *testing.T) {
	t.Parallel()

	tmpl, err := Synthesize(testCluster(t, nil))
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]string{
		"us-east-1": {"ami": "ami-111"},
		"eu-west-1": {"ami": "ami-222"},
	}, tmpl.Mappings[ImageMapName])

	param, ok := tmpl.Parameters["BastionImageId"]
	require.True(t, ok)
	assert.Equal(t, ParamTypeSSMImageID, param.Type)

	bastion := tmpl.Resources["BastionLaunchTemplate"].Properties["LaunchTemplateData"].(map[string]any)
	assert.Equal(t, Ref("BastionImageId"), bastion["ImageId"])
	assert.Equal(t, "k8s", bastion["KeyName"])

	master := tmpl.Resources["MasterLaunchTemplate"].Properties["LaunchTemplateData"].(map[string]any)
	assert.Equal(t, FindInMap(ImageMapName, Ref(PseudoRegion), ImageMapKey), master["ImageId"])
}

func TestSynthesize_Network(t *testing.T) {
	t.Parallel()

	tmpl, err := Synthesize(testCluster(t, func(cfg *config.Config) { cfg.Network.MaxAZs = 3 }))
	require.NoError(t, err)

	assert.Len(t, tmpl.ResourcesOfType(TypeSubnet), 6)
	assert.Len(t, tmpl.ResourcesOfType(TypeNatGateway), 3)
	assert.Len(t, tmpl.ResourcesOfType(TypeVPC), 1)

	subnetTags := tmpl.Resources["PublicSubnet1"].Properties["Tags"]
	assert.Contains(t, subnetTags, tags.Tag{Key: tags.KeyAttribute, Value: tags.AttributePublic})
}

func TestSynthesize_LoadBalancersAndRecords(t *testing.T) {
	t.Parallel()

	tmpl, err := Synthesize(testCluster(t, nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"BastionLb", "MasterPrivateLb", "MasterPublicLb"}, tmpl.ResourcesOfType(TypeClassicLoadBalancer))
	assert.Equal(t, "internal", tmpl.Resources["MasterPrivateLb"].Properties["Scheme"])
	assert.Equal(t, "internet-facing", tmpl.Resources["BastionLb"].Properties["Scheme"])

	records := tmpl.ResourcesOfType(TypeRecordSet)
	assert.Equal(t, []string{"ApiInternalRecord", "ApiRecord", "BastionRecord"}, records)

	api := tmpl.Resources["ApiRecord"].Properties
	assert.Equal(t, "api.example.com.", api["Name"])
	assert.Equal(t, "Z1", api["HostedZoneId"])
	alias := api["AliasTarget"].(map[string]any)
	target, ok := getAttTarget(alias["DNSName"])
	require.True(t, ok)
	assert.Equal(t, "MasterPublicLb", target)

	assert.Contains(t, tmpl.Outputs, "MasterPublicLbDnsName")
	require.Contains(t, tmpl.Outputs, "VpcId")
	for id, out := range tmpl.Outputs {
		require.NotNil(t, out.Export, id)
		assert.Equal(t, Sub("${AWS::StackName}-"+id), out.Export.Name, id)
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	t.Parallel()

	topo := testCluster(t, nil)
	first, err := Synthesize(topo)
	require.NoError(t, err)
	second, err := Synthesize(topo)
	require.NoError(t, err)

	a, err := Render(first, FormatJSON)
	require.NoError(t, err)
	b, err := Render(second, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSynthesize_NilTopology(t *testing.T) {
	t.Parallel()

	_, err := Synthesize(nil)
	assert.Error(t, err)
}

func TestSynthesize_SharedSSMParameter(t *testing.T) {
	t.Parallel()

	b := topology.NewBuilder(topology.Meta{Project: "p", Owner: "o", Region: "us-east-1", StackName: "s", Zone: "example.com", ZoneID: "Z1"})
	require.NoError(t, b.DeclareNetwork(topology.Network{
		CIDR:           "10.5.0.0/16",
		PublicSubnets:  []string{"10.5.0.0/24", "10.5.1.0/24"},
		PrivateSubnets: []string{"10.5.2.0/24", "10.5.3.0/24"},
	}))
	require.NoError(t, b.DeclareImages(image.NewMapping(map[string]string{"us-east-1": "ami-1"})))
	require.NoError(t, b.DeclareSecurityGroup("bastion", "bastion hosts"))
	for _, role := range []string{"bastion", "jump"} {
		require.NoError(t, b.DeclareNodeGroup(topology.NodeGroup{
			Role: role, Name: "s-" + role, Min: 1, Max: 1, Desired: 1,
			InstanceType: "t3a.nano", Subnet: config.SubnetPublic,
			Image:         topology.ImageRef{Kind: topology.ImageFromSSM, Parameter: topology.AmazonLinuxParameter},
			SecurityGroup: "bastion",
		}))
	}
	require.NoError(t, b.Seal())
	topo, err := b.Build()
	require.NoError(t, err)

	tmpl, err := Synthesize(topo)
	require.NoError(t, err)

	require.Len(t, tmpl.Parameters, 1)
	param, ok := tmpl.Parameters["BastionImageId"]
	require.True(t, ok)
	assert.Equal(t, topology.AmazonLinuxParameter, param.Default)

	for _, id := range []string{"BastionLaunchTemplate", "JumpLaunchTemplate"} {
		data, ok := tmpl.Resources[id].Properties["LaunchTemplateData"].(map[string]any)
		require.True(t, ok, id)
		assert.Equal(t, Ref("BastionImageId"), data["ImageId"], id)
	}
}
