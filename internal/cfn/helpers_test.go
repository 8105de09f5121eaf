package cfn

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/topology"
)

func testCluster(t *testing.T, mutate func(cfg *config.Config)) *topology.Topology {
	t.Helper()

	cfg := config.Default()
	cfg.DNS.Zone = "example.com"
	cfg.KeyPair = "k8s"
	if mutate != nil {
		mutate(cfg)
	}

	topo, err := topology.BuildCluster(topology.ClusterInput{
		Config:          cfg,
		Images:          image.NewMapping(map[string]string{"us-east-1": "ami-111", "eu-west-1": "ami-222"}),
		HostedZoneID:    "Z1",
		WorkstationCIDR: "198.51.100.7/32",
	})
	require.NoError(t, err)
	return topo
}

// getAttTarget returns the logical ID referenced by an Fn::GetAtt value.
func getAttTarget(v any) (string, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return "", false
	}
	args, ok := m["Fn::GetAtt"].([]any)
	if !ok || len(args) != 2 {
		return "", false
	}
	id, ok := args[0].(string)
	return id, ok
}
