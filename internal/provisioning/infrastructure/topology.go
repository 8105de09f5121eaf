package infrastructure

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/provisioning"
	"github.com/napo-io/k8sway/internal/topology"
)

// DeclareTopology builds the cluster topology from the configuration and
// the results of earlier phases.
func (p *Provisioner) DeclareTopology(ctx *provisioning.Context) error {
	topo, err := topology.BuildCluster(topology.ClusterInput{
		Config:          ctx.Config,
		Images:          ctx.State.Images,
		HostedZoneID:    ctx.State.HostedZoneID,
		WorkstationCIDR: ctx.State.WorkstationCIDR,
	})
	if err != nil {
		return fmt.Errorf("failed to declare topology: %w", err)
	}
	ctx.State.Topology = topo

	for _, g := range topo.SecurityGroups() {
		provisioning.LogResourceDeclared(ctx.Observer, p.Name(), "security group", g.Name)
	}
	for _, ng := range topo.NodeGroups() {
		provisioning.LogResourceDeclared(ctx.Observer, p.Name(), "node group", ng.Name)
	}
	for _, lb := range topo.LoadBalancers() {
		provisioning.LogResourceDeclared(ctx.Observer, p.Name(), "load balancer", lb.Name)
	}
	for _, r := range topo.Records() {
		provisioning.LogResourceDeclared(ctx.Observer, p.Name(), "record", r.Name)
	}

	ctx.Observer.Printf("[%s] Declared %d node groups and %d access rules", p.Name(), len(topo.NodeGroups()), len(topo.Rules()))
	return nil
}
