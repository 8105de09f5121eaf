package cfn

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/topology"
	"github.com/napo-io/k8sway/internal/util/naming"
)

func (s *synthesizer) securityGroups() {
	for _, g := range s.topo.SecurityGroups() {
		name := naming.SecurityGroup(s.meta.StackName, g.Name)
		s.add(securityGroupID(g.Name), Resource{
			Type: TypeSecurityGroup,
			Properties: map[string]any{
				"GroupName":        name,
				"GroupDescription": g.Description,
				"VpcId":            Ref(vpcID),
				"Tags":             s.tags(name, nil),
			},
		})
	}

	// Rules are separate resources so groups may reference each other
	// without a dependency cycle.
	for _, g := range s.topo.SecurityGroups() {
		for i, r := range s.topo.RulesFor(g.Name) {
			s.add(fmt.Sprintf("%sIngress%d", securityGroupID(g.Name), i+1), Resource{
				Type:       TypeSecurityGroupIngress,
				Properties: ingressProperties(r),
			})
		}
	}
}

func ingressProperties(r topology.IngressRule) map[string]any {
	props := map[string]any{
		"GroupId":     groupIDOf(r.Target),
		"IpProtocol":  r.Ports.Protocol,
		"Description": r.Description,
	}
	if !r.Ports.IsAll() {
		props["FromPort"] = r.Ports.From
		props["ToPort"] = r.Ports.To
	}
	if r.Peer.IsGroup() {
		props["SourceSecurityGroupId"] = groupIDOf(r.Peer.Group)
	} else {
		props["CidrIp"] = r.Peer.CIDR
	}
	return props
}
