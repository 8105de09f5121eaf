package cfn

import (
	"fmt"

	"github.com/napo-io/k8sway/internal/util/tags"
)

func (s *synthesizer) network() {
	network := s.topo.Network()
	project := s.meta.Project

	s.add(vpcID, Resource{
		Type: TypeVPC,
		Properties: map[string]any{
			"CidrBlock":          network.CIDR,
			"EnableDnsHostnames": true,
			"EnableDnsSupport":   true,
			"Tags":               s.tags(project+"-vpc", nil),
		},
	})
	s.add(internetGatewayID, Resource{
		Type:       TypeInternetGateway,
		Properties: map[string]any{"Tags": s.tags(project+"-igw", nil)},
	})
	s.add(gatewayAttachmentID, Resource{
		Type: TypeGatewayAttachment,
		Properties: map[string]any{
			"VpcId":             Ref(vpcID),
			"InternetGatewayId": Ref(internetGatewayID),
		},
	})

	s.add(publicRouteTableID, Resource{
		Type: TypeRouteTable,
		Properties: map[string]any{
			"VpcId": Ref(vpcID),
			"Tags":  s.tags(project+"-public", nil),
		},
	})
	s.add(publicDefaultRouteID, Resource{
		Type:      TypeRoute,
		DependsOn: []string{gatewayAttachmentID},
		Properties: map[string]any{
			"RouteTableId":         Ref(publicRouteTableID),
			"DestinationCidrBlock": "0.0.0.0/0",
			"GatewayId":            Ref(internetGatewayID),
		},
	})

	for i, cidr := range network.PublicSubnets {
		id := fmt.Sprintf("PublicSubnet%d", i+1)
		s.add(id, Resource{
			Type: TypeSubnet,
			Properties: map[string]any{
				"VpcId":               Ref(vpcID),
				"CidrBlock":           cidr,
				"AvailabilityZone":    Select(i, GetAZs()),
				"MapPublicIpOnLaunch": true,
				"Tags": s.tags(fmt.Sprintf("%s-public-%d", project, i+1), map[string]string{
					tags.KeyAttribute: tags.AttributePublic,
				}),
			},
		})
		s.add(id+"RouteTableAssociation", Resource{
			Type: TypeSubnetRouteAssociation,
			Properties: map[string]any{
				"SubnetId":     Ref(id),
				"RouteTableId": Ref(publicRouteTableID),
			},
		})
		s.publicSubnets = append(s.publicSubnets, id)

		// One NAT gateway per zone keeps private subnets independent.
		eip := fmt.Sprintf("NatEip%d", i+1)
		nat := fmt.Sprintf("NatGateway%d", i+1)
		s.add(eip, Resource{
			Type:       TypeEIP,
			DependsOn:  []string{gatewayAttachmentID},
			Properties: map[string]any{"Domain": "vpc"},
		})
		s.add(nat, Resource{
			Type: TypeNatGateway,
			Properties: map[string]any{
				"AllocationId": GetAtt(eip, "AllocationId"),
				"SubnetId":     Ref(id),
				"Tags":         s.tags(fmt.Sprintf("%s-nat-%d", project, i+1), nil),
			},
		})
	}

	for i, cidr := range network.PrivateSubnets {
		id := fmt.Sprintf("PrivateSubnet%d", i+1)
		table := fmt.Sprintf("PrivateRouteTable%d", i+1)
		route := fmt.Sprintf("PrivateDefaultRoute%d", i+1)

		s.add(id, Resource{
			Type: TypeSubnet,
			Properties: map[string]any{
				"VpcId":            Ref(vpcID),
				"CidrBlock":        cidr,
				"AvailabilityZone": Select(i, GetAZs()),
				"Tags": s.tags(fmt.Sprintf("%s-private-%d", project, i+1), map[string]string{
					tags.KeyAttribute: tags.AttributePrivate,
				}),
			},
		})
		s.add(table, Resource{
			Type: TypeRouteTable,
			Properties: map[string]any{
				"VpcId": Ref(vpcID),
				"Tags":  s.tags(fmt.Sprintf("%s-private-%d", project, i+1), nil),
			},
		})
		s.add(route, Resource{
			Type: TypeRoute,
			Properties: map[string]any{
				"RouteTableId":         Ref(table),
				"DestinationCidrBlock": "0.0.0.0/0",
				"NatGatewayId":         Ref(fmt.Sprintf("NatGateway%d", i+1)),
			},
		})
		s.add(id+"RouteTableAssociation", Resource{
			Type: TypeSubnetRouteAssociation,
			Properties: map[string]any{
				"SubnetId":     Ref(id),
				"RouteTableId": Ref(table),
			},
		})
		s.privateSubnets = append(s.privateSubnets, id)
		s.privateRoutes = append(s.privateRoutes, route)
	}
}

func subnetRefs(ids []string) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = Ref(id)
	}
	return out
}
