package cfn

import (
	"fmt"
	"strings"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/topology"
	"github.com/napo-io/k8sway/internal/util/naming"
)

// Health check settings of every classic load balancer.
const (
	healthyThreshold   = "3"
	unhealthyThreshold = "5"
	healthInterval     = "30"
	healthTimeout      = "5"
)

func loadBalancerID(id string) string {
	return naming.LogicalID(id, "lb")
}

func (s *synthesizer) loadBalancers() {
	for _, lb := range s.topo.LoadBalancers() {
		subnets := s.privateSubnets
		var dependsOn []string
		if lb.Subnet() == config.SubnetPublic {
			subnets = s.publicSubnets
			dependsOn = []string{gatewayAttachmentID}
		}

		s.add(loadBalancerID(lb.ID), Resource{
			Type:      TypeClassicLoadBalancer,
			DependsOn: dependsOn,
			Properties: map[string]any{
				"LoadBalancerName": lb.Name,
				"Scheme":           string(lb.Scheme),
				"Subnets":          subnetRefs(subnets),
				"SecurityGroups":   []any{groupIDOf(lb.SecurityGroup)},
				"CrossZone":        true,
				"Listeners": []any{map[string]any{
					"LoadBalancerPort": fmt.Sprint(lb.Port),
					"InstancePort":     fmt.Sprint(lb.Port),
					"Protocol":         "TCP",
				}},
				"HealthCheck": map[string]any{
					"Target":             fmt.Sprintf("TCP:%d", lb.HealthCheckPort),
					"HealthyThreshold":   healthyThreshold,
					"UnhealthyThreshold": unhealthyThreshold,
					"Interval":           healthInterval,
					"Timeout":            healthTimeout,
				},
				"Tags": s.tags("", lb.Tags),
			},
		})
	}
}

func (s *synthesizer) records() {
	for _, r := range s.topo.Records() {
		lb := loadBalancerID(r.LoadBalancer)
		s.add(recordID(r), Resource{
			Type: TypeRecordSet,
			Properties: map[string]any{
				"HostedZoneId": s.meta.ZoneID,
				"Name":         r.Name,
				"Type":         "A",
				"Comment":      r.Comment,
				"AliasTarget": map[string]any{
					"DNSName":      GetAtt(lb, "DNSName"),
					"HostedZoneId": GetAtt(lb, "CanonicalHostedZoneNameID"),
				},
			},
		})
	}
}

// recordID derives a logical ID from the record's first label.
func recordID(r topology.AliasRecord) string {
	host, _, _ := strings.Cut(r.Name, ".")
	return naming.LogicalID(host, "record")
}

func (s *synthesizer) outputs() {
	// Every output is exported under the stack name so sibling stacks can
	// import it.
	add := func(id string, o Output) {
		o.Export = &Export{Name: Sub("${" + PseudoStackName + "}-" + id)}
		if err := s.tmpl.AddOutput(id, o); err != nil {
			s.errs = append(s.errs, err)
		}
	}

	add("VpcId", Output{Description: "VPC of the cluster", Value: Ref(vpcID)})
	for _, lb := range s.topo.LoadBalancers() {
		id := loadBalancerID(lb.ID)
		add(id+"DnsName", Output{
			Description: fmt.Sprintf("DNS name of the %s load balancer", lb.ID),
			Value:       GetAtt(id, "DNSName"),
		})
	}
	for _, r := range s.topo.Records() {
		add(recordID(r)+"Name", Output{
			Description: r.Comment,
			Value:       r.Name,
		})
	}
}
