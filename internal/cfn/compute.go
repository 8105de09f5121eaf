package cfn

import (
	"fmt"
	"strconv"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/topology"
	"github.com/napo-io/k8sway/internal/util/naming"
)

// asgTag is an autoscaling group tag. Instances inherit it at launch.
type asgTag struct {
	Key               string `json:"Key"`
	Value             string `json:"Value"`
	PropagateAtLaunch bool   `json:"PropagateAtLaunch"`
}

func (s *synthesizer) images() {
	images := s.topo.Images()
	entries := make(map[string]map[string]string, images.Len())
	for region, id := range images.Entries() {
		entries[region] = map[string]string{ImageMapKey: id}
	}
	if len(entries) > 0 {
		s.tmpl.Mappings[ImageMapName] = entries
	}

	// One template parameter per distinct SSM parameter, named after the
	// first node group that uses it.
	s.imageParams = map[string]string{}
	for _, ng := range s.topo.NodeGroups() {
		if ng.Image.Kind != topology.ImageFromSSM {
			continue
		}
		if _, ok := s.imageParams[ng.Image.Parameter]; ok {
			continue
		}
		id := naming.LogicalID(ng.Role, "image", "id")
		s.imageParams[ng.Image.Parameter] = id
		if err := s.tmpl.AddParameter(id, Parameter{
			Type:        ParamTypeSSMImageID,
			Default:     ng.Image.Parameter,
			Description: fmt.Sprintf("Image of the %s node group", ng.Role),
		}); err != nil {
			s.errs = append(s.errs, err)
		}
	}
}

func (s *synthesizer) imageID(ng topology.NodeGroup) any {
	if ng.Image.Kind == topology.ImageFromSSM {
		return Ref(s.imageParams[ng.Image.Parameter])
	}
	return FindInMap(ImageMapName, Ref(PseudoRegion), ImageMapKey)
}

func (s *synthesizer) nodeGroups() {
	for _, ng := range s.topo.NodeGroups() {
		roleID := naming.LogicalID(ng.Role, "role")
		profileID := naming.LogicalID(ng.Role, "instance", "profile")
		templateID := naming.LogicalID(ng.Role, "launch", "template")
		groupID := naming.LogicalID(ng.Role, "asg")

		s.add(roleID, Resource{
			Type: TypeIAMRole,
			Properties: map[string]any{
				"RoleName":                 naming.IAMRole(s.meta.StackName, ng.Role),
				"AssumeRolePolicyDocument": assumeRolePolicy(),
				"Policies": []any{map[string]any{
					"PolicyName": naming.IAMRole(s.meta.StackName, ng.Role) + "-policy",
					"PolicyDocument": map[string]any{
						"Version":   "2012-10-17",
						"Statement": ng.IAM,
					},
				}},
				"Tags": s.tags("", ng.Tags),
			},
		})
		s.add(profileID, Resource{
			Type:       TypeInstanceProfile,
			Properties: map[string]any{"Roles": []any{Ref(roleID)}},
		})

		data := map[string]any{
			"ImageId":            s.imageID(ng),
			"InstanceType":       ng.InstanceType,
			"IamInstanceProfile": map[string]any{"Arn": GetAtt(profileID, "Arn")},
			"SecurityGroupIds":   []any{groupIDOf(ng.SecurityGroup)},
			"UserData":           Base64(topology.RenderUserData(ng.UserData)),
			"TagSpecifications": []any{map[string]any{
				"ResourceType": "instance",
				"Tags":         s.tags("", ng.Tags),
			}},
		}
		if s.meta.KeyPair != "" {
			data["KeyName"] = s.meta.KeyPair
		}
		s.add(templateID, Resource{
			Type: TypeLaunchTemplate,
			Properties: map[string]any{
				"LaunchTemplateName": naming.LaunchTemplate(s.meta.StackName, ng.Role),
				"LaunchTemplateData": data,
			},
		})

		subnets := s.privateSubnets
		var dependsOn []string
		if ng.Subnet == config.SubnetPublic {
			subnets = s.publicSubnets
			dependsOn = []string{publicDefaultRouteID}
		} else {
			// Private instances need their NAT route to fetch packages at boot.
			dependsOn = append([]string(nil), s.privateRoutes...)
		}

		props := map[string]any{
			"AutoScalingGroupName": ng.Name,
			"MinSize":              strconv.Itoa(ng.Min),
			"MaxSize":              strconv.Itoa(ng.Max),
			"DesiredCapacity":      strconv.Itoa(ng.Desired),
			"LaunchTemplate": map[string]any{
				"LaunchTemplateId": Ref(templateID),
				"Version":          GetAtt(templateID, "LatestVersionNumber"),
			},
			"VPCZoneIdentifier": subnetRefs(subnets),
			"Tags":              s.asgTags(ng.Tags),
		}
		if len(ng.LoadBalancers) > 0 {
			lbs := make([]any, len(ng.LoadBalancers))
			for i, id := range ng.LoadBalancers {
				lbs[i] = Ref(loadBalancerID(id))
			}
			props["LoadBalancerNames"] = lbs
		}

		s.add(groupID, Resource{
			Type:       TypeAutoScalingGroup,
			DependsOn:  dependsOn,
			Properties: props,
		})
	}
}

func (s *synthesizer) asgTags(extra map[string]string) []asgTag {
	built := s.tags("", extra)
	out := make([]asgTag, len(built))
	for i, t := range built {
		out[i] = asgTag{Key: t.Key, Value: t.Value, PropagateAtLaunch: true}
	}
	return out
}

func assumeRolePolicy() map[string]any {
	return map[string]any{
		"Version": "2012-10-17",
		"Statement": []any{map[string]any{
			"Effect":    "Allow",
			"Principal": map[string]any{"Service": []string{"ec2.amazonaws.com"}},
			"Action":    []string{"sts:AssumeRole"},
		}},
	}
}
