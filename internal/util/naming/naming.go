package naming

import (
	"strings"
	"unicode"
)

// MaxLoadBalancerNameLength is the classic ELB name limit.
const MaxLoadBalancerNameLength = 32

// Load balancer suffixes.
const (
	SuffixBastionLB       = "bastion"
	SuffixMasterPublicLB  = "api"
	SuffixMasterPrivateLB = "api-int"
)

// AutoScalingGroup returns the ASG name for a role.
func AutoScalingGroup(stack, role string) string {
	return stack + "-" + role
}

// LaunchTemplate returns the launch template name for a role.
func LaunchTemplate(stack, role string) string {
	return stack + "-" + role
}

// IAMRole returns the IAM role name for a role.
func IAMRole(stack, role string) string {
	return stack + "-" + role
}

// SecurityGroup returns the group name used for a security group.
func SecurityGroup(stack, name string) string {
	return stack + "-" + name
}

// LoadBalancer returns a classic ELB name. Names are truncated to the
// ELB limit and never end in a hyphen.
func LoadBalancer(stack, suffix string) string {
	name := stack + "-" + suffix
	if len(name) > MaxLoadBalancerNameLength {
		name = name[:MaxLoadBalancerNameLength]
	}
	return strings.TrimRight(name, "-")
}

// RecordName returns the fully qualified DNS name for a host in zone.
func RecordName(host, zone string) string {
	zone = strings.TrimSuffix(zone, ".")
	if host == "" {
		return zone + "."
	}
	return host + "." + zone + "."
}

// LogicalID joins parts into a CloudFormation logical ID. Non-alphanumeric
// characters are dropped and each part is capitalized, so
// LogicalID("master", "public-lb") yields "MasterPublicLb".
func LogicalID(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		upper := true
		for _, r := range part {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				upper = true
				continue
			}
			if upper {
				r = unicode.ToUpper(r)
				upper = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
