package topology

// SharedActions are granted to every role. Boot scripts use them to edit
// route tables, tag resources and discover peers.
var SharedActions = []string{
	"ec2:CreateRoute",
	"ec2:CreateTags",
	"ec2:DescribeAutoScalingGroups",
	"autoscaling:DescribeAutoScalingInstances",
	"ec2:DescribeRegions",
	"ec2:DescribeRouteTables",
	"ec2:DescribeInstances",
	"ec2:DescribeTags",
	"elasticloadbalancing:DescribeLoadBalancers",
	"route53:ListHostedZonesByName",
}

// SharedStatement returns the statement attached to every role.
func SharedStatement() PolicyStatement {
	return PolicyStatement{
		Effect:   "Allow",
		Action:   append([]string(nil), SharedActions...),
		Resource: []string{"*"},
	}
}

// DNSChangeStatement allows record changes in one hosted zone.
func DNSChangeStatement(zoneID string) PolicyStatement {
	return PolicyStatement{
		Effect:   "Allow",
		Action:   []string{"route53:ChangeResourceRecordSets"},
		Resource: []string{HostedZoneARN(zoneID)},
	}
}

// HostedZoneARN returns the ARN of a hosted zone. A leading "/hostedzone/"
// in zoneID is tolerated.
func HostedZoneARN(zoneID string) string {
	const prefix = "/hostedzone/"
	if len(zoneID) > len(prefix) && zoneID[:len(prefix)] == prefix {
		zoneID = zoneID[len(prefix):]
	}
	return "arn:aws:route53:::hostedzone/" + zoneID
}
