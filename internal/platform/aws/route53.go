package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53"
)

// HostedZoneID looks up the hosted zone for zone. Public zones win over
// private zones of the same name.
func (c *RealClient) HostedZoneID(ctx context.Context, zone string) (string, error) {
	want := strings.TrimSuffix(zone, ".") + "."

	out, err := c.route53.ListHostedZonesByName(ctx, &route53.ListHostedZonesByNameInput{
		DNSName:  aws.String(want),
		MaxItems: aws.Int32(10),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list hosted zones for %s: %w", zone, err)
	}

	var private string
	for _, hz := range out.HostedZones {
		if !strings.EqualFold(aws.ToString(hz.Name), want) {
			continue
		}
		id := BareZoneID(aws.ToString(hz.Id))
		if hz.Config != nil && hz.Config.PrivateZone {
			if private == "" {
				private = id
			}
			continue
		}
		return id, nil
	}
	if private != "" {
		return private, nil
	}
	return "", fmt.Errorf("%w: %s", ErrHostedZoneNotFound, zone)
}

// BareZoneID strips the "/hostedzone/" prefix Route 53 puts on zone IDs.
func BareZoneID(id string) string {
	return strings.TrimPrefix(id, "/hostedzone/")
}
