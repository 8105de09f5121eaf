package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// DescribeImages returns available images in region matching filter. The
// result preserves the order returned by the provider.
func (c *RealClient) DescribeImages(ctx context.Context, region string, filter ImageFilter) ([]Image, error) {
	in := &ec2.DescribeImagesInput{
		Filters: []ec2types.Filter{
			{Name: aws.String("name"), Values: []string{filter.NamePattern}},
			{Name: aws.String("state"), Values: []string{string(ec2types.ImageStateAvailable)}},
		},
	}
	if filter.Owner != "" {
		in.Owners = []string{filter.Owner}
	}
	if filter.Architecture != "" {
		in.Filters = append(in.Filters, ec2types.Filter{Name: aws.String("architecture"), Values: []string{filter.Architecture}})
	}

	client := c.ec2For(region)
	var images []Image
	for {
		out, err := client.DescribeImages(ctx, in)
		if err != nil {
			return nil, fmt.Errorf("failed to describe images in %s: %w", region, err)
		}
		for _, img := range out.Images {
			images = append(images, Image{
				ID:           aws.ToString(img.ImageId),
				Name:         aws.ToString(img.Name),
				OwnerID:      aws.ToString(img.OwnerId),
				CreationDate: aws.ToString(img.CreationDate),
				Architecture: string(img.Architecture),
			})
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		in.NextToken = out.NextToken
	}
	return images, nil
}

// ListRegions returns the regions enabled for the account, sorted by name.
func (c *RealClient) ListRegions(ctx context.Context) ([]string, error) {
	out, err := c.ec2For(c.region).DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	regions := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		if name := aws.ToString(r.RegionName); name != "" {
			regions = append(regions, name)
		}
	}
	sort.Strings(regions)
	return regions, nil
}

// ImportKeyPair uploads an OpenSSH public key as an EC2 key pair and returns
// its key pair ID.
func (c *RealClient) ImportKeyPair(ctx context.Context, region, name string, publicKey []byte, tags map[string]string) (string, error) {
	in := &ec2.ImportKeyPairInput{
		KeyName:           aws.String(name),
		PublicKeyMaterial: publicKey,
	}
	if len(tags) > 0 {
		in.TagSpecifications = []ec2types.TagSpecification{{
			ResourceType: ec2types.ResourceTypeKeyPair,
			Tags:         ec2Tags(tags),
		}}
	}

	out, err := c.ec2For(region).ImportKeyPair(ctx, in)
	if err != nil {
		return "", fmt.Errorf("failed to import key pair %s: %w", name, err)
	}
	return aws.ToString(out.KeyPairId), nil
}

// KeyPairExists reports whether a key pair named name exists in region.
func (c *RealClient) KeyPairExists(ctx context.Context, region, name string) (bool, error) {
	out, err := c.ec2For(region).DescribeKeyPairs(ctx, &ec2.DescribeKeyPairsInput{
		KeyNames: []string{name},
	})
	if err != nil {
		if IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to describe key pair %s: %w", name, err)
	}
	return len(out.KeyPairs) > 0, nil
}

// DeleteKeyPair deletes the named key pair. Deleting a missing key pair is
// not an error.
func (c *RealClient) DeleteKeyPair(ctx context.Context, region, name string) error {
	_, err := c.ec2For(region).DeleteKeyPair(ctx, &ec2.DeleteKeyPairInput{
		KeyName: aws.String(name),
	})
	if err != nil && !IsNotFound(err) {
		return fmt.Errorf("failed to delete key pair %s: %w", name, err)
	}
	return nil
}

func ec2Tags(tags map[string]string) []ec2types.Tag {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]ec2types.Tag, 0, len(keys))
	for _, k := range keys {
		out = append(out, ec2types.Tag{Key: aws.String(k), Value: aws.String(tags[k])})
	}
	return out
}
