package image

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napo-io/k8sway/internal/config"
	k8image "github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/provisioning"
)

func newContext(t *testing.T, client aws.Client, strict bool) (*provisioning.Context, *provisioning.MockObserver) {
	t.Helper()
	cfg := config.Default()
	cfg.DNS.Zone = "example.com"
	cfg.Image.Strict = strict

	observer := provisioning.NewMockObserver()
	timeouts := config.LoadTimeouts()
	timeouts.RetryInitialDelay = 0
	return provisioning.NewContext(context.Background(), cfg, client,
		provisioning.WithObserver(observer),
		provisioning.WithTimeouts(timeouts),
	), observer
}

func regionClient(missing ...string) *aws.MockClient {
	skip := map[string]bool{}
	for _, r := range missing {
		skip[r] = true
	}
	return &aws.MockClient{
		ListRegionsFunc: func(context.Context) ([]string, error) {
			return []string{"eu-west-1", "us-east-1"}, nil
		},
		DescribeImagesFunc: func(_ context.Context, region string, filter aws.ImageFilter) ([]aws.Image, error) {
			if skip[region] {
				return nil, nil
			}
			return []aws.Image{{ID: "ami-" + region, Name: filter.NamePattern, CreationDate: "2020-01-01T00:00:00Z"}}, nil
		},
	}
}

func TestProvisioner_Name(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "images", NewProvisioner().Name())
}

func TestProvisioner_ResolvesEveryRegion(t *testing.T) {
	t.Parallel()
	ctx, observer := newContext(t, regionClient(), false)

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Equal(t, map[string]string{"eu-west-1": "ami-eu-west-1", "us-east-1": "ami-us-east-1"}, ctx.State.Images.Entries())
	assert.Len(t, observer.EventsOfType(provisioning.EventImageResolved), 2)
}

func TestProvisioner_Lenient(t *testing.T) {
	t.Parallel()
	ctx, observer := newContext(t, regionClient("eu-west-1"), false)

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Equal(t, 1, ctx.State.Images.Len())

	warnings := observer.EventsOfType(provisioning.EventValidationWarning)
	require.Len(t, warnings, 1)
	assert.Equal(t, "eu-west-1", warnings[0].Resource)
}

func TestProvisioner_Strict(t *testing.T) {
	t.Parallel()
	ctx, _ := newContext(t, regionClient("eu-west-1"), true)

	err := NewProvisioner().Provision(ctx)
	assert.ErrorIs(t, err, k8image.ErrNoImageInRegion)
	assert.NotNil(t, ctx.State.ImageResult, "partial result is kept for reporting")
}

func TestProvisioner_DeploymentRegionRequired(t *testing.T) {
	t.Parallel()
	ctx, _ := newContext(t, regionClient("us-east-1"), false)

	err := NewProvisioner().Provision(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "us-east-1")
}

func TestProvisioner_RegionListingFails(t *testing.T) {
	t.Parallel()
	client := &aws.MockClient{
		ListRegionsFunc: func(context.Context) ([]string, error) {
			return nil, errors.New("access denied")
		},
	}
	ctx, _ := newContext(t, client, false)

	err := NewProvisioner().Provision(ctx)
	assert.ErrorIs(t, err, k8image.ErrProviderCall)
	assert.Nil(t, ctx.State.Images)
}

func TestProvisioner_ConfiguredRegions(t *testing.T) {
	t.Parallel()
	client := regionClient()
	client.ListRegionsFunc = func(context.Context) ([]string, error) {
		t.Error("regions must not be listed when configured")
		return nil, nil
	}
	ctx, _ := newContext(t, client, false)
	ctx.Config.Image.Regions = []string{"us-east-1"}

	require.NoError(t, NewProvisioner().Provision(ctx))
	assert.Equal(t, []string{"us-east-1"}, ctx.State.Images.Regions())
}
