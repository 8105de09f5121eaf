package aws

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateSharedConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	t.Setenv("AWS_CONFIG_FILE", empty)
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", empty)
	t.Setenv("AWS_PROFILE", "")
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")
}

func TestLoadConfig_StaticCredentials(t *testing.T) {
	isolateSharedConfig(t)

	cfg, err := LoadConfig(context.Background(), LoadOptions{
		Region:          "eu-central-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "eu-central-1", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
}

func TestLoadConfig_MissingProfile(t *testing.T) {
	isolateSharedConfig(t)

	_, err := LoadConfig(context.Background(), LoadOptions{Region: "us-east-1", Profile: "does-not-exist"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load AWS config")
}

func TestNewRealClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewRealClient(aws.Config{Region: "us-west-2"})

	assert.Equal(t, "us-west-2", c.Region())
	assert.Equal(t, DefaultPublicIPURL, c.publicIPURL)
	assert.NotNil(t, c.route53)
	assert.NotNil(t, c.cfn)
	assert.NotNil(t, c.s3)
	assert.Same(t, c.ec2For("eu-west-1"), c.ec2For("eu-west-1"))
}

func TestMockClient_Defaults(t *testing.T) {
	t.Parallel()
	m := &MockClient{}
	ctx := context.Background()

	images, err := m.DescribeImages(ctx, "eu-west-1", ImageFilter{})
	require.NoError(t, err)
	assert.Equal(t, "ami-eu-west-1", images[0].ID)

	_, err = m.DescribeStack(ctx, "demo")
	assert.ErrorIs(t, err, ErrStackNotFound)

	ip, err := m.GetPublicIP(ctx)
	require.NoError(t, err)
	assert.Equal(t, "203.0.113.10", ip)
}
