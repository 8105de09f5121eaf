package aws

import (
	"context"
	"fmt"
)

// MockClient is a mock implementation of Client.
type MockClient struct {
	DescribeImagesFunc func(ctx context.Context, region string, filter ImageFilter) ([]Image, error)
	ListRegionsFunc    func(ctx context.Context) ([]string, error)

	ImportKeyPairFunc func(ctx context.Context, region, name string, publicKey []byte, tags map[string]string) (string, error)
	KeyPairExistsFunc func(ctx context.Context, region, name string) (bool, error)
	DeleteKeyPairFunc func(ctx context.Context, region, name string) error

	HostedZoneIDFunc func(ctx context.Context, zone string) (string, error)

	// Stacks
	ValidateTemplateFunc func(ctx context.Context, body, url string) error
	DeployStackFunc      func(ctx context.Context, in StackInput) (bool, error)
	DescribeStackFunc    func(ctx context.Context, name string) (*Stack, error)
	StackEventsFunc      func(ctx context.Context, name string) ([]StackEvent, error)
	DeleteStackFunc      func(ctx context.Context, name string) error
	WaitForStackFunc     func(ctx context.Context, name string, onEvent func(StackEvent)) (*Stack, error)

	// Templates
	EnsureBucketFunc   func(ctx context.Context, bucket string) error
	UploadTemplateFunc func(ctx context.Context, bucket, key string, body []byte) (string, error)

	// IP
	GetPublicIPFunc func(ctx context.Context) (string, error)
}

// Ensure interface compliance
var _ Client = (*MockClient)(nil)

// DescribeImages mocks image lookup.
func (m *MockClient) DescribeImages(ctx context.Context, region string, filter ImageFilter) ([]Image, error) {
	if m.DescribeImagesFunc != nil {
		return m.DescribeImagesFunc(ctx, region, filter)
	}
	return []Image{{ID: "ami-" + region, Name: "mock-image", CreationDate: "2020-01-01T00:00:00.000Z"}}, nil
}

// ListRegions mocks region listing.
func (m *MockClient) ListRegions(ctx context.Context) ([]string, error) {
	if m.ListRegionsFunc != nil {
		return m.ListRegionsFunc(ctx)
	}
	return []string{"us-east-1"}, nil
}

// ImportKeyPair mocks key pair import.
func (m *MockClient) ImportKeyPair(ctx context.Context, region, name string, publicKey []byte, tags map[string]string) (string, error) {
	if m.ImportKeyPairFunc != nil {
		return m.ImportKeyPairFunc(ctx, region, name, publicKey, tags)
	}
	return "key-mock", nil
}

// KeyPairExists mocks key pair lookup.
func (m *MockClient) KeyPairExists(ctx context.Context, region, name string) (bool, error) {
	if m.KeyPairExistsFunc != nil {
		return m.KeyPairExistsFunc(ctx, region, name)
	}
	return false, nil
}

// DeleteKeyPair mocks key pair deletion.
func (m *MockClient) DeleteKeyPair(ctx context.Context, region, name string) error {
	if m.DeleteKeyPairFunc != nil {
		return m.DeleteKeyPairFunc(ctx, region, name)
	}
	return nil
}

// HostedZoneID mocks hosted zone lookup.
func (m *MockClient) HostedZoneID(ctx context.Context, zone string) (string, error) {
	if m.HostedZoneIDFunc != nil {
		return m.HostedZoneIDFunc(ctx, zone)
	}
	return "ZMOCK", nil
}

// ValidateTemplate mocks template validation.
func (m *MockClient) ValidateTemplate(ctx context.Context, body, url string) error {
	if m.ValidateTemplateFunc != nil {
		return m.ValidateTemplateFunc(ctx, body, url)
	}
	return nil
}

// DeployStack mocks stack create or update.
func (m *MockClient) DeployStack(ctx context.Context, in StackInput) (bool, error) {
	if m.DeployStackFunc != nil {
		return m.DeployStackFunc(ctx, in)
	}
	return true, nil
}

// DescribeStack mocks stack lookup.
func (m *MockClient) DescribeStack(ctx context.Context, name string) (*Stack, error) {
	if m.DescribeStackFunc != nil {
		return m.DescribeStackFunc(ctx, name)
	}
	return nil, fmt.Errorf("%w: %s", ErrStackNotFound, name)
}

// StackEvents mocks stack event listing.
func (m *MockClient) StackEvents(ctx context.Context, name string) ([]StackEvent, error) {
	if m.StackEventsFunc != nil {
		return m.StackEventsFunc(ctx, name)
	}
	return nil, nil
}

// DeleteStack mocks stack deletion.
func (m *MockClient) DeleteStack(ctx context.Context, name string) error {
	if m.DeleteStackFunc != nil {
		return m.DeleteStackFunc(ctx, name)
	}
	return nil
}

// WaitForStack mocks waiting for a stack to settle.
func (m *MockClient) WaitForStack(ctx context.Context, name string, onEvent func(StackEvent)) (*Stack, error) {
	if m.WaitForStackFunc != nil {
		return m.WaitForStackFunc(ctx, name, onEvent)
	}
	return &Stack{Name: name, Status: "CREATE_COMPLETE", Outputs: map[string]string{}}, nil
}

// EnsureBucket mocks bucket creation.
func (m *MockClient) EnsureBucket(ctx context.Context, bucket string) error {
	if m.EnsureBucketFunc != nil {
		return m.EnsureBucketFunc(ctx, bucket)
	}
	return nil
}

// UploadTemplate mocks template upload.
func (m *MockClient) UploadTemplate(ctx context.Context, bucket, key string, body []byte) (string, error) {
	if m.UploadTemplateFunc != nil {
		return m.UploadTemplateFunc(ctx, bucket, key, body)
	}
	return TemplateURL(bucket, "", key), nil
}

// GetPublicIP mocks the workstation address lookup.
func (m *MockClient) GetPublicIP(ctx context.Context) (string, error) {
	if m.GetPublicIPFunc != nil {
		return m.GetPublicIPFunc(ctx)
	}
	return "203.0.113.10", nil
}
