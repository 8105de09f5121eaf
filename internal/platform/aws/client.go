package aws

import (
	"context"
	"time"
)

// Image is a machine image candidate returned by the provider.
type Image struct {
	ID           string
	Name         string
	OwnerID      string
	CreationDate string
	Architecture string
}

// ImageFilter selects machine images.
type ImageFilter struct {
	// NamePattern is a wildcard pattern matched against the image name.
	NamePattern string
	// Owner restricts results to images published by this account.
	Owner string
	// Architecture restricts results to one CPU architecture. Empty means any.
	Architecture string
}

// StackParameter is a CloudFormation parameter value.
type StackParameter struct {
	Key   string
	Value string
}

// StackInput describes a stack create or update.
type StackInput struct {
	Name string
	// TemplateBody is used when TemplateURL is empty.
	TemplateBody string
	TemplateURL  string
	Parameters   []StackParameter
	Tags         map[string]string
}

// Stack is the observed state of a CloudFormation stack.
type Stack struct {
	ID           string
	Name         string
	Status       string
	StatusReason string
	Outputs      map[string]string
}

// StackEvent is one entry of a stack's event log.
type StackEvent struct {
	ID           string
	LogicalID    string
	ResourceType string
	Status       string
	Reason       string
	Timestamp    time.Time
}

// ImageFinder looks up machine images in a region.
type ImageFinder interface {
	DescribeImages(ctx context.Context, region string, filter ImageFilter) ([]Image, error)
}

// RegionLister lists the regions enabled for the account.
type RegionLister interface {
	ListRegions(ctx context.Context) ([]string, error)
}

// KeyPairManager manages EC2 key pairs.
type KeyPairManager interface {
	ImportKeyPair(ctx context.Context, region, name string, publicKey []byte, tags map[string]string) (string, error)
	KeyPairExists(ctx context.Context, region, name string) (bool, error)
	DeleteKeyPair(ctx context.Context, region, name string) error
}

// HostedZoneResolver resolves a DNS zone name to a Route53 hosted zone ID.
type HostedZoneResolver interface {
	// HostedZoneID returns the ID without the "/hostedzone/" prefix.
	HostedZoneID(ctx context.Context, zone string) (string, error)
}

// StackManager drives the CloudFormation stack lifecycle.
type StackManager interface {
	ValidateTemplate(ctx context.Context, body, url string) error
	// DeployStack creates the stack, or updates it if it already exists.
	// It returns false when an update found nothing to change.
	DeployStack(ctx context.Context, in StackInput) (bool, error)
	DescribeStack(ctx context.Context, name string) (*Stack, error)
	StackEvents(ctx context.Context, name string) ([]StackEvent, error)
	DeleteStack(ctx context.Context, name string) error
	// WaitForStack polls until the stack reaches a terminal status. New
	// events are passed to onEvent oldest first.
	WaitForStack(ctx context.Context, name string, onEvent func(StackEvent)) (*Stack, error)
}

// TemplateStore stores templates too large to pass inline.
type TemplateStore interface {
	EnsureBucket(ctx context.Context, bucket string) error
	// UploadTemplate stores body and returns its HTTPS URL.
	UploadTemplate(ctx context.Context, bucket, key string, body []byte) (string, error)
}

// PublicIPResolver discovers the workstation's public IPv4 address.
type PublicIPResolver interface {
	GetPublicIP(ctx context.Context) (string, error)
}

// Client combines every capability used by the provisioning pipeline.
type Client interface {
	ImageFinder
	RegionLister
	KeyPairManager
	HostedZoneResolver
	StackManager
	TemplateStore
	PublicIPResolver
}
