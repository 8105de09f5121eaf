package aws

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/napo-io/k8sway/internal/config"
)

// DefaultPublicIPURL is the service queried for the workstation address.
const DefaultPublicIPURL = "https://api.ipify.org"

// RealClient implements Client using aws-sdk-go-v2.
type RealClient struct {
	cfg      aws.Config
	region   string
	timeouts *config.Timeouts

	httpClient  *http.Client
	publicIPURL string

	ec2Factory func(region string) EC2API
	ec2Mu      sync.Mutex
	ec2Clients map[string]EC2API

	route53 Route53API
	cfn     CloudFormationAPI
	s3      S3API
}

// ClientOption configures a RealClient.
type ClientOption func(*RealClient)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *RealClient) {
		c.timeouts = t
	}
}

// WithHTTPClient sets a custom HTTP client for external requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *RealClient) {
		c.httpClient = hc
	}
}

// WithPublicIPURL overrides the workstation address lookup endpoint.
func WithPublicIPURL(url string) ClientOption {
	return func(c *RealClient) {
		c.publicIPURL = url
	}
}

// WithEC2Factory sets the constructor for regional EC2 clients.
func WithEC2Factory(fn func(region string) EC2API) ClientOption {
	return func(c *RealClient) {
		c.ec2Factory = fn
	}
}

// WithRoute53 sets the Route53 client.
func WithRoute53(api Route53API) ClientOption {
	return func(c *RealClient) {
		c.route53 = api
	}
}

// WithCloudFormation sets the CloudFormation client.
func WithCloudFormation(api CloudFormationAPI) ClientOption {
	return func(c *RealClient) {
		c.cfn = api
	}
}

// WithS3 sets the S3 client.
func WithS3(api S3API) ClientOption {
	return func(c *RealClient) {
		c.s3 = api
	}
}

// LoadOptions control how SDK configuration is resolved.
type LoadOptions struct {
	Region  string
	Profile string

	// Static credentials take precedence over the default chain when set.
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// LoadConfig resolves SDK configuration from the environment, shared config
// files and the given overrides.
func LoadConfig(ctx context.Context, opts LoadOptions) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, opts.SessionToken),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// NewRealClient creates a client for the region in cfg. SDK clients not
// supplied through options are built from cfg.
func NewRealClient(cfg aws.Config, opts ...ClientOption) *RealClient {
	c := &RealClient{
		cfg:         cfg,
		region:      cfg.Region,
		timeouts:    config.LoadTimeouts(),
		httpClient:  http.DefaultClient,
		publicIPURL: DefaultPublicIPURL,
		ec2Clients:  make(map[string]EC2API),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.ec2Factory == nil {
		c.ec2Factory = func(region string) EC2API {
			return ec2.NewFromConfig(cfg, func(o *ec2.Options) {
				o.Region = region
			})
		}
	}
	if c.route53 == nil {
		c.route53 = route53.NewFromConfig(cfg)
	}
	if c.cfn == nil {
		c.cfn = cloudformation.NewFromConfig(cfg)
	}
	if c.s3 == nil {
		c.s3 = s3.NewFromConfig(cfg)
	}
	return c
}

// Region returns the home region of the client.
func (c *RealClient) Region() string {
	return c.region
}

// ec2For returns the cached EC2 client for region.
func (c *RealClient) ec2For(region string) EC2API {
	if region == "" {
		region = c.region
	}

	c.ec2Mu.Lock()
	defer c.ec2Mu.Unlock()

	if client, ok := c.ec2Clients[region]; ok {
		return client
	}
	client := c.ec2Factory(region)
	c.ec2Clients[region] = client
	return client
}

var _ Client = (*RealClient)(nil)
