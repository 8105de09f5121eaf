package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/napo-io/k8sway/internal/config"
)

type fakeEC2 struct {
	describeImages   func(in *ec2.DescribeImagesInput) (*ec2.DescribeImagesOutput, error)
	describeRegions  func(in *ec2.DescribeRegionsInput) (*ec2.DescribeRegionsOutput, error)
	importKeyPair    func(in *ec2.ImportKeyPairInput) (*ec2.ImportKeyPairOutput, error)
	describeKeyPairs func(in *ec2.DescribeKeyPairsInput) (*ec2.DescribeKeyPairsOutput, error)
	deleteKeyPair    func(in *ec2.DeleteKeyPairInput) (*ec2.DeleteKeyPairOutput, error)
}

func (f *fakeEC2) DescribeImages(_ context.Context, in *ec2.DescribeImagesInput, _ ...func(*ec2.Options)) (*ec2.DescribeImagesOutput, error) {
	if f.describeImages != nil {
		return f.describeImages(in)
	}
	return &ec2.DescribeImagesOutput{}, nil
}

func (f *fakeEC2) DescribeRegions(_ context.Context, in *ec2.DescribeRegionsInput, _ ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	if f.describeRegions != nil {
		return f.describeRegions(in)
	}
	return &ec2.DescribeRegionsOutput{}, nil
}

func (f *fakeEC2) ImportKeyPair(_ context.Context, in *ec2.ImportKeyPairInput, _ ...func(*ec2.Options)) (*ec2.ImportKeyPairOutput, error) {
	if f.importKeyPair != nil {
		return f.importKeyPair(in)
	}
	return &ec2.ImportKeyPairOutput{KeyPairId: aws.String("key-0")}, nil
}

func (f *fakeEC2) DescribeKeyPairs(_ context.Context, in *ec2.DescribeKeyPairsInput, _ ...func(*ec2.Options)) (*ec2.DescribeKeyPairsOutput, error) {
	if f.describeKeyPairs != nil {
		return f.describeKeyPairs(in)
	}
	return &ec2.DescribeKeyPairsOutput{}, nil
}

func (f *fakeEC2) DeleteKeyPair(_ context.Context, in *ec2.DeleteKeyPairInput, _ ...func(*ec2.Options)) (*ec2.DeleteKeyPairOutput, error) {
	if f.deleteKeyPair != nil {
		return f.deleteKeyPair(in)
	}
	return &ec2.DeleteKeyPairOutput{}, nil
}

type fakeRoute53 struct {
	listHostedZonesByName func(in *route53.ListHostedZonesByNameInput) (*route53.ListHostedZonesByNameOutput, error)
}

func (f *fakeRoute53) ListHostedZonesByName(_ context.Context, in *route53.ListHostedZonesByNameInput, _ ...func(*route53.Options)) (*route53.ListHostedZonesByNameOutput, error) {
	if f.listHostedZonesByName != nil {
		return f.listHostedZonesByName(in)
	}
	return &route53.ListHostedZonesByNameOutput{}, nil
}

type fakeCFN struct {
	validateTemplate    func(in *cloudformation.ValidateTemplateInput) (*cloudformation.ValidateTemplateOutput, error)
	createStack         func(in *cloudformation.CreateStackInput) (*cloudformation.CreateStackOutput, error)
	updateStack         func(in *cloudformation.UpdateStackInput) (*cloudformation.UpdateStackOutput, error)
	describeStacks      func(in *cloudformation.DescribeStacksInput) (*cloudformation.DescribeStacksOutput, error)
	describeStackEvents func(in *cloudformation.DescribeStackEventsInput) (*cloudformation.DescribeStackEventsOutput, error)
	deleteStack         func(in *cloudformation.DeleteStackInput) (*cloudformation.DeleteStackOutput, error)
}

func (f *fakeCFN) ValidateTemplate(_ context.Context, in *cloudformation.ValidateTemplateInput, _ ...func(*cloudformation.Options)) (*cloudformation.ValidateTemplateOutput, error) {
	if f.validateTemplate != nil {
		return f.validateTemplate(in)
	}
	return &cloudformation.ValidateTemplateOutput{}, nil
}

func (f *fakeCFN) CreateStack(_ context.Context, in *cloudformation.CreateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.CreateStackOutput, error) {
	if f.createStack != nil {
		return f.createStack(in)
	}
	return &cloudformation.CreateStackOutput{}, nil
}

func (f *fakeCFN) UpdateStack(_ context.Context, in *cloudformation.UpdateStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.UpdateStackOutput, error) {
	if f.updateStack != nil {
		return f.updateStack(in)
	}
	return &cloudformation.UpdateStackOutput{}, nil
}

func (f *fakeCFN) DescribeStacks(_ context.Context, in *cloudformation.DescribeStacksInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error) {
	if f.describeStacks != nil {
		return f.describeStacks(in)
	}
	return nil, stackMissing(aws.ToString(in.StackName))
}

func (f *fakeCFN) DescribeStackEvents(_ context.Context, in *cloudformation.DescribeStackEventsInput, _ ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error) {
	if f.describeStackEvents != nil {
		return f.describeStackEvents(in)
	}
	return &cloudformation.DescribeStackEventsOutput{}, nil
}

func (f *fakeCFN) DeleteStack(_ context.Context, in *cloudformation.DeleteStackInput, _ ...func(*cloudformation.Options)) (*cloudformation.DeleteStackOutput, error) {
	if f.deleteStack != nil {
		return f.deleteStack(in)
	}
	return &cloudformation.DeleteStackOutput{}, nil
}

type fakeS3 struct {
	headBucket   func(in *s3.HeadBucketInput) (*s3.HeadBucketOutput, error)
	createBucket func(in *s3.CreateBucketInput) (*s3.CreateBucketOutput, error)
	putObject    func(in *s3.PutObjectInput) (*s3.PutObjectOutput, error)
}

func (f *fakeS3) HeadBucket(_ context.Context, in *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headBucket != nil {
		return f.headBucket(in)
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(_ context.Context, in *s3.CreateBucketInput, _ ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	if f.createBucket != nil {
		return f.createBucket(in)
	}
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putObject != nil {
		return f.putObject(in)
	}
	return &s3.PutObjectOutput{}, nil
}

func apiError(code, msg string) error {
	return &smithy.GenericAPIError{Code: code, Message: msg}
}

func stackMissing(name string) error {
	return apiError("ValidationError", "Stack with id "+name+" does not exist")
}

type fakes struct {
	ec2     *fakeEC2
	route53 *fakeRoute53
	cfn     *fakeCFN
	s3      *fakeS3
	regions []string
}

// newTestClient wires a RealClient to fresh fakes. Every regional EC2
// client shares the same fake; the regions requested are recorded.
func newTestClient(region string, opts ...ClientOption) (*RealClient, *fakes) {
	f := &fakes{ec2: &fakeEC2{}, route53: &fakeRoute53{}, cfn: &fakeCFN{}, s3: &fakeS3{}}
	timeouts := config.LoadTimeouts()
	timeouts.StackPoll = time.Millisecond

	base := []ClientOption{
		WithTimeouts(timeouts),
		WithEC2Factory(func(r string) EC2API {
			f.regions = append(f.regions, r)
			return f.ec2
		}),
		WithRoute53(f.route53),
		WithCloudFormation(f.cfn),
		WithS3(f.s3),
	}
	return NewRealClient(aws.Config{Region: region}, append(base, opts...)...), f
}
