package cfn_test

import (
	"context"
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/napo-io/k8sway/internal/cfn"
	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/topology"
)

var _ = Describe("resolving images and synthesizing a cluster", func() {
	var (
		ctx    context.Context
		client *aws.MockClient
		cfg    *config.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		cfg = config.Default()
		cfg.DNS.Zone = "example.com"

		fixtures := map[string][]aws.Image{
			"us-east-1": {
				{ID: "ami-a1", CreationDate: "2020-01-01T00:00:00.000Z"},
				{ID: "ami-a3", CreationDate: "2020-03-01T00:00:00.000Z"},
				{ID: "ami-a2", CreationDate: "2020-02-01T00:00:00.000Z"},
			},
			"eu-west-1": {
				{ID: "ami-b3", CreationDate: "2021-03-01T00:00:00.000Z"},
				{ID: "ami-b1", CreationDate: "2021-01-01T00:00:00.000Z"},
				{ID: "ami-b2", CreationDate: "2021-02-01T00:00:00.000Z"},
			},
		}
		client = &aws.MockClient{
			ListRegionsFunc: func(context.Context) ([]string, error) {
				return []string{"eu-west-1", "us-east-1"}, nil
			},
			DescribeImagesFunc: func(_ context.Context, region string, _ aws.ImageFilter) ([]aws.Image, error) {
				return fixtures[region], nil
			},
		}
	})

	It("maps every region to its newest image and carries the map into the template", func() {
		resolver := image.NewResolver(client, image.WithRegionLister(client))
		res, err := resolver.Resolve(ctx, nil, image.Query{NamePattern: cfg.Image.NamePattern, Owner: cfg.Image.Owner})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Mapping.Entries()).To(Equal(map[string]string{
			"us-east-1": "ami-a3",
			"eu-west-1": "ami-b3",
		}))

		By("declaring the cluster")
		topo, err := topology.BuildCluster(topology.ClusterInput{
			Config:          cfg,
			Images:          res.Mapping,
			HostedZoneID:    "Z1",
			WorkstationCIDR: "198.51.100.7/32",
		})
		Expect(err).NotTo(HaveOccurred())

		By("synthesizing and rendering the template")
		tmpl, err := cfn.Synthesize(topo)
		Expect(err).NotTo(HaveOccurred())

		body, err := cfn.Render(tmpl, cfn.FormatJSON)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfn.FitsInline(body)).To(BeTrue())

		var decoded struct {
			Mappings map[string]map[string]map[string]string
		}
		Expect(json.Unmarshal(body, &decoded)).To(Succeed())
		Expect(decoded.Mappings[cfn.ImageMapName]).To(HaveKeyWithValue("us-east-1", HaveKeyWithValue("ami", "ami-a3")))
		Expect(decoded.Mappings[cfn.ImageMapName]).To(HaveKeyWithValue("eu-west-1", HaveKeyWithValue("ami", "ami-b3")))
	})

	It("reports a region without candidates while keeping the others", func() {
		client.DescribeImagesFunc = func(_ context.Context, region string, _ aws.ImageFilter) ([]aws.Image, error) {
			if region == "eu-west-1" {
				return nil, nil
			}
			return []aws.Image{{ID: "ami-a1", CreationDate: "2020-01-01T00:00:00.000Z"}}, nil
		}

		res, err := image.NewResolver(client).Resolve(ctx, []string{"us-east-1", "eu-west-1"}, image.Query{NamePattern: "x", Owner: "y"})
		Expect(err).To(MatchError(image.ErrNoImageInRegion))
		Expect(res.Mapping.Entries()).To(Equal(map[string]string{"us-east-1": "ami-a1"}))
		Expect(res.Require("us-east-1")).To(Succeed())
	})
})
