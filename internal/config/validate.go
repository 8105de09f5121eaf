package config

import (
	"fmt"
	"net"
	"regexp"
	"strings"
)

var (
	regionRegex       = regexp.MustCompile(`^[a-z]{2}(-gov)?-[a-z]+-\d$`)
	zoneRegex         = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}\.?$`)
	podPrefixRegex    = regexp.MustCompile(`^\d{1,3}\.\d{1,3}$`)
	instanceTypeRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*\.[a-z0-9]+$`)
)

// Severity levels of a ValidationError.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == SeverityError
}

// Validate returns an error listing every validation error. Warnings are
// not reported here; see Check.
func (c *Config) Validate() error {
	var msgs []string
	for _, ve := range c.Check() {
		if ve.IsError() {
			msgs = append(msgs, ve.Error())
		}
	}
	if len(msgs) > 0 {
		return fmt.Errorf("%s", strings.Join(msgs, "; "))
	}
	return nil
}

// Warnings returns the non-fatal findings of Check.
func (c *Config) Warnings() []ValidationError {
	var warnings []ValidationError
	for _, ve := range c.Check() {
		if !ve.IsError() {
			warnings = append(warnings, ve)
		}
	}
	return warnings
}

// Check runs every validation rule and returns errors and warnings.
func (c *Config) Check() []ValidationError {
	var errs []ValidationError

	add := func(field, severity, format string, args ...any) {
		errs = append(errs, ValidationError{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Severity: severity,
		})
	}

	if c.Project == "" {
		add("project", SeverityError, "project tag is required")
	}
	errs = append(errs, c.checkRegion()...)

	if c.DNS.Zone == "" {
		add("dns.zone", SeverityError, "hosted zone FQDN is required (e.g., 'k8s.example.com')")
	} else if !zoneRegex.MatchString(c.DNS.Zone) {
		add("dns.zone", SeverityError, "invalid hosted zone name %q", c.DNS.Zone)
	}
	if c.DNS.TTL < 0 {
		add("dns.ttl", SeverityError, "ttl must not be negative")
	}

	if c.KeyPair == "" {
		add("keyPair", SeverityWarning, "no EC2 key pair configured; instances will not accept SSH keys")
	}

	if !c.AccessPolicy.IsValid() {
		add("accessPolicy", SeverityError, "must be %q or %q, got %q", AccessPolicyWorkstation, AccessPolicyOpen, c.AccessPolicy)
	} else if c.AccessPolicy == AccessPolicyOpen {
		add("accessPolicy", SeverityWarning, "the private Kubernetes API load balancer accepts port %d from 0.0.0.0/0", KubeAPIPort)
	}

	if c.WorkstationCIDR != "" {
		if _, _, err := net.ParseCIDR(c.WorkstationCIDR); err != nil {
			add("workstationCidr", SeverityError, "invalid CIDR %q: %v", c.WorkstationCIDR, err)
		}
	}

	errs = append(errs, c.checkNetwork()...)
	errs = append(errs, c.checkImage()...)
	errs = append(errs, c.checkNodes()...)

	if c.Stack.Name == "" {
		add("stack.name", SeverityError, "stack name is required")
	}

	return errs
}

// CheckImageLookup runs only the rules an image lookup depends on: the
// deployment region and the image query.
func (c *Config) CheckImageLookup() []ValidationError {
	return append(c.checkRegion(), c.checkImage()...)
}

func (c *Config) checkRegion() []ValidationError {
	switch {
	case c.Region == "":
		return []ValidationError{{Field: "region", Message: "region is required (e.g., 'us-east-1')", Severity: SeverityError}}
	case !regionRegex.MatchString(c.Region):
		return []ValidationError{{Field: "region", Message: fmt.Sprintf("invalid region %q", c.Region), Severity: SeverityError}}
	}
	return nil
}

func (c *Config) checkNetwork() []ValidationError {
	var errs []ValidationError

	_, ipNet, err := net.ParseCIDR(c.Network.VPCCIDR)
	if err != nil {
		return append(errs, ValidationError{
			Field:    "network.vpcCidr",
			Message:  fmt.Sprintf("invalid CIDR %q: %v", c.Network.VPCCIDR, err),
			Severity: SeverityError,
		})
	}

	ones, bits := ipNet.Mask.Size()
	if bits != 32 {
		errs = append(errs, ValidationError{
			Field:    "network.vpcCidr",
			Message:  "only IPv4 VPC ranges are supported",
			Severity: SeverityError,
		})
		return errs
	}
	if ones < 16 || ones > 28 {
		errs = append(errs, ValidationError{
			Field:    "network.vpcCidr",
			Message:  fmt.Sprintf("VPC prefix length must be between /16 and /28, got /%d", ones),
			Severity: SeverityError,
		})
	}

	if c.Network.MaxAZs < 1 || c.Network.MaxAZs > 6 {
		errs = append(errs, ValidationError{
			Field:    "network.maxAzs",
			Message:  fmt.Sprintf("must be between 1 and 6, got %d", c.Network.MaxAZs),
			Severity: SeverityError,
		})
	}

	if c.Network.SubnetMask <= ones || c.Network.SubnetMask > 28 {
		errs = append(errs, ValidationError{
			Field:    "network.subnetMask",
			Message:  fmt.Sprintf("must be longer than the VPC prefix /%d and at most /28, got /%d", ones, c.Network.SubnetMask),
			Severity: SeverityError,
		})
	} else if needed := 2 * c.Network.MaxAZs; needed > 1<<(c.Network.SubnetMask-ones) {
		errs = append(errs, ValidationError{
			Field:    "network.subnetMask",
			Message:  fmt.Sprintf("/%d subnets of %s cannot hold %d subnets", c.Network.SubnetMask, c.Network.VPCCIDR, needed),
			Severity: SeverityError,
		})
	}

	if !podPrefixRegex.MatchString(c.Kubernetes.PodCIDRPrefix) {
		errs = append(errs, ValidationError{
			Field:    "kubernetes.podCidrPrefix",
			Message:  fmt.Sprintf("must be two dotted octets like '10.200', got %q", c.Kubernetes.PodCIDRPrefix),
			Severity: SeverityError,
		})
	}

	return errs
}

func (c *Config) checkImage() []ValidationError {
	var errs []ValidationError
	if c.Image.NamePattern == "" {
		errs = append(errs, ValidationError{Field: "image.namePattern", Message: "image name pattern is required", Severity: SeverityError})
	}
	if c.Image.Owner == "" {
		errs = append(errs, ValidationError{Field: "image.owner", Message: "image owner is required", Severity: SeverityError})
	}
	if c.Image.Concurrency < 1 {
		errs = append(errs, ValidationError{Field: "image.concurrency", Message: "must be at least 1", Severity: SeverityError})
	}
	if len(c.Image.Regions) > 0 && !contains(c.Image.Regions, c.Region) {
		errs = append(errs, ValidationError{
			Field:    "image.regions",
			Message:  fmt.Sprintf("deployment region %q is not in the lookup regions", c.Region),
			Severity: SeverityError,
		})
	}
	return errs
}

func (c *Config) checkNodes() []ValidationError {
	var errs []ValidationError
	for _, role := range Roles() {
		n, _ := c.Nodes.NodeGroup(role)
		field := "nodes." + role

		if n.Min < 0 || n.Max < 0 || n.Desired < 0 {
			errs = append(errs, ValidationError{Field: field, Message: "capacities must not be negative", Severity: SeverityError})
			continue
		}
		if n.Min > n.Max {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("min %d exceeds max %d", n.Min, n.Max), Severity: SeverityError})
		}
		if n.Desired < n.Min || n.Desired > n.Max {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("desired %d outside [%d, %d]", n.Desired, n.Min, n.Max), Severity: SeverityError})
		}
		if !instanceTypeRegex.MatchString(n.InstanceType) {
			errs = append(errs, ValidationError{Field: field + ".instanceType", Message: fmt.Sprintf("invalid instance type %q", n.InstanceType), Severity: SeverityError})
		}
		if !n.Subnet.IsValid() {
			errs = append(errs, ValidationError{Field: field + ".subnet", Message: fmt.Sprintf("must be %q or %q, got %q", SubnetPrivate, SubnetPublic, n.Subnet), Severity: SeverityError})
		}
	}

	if c.Nodes.Etcd.Desired > 0 && c.Nodes.Etcd.Desired%2 == 0 {
		errs = append(errs, ValidationError{
			Field:    "nodes.etcd.desired",
			Message:  fmt.Sprintf("an even etcd member count (%d) does not improve fault tolerance", c.Nodes.Etcd.Desired),
			Severity: SeverityWarning,
		})
	}
	if c.Nodes.Master.Desired == 0 {
		errs = append(errs, ValidationError{Field: "nodes.master.desired", Message: "at least one master is required", Severity: SeverityError})
	}
	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
