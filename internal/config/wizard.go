package config

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
)

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Project      string
	Owner        string
	Region       string
	Zone         string
	KeyPair      string
	AccessPolicy AccessPolicy
	WorkerCount  int
	InstanceType string
}

// CommonRegions are offered by the wizard; any region can be set in YAML.
var CommonRegions = []string{
	"us-east-1", "us-east-2", "us-west-2",
	"eu-central-1", "eu-west-1", "eu-north-1",
	"ap-southeast-1", "ap-northeast-1",
}

// RunWizard asks for the handful of settings that have no safe default.
func RunWizard(ctx context.Context) (*WizardResult, error) {
	result := &WizardResult{
		Project:      DefaultProject,
		Owner:        DefaultOwner,
		Region:       DefaultRegion,
		AccessPolicy: AccessPolicyWorkstation,
		WorkerCount:  3,
		InstanceType: DefaultInstanceType,
	}

	regionOptions := make([]huh.Option[string], 0, len(CommonRegions))
	for _, r := range CommonRegions {
		regionOptions = append(regionOptions, huh.NewOption(r, r))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project").
				Description("Applied as the Project tag and as Name tag prefix").
				Value(&result.Project).
				Validate(requireNonEmpty("project")),
			huh.NewInput().
				Title("Owner").
				Description("Applied as the Owner tag").
				Value(&result.Owner),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region the stack is deployed to").
				Options(regionOptions...).
				Value(&result.Region),
			huh.NewInput().
				Title("Hosted zone").
				Description("Route53 hosted zone FQDN records are created in").
				Placeholder("k8s.example.com").
				Value(&result.Zone).
				Validate(validateZone),
			huh.NewInput().
				Title("EC2 key pair (optional)").
				Description("Leave empty and run 'k8sway keypair' later").
				Value(&result.KeyPair),
		),

		huh.NewGroup(
			huh.NewSelect[AccessPolicy]().
				Title("Kubernetes API exposure").
				Options(
					huh.NewOption("Workstation only (recommended)", AccessPolicyWorkstation),
					huh.NewOption("Private API load balancer open to 0.0.0.0/0", AccessPolicyOpen),
				).
				Value(&result.AccessPolicy),
			huh.NewSelect[int]().
				Title("Number of workers").
				Options(
					huh.NewOption("1 worker", 1),
					huh.NewOption("2 workers", 2),
					huh.NewOption("3 workers", 3),
					huh.NewOption("5 workers", 5),
				).
				Value(&result.WorkerCount),
			huh.NewInput().
				Title("Instance type").
				Description("Used for every node group").
				Value(&result.InstanceType).
				Validate(validateInstanceType),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result to a defaulted Config.
func (r *WizardResult) ToConfig() *Config {
	cfg := &Config{
		Project:      r.Project,
		Owner:        r.Owner,
		Region:       r.Region,
		KeyPair:      r.KeyPair,
		AccessPolicy: r.AccessPolicy,
		DNS:          DNSConfig{Zone: r.Zone},
	}

	for _, n := range []*NodeGroupConfig{&cfg.Nodes.Bastion, &cfg.Nodes.Etcd, &cfg.Nodes.Master, &cfg.Nodes.Worker} {
		n.InstanceType = r.InstanceType
	}
	cfg.Nodes.Worker.SetCapacity(r.WorkerCount, r.WorkerCount, r.WorkerCount)

	cfg.ApplyDefaults()
	return cfg
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateZone(s string) error {
	if !zoneRegex.MatchString(s) {
		return fmt.Errorf("invalid hosted zone name %s", strconv.Quote(s))
	}
	return nil
}

func validateInstanceType(s string) error {
	if !instanceTypeRegex.MatchString(s) {
		return fmt.Errorf("invalid instance type %s", strconv.Quote(s))
	}
	return nil
}
