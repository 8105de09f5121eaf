package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWizardResult_ToConfig(t *testing.T) {
	t.Parallel()

	r := &WizardResult{
		Project:      "demo",
		Owner:        "ops",
		Region:       "eu-west-1",
		Zone:         "k8s.example.com",
		KeyPair:      "ops",
		AccessPolicy: AccessPolicyWorkstation,
		WorkerCount:  5,
		InstanceType: "m5.large",
	}

	cfg := r.ToConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 5, cfg.Nodes.Worker.Desired)
	assert.Equal(t, 5, cfg.Nodes.Worker.Max)
	assert.Equal(t, 3, cfg.Nodes.Master.Desired)
	assert.Equal(t, "m5.large", cfg.Nodes.Bastion.InstanceType)
}

func TestWizardValidators(t *testing.T) {
	t.Parallel()

	require.NoError(t, validateZone("k8s.example.com"))
	require.Error(t, validateZone("k8s"))
	require.NoError(t, validateInstanceType("t3a.small"))
	require.Error(t, validateInstanceType("small"))
	require.Error(t, requireNonEmpty("project")(""))
}

func TestWizardResult_ToConfig_NoWorkers(t *testing.T) {
	t.Parallel()

	r := &WizardResult{
		Project:      "demo",
		Owner:        "ops",
		Region:       "eu-west-1",
		Zone:         "k8s.example.com",
		AccessPolicy: AccessPolicyWorkstation,
		InstanceType: "t3a.small",
	}

	cfg := r.ToConfig()
	assert.Equal(t, 0, cfg.Nodes.Worker.Desired)
	assert.Equal(t, 0, cfg.Nodes.Worker.Max)
	assert.Equal(t, 3, cfg.Nodes.Master.Desired)
}
