package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/platform/aws"
)

// saveAndRestoreInitFactories saves and restores init factory functions.
func saveAndRestoreInitFactories(t *testing.T) {
	t.Helper()
	origRunWizard := runWizard
	origWriteConfig := writeConfig
	t.Cleanup(func() {
		runWizard = origRunWizard
		writeConfig = origWriteConfig
	})
}

func TestInit(t *testing.T) {
	out := stubEnvironment(t, &aws.MockClient{})
	saveAndRestoreInitFactories(t)

	runWizard = func(context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{
			Project:      "demo",
			Owner:        "ops",
			Region:       "eu-west-1",
			Zone:         "k8s.example.com",
			KeyPair:      "admin",
			AccessPolicy: config.AccessPolicyWorkstation,
			WorkerCount:  5,
			InstanceType: "t3a.medium",
		}, nil
	}

	path := filepath.Join(t.TempDir(), "k8sway.yaml")
	require.NoError(t, Init(context.Background(), path))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 5, cfg.Nodes.Worker.Desired)

	assert.Contains(t, out.String(), "Configuration saved!")
	assert.Contains(t, out.String(), "k8s.example.com")
	assert.Contains(t, out.String(), "worker 5")
	assert.Contains(t, out.String(), "k8sway keypair\n")
	assert.NotContains(t, out.String(), "already exists")
}

func TestInit_Failures(t *testing.T) {
	stubEnvironment(t, &aws.MockClient{})
	saveAndRestoreInitFactories(t)

	runWizard = func(context.Context) (*config.WizardResult, error) {
		return nil, errors.New("wizard canceled: user aborted")
	}
	err := Init(context.Background(), filepath.Join(t.TempDir(), "k8sway.yaml"))
	assert.EqualError(t, err, "wizard canceled: user aborted")

	runWizard = func(context.Context) (*config.WizardResult, error) {
		return &config.WizardResult{Zone: "example.com", WorkerCount: 1}, nil
	}
	writeConfig = func(*config.Config, string) error { return errors.New("read-only") }
	err = Init(context.Background(), filepath.Join(t.TempDir(), "k8sway.yaml"))
	assert.EqualError(t, err, "read-only")
}
