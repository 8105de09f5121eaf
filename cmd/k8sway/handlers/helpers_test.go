package handlers

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/provisioning"
	"github.com/napo-io/k8sway/internal/ui/tui"
)

// testConfig returns a valid configuration whose template always goes
// through a bucket.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.DNS.Zone = "example.com"
	cfg.Stack.TemplateBucket = "templates"
	return cfg
}

// stubEnvironment replaces config loading, the AWS client and terminal
// detection, and captures stdout. It restores everything on cleanup.
func stubEnvironment(t *testing.T, client aws.Client) *bytes.Buffer {
	t.Helper()

	origLoad := loadConfigFile
	origFind := findConfigFile
	origClient := newAWSClient
	origCtx := newProvisioningContext
	origTerm := isTerminal
	origTUI := runTUI
	origOut := stdout
	origErr := stderr
	t.Cleanup(func() {
		loadConfigFile = origLoad
		findConfigFile = origFind
		newAWSClient = origClient
		newProvisioningContext = origCtx
		isTerminal = origTerm
		runTUI = origTUI
		stdout = origOut
		stderr = origErr
	})

	loadConfigFile = func(string) (*config.Config, error) {
		return testConfig(), nil
	}
	findConfigFile = func() (string, error) {
		return "k8sway.yaml", nil
	}
	newAWSClient = func(context.Context, *config.Config, string) (aws.Client, error) {
		return client, nil
	}
	isTerminal = func() bool { return false }
	runTUI = func(context.Context, tui.Model, func(context.Context, provisioning.Observer) error) (tui.Model, error) {
		t.Fatal("TUI used without a terminal")
		return tui.Model{}, nil
	}

	var out bytes.Buffer
	stdout = &out
	stderr = io.Discard
	return &out
}

// quiet selects JSON logs, which the stubbed stderr discards.
func quiet() Options {
	return Options{LogFormat: LogFormatJSON}
}
