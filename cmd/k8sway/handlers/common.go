// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/platform/aws"
	"github.com/napo-io/k8sway/internal/provisioning"
	"github.com/napo-io/k8sway/internal/ui/tui"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Options carries the global flags shared by every command.
type Options struct {
	ConfigPath  string
	LogFormat   string
	MetricsFile string
	Profile     string
	// Region overrides the configured deployment region.
	Region string
	// Plain disables the interactive progress view.
	Plain bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// findConfigFile finds k8sway.yaml in the working directory or a parent.
	findConfigFile = config.FindConfigFile

	// newAWSClient builds the AWS client for the deployment region.
	newAWSClient = func(ctx context.Context, cfg *config.Config, profile string) (aws.Client, error) {
		awsCfg, err := aws.LoadConfig(ctx, aws.LoadOptions{Region: cfg.Region, Profile: profile})
		if err != nil {
			return nil, err
		}
		return aws.NewRealClient(awsCfg, aws.WithTimeouts(config.LoadTimeouts())), nil
	}

	// newProvisioningContext creates a new provisioning context.
	newProvisioningContext = provisioning.NewContext

	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	// runTUI drives a pipeline under the progress view.
	runTUI = func(ctx context.Context, m tui.Model, fn func(context.Context, provisioning.Observer) error) (tui.Model, error) {
		return tui.Run(ctx, m, fn, tea.WithAltScreen())
	}

	// stdout receives command output.
	stdout io.Writer = os.Stdout

	// stderr receives JSON log lines.
	stderr io.Writer = os.Stderr
)

// loadConfig reads the configuration named by opts, or the nearest
// k8sway.yaml when no path is given.
func loadConfig(opts Options) (*config.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		found, err := findConfigFile()
		if err != nil {
			return nil, fmt.Errorf("no config file given: %w", err)
		}
		path = found
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, err
	}
	if opts.Region != "" {
		cfg.Region = opts.Region
	}
	return cfg, nil
}

// newObserver returns the plain (non-interactive) observer for the log format.
func newObserver(format string) (provisioning.Observer, error) {
	switch format {
	case "", LogFormatText:
		return provisioning.NewConsoleObserver(), nil
	case LogFormatJSON:
		return provisioning.NewJSONObserver(func(line string) {
			fmt.Fprintln(stderr, line)
		}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want %s or %s)", format, LogFormatText, LogFormatJSON)
	}
}

func useTUI(opts Options) bool {
	return !opts.Plain && opts.LogFormat != LogFormatJSON && isTerminal()
}

// execute runs phases in a fresh provisioning context. On a terminal the
// progress view from model is shown; otherwise events go to the log observer.
func execute(
	ctx context.Context,
	opts Options,
	cfg *config.Config,
	client aws.Client,
	metrics *image.Metrics,
	model tui.Model,
	phases ...provisioning.Phase,
) (*provisioning.Context, error) {
	pipeline := provisioning.NewPipeline(phases...)

	var pCtx *provisioning.Context
	run := func(ctx context.Context, observer provisioning.Observer) error {
		pCtx = newProvisioningContext(ctx, cfg, client,
			provisioning.WithObserver(observer),
			provisioning.WithMetrics(metrics),
		)
		return pipeline.Run(pCtx)
	}

	if useTUI(opts) {
		final, err := runTUI(ctx, model, run)
		fmt.Fprintln(stdout, final.Summary())
		return pCtx, err
	}

	observer, err := newObserver(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	return pCtx, run(ctx, observer)
}

// writeMetrics exports resolver metrics when a metrics file is configured.
// Export failures are reported but do not fail the command.
func writeMetrics(metrics *image.Metrics, path string) {
	if path == "" || metrics == nil {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to write metrics: %v\n", err)
	}
}
