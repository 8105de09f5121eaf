package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/napo-io/k8sway/internal/provisioning/destroy"
	"github.com/napo-io/k8sway/internal/ui/tui"
)

// errAborted is returned when the user declines the confirmation prompt.
var errAborted = errors.New("destroy aborted")

// Factory function variables for destroy - can be replaced in tests.
var (
	// confirm asks a yes/no question on the terminal.
	confirm = func(ctx context.Context, title string) (bool, error) {
		var ok bool
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		))
		err := form.RunWithContext(ctx)
		return ok, err
	}
)

// Destroy deletes the cluster stack and waits for the deletion to finish.
//
// Unless yes is set, an interactive terminal is asked for confirmation.
// A stack that does not exist is not an error.
func Destroy(ctx context.Context, opts Options, yes bool) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if !yes && isTerminal() {
		ok, err := confirm(ctx, fmt.Sprintf("Delete stack %s in %s and every resource in it?", cfg.Stack.Name, cfg.Region))
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return errAborted
		}
	}

	client, err := newAWSClient(ctx, cfg, opts.Profile)
	if err != nil {
		return err
	}

	if _, err := execute(ctx, opts, cfg, client, nil, tui.NewDestroyModel(cfg.Stack.Name, cfg.Region),
		destroy.NewProvisioner(),
	); err != nil {
		return fmt.Errorf("destroy failed: %w", err)
	}

	fmt.Fprintf(stdout, "Stack %s destroyed\n", cfg.Stack.Name)
	return nil
}
