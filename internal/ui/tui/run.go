package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/napo-io/k8sway/internal/provisioning"
)

// Run drives fn under a Bubble Tea program showing m. fn receives an
// observer wired to the display. Quitting the display cancels the context
// passed to fn; Run waits for fn to return either way.
func Run(
	ctx context.Context,
	m Model,
	fn func(ctx context.Context, observer provisioning.Observer) error,
	opts ...tea.ProgramOption,
) (Model, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(m, opts...)

	errCh := make(chan error, 1)
	go func() {
		err := fn(ctx, NewObserver(p))
		errCh <- err
		if err != nil {
			p.Send(ErrMsg{Err: err})
			return
		}
		p.Send(DoneMsg{})
	}()

	finalModel, runErr := p.Run()
	cancel()
	fnErr := <-errCh

	final := m
	if fm, ok := finalModel.(Model); ok {
		final = fm
	}
	if fnErr != nil {
		return final, fnErr
	}
	if runErr != nil {
		return final, fmt.Errorf("TUI error: %w", runErr)
	}
	return final, nil
}
