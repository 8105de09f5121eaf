package provisioning

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// phaseFuncImpl creates a Phase from a function for testing.
type phaseFuncImpl struct {
	name string
	fn   func(*Context) error
}

func phaseFunc(name string, fn func(*Context) error) Phase {
	return &phaseFuncImpl{name: name, fn: fn}
}

func (p *phaseFuncImpl) Name() string                 { return p.name }
func (p *phaseFuncImpl) Provision(ctx *Context) error { return p.fn(ctx) }

func TestNewPipeline(t *testing.T) {
	t.Parallel()
	p1 := phaseFunc("phase-1", nil)
	p2 := phaseFunc("phase-2", nil)

	pipeline := NewPipeline(p1, p2)

	require.NotNil(t, pipeline)
	assert.Len(t, pipeline.Phases, 2)
	assert.Equal(t, "phase-1", pipeline.Phases[0].Name())
	assert.Equal(t, "phase-2", pipeline.Phases[1].Name())
}

func TestPipeline_Run_Success(t *testing.T) {
	t.Parallel()
	ctx, observer := newTestContext(t, nil, nil)
	executed := make([]string, 0)

	pipeline := NewPipeline(
		phaseFunc("images", func(_ *Context) error { executed = append(executed, "images"); return nil }),
		phaseFunc("infrastructure", func(_ *Context) error { executed = append(executed, "infrastructure"); return nil }),
		phaseFunc("deploy", func(_ *Context) error { executed = append(executed, "deploy"); return nil }),
	)

	require.NoError(t, pipeline.Run(ctx))
	assert.Equal(t, []string{"images", "infrastructure", "deploy"}, executed)
	assert.Len(t, observer.EventsOfType(EventPhaseStarted), 3)
	assert.Len(t, observer.EventsOfType(EventPhaseCompleted), 3)
	assert.Len(t, observer.EventsOfType(EventProgress), 3)
}

func TestPipeline_Run_StopsOnError(t *testing.T) {
	t.Parallel()
	ctx, observer := newTestContext(t, nil, nil)
	executed := make([]string, 0)

	pipeline := NewPipeline(
		phaseFunc("images", func(_ *Context) error { executed = append(executed, "images"); return nil }),
		phaseFunc("infrastructure", func(_ *Context) error { return fmt.Errorf("no hosted zone") }),
		phaseFunc("deploy", func(_ *Context) error { executed = append(executed, "deploy"); return nil }),
	)

	err := pipeline.Run(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "infrastructure phase failed")
	assert.Contains(t, err.Error(), "no hosted zone")
	assert.Equal(t, []string{"images"}, executed)

	failed := observer.EventsOfType(EventPhaseFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, "infrastructure", failed[0].Phase)
}

func TestPipeline_Run_WrapsPhaseError(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(t, nil, nil)
	sentinel := errors.New("sentinel")

	err := NewPipeline(phaseFunc("x", func(_ *Context) error { return sentinel })).Run(ctx)
	assert.ErrorIs(t, err, sentinel)
}

func TestPipeline_Run_CancelledContext(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(t, nil, nil)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	ctx = ctx.WithContext(cancelled)

	ran := false
	err := NewPipeline(phaseFunc("x", func(_ *Context) error { ran = true; return nil })).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ran)
}

func TestPipeline_Run_EmptyPipeline(t *testing.T) {
	t.Parallel()
	ctx, _ := newTestContext(t, nil, nil)

	require.NoError(t, NewPipeline().Run(ctx))
}
