package provisioning

import (
	"context"

	"github.com/napo-io/k8sway/internal/config"
	"github.com/napo-io/k8sway/internal/image"
	"github.com/napo-io/k8sway/internal/platform/aws"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	AWS      aws.Client
	Observer Observer
	Timeouts *config.Timeouts

	// Metrics receives image lookup metrics when set.
	Metrics *image.Metrics
}

// Option configures a Context.
type Option func(*Context)

// WithObserver replaces the default console observer.
func WithObserver(o Observer) Option {
	return func(c *Context) {
		c.Observer = o
	}
}

// WithTimeouts replaces the timeouts loaded from the environment.
func WithTimeouts(t *config.Timeouts) Option {
	return func(c *Context) {
		c.Timeouts = t
	}
}

// WithMetrics records image lookups into m.
func WithMetrics(m *image.Metrics) Option {
	return func(c *Context) {
		c.Metrics = m
	}
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, client aws.Client, opts ...Option) *Context {
	c := &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		AWS:      client,
		Observer: NewConsoleObserver(),
		Timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithContext returns a shallow copy of c bound to ctx. Phases use it to
// apply per-phase deadlines while sharing State.
func (c *Context) WithContext(ctx context.Context) *Context {
	cp := *c
	cp.Context = ctx
	return &cp
}
