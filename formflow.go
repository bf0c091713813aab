package formflow

import (
	"context"
	"log/slog"

	"github.com/formflow/formflow/internal/runtime"
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/ports"
	"github.com/formflow/formflow/pkg/schema"
)

// Engine is the high-level entry point for the formflow library. It wraps
// the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	form    *schema.Form
	logger  *slog.Logger
	hooks   domain.Hooks
	bus     ports.EventBus

	behaviorOverride domain.Behavior
	Name             string
}

var _ ports.Engine = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithEventBus wires a pub-sub bus for decoupled collaborators.
func WithEventBus(bus ports.EventBus) Option {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithBehavior overrides the movement granularity declared in the form
// definition.
func WithBehavior(b domain.Behavior) Option {
	return func(e *Engine) {
		e.behaviorOverride = b
	}
}

// New creates an engine over an already-parsed form definition.
func New(form *schema.Form, opts ...Option) (*Engine, error) {
	e := &Engine{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(e)
	}

	rtOpts := []runtime.EngineOption{
		runtime.WithLogger(e.logger),
		runtime.WithHooks(e.hooks),
	}
	if e.bus != nil {
		rtOpts = append(rtOpts, runtime.WithBus(e.bus))
	}
	if e.behaviorOverride != "" {
		rtOpts = append(rtOpts, runtime.WithBehavior(e.behaviorOverride))
	}

	rt, err := runtime.NewEngine(form, rtOpts...)
	if err != nil {
		return nil, err
	}
	e.runtime = rt
	e.form = form
	e.Name = form.ID
	return e, nil
}

// Load reads a YAML form definition from disk and creates an engine.
func Load(path string, opts ...Option) (*Engine, error) {
	form, err := schema.Load(path)
	if err != nil {
		return nil, err
	}
	return New(form, opts...)
}

// Start makes the first included unit current. Safe to call more than once.
func (e *Engine) Start(ctx context.Context) error {
	return e.runtime.Start(ctx)
}

// Navigate moves one unit in the given direction.
func (e *Engine) Navigate(ctx context.Context, dir domain.Direction) (bool, error) {
	return e.runtime.Navigate(ctx, dir)
}

// Next advances one unit at the configured granularity.
func (e *Engine) Next(ctx context.Context) (bool, error) {
	return e.runtime.Navigate(ctx, domain.DirectionNext)
}

// Prev moves one unit back.
func (e *Engine) Prev(ctx context.Context) (bool, error) {
	return e.runtime.Navigate(ctx, domain.DirectionPrev)
}

// SetInput records a leaf value by field name.
func (e *Engine) SetInput(ctx context.Context, name, value string) error {
	return e.runtime.SetInput(ctx, name, value)
}

// State returns the latest published snapshot.
func (e *Engine) State() *domain.FormState {
	return e.runtime.State()
}

// Behavior returns the effective movement granularity.
func (e *Engine) Behavior() domain.Behavior {
	return e.runtime.Behavior()
}

// Current returns the current item at a level, if any.
func (e *Engine) Current(level domain.Level) (*domain.Item, bool) {
	return e.runtime.Hierarchy().Manager(level).Current()
}

// ActiveItems returns the active items at a level, in discovery order.
func (e *Engine) ActiveItems(level domain.Level) []*domain.Item {
	return e.runtime.Hierarchy().Manager(level).Store().Filter(func(it *domain.Item) bool {
		return it.Active && it.Included
	})
}

// Inputs returns the input items belonging to a field, in discovery order.
func (e *Engine) Inputs(fieldID string) []*domain.Item {
	return e.runtime.Hierarchy().Manager(domain.LevelInput).ItemsOf(domain.LevelField, fieldID)
}

// Form returns the parsed form definition.
func (e *Engine) Form() *schema.Form {
	return e.form
}

// Destroy drops all engine state. The engine cannot be reused after.
func (e *Engine) Destroy() {
	e.runtime.Destroy()
}
