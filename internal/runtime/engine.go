package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/formflow/formflow/internal/condition"
	"github.com/formflow/formflow/internal/hierarchy"
	"github.com/formflow/formflow/internal/navigation"
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/ports"
	"github.com/formflow/formflow/pkg/schema"
)

// Engine is the core orchestrator: it wires the condition manager, the
// five-level hierarchy and the navigation state machine over one form
// definition, routes value changes into the rebuild cascade, and publishes
// one batched state snapshot per logical change.
type Engine struct {
	form     *schema.Form
	behavior domain.Behavior

	h          *hierarchy.Hierarchy
	conditions *condition.Manager
	nav        *navigation.Manager

	hooks  domain.Hooks
	bus    ports.EventBus
	logger *slog.Logger

	state     *domain.FormState
	destroyed bool
}

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability callbacks.
func WithHooks(hooks domain.Hooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithBus wires the decoupled notification bus. The engine publishes its
// lifecycle topics on it and consumes navigation:request.
func WithBus(bus ports.EventBus) EngineOption {
	return func(e *Engine) {
		e.bus = bus
	}
}

// WithBehavior overrides the movement granularity declared in the
// definition.
func WithBehavior(b domain.Behavior) EngineOption {
	return func(e *Engine) {
		e.behavior = b
	}
}

// NewEngine validates the definition, discovers conditions and the item
// hierarchy, and leaves the form activated but with nothing current: the
// first move establishes the first current unit.
func NewEngine(form *schema.Form, opts ...EngineOption) (*Engine, error) {
	if err := schema.Validate(form); err != nil {
		return nil, domain.Structural(domain.PhaseInit, "validate definition", err)
	}
	behavior, err := domain.ParseBehavior(form.Behavior)
	if err != nil {
		return nil, domain.Structural(domain.PhaseInit, "parse behavior", err)
	}

	e := &Engine{
		form:     form,
		behavior: behavior,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.conditions = condition.New(condition.WithLogger(e.logger))
	e.conditions.Discover(form)

	e.h, err = hierarchy.New(form, e.behavior,
		hierarchy.WithConditions(e.conditions),
		hierarchy.WithLogger(e.logger),
	)
	if err != nil {
		return nil, err
	}

	inputs := e.h.Manager(domain.LevelInput)
	e.conditions.SetLookup(func(name string) string {
		if item, ok := inputs.Store().ByID(name); ok {
			return item.Value
		}
		return ""
	})

	// Conditions may reference initial values, so inclusion and the
	// navigation orders need one pass with the lookup in place.
	e.h.RebuildAll()

	e.nav = navigation.New(e.h, navigation.WithLogger(e.logger))

	if e.bus != nil {
		e.bus.Subscribe(string(domain.EventNavigationRequest), func(ctx context.Context, payload any) {
			evt, ok := payload.(*domain.NavigationEvent)
			if !ok {
				return
			}
			if _, err := e.Navigate(ctx, evt.Direction); err != nil {
				e.logger.Error("navigation request failed", "direction", evt.Direction, "err", err)
			}
		})
	}

	e.state = e.h.Snapshot()
	return e, nil
}

// Hierarchy exposes the item hierarchy for presentation collaborators.
func (e *Engine) Hierarchy() *hierarchy.Hierarchy { return e.h }

// Behavior returns the effective movement granularity.
func (e *Engine) Behavior() domain.Behavior { return e.behavior }

// Start makes the first included unit current. It is a no-op when
// something is already current.
func (e *Engine) Start(ctx context.Context) error {
	if _, ok := e.h.Manager(e.behavior.Level()).Current(); ok {
		return nil
	}
	_, err := e.Navigate(ctx, domain.DirectionNext)
	return err
}

// Navigate moves one unit. It reports false for both a denied move and a
// boundary no-op; only denials emit a signal.
func (e *Engine) Navigate(ctx context.Context, dir domain.Direction) (bool, error) {
	if e.destroyed {
		return false, domain.Structuralf(domain.PhaseDestroy, "navigate", "engine is destroyed")
	}
	res, err := e.nav.Navigate(dir)
	if err != nil {
		return false, err
	}
	if res.Denied != "" {
		e.emitNavigation(ctx, &domain.NavigationEvent{
			EventBase: eventBase(domain.EventNavigationDenied),
			Direction: dir,
			Reason:    res.Denied,
		})
		return false, nil
	}
	if !res.Moved {
		return false, nil
	}

	e.publish(ctx)
	e.emitNavigation(ctx, &domain.NavigationEvent{
		EventBase: eventBase(domain.EventNavigationChanged),
		Direction: dir,
		Target:    res.Target,
		NodeID:    res.NodeID,
	})
	return true, nil
}

// SetInput records a leaf value by field name. If any condition depends on
// the field, the full rebuild cascade runs and every affected node gets a
// targeted condition:evaluated notification; otherwise only the item's own
// branch is rebuilt.
func (e *Engine) SetInput(ctx context.Context, name, value string) error {
	if e.destroyed {
		return domain.Structuralf(domain.PhaseDestroy, "set input", "engine is destroyed")
	}
	inputs := e.h.Manager(domain.LevelInput)
	item, ok := inputs.Store().ByID(name)
	if !ok {
		return fmt.Errorf("%w: input %s", domain.ErrItemNotFound, name)
	}
	hierarchy.ApplyValue(item, value)

	e.emitInput(ctx, &domain.InputEvent{
		EventBase: eventBase(domain.EventInputChanged),
		Name:      name,
		Value:     item.Value,
	})

	dependents := e.conditions.DependentsOf(name)
	if len(dependents) == 0 {
		e.h.RebuildBranch(item)
		e.publish(ctx)
		return nil
	}

	e.h.RebuildAll()
	e.publish(ctx)

	for _, el := range dependents {
		node, found := e.h.Manager(el.Level).Store().ByNode(el.Node)
		if !found {
			continue
		}
		e.emitCondition(ctx, &domain.ConditionEvent{
			EventBase: eventBase(domain.EventConditionEvaluated),
			NodeID:    node.ID,
			NodeType:  el.Level,
			Included:  node.Included,
		})
	}
	return nil
}

// State returns the latest published snapshot.
func (e *Engine) State() *domain.FormState {
	return e.state
}

// Destroy drops all items wholesale. The engine cannot be reused after.
func (e *Engine) Destroy() {
	e.h.Clear()
	e.destroyed = true
}

// publish rebuilds the batched snapshot and hands it to the hooks, once per
// logical change so consumers never see a half-applied move.
func (e *Engine) publish(ctx context.Context) {
	e.state = e.h.Snapshot()
	if e.hooks.OnStatePublished != nil {
		e.hooks.OnStatePublished(ctx, e.state)
	}
}

func eventBase(t domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t}
}

func (e *Engine) emitNavigation(ctx context.Context, evt *domain.NavigationEvent) {
	switch evt.Type {
	case domain.EventNavigationDenied:
		if e.hooks.OnNavigationDenied != nil {
			e.hooks.OnNavigationDenied(ctx, evt)
		}
	default:
		if e.hooks.OnNavigationChanged != nil {
			e.hooks.OnNavigationChanged(ctx, evt)
		}
	}
	if e.bus != nil {
		e.bus.Publish(ctx, string(evt.Type), evt)
	}
}

func (e *Engine) emitCondition(ctx context.Context, evt *domain.ConditionEvent) {
	if e.hooks.OnConditionEvaluated != nil {
		e.hooks.OnConditionEvaluated(ctx, evt)
	}
	if e.bus != nil {
		e.bus.Publish(ctx, string(evt.Type), evt)
	}
}

func (e *Engine) emitInput(ctx context.Context, evt *domain.InputEvent) {
	if e.hooks.OnInputChanged != nil {
		e.hooks.OnInputChanged(ctx, evt)
	}
	if e.bus != nil {
		e.bus.Publish(ctx, string(evt.Type), evt)
	}
}
