package hierarchy

import (
	"log/slog"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// Hierarchy assembles the five level managers over one form definition and
// owns the cross-level operations: the full discovery pass, the rebuild
// cascade, and the published snapshot.
type Hierarchy struct {
	form     *schema.Form
	formID   string
	behavior domain.Behavior

	conditions ConditionEvaluator
	logger     *slog.Logger

	managers map[domain.Level]*Manager

	// rebuild coalescing: a cascade triggered while another is in flight
	// is folded into one trailing pass instead of interleaving stale reads.
	rebuilding bool
	pending    bool
}

// Option configures the Hierarchy.
type Option func(*Hierarchy)

// WithConditions wires the condition evaluator consulted during rebuilds.
func WithConditions(eval ConditionEvaluator) Option {
	return func(h *Hierarchy) {
		h.conditions = eval
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Hierarchy) {
		h.logger = logger
	}
}

// New discovers the full item hierarchy from a form definition: every level
// is scanned broadest-first so ancestors exist when children walk upward,
// then derived state is rebuilt child-first and navigation orders computed.
func New(form *schema.Form, behavior domain.Behavior, opts ...Option) (*Hierarchy, error) {
	h := &Hierarchy{
		form:       form,
		behavior:   behavior,
		conditions: includeAll{},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.formID, _ = resolveIdentity("form", 0, form.ID, form.Title, "")

	h.managers = map[domain.Level]*Manager{
		domain.LevelCard:  newManager(domain.LevelCard, cardStrategy{}, h),
		domain.LevelSet:   newManager(domain.LevelSet, setStrategy{}, h),
		domain.LevelGroup: newManager(domain.LevelGroup, groupStrategy{}, h),
		domain.LevelField: newManager(domain.LevelField, fieldStrategy{}, h),
		domain.LevelInput: newManager(domain.LevelInput, newInputStrategy(), h),
	}

	for _, lvl := range domain.Levels {
		if err := h.managers[lvl].init(form); err != nil {
			return nil, err
		}
	}

	h.RebuildAll()
	return h, nil
}

// FormID returns the resolved form identity.
func (h *Hierarchy) FormID() string { return h.formID }

// Behavior returns the configured movement granularity.
func (h *Hierarchy) Behavior() domain.Behavior { return h.behavior }

// Manager returns the controller for one level.
func (h *Hierarchy) Manager(level domain.Level) *Manager {
	return h.managers[level]
}

// RebuildAll re-runs derived-state computation over every level, child
// first so aggregates always read fresh child state, then recomputes every
// navigation order. Nested triggers coalesce into one trailing pass.
func (h *Hierarchy) RebuildAll() {
	if h.rebuilding {
		h.pending = true
		return
	}
	h.rebuilding = true
	for {
		h.pending = false
		for i := len(domain.Levels) - 1; i >= 0; i-- {
			h.managers[domain.Levels[i]].RebuildAll()
		}
		for _, lvl := range domain.Levels {
			h.managers[lvl].BuildNavigationOrder()
		}
		if !h.pending {
			break
		}
	}
	h.rebuilding = false
}

// RebuildBranch rebuilds one leaf item and its ancestor chain, used after a
// value change that no condition depends on. Navigation orders cannot have
// changed in that case, so they are left alone.
func (h *Hierarchy) RebuildBranch(item *domain.Item) {
	mgr := h.managers[item.Level]
	mgr.RebuildItem(item)
	for d := item.Level.Depth() - 1; d >= 0; d-- {
		lvl := domain.Levels[d]
		if ref, ok := item.Ancestry.At(lvl); ok {
			if ancestor, found := h.managers[lvl].store.ByID(ref.ID); found {
				h.managers[lvl].RebuildItem(ancestor)
			}
		}
	}
}

// DirectChildren returns the direct children of an item: the first narrower
// level that has items referencing it. Groups are optional inside sets, so
// a groupless set's direct children are its fields.
func (h *Hierarchy) DirectChildren(item *domain.Item) (domain.Level, []*domain.Item) {
	for lvl, ok := item.Level.Narrower(); ok; lvl, ok = lvl.Narrower() {
		children := h.managers[lvl].ChildrenOf(item.Level, item.ID)
		if len(children) > 0 {
			return lvl, children
		}
	}
	return "", nil
}

// Snapshot builds the batched published state across all levels.
func (h *Hierarchy) Snapshot() *domain.FormState {
	state := domain.NewFormState(h.formID, h.behavior)
	for _, lvl := range domain.Levels {
		state.Levels[lvl] = h.managers[lvl].Snapshot()
	}
	for _, item := range h.managers[domain.LevelInput].store.All() {
		state.Values[item.ID] = item.Value
	}
	return state
}

// Clear drops every level's items wholesale.
func (h *Hierarchy) Clear() {
	for _, mgr := range h.managers {
		mgr.store.Clear()
		mgr.navOrder = nil
	}
}
