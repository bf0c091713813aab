package navigation

import (
	"log/slog"

	"github.com/formflow/formflow/internal/hierarchy"
	"github.com/formflow/formflow/pkg/domain"
)

// Denial reasons reported on a refused move.
const (
	ReasonInvalid  = "invalid"
	ReasonDisabled = "disabled"
)

// Result describes the outcome of one movement request. A move that is
// neither denied nor moved was a boundary no-op: the form is already at its
// first or last unit overall.
type Result struct {
	Moved  bool
	Denied string
	Target domain.Level // level the move resolved at
	NodeID string
}

// Manager is the movement state machine. It holds no positional state of
// its own beyond the enabled flag: the hierarchy's current/active flags are
// the state, and every transition runs through the level managers' public
// mutation primitives.
type Manager struct {
	h       *hierarchy.Hierarchy
	logger  *slog.Logger
	enabled bool
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates a navigation manager over an initialized hierarchy.
func New(h *hierarchy.Hierarchy, opts ...Option) *Manager {
	m := &Manager{h: h, logger: slog.New(slog.DiscardHandler), enabled: true}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Enable re-allows movement.
func (m *Manager) Enable() { m.enabled = true }

// Disable refuses all movement until re-enabled.
func (m *Manager) Disable() { m.enabled = false }

// Enabled reports whether movement is currently allowed.
func (m *Manager) Enabled() bool { return m.enabled }

// Navigate moves one unit in the given direction at the configured
// granularity, cascading to broader levels when the granularity level has
// no adjacent position. A denied move performs no mutation.
func (m *Manager) Navigate(dir domain.Direction) (*Result, error) {
	if !m.enabled {
		return &Result{Denied: ReasonDisabled}, nil
	}
	level := m.h.Behavior().Level()

	// The establishing move of a fresh form has nothing answered yet, so
	// the forward guard only applies once a unit is current.
	_, started := m.h.Manager(level).Current()
	if dir == domain.DirectionNext && started && !m.activeLeavesValid() {
		m.logger.Debug("navigation denied", "direction", dir, "reason", ReasonInvalid)
		return &Result{Denied: ReasonInvalid}, nil
	}

	for {
		mgr := m.h.Manager(level)
		var pos int
		var ok bool
		if dir == domain.DirectionPrev {
			pos, ok = mgr.PrevPosition()
		} else {
			pos, ok = mgr.NextPosition()
		}
		if ok {
			target, found := mgr.Store().ByIndex(pos)
			if !found {
				// Navigation order and store fell out of sync, which
				// cannot happen if buildNavigationOrder is re-run after
				// every inclusion change.
				return nil, domain.Structuralf(domain.PhaseRuntime, "navigate",
					"navigation order points at missing %s index %d", level, pos)
			}
			m.apply(target)
			m.h.RebuildAll()
			return &Result{Moved: true, Target: level, NodeID: target.ID}, nil
		}

		broader, has := level.Broader()
		if !has {
			// Already at the first/last unit overall.
			return &Result{}, nil
		}
		level = broader
	}
}

// activeLeavesValid is the forward guard: next is only permitted while
// every active-and-included field is valid.
func (m *Manager) activeLeavesValid() bool {
	fields := m.h.Manager(domain.LevelField)
	_, invalid := fields.Store().Find(func(it *domain.Item) bool {
		return it.Active && it.Included && !it.Valid
	})
	return !invalid
}

// apply cascades one resolved target through the hierarchy: ancestors above
// the target's level are re-pointed where they differ, the target's level
// and everything below are cleared and re-activated along the target's
// branch, and the first child of each descended level becomes current.
func (m *Manager) apply(target *domain.Item) {
	level := target.Level

	// Ancestors, broadest first, so setCurrent always sees an active parent.
	for d := 0; d < level.Depth(); d++ {
		lvl := domain.Levels[d]
		amgr := m.h.Manager(lvl)
		ref, ok := target.Ancestry.At(lvl)
		if !ok {
			// The new branch skips this level (groupless set).
			amgr.ClearActiveAndCurrent()
			continue
		}
		if cur, has := amgr.Current(); has && cur.ID == ref.ID {
			continue
		}
		amgr.ClearActiveAndCurrent()
		if err := amgr.SetActive(ref.ID); err != nil {
			m.logger.Warn("failed to activate ancestor", "level", lvl, "id", ref.ID, "err", err)
			continue
		}
		if err := amgr.SetCurrent(ref.ID); err != nil {
			m.logger.Warn("failed to mark ancestor current", "level", lvl, "id", ref.ID, "err", err)
		}
	}

	// The target's level and every level below start clean.
	for d := level.Depth(); d < len(domain.Levels); d++ {
		m.h.Manager(domain.Levels[d]).ClearActiveAndCurrent()
	}

	tmgr := m.h.Manager(level)
	if err := tmgr.SetActive(target.ID); err != nil {
		m.logger.Warn("failed to activate target", "level", level, "id", target.ID, "err", err)
	}
	if err := tmgr.SetCurrent(target.ID); err != nil {
		m.logger.Warn("failed to mark target current", "level", level, "id", target.ID, "err", err)
	}
	if !domain.FirstChildOnly(m.h.Behavior(), level) {
		if ref, plvl, ok := hierarchy.ParentOf(target); ok {
			tmgr.SetActiveByParent(plvl, ref.ID, false)
		}
	}

	m.descend(target)
}

// descend bulk-activates the target's children level by level, marking each
// level's first included child current, down to the input level. Restricted
// levels activate only that child. Excluded items never become current.
func (m *Manager) descend(node *domain.Item) {
	for {
		lvl, children := m.h.DirectChildren(node)
		first := firstIncluded(children)
		if first == nil {
			return
		}
		mgr := m.h.Manager(lvl)
		if domain.FirstChildOnly(m.h.Behavior(), lvl) {
			if err := mgr.SetActive(first.ID); err != nil {
				m.logger.Warn("failed to activate first child", "level", lvl, "id", first.ID, "err", err)
			}
		} else {
			mgr.SetActiveByParent(node.Level, node.ID, false)
		}
		if err := mgr.SetCurrent(first.ID); err != nil {
			m.logger.Warn("failed to mark first child current", "level", lvl, "id", first.ID, "err", err)
		}
		node = first
	}
}

// firstIncluded returns the lowest-index child still participating in
// navigation, or nil when every child is excluded.
func firstIncluded(children []*domain.Item) *domain.Item {
	for _, c := range children {
		if c.Included {
			return c
		}
	}
	return nil
}
