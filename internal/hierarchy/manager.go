package hierarchy

import (
	"fmt"
	"log/slog"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// Manager is the reusable per-level controller built on an item Store. The
// shared traversal, activation and navigation-order logic lives here; the
// only true level-specific logic comes from the injected Strategy.
//
// The store is exclusively owned by its manager: the condition and
// navigation managers mutate items only through these primitives.
type Manager struct {
	level      domain.Level
	behavior   domain.Behavior
	store      *Store
	strategy   Strategy
	h          *Hierarchy
	conditions ConditionEvaluator
	logger     *slog.Logger

	navOrder []int
}

func newManager(level domain.Level, strategy Strategy, h *Hierarchy) *Manager {
	return &Manager{
		level:      level,
		behavior:   h.behavior,
		store:      NewStore(),
		strategy:   strategy,
		h:          h,
		conditions: h.conditions,
		logger:     h.logger.With("level", level),
	}
}

// Level returns the hierarchy level this manager controls.
func (m *Manager) Level() domain.Level { return m.level }

// Store exposes the level's item store for read-side queries.
func (m *Manager) Store() *Store { return m.store }

// Materializer is an optional strategy hook that attaches level-specific
// structure (bound controls, mask metadata) to a freshly discovered item.
type Materializer interface {
	Materialize(item *domain.Item) error
}

// init discovers this level's items from the form definition: it resolves
// each node's identity, builds its ancestry snapshot by looking up the
// already-discovered parent, and computes initial activation. Managers must
// be initialized broadest level first so parents exist.
func (m *Manager) init(form *schema.Form) error {
	found, err := m.strategy.Discover(form)
	if err != nil {
		return domain.Structural(domain.PhaseInit, "discover "+string(m.level), err)
	}

	for i, d := range found {
		id, title := resolveIdentity(m.level, i, d.ID, d.Title, d.Ref)

		ancestry, err := m.buildAncestry(d)
		if err != nil {
			return err
		}

		item := &domain.Item{
			ID:       id,
			Index:    i,
			Level:    m.level,
			Title:    title,
			Node:     d.Node,
			Ancestry: ancestry,
			Included: true,
		}
		if mat, ok := m.strategy.(Materializer); ok {
			if err := mat.Materialize(item); err != nil {
				return domain.Structural(domain.PhaseInit, "materialize "+string(m.level), err)
			}
		}
		if err := m.store.Add(item); err != nil {
			return domain.Structural(domain.PhaseInit, "add "+string(m.level), err)
		}
		// DetermineActive scans stored siblings, so the item must be in the
		// store before it is decided.
		item.Active = m.DetermineActive(item)
	}
	return nil
}

// buildAncestry walks upward once: it locates the nearest discovered
// ancestor owning the parent node and merges that ancestor's own hierarchy
// value. A missing required ancestor is a structural error; only the card
// level has no parent.
func (m *Manager) buildAncestry(d Discovered) (domain.Ancestry, error) {
	base := domain.Ancestry{Form: m.h.formID}
	if m.level == domain.LevelCard {
		return base, nil
	}
	if d.ParentNode == nil {
		return base, domain.Structuralf(domain.PhaseInit, "discover "+string(m.level),
			"node %q has no parent", d.ID)
	}
	for lvl := m.level; ; {
		broader, ok := lvl.Broader()
		if !ok {
			break
		}
		lvl = broader
		parentMgr := m.h.Manager(lvl)
		if parent, ok := parentMgr.store.ByNode(d.ParentNode); ok {
			return parent.Ancestry.With(parent.Level, domain.Ref{ID: parent.ID, Index: parent.Index}), nil
		}
	}
	return base, domain.Structuralf(domain.PhaseInit, "discover "+string(m.level),
		"missing required ancestor for node %q", d.ID)
}

// ParentOf returns the nearest ancestor reference of an item, for callers
// outside the package that cascade through the hierarchy.
func ParentOf(item *domain.Item) (domain.Ref, domain.Level, bool) {
	return directParent(item)
}

// directParent returns the nearest ancestor reference of an item.
func directParent(item *domain.Item) (domain.Ref, domain.Level, bool) {
	for d := item.Level.Depth() - 1; d >= 0; d-- {
		lvl := domain.Levels[d]
		if ref, ok := item.Ancestry.At(lvl); ok {
			return ref, lvl, true
		}
	}
	return domain.Ref{}, "", false
}

// DetermineActive computes whether an item should be active given the
// current hierarchy position: a parentless item is active iff it is first by
// index; otherwise its parent must be active and, when the level is
// restricted to "first child only" under the configured behavior, the item
// must be its parent's first child.
func (m *Manager) DetermineActive(item *domain.Item) bool {
	parentRef, parentLevel, ok := directParent(item)
	if !ok {
		return item.Index == 0
	}
	parent, found := m.h.Manager(parentLevel).store.ByID(parentRef.ID)
	if !found || !parent.Active {
		return false
	}
	if domain.FirstChildOnly(m.behavior, m.level) {
		return m.firstOfParent(item)
	}
	return true
}

// firstOfParent reports whether the item is the lowest-index child of its
// direct parent.
func (m *Manager) firstOfParent(item *domain.Item) bool {
	ref, lvl, ok := directParent(item)
	if !ok {
		return item.Index == 0
	}
	first, found := m.store.Find(func(it *domain.Item) bool {
		r, k, has := directParent(it)
		return has && k == lvl && r.ID == ref.ID
	})
	return found && first.ID == item.ID
}

// ItemsOf returns the items whose ancestry references the given ancestor,
// in discovery order.
func (m *Manager) ItemsOf(ancestorLevel domain.Level, ancestorID string) []*domain.Item {
	return m.store.Filter(func(it *domain.Item) bool {
		ref, ok := it.Ancestry.At(ancestorLevel)
		return ok && ref.ID == ancestorID
	})
}

// ChildrenOf returns the direct children of the given parent.
func (m *Manager) ChildrenOf(parentLevel domain.Level, parentID string) []*domain.Item {
	return m.store.Filter(func(it *domain.Item) bool {
		ref, lvl, ok := directParent(it)
		return ok && lvl == parentLevel && ref.ID == parentID
	})
}

// Current returns the single current item at this level, if any.
func (m *Manager) Current() (*domain.Item, bool) {
	return m.store.Find(func(it *domain.Item) bool { return it.Current })
}

// SetActive marks an item active.
func (m *Manager) SetActive(id string) error {
	return m.store.Merge(id, Patch{Active: Bool(true)})
}

// SetCurrent marks an item current. The target must already be active;
// an inactive target is rejected, logged, and leaves current unchanged
// anywhere in the store. The previous current item, if different, is
// demoted so at most one current item exists per level.
func (m *Manager) SetCurrent(id string) error {
	item, ok := m.store.ByID(id)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	if !item.Active {
		m.logger.Warn("rejected setCurrent on inactive item", "id", id)
		return fmt.Errorf("%w: %s", domain.ErrNotActive, id)
	}
	if prev, found := m.Current(); found && prev.ID != id {
		prev.Current = false
	}
	item.Current = true
	item.Visited = true
	return nil
}

// ClearCurrent demotes the current item. Calling it twice is a no-op.
func (m *Manager) ClearCurrent() {
	if item, ok := m.Current(); ok {
		item.Current = false
	}
}

// ClearActiveAndCurrent resets both flags across the level.
func (m *Manager) ClearActiveAndCurrent() {
	for _, item := range m.store.All() {
		item.Active = false
		item.Current = false
	}
}

// SetActiveByParent bulk-activates all children of a parent, optionally
// marking the first included one as current. Excluded children are
// activated but never focused.
func (m *Manager) SetActiveByParent(parentLevel domain.Level, parentID string, firstIsCurrent bool) {
	pending := firstIsCurrent
	for _, child := range m.ItemsOf(parentLevel, parentID) {
		child.Active = true
		if pending && child.Included {
			pending = false
			if err := m.SetCurrent(child.ID); err != nil {
				m.logger.Warn("failed to mark first child current", "id", child.ID, "err", err)
			}
		}
	}
}

// RebuildItem re-runs the level's derived-state computation over one item:
// inclusion is delegated to the condition evaluator, the rest to the
// strategy's aggregation rules.
func (m *Manager) RebuildItem(item *domain.Item) {
	item.Included = m.conditions.Evaluate(item.Node)
	m.strategy.Build(item, m.h)
}

// RebuildActive re-runs buildItemData over the active subset.
func (m *Manager) RebuildActive() {
	for _, item := range m.store.All() {
		if item.Active {
			m.RebuildItem(item)
		}
	}
}

// RebuildAll re-runs buildItemData over every item.
func (m *Manager) RebuildAll() {
	for _, item := range m.store.All() {
		m.RebuildItem(item)
	}
}

// BuildNavigationOrder filters to included items, preserving discovery
// order. It must be re-run after any inclusion change.
func (m *Manager) BuildNavigationOrder() {
	order := make([]int, 0, m.store.Len())
	for _, item := range m.store.All() {
		if item.Included {
			order = append(order, item.Index)
		}
	}
	m.navOrder = order
}

// NavigationOrder returns the included-only, index-ordered sequence used
// for next/prev lookups.
func (m *Manager) NavigationOrder() []int {
	return m.navOrder
}

// NextPosition returns the item index after the current one in navigation
// order. With no current item it returns the first included position, which
// is what lets the very first move of a fresh form establish a current
// unit. Returns false at the boundary.
func (m *Manager) NextPosition() (int, bool) {
	cur, ok := m.Current()
	if !ok {
		if len(m.navOrder) == 0 {
			return 0, false
		}
		return m.navOrder[0], true
	}
	for i, idx := range m.navOrder {
		if idx == cur.Index {
			if i+1 < len(m.navOrder) {
				return m.navOrder[i+1], true
			}
			return 0, false
		}
	}
	return 0, false
}

// PrevPosition returns the item index before the current one in navigation
// order, or false at the boundary (and when nothing is current).
func (m *Manager) PrevPosition() (int, bool) {
	cur, ok := m.Current()
	if !ok {
		return 0, false
	}
	for i, idx := range m.navOrder {
		if idx == cur.Index {
			if i > 0 {
				return m.navOrder[i-1], true
			}
			return 0, false
		}
	}
	return 0, false
}

// Snapshot publishes this level's flat aggregated record.
func (m *Manager) Snapshot() domain.LevelState {
	ls := domain.LevelState{
		CurrentIndex: -1,
		Total:        m.store.Len(),
		Validity:     make(map[string]bool, m.store.Len()),
	}
	complete := true
	included := 0
	completed := 0
	for _, item := range m.store.All() {
		if item.Current {
			ls.CurrentIndex = item.Index
			ls.CurrentID = item.ID
		}
		if item.Active {
			ls.ActiveIndices = append(ls.ActiveIndices, item.Index)
		}
		if !item.Included {
			continue
		}
		included++
		ls.Validity[item.ID] = item.Valid
		if item.Completed {
			completed++
		} else {
			complete = false
		}
	}
	ls.Complete = complete
	if included > 0 {
		ls.Progress = completed * 100 / included
	} else {
		ls.Progress = 100
	}
	return ls
}
