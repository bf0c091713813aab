package condition

import (
	"log/slog"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// Element is one conditional node: its owning definition node, the parsed
// show/hide expressions, and (through the manager's graph) the field names
// it depends on.
type Element struct {
	Node   any
	Level  domain.Level
	ShowIf *Expression
	HideIf *Expression
}

// Manager decides, per node, whether it should be included, based on
// boolean expressions over other fields' current values. A field-name →
// dependents multimap built once at discovery limits re-evaluation to
// affected nodes only.
type Manager struct {
	logger   *slog.Logger
	elements map[any]*Element
	deps     map[string][]*Element
	lookup   func(field string) string
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger sets the structured logger used for parse warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// New creates an empty condition manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		logger:   slog.New(slog.DiscardHandler),
		elements: make(map[any]*Element),
		deps:     make(map[string][]*Element),
		lookup:   func(string) string { return "" },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetLookup wires the current-value source consulted during evaluation.
func (m *Manager) SetLookup(fn func(field string) string) {
	if fn != nil {
		m.lookup = fn
	}
}

// Discover scans the form definition for nodes declaring a show-condition
// and/or a hide-condition, parses each, and registers the node under every
// field its expressions reference.
func (m *Manager) Discover(form *schema.Form) {
	for _, card := range form.Cards {
		m.register(card, domain.LevelCard, card.ShowIf, card.HideIf)
		for _, set := range card.Sets {
			m.register(set, domain.LevelSet, set.ShowIf, set.HideIf)
			for _, field := range set.Fields {
				m.register(field, domain.LevelField, field.ShowIf, field.HideIf)
			}
			for _, group := range set.Groups {
				m.register(group, domain.LevelGroup, group.ShowIf, group.HideIf)
				for _, field := range group.Fields {
					m.register(field, domain.LevelField, field.ShowIf, field.HideIf)
				}
			}
		}
	}
}

func (m *Manager) register(node any, level domain.Level, showIf, hideIf string) {
	var show, hide *Expression
	if showIf != "" {
		show = Parse(showIf, m.logger)
	}
	if hideIf != "" {
		hide = Parse(hideIf, m.logger)
	}
	if show == nil && hide == nil {
		return
	}

	el := &Element{Node: node, Level: level, ShowIf: show, HideIf: hide}
	m.elements[node] = el

	seen := make(map[string]bool)
	for _, expr := range []*Expression{show, hide} {
		if expr == nil {
			continue
		}
		for _, field := range expr.Fields() {
			if !seen[field] {
				seen[field] = true
				m.deps[field] = append(m.deps[field], el)
			}
		}
	}
}

// Evaluate is the pure inclusion query consulted during buildItemData:
// showIf result (default true) AND NOT hideIf result (default false).
// A node with no registered expression is always included.
func (m *Manager) Evaluate(node any) bool {
	el, ok := m.elements[node]
	if !ok {
		return true
	}
	show := true
	if el.ShowIf != nil {
		show = el.ShowIf.Evaluate(m.lookup)
	}
	hide := false
	if el.HideIf != nil {
		hide = el.HideIf.Evaluate(m.lookup)
	}
	return show && !hide
}

// DependentsOf returns the conditional nodes whose expressions reference
// the given field. An empty result is the O(1) early exit for value changes
// nothing depends on.
func (m *Manager) DependentsOf(field string) []*Element {
	return m.deps[field]
}

// Len reports how many conditional elements are registered.
func (m *Manager) Len() int {
	return len(m.elements)
}
