package hierarchy

import (
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// aggregate folds the included subset of a child collection into the
// parent's derived flags. An item whose included children are all complete
// is complete; zero included children count as vacuously valid and complete.
func aggregate(children []*domain.Item) (valid, completed bool, progress int) {
	total := 0
	done := 0
	valid = true
	for _, child := range children {
		if !child.Included {
			continue
		}
		total++
		if !child.Valid {
			valid = false
		}
		if child.Completed {
			done++
		}
	}
	if total == 0 {
		return true, true, 100
	}
	return valid, done == total, done * 100 / total
}

type cardStrategy struct{}

func (cardStrategy) Level() domain.Level { return domain.LevelCard }

func (cardStrategy) Discover(form *schema.Form) ([]Discovered, error) {
	out := make([]Discovered, 0, len(form.Cards))
	for _, card := range form.Cards {
		out = append(out, Discovered{Node: card, ID: card.ID, Title: card.Title, Ref: card.Ref})
	}
	return out, nil
}

func (cardStrategy) Build(item *domain.Item, h *Hierarchy) {
	children := h.Manager(domain.LevelSet).ItemsOf(domain.LevelCard, item.ID)
	item.Valid, item.Completed, item.Progress = aggregate(children)
}

type setStrategy struct{}

func (setStrategy) Level() domain.Level { return domain.LevelSet }

func (setStrategy) Discover(form *schema.Form) ([]Discovered, error) {
	var out []Discovered
	for _, card := range form.Cards {
		for _, set := range card.Sets {
			out = append(out, Discovered{Node: set, ParentNode: card, ID: set.ID, Title: set.Title, Ref: set.Ref})
		}
	}
	return out, nil
}

// Build aggregates a set over its included groups, or, when the set holds
// no groups, directly over its included fields.
func (setStrategy) Build(item *domain.Item, h *Hierarchy) {
	children := h.Manager(domain.LevelGroup).ItemsOf(domain.LevelSet, item.ID)
	if len(children) == 0 {
		children = h.Manager(domain.LevelField).ItemsOf(domain.LevelSet, item.ID)
	}
	item.Valid, item.Completed, item.Progress = aggregate(children)
}

type groupStrategy struct{}

func (groupStrategy) Level() domain.Level { return domain.LevelGroup }

func (groupStrategy) Discover(form *schema.Form) ([]Discovered, error) {
	var out []Discovered
	for _, card := range form.Cards {
		for _, set := range card.Sets {
			for _, group := range set.Groups {
				out = append(out, Discovered{Node: group, ParentNode: set, ID: group.ID, Title: group.Title, Ref: group.Ref})
			}
		}
	}
	return out, nil
}

func (groupStrategy) Build(item *domain.Item, h *Hierarchy) {
	children := h.Manager(domain.LevelField).ItemsOf(domain.LevelGroup, item.ID)
	item.Valid, item.Completed, item.Progress = aggregate(children)
}

type fieldStrategy struct{}

func (fieldStrategy) Level() domain.Level { return domain.LevelField }

func (fieldStrategy) Discover(form *schema.Form) ([]Discovered, error) {
	var out []Discovered
	add := func(parent any, fields []*schema.Field) {
		for _, field := range fields {
			out = append(out, Discovered{Node: field, ParentNode: parent, ID: field.ID, Title: field.Title, Ref: field.Ref})
		}
	}
	for _, card := range form.Cards {
		for _, set := range card.Sets {
			add(set, set.Fields)
			for _, group := range set.Groups {
				add(group, group.Fields)
			}
		}
	}
	return out, nil
}

// Build derives a field from its merged input items: the field is valid when
// every input is, and completed once every input holds a valid value.
func (fieldStrategy) Build(item *domain.Item, h *Hierarchy) {
	children := h.Manager(domain.LevelInput).ItemsOf(domain.LevelField, item.ID)
	item.Valid, item.Completed, item.Progress = aggregate(children)
}
