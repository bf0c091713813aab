package dsl

import "github.com/formflow/formflow/pkg/schema"

// CardBuilder provides a fluent API for configuring a card.
type CardBuilder struct {
	card *schema.Card
	sets map[string]*SetBuilder
}

// Title sets the card title.
func (c *CardBuilder) Title(title string) *CardBuilder {
	c.card.Title = title
	return c
}

// ShowIf sets the visibility condition of the card.
func (c *CardBuilder) ShowIf(expr string) *CardBuilder {
	c.card.ShowIf = expr
	return c
}

// HideIf sets the inverse visibility condition of the card.
func (c *CardBuilder) HideIf(expr string) *CardBuilder {
	c.card.HideIf = expr
	return c
}

// Set adds a set to the card, or returns the existing builder for the ID.
func (c *CardBuilder) Set(id string) *SetBuilder {
	if c.sets == nil {
		c.sets = make(map[string]*SetBuilder)
	}
	if sb, ok := c.sets[id]; ok {
		return sb
	}
	set := &schema.Set{ID: id}
	c.card.Sets = append(c.card.Sets, set)
	sb := &SetBuilder{set: set}
	c.sets[id] = sb
	return sb
}

// SetBuilder provides a fluent API for configuring a set.
type SetBuilder struct {
	set    *schema.Set
	groups map[string]*GroupBuilder
}

// Title sets the set title.
func (s *SetBuilder) Title(title string) *SetBuilder {
	s.set.Title = title
	return s
}

// ShowIf sets the visibility condition of the set.
func (s *SetBuilder) ShowIf(expr string) *SetBuilder {
	s.set.ShowIf = expr
	return s
}

// HideIf sets the inverse visibility condition of the set.
func (s *SetBuilder) HideIf(expr string) *SetBuilder {
	s.set.HideIf = expr
	return s
}

// Group adds a group to the set, or returns the existing builder for the ID.
// A set holds either groups or direct fields, never both.
func (s *SetBuilder) Group(id string) *GroupBuilder {
	if s.groups == nil {
		s.groups = make(map[string]*GroupBuilder)
	}
	if gb, ok := s.groups[id]; ok {
		return gb
	}
	group := &schema.Group{ID: id}
	s.set.Groups = append(s.set.Groups, group)
	gb := &GroupBuilder{group: group}
	s.groups[id] = gb
	return gb
}

// Field adds a field directly to the set.
func (s *SetBuilder) Field(id string) *FieldBuilder {
	field := &schema.Field{ID: id}
	s.set.Fields = append(s.set.Fields, field)
	return &FieldBuilder{field: field}
}

// GroupBuilder provides a fluent API for configuring a group.
type GroupBuilder struct {
	group *schema.Group
}

// Title sets the group title.
func (g *GroupBuilder) Title(title string) *GroupBuilder {
	g.group.Title = title
	return g
}

// ShowIf sets the visibility condition of the group.
func (g *GroupBuilder) ShowIf(expr string) *GroupBuilder {
	g.group.ShowIf = expr
	return g
}

// HideIf sets the inverse visibility condition of the group.
func (g *GroupBuilder) HideIf(expr string) *GroupBuilder {
	g.group.HideIf = expr
	return g
}

// Field adds a field to the group.
func (g *GroupBuilder) Field(id string) *FieldBuilder {
	field := &schema.Field{ID: id}
	g.group.Fields = append(g.group.Fields, field)
	return &FieldBuilder{field: field}
}
