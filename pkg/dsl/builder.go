package dsl

import (
	"fmt"

	"github.com/formflow/formflow/pkg/schema"
)

// Builder assembles a form definition top-down.
type Builder struct {
	form  *schema.Form
	cards map[string]*CardBuilder
}

// New creates a builder for a form with the given ID. The behavior defaults
// to field-wise navigation.
func New(id string) *Builder {
	return &Builder{
		form: &schema.Form{
			ID:       id,
			Behavior: "field",
		},
		cards: make(map[string]*CardBuilder),
	}
}

// Title sets the form title.
func (b *Builder) Title(title string) *Builder {
	b.form.Title = title
	return b
}

// Behavior sets the navigation granularity: field, group, set or card.
func (b *Builder) Behavior(behavior string) *Builder {
	b.form.Behavior = behavior
	return b
}

// Card adds a card to the form. If a card with the ID already exists, its
// builder is returned instead.
func (b *Builder) Card(id string) *CardBuilder {
	if cb, ok := b.cards[id]; ok {
		return cb
	}
	card := &schema.Card{ID: id}
	b.form.Cards = append(b.form.Cards, card)
	cb := &CardBuilder{card: card}
	b.cards[id] = cb
	return cb
}

// Build validates the assembled definition and returns it.
func (b *Builder) Build() (*schema.Form, error) {
	if err := schema.Validate(b.form); err != nil {
		return nil, fmt.Errorf("invalid form definition: %w", err)
	}
	return b.form, nil
}
