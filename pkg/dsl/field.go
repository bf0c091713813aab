package dsl

import "github.com/formflow/formflow/pkg/schema"

// FieldBuilder provides a fluent API for configuring a field and its inputs.
// Input modifiers (Required, Pattern, Mask, Default) apply to the most
// recently added input.
type FieldBuilder struct {
	field *schema.Field
	last  *schema.Input
}

// Title sets the field title.
func (f *FieldBuilder) Title(title string) *FieldBuilder {
	f.field.Title = title
	return f
}

// Prompt sets the markdown prompt shown by renderers.
func (f *FieldBuilder) Prompt(prompt string) *FieldBuilder {
	f.field.Prompt = prompt
	return f
}

// ShowIf sets the visibility condition of the field.
func (f *FieldBuilder) ShowIf(expr string) *FieldBuilder {
	f.field.ShowIf = expr
	return f
}

// HideIf sets the inverse visibility condition of the field.
func (f *FieldBuilder) HideIf(expr string) *FieldBuilder {
	f.field.HideIf = expr
	return f
}

// Text adds a free-text input.
func (f *FieldBuilder) Text(name string) *FieldBuilder {
	return f.add(&schema.Input{Name: name, Kind: "text"})
}

// Textarea adds a multi-line text input.
func (f *FieldBuilder) Textarea(name string) *FieldBuilder {
	return f.add(&schema.Input{Name: name, Kind: "textarea"})
}

// Number adds a numeric input.
func (f *FieldBuilder) Number(name string) *FieldBuilder {
	return f.add(&schema.Input{Name: name, Kind: "number"})
}

// Select adds a single-choice dropdown input.
func (f *FieldBuilder) Select(name string, options ...string) *FieldBuilder {
	return f.add(&schema.Input{Name: name, Kind: "select", Options: options})
}

// Radio adds one radio option. Radios sharing a name form one choice group.
func (f *FieldBuilder) Radio(name, option string) *FieldBuilder {
	return f.add(&schema.Input{Name: name, Kind: "radio", Option: option})
}

// Checkbox adds one checkbox option. Checkboxes sharing a name form one
// multi-select group.
func (f *FieldBuilder) Checkbox(name, option string) *FieldBuilder {
	return f.add(&schema.Input{Name: name, Kind: "checkbox", Option: option, Multiple: true})
}

// Required marks the last added input as mandatory.
func (f *FieldBuilder) Required() *FieldBuilder {
	if f.last != nil {
		f.last.Required = true
	}
	return f
}

// Pattern sets the validation regexp of the last added input.
func (f *FieldBuilder) Pattern(pattern string) *FieldBuilder {
	if f.last != nil {
		f.last.Pattern = pattern
	}
	return f
}

// Mask sets a display mask (e.g. "(99) 99999-9999") on the last added input.
func (f *FieldBuilder) Mask(mask string) *FieldBuilder {
	if f.last != nil {
		if f.last.Meta == nil {
			f.last.Meta = make(map[string]any)
		}
		f.last.Meta["mask"] = mask
	}
	return f
}

// Default sets the initial value of the last added input.
func (f *FieldBuilder) Default(value string) *FieldBuilder {
	if f.last != nil {
		f.last.Value = value
	}
	return f
}

func (f *FieldBuilder) add(in *schema.Input) *FieldBuilder {
	f.field.Inputs = append(f.field.Inputs, in)
	f.last = in
	return f
}
