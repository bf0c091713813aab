package schema

// Form is the root of a declarative form definition. It is the parsed
// equivalent of the markup-attribute surface: the engine consumes these
// already-parsed values, never raw markup.
type Form struct {
	ID       string  `yaml:"id" json:"id"`
	Title    string  `yaml:"title" json:"title"`
	Behavior string  `yaml:"behavior" json:"behavior"` // field | group | set | card
	Cards    []*Card `yaml:"cards" json:"cards"`
}

// Card is the broadest content unit under the form.
type Card struct {
	ID     string `yaml:"id" json:"id"`
	Ref    string `yaml:"ref" json:"ref"` // combined "type:id" identity syntax
	Title  string `yaml:"title" json:"title"`
	ShowIf string `yaml:"showif" json:"showif"`
	HideIf string `yaml:"hideif" json:"hideif"`
	Sets   []*Set `yaml:"sets" json:"sets"`
}

// Set groups related content inside a card. A set holds either groups or,
// when no grouping is needed, fields directly.
type Set struct {
	ID     string   `yaml:"id" json:"id"`
	Ref    string   `yaml:"ref" json:"ref"`
	Title  string   `yaml:"title" json:"title"`
	ShowIf string   `yaml:"showif" json:"showif"`
	HideIf string   `yaml:"hideif" json:"hideif"`
	Groups []*Group `yaml:"groups" json:"groups"`
	Fields []*Field `yaml:"fields" json:"fields"`
}

// Group collects fields inside a set.
type Group struct {
	ID     string   `yaml:"id" json:"id"`
	Ref    string   `yaml:"ref" json:"ref"`
	Title  string   `yaml:"title" json:"title"`
	ShowIf string   `yaml:"showif" json:"showif"`
	HideIf string   `yaml:"hideif" json:"hideif"`
	Fields []*Field `yaml:"fields" json:"fields"`
}

// Field is one question wrapper. It owns one or more inputs; radio and
// checkbox inputs sharing a name form a single choice group.
type Field struct {
	ID     string   `yaml:"id" json:"id"`
	Ref    string   `yaml:"ref" json:"ref"`
	Title  string   `yaml:"title" json:"title"`
	Prompt string   `yaml:"prompt" json:"prompt"` // markdown shown by renderers
	ShowIf string   `yaml:"showif" json:"showif"`
	HideIf string   `yaml:"hideif" json:"hideif"`
	Inputs []*Input `yaml:"inputs" json:"inputs"`
}

// Input is one bound control declaration.
type Input struct {
	Name     string         `yaml:"name" json:"name"`
	Kind     string         `yaml:"kind" json:"kind"` // text, textarea, number, select, radio, checkbox
	Option   string         `yaml:"option" json:"option"`
	Options  []string       `yaml:"options" json:"options"`
	Multiple bool           `yaml:"multiple" json:"multiple"`
	Required bool           `yaml:"required" json:"required"`
	Pattern  string         `yaml:"pattern" json:"pattern"`
	Value    string         `yaml:"value" json:"value"` // initial value
	Meta     map[string]any `yaml:"meta" json:"meta"`   // free-form metadata (mask, placeholder, ...)
}
