package domain

// Ref is a snapshot reference to an ancestor: its id and discovery index.
type Ref struct {
	ID    string `json:"id"`
	Index int    `json:"index"`
}

// Ancestry is the flat, immutable record of an item's ancestors, built once
// at discovery by merging the parent's own ancestry. Entries above the item's
// own level are set; the rest are nil. It is recomputed wholesale whenever
// re-parenting could occur, never patched.
type Ancestry struct {
	Form  string `json:"form"`
	Card  *Ref   `json:"card,omitempty"`
	Set   *Ref   `json:"set,omitempty"`
	Group *Ref   `json:"group,omitempty"`
	Field *Ref   `json:"field,omitempty"`
}

// At returns the ancestor reference for a level, if present.
func (a Ancestry) At(l Level) (Ref, bool) {
	var r *Ref
	switch l {
	case LevelCard:
		r = a.Card
	case LevelSet:
		r = a.Set
	case LevelGroup:
		r = a.Group
	case LevelField:
		r = a.Field
	}
	if r == nil {
		return Ref{}, false
	}
	return *r, true
}

// With returns a copy of the ancestry extended with one more ancestor.
func (a Ancestry) With(l Level, ref Ref) Ancestry {
	r := ref
	switch l {
	case LevelCard:
		a.Card = &r
	case LevelSet:
		a.Set = &r
	case LevelGroup:
		a.Group = &r
	case LevelField:
		a.Field = &r
	}
	return a
}

// ControlKind distinguishes how a bound control stores and reports its value.
type ControlKind string

const (
	ControlText     ControlKind = "text"
	ControlTextarea ControlKind = "textarea"
	ControlNumber   ControlKind = "number"
	ControlSelect   ControlKind = "select"
	ControlRadio    ControlKind = "radio"
	ControlCheckbox ControlKind = "checkbox"
)

// Control is one native-control value holder bound to an input item.
// Radio and checkbox controls sharing a name are merged into a single item.
type Control struct {
	Name     string
	Kind     ControlKind
	Value    string
	Checked  bool
	Option   string   // the option this control represents (radio/checkbox)
	Options  []string // selectable options (select)
	Multiple bool     // multi-select
	Required bool
	Pattern  string
}

// Item is one discovered node at a hierarchy level together with its derived
// state. Records are created during discovery, rebuilt in place on every
// relevant change, and dropped wholesale on destroy.
type Item struct {
	ID    string
	Index int
	Level Level
	Title string

	// Node is the underlying definition node, owned by the surrounding
	// form. The engine never copies or clones it.
	Node any

	Ancestry Ancestry

	Active    bool
	Current   bool
	Visited   bool
	Completed bool
	Included  bool
	Valid     bool

	// Progress is the completed fraction of relevant descendants, 0-100.
	// Only meaningful on aggregating levels (card/set/group).
	Progress int

	// Input-level state.
	Value    string
	Controls []*Control
	Mask     *Mask
}
