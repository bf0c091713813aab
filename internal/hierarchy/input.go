package hierarchy

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/formflow/formflow/internal/dto"
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// inputStrategy discovers leaf items inside already-discovered field
// wrappers rather than by a top-level marker of their own. Controls sharing
// one name within a field (radio/checkbox groups) merge into a single item.
type inputStrategy struct {
	// groups maps the representative control declaration of each merged
	// item to the full declaration set, filled during Discover.
	groups map[*schema.Input][]*schema.Input

	patterns map[string]*regexp.Regexp
}

func newInputStrategy() *inputStrategy {
	return &inputStrategy{
		groups:   make(map[*schema.Input][]*schema.Input),
		patterns: make(map[string]*regexp.Regexp),
	}
}

func (s *inputStrategy) Level() domain.Level { return domain.LevelInput }

func (s *inputStrategy) Discover(form *schema.Form) ([]Discovered, error) {
	var out []Discovered
	walk := func(field *schema.Field) {
		var order []*schema.Input
		byName := make(map[string][]*schema.Input)
		for _, in := range field.Inputs {
			if _, seen := byName[in.Name]; !seen {
				order = append(order, in)
			}
			byName[in.Name] = append(byName[in.Name], in)
		}
		for _, rep := range order {
			s.groups[rep] = byName[rep.Name]
			out = append(out, Discovered{Node: rep, ParentNode: field, ID: rep.Name, Title: rep.Name})
		}
	}
	for _, card := range form.Cards {
		for _, set := range card.Sets {
			for _, field := range set.Fields {
				walk(field)
			}
			for _, group := range set.Groups {
				for _, field := range group.Fields {
					walk(field)
				}
			}
		}
	}
	return out, nil
}

// Materialize binds the item's controls and mask metadata once, at
// discovery time.
func (s *inputStrategy) Materialize(item *domain.Item) error {
	rep, ok := item.Node.(*schema.Input)
	if !ok {
		return fmt.Errorf("input item %s has no declaration", item.ID)
	}
	for _, decl := range s.groups[rep] {
		item.Controls = append(item.Controls, &domain.Control{
			Name:     decl.Name,
			Kind:     controlKind(decl.Kind),
			Value:    decl.Value,
			Option:   decl.Option,
			Options:  decl.Options,
			Multiple: decl.Multiple,
			Required: decl.Required,
			Pattern:  decl.Pattern,
		})
	}
	meta, err := dto.DecodeInputMeta(rep.Meta)
	if err != nil {
		return err
	}
	item.Mask = domain.NewMask(meta.Mask)
	if item.Mask != nil {
		ApplyValue(item, rep.Value)
	} else {
		item.Value = ExtractValue(item)
	}
	return nil
}

// Build re-extracts the raw value from the bound controls and recomputes
// validity against the native-control constraints.
func (s *inputStrategy) Build(item *domain.Item, h *Hierarchy) {
	item.Value = ExtractValue(item)
	item.Valid = s.controlsValid(item, h)
	item.Completed = item.Valid && item.Value != ""
}

// controlsValid applies the platform validation primitives: required,
// pattern, and numeric parsing. An uncompilable pattern fails open with a
// logged warning.
func (s *inputStrategy) controlsValid(item *domain.Item, h *Hierarchy) bool {
	required := false
	for _, c := range item.Controls {
		if c.Required {
			required = true
		}
	}
	if required && item.Value == "" {
		return false
	}
	if item.Value == "" {
		return true
	}
	for _, c := range item.Controls {
		if c.Kind == domain.ControlNumber {
			if _, err := strconv.ParseFloat(item.Value, 64); err != nil {
				return false
			}
		}
		if c.Pattern == "" {
			continue
		}
		re, ok := s.patterns[c.Pattern]
		if !ok {
			var err error
			re, err = regexp.Compile(c.Pattern)
			if err != nil {
				h.logger.Warn("ignoring invalid input pattern", "input", item.ID, "pattern", c.Pattern, "err", err)
				re = nil
			}
			s.patterns[c.Pattern] = re
		}
		if re != nil && !re.MatchString(item.Value) {
			return false
		}
	}
	return true
}

func controlKind(kind string) domain.ControlKind {
	switch kind {
	case "", "text":
		return domain.ControlText
	case "textarea":
		return domain.ControlTextarea
	case "number":
		return domain.ControlNumber
	case "select":
		return domain.ControlSelect
	case "radio":
		return domain.ControlRadio
	case "checkbox":
		return domain.ControlCheckbox
	}
	return domain.ControlText
}

// ExtractValue reads the raw underlying value of an input item, branching
// on the bound control kind.
func ExtractValue(item *domain.Item) string {
	if len(item.Controls) == 0 {
		return ""
	}
	switch item.Controls[0].Kind {
	case domain.ControlRadio:
		for _, c := range item.Controls {
			if c.Checked {
				return c.Option
			}
		}
		return ""
	case domain.ControlCheckbox:
		var picked []string
		for _, c := range item.Controls {
			if c.Checked {
				picked = append(picked, c.Option)
			}
		}
		return strings.Join(picked, ",")
	default:
		if item.Mask != nil {
			return item.Mask.Strip(item.Controls[0].Value)
		}
		return item.Controls[0].Value
	}
}

// ApplyValue writes a raw value back into the bound controls, branching on
// control kind: single choices check the matching option, multi choices
// toggle membership, masked text strips to digits and reformats.
func ApplyValue(item *domain.Item, value string) {
	if len(item.Controls) == 0 {
		item.Value = value
		return
	}
	switch item.Controls[0].Kind {
	case domain.ControlRadio:
		for _, c := range item.Controls {
			c.Checked = c.Option == value && value != ""
		}
	case domain.ControlCheckbox:
		want := make(map[string]bool)
		for _, part := range strings.Split(value, ",") {
			if part != "" {
				want[part] = true
			}
		}
		for _, c := range item.Controls {
			c.Checked = want[c.Option]
		}
	default:
		if item.Mask != nil {
			raw := item.Mask.Strip(value)
			for _, c := range item.Controls {
				c.Value = item.Mask.Apply(raw)
			}
			item.Value = raw
			return
		}
		for _, c := range item.Controls {
			c.Value = value
		}
	}
	item.Value = ExtractValue(item)
}
