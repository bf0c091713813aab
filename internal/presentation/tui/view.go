package tui

import (
	"fmt"
	"strings"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// FieldMarkdown builds the markdown view for the current field and its
// inputs. The card item may be nil when rendering outside a card context.
func FieldMarkdown(card, field *domain.Item, inputs []*domain.Item) string {
	var sb strings.Builder

	if card != nil && card.Title != "" {
		sb.WriteString(fmt.Sprintf("### %s\n\n", card.Title))
	}
	if field.Title != "" {
		sb.WriteString(fmt.Sprintf("## %s\n\n", field.Title))
	}
	if f, ok := field.Node.(*schema.Field); ok && f.Prompt != "" {
		sb.WriteString(f.Prompt + "\n\n")
	}

	for _, in := range inputs {
		for _, c := range in.Controls {
			sb.WriteString(controlLine(c))
		}
	}

	return sb.String()
}

func controlLine(c *domain.Control) string {
	switch c.Kind {
	case domain.ControlRadio, domain.ControlCheckbox:
		marker := "[ ]"
		if c.Checked {
			marker = "[x]"
		}
		return fmt.Sprintf("- %s %s\n", marker, c.Option)
	case domain.ControlSelect:
		value := c.Value
		if value == "" {
			value = "_(none)_"
		}
		return fmt.Sprintf("- `%s`: %s (options: %s)\n", c.Name, value, strings.Join(c.Options, ", "))
	default:
		// Masked controls already hold the formatted value.
		value := c.Value
		if value == "" {
			value = "_(empty)_"
		}
		required := ""
		if c.Required {
			required = " *"
		}
		return fmt.Sprintf("- `%s`%s: %s\n", c.Name, required, value)
	}
}

// StatusLine summarizes position and progress for the prompt footer.
func StatusLine(state *domain.FormState) string {
	var parts []string
	for _, level := range []domain.Level{domain.LevelCard, domain.LevelField} {
		ls, ok := state.Levels[level]
		if !ok || ls.Total == 0 {
			continue
		}
		pos := "-"
		if ls.CurrentIndex >= 0 {
			pos = fmt.Sprintf("%d", ls.CurrentIndex+1)
		}
		parts = append(parts, fmt.Sprintf("%s %s/%d", level, pos, ls.Total))
	}
	if ls, ok := state.Levels[domain.LevelCard]; ok {
		parts = append(parts, fmt.Sprintf("%d%% complete", ls.Progress))
	}
	return strings.Join(parts, " | ")
}
