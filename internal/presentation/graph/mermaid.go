package graph

import (
	"fmt"
	"strings"

	"github.com/formflow/formflow/pkg/schema"
)

// Overlay contains dynamic state data to visualize on the graph.
type Overlay struct {
	VisitedIDs []string
	CurrentID  string
}

// GenerateMermaid produces a Mermaid flowchart of the form hierarchy.
// Cards become subgraphs; conditional nodes are drawn with dashed edges
// labeled by their expression.
func GenerateMermaid(form *schema.Form, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	formID := sanitizeMermaidID(form.ID)
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", formID, form.ID))

	for ci, card := range form.Cards {
		cardID := nodeID("card", card.ID, ci)
		sb.WriteString(fmt.Sprintf("    subgraph %s[\"%s\"]\n", cardID, title(card.Title, card.ID)))

		for si, set := range card.Sets {
			setID := nodeID("set", set.ID, si)
			sb.WriteString(fmt.Sprintf("        %s[\"%s\"]\n", setID, title(set.Title, set.ID)))

			for gi, group := range set.Groups {
				groupID := nodeID("group", group.ID, gi)
				sb.WriteString(fmt.Sprintf("        %s[\"%s\"]\n", groupID, title(group.Title, group.ID)))
				sb.WriteString(edge(setID, groupID, group.ShowIf))
				for fi, field := range group.Fields {
					fieldID := nodeID("field", field.ID, fi)
					sb.WriteString(fmt.Sprintf("        %s[/\"%s\"/]\n", fieldID, title(field.Title, field.ID)))
					sb.WriteString(edge(groupID, fieldID, field.ShowIf))
				}
			}
			for fi, field := range set.Fields {
				fieldID := nodeID("field", field.ID, fi)
				sb.WriteString(fmt.Sprintf("        %s[/\"%s\"/]\n", fieldID, title(field.Title, field.ID)))
				sb.WriteString(edge(setID, fieldID, field.ShowIf))
			}
		}
		sb.WriteString("    end\n")
		sb.WriteString(edge(formID, cardID, card.ShowIf))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, id := range overlay.VisitedIDs {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !visitedSet[safeID] {
				visitedSet[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s visited;\n", safeID))
			}
		}

		if overlay.CurrentID != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentID)))
		}
	}

	return sb.String()
}

func edge(from, to, showIf string) string {
	if showIf != "" {
		safeCondition := strings.ReplaceAll(showIf, "\"", "'")
		return fmt.Sprintf("    %s -. \"%s\" .-> %s\n", from, safeCondition, to)
	}
	return fmt.Sprintf("    %s --> %s\n", from, to)
}

func nodeID(level, id string, index int) string {
	if id == "" {
		id = fmt.Sprintf("%s-%d", level, index)
	}
	return sanitizeMermaidID(id)
}

func title(t, fallback string) string {
	if t != "" {
		return t
	}
	return fallback
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
