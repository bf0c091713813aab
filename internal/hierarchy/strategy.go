package hierarchy

import (
	"fmt"
	"strings"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// ConditionEvaluator decides, per definition node, whether the node is
// included under the current field values. Supplied by the condition
// manager; a node with no registered expression is always included.
type ConditionEvaluator interface {
	Evaluate(node any) bool
}

// includeAll is the evaluator used when no condition manager is wired.
type includeAll struct{}

func (includeAll) Evaluate(any) bool { return true }

// Discovered is one raw node found by a level strategy, in document order.
type Discovered struct {
	Node       any // the definition node this item will reference
	ParentNode any // the definition node of the direct parent, nil for cards

	// Raw identity attributes, resolved by the manager per the priority
	// rule: explicit id, then title text, then combined type:id ref, then
	// a generated fallback.
	ID    string
	Title string
	Ref   string
}

// Strategy supplies the level-specific discovery and aggregation rules to
// the generic Manager. Implementations are small, stateless and
// independently testable.
type Strategy interface {
	Level() domain.Level

	// Discover walks the form definition and returns this level's nodes
	// in document order.
	Discover(form *schema.Form) ([]Discovered, error)

	// Build recomputes the item's derived validity/completion/progress by
	// aggregating the relevant child collection. Inclusion is already set
	// by the manager before Build runs. Build must be idempotent and
	// side-effect-free beyond its own item.
	Build(item *domain.Item, h *Hierarchy)
}

// resolveIdentity applies the identity priority rule and returns the item's
// id and display title.
func resolveIdentity(level domain.Level, index int, id, title, ref string) (string, string) {
	resolved := id
	if resolved == "" && title != "" {
		resolved = slugify(title)
	}
	if resolved == "" && ref != "" {
		resolved = parseRef(level, ref)
	}
	if resolved == "" {
		resolved = fmt.Sprintf("%s-%d", level, index)
	}
	if title == "" {
		title = resolved
	}
	return resolved, title
}

// parseRef extracts the id from the combined "type:id" syntax. A ref whose
// type prefix does not match the level is used verbatim.
func parseRef(level domain.Level, ref string) string {
	prefix, id, found := strings.Cut(ref, ":")
	if !found {
		return ref
	}
	if prefix != string(level) {
		return ref
	}
	return id
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteRune('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
