package schema

import (
	"fmt"

	"github.com/formflow/formflow/pkg/domain"
)

// Validate checks the structural soundness of a form definition. It collects
// every failure instead of stopping at the first, so a broken definition is
// reported whole.
func Validate(f *Form) error {
	var errs []error

	if f == nil {
		return &ValidationError{Reason: "empty form definition"}
	}
	if len(f.Cards) == 0 {
		errs = append(errs, &ValidationError{Reason: "form has no cards"})
	}
	if _, err := domain.ParseBehavior(f.Behavior); err != nil {
		errs = append(errs, &ValidationError{Path: "behavior", Reason: err.Error()})
	}

	for ci, card := range f.Cards {
		cp := fmt.Sprintf("cards[%d]", ci)
		if len(card.Sets) == 0 {
			errs = append(errs, &ValidationError{Path: cp, Reason: "card has no sets"})
		}
		for si, set := range card.Sets {
			sp := fmt.Sprintf("%s.sets[%d]", cp, si)
			if len(set.Groups) == 0 && len(set.Fields) == 0 {
				errs = append(errs, &ValidationError{Path: sp, Reason: "set has neither groups nor fields"})
			}
			if len(set.Groups) > 0 && len(set.Fields) > 0 {
				errs = append(errs, &ValidationError{Path: sp, Reason: "set mixes groups and direct fields"})
			}
			for gi, group := range set.Groups {
				gp := fmt.Sprintf("%s.groups[%d]", sp, gi)
				if len(group.Fields) == 0 {
					errs = append(errs, &ValidationError{Path: gp, Reason: "group has no fields"})
				}
				for fi, field := range group.Fields {
					errs = append(errs, validateField(fmt.Sprintf("%s.fields[%d]", gp, fi), field)...)
				}
			}
			for fi, field := range set.Fields {
				errs = append(errs, validateField(fmt.Sprintf("%s.fields[%d]", sp, fi), field)...)
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func validateField(path string, f *Field) []error {
	var errs []error
	if len(f.Inputs) == 0 {
		errs = append(errs, &ValidationError{Path: path, Reason: "field has no inputs"})
	}
	for ii, in := range f.Inputs {
		ip := fmt.Sprintf("%s.inputs[%d]", path, ii)
		if in.Name == "" {
			errs = append(errs, &ValidationError{Path: ip, Reason: "input has no name"})
		}
		switch in.Kind {
		case "", "text", "textarea", "number", "select":
		case "radio", "checkbox":
			if in.Option == "" {
				errs = append(errs, &ValidationError{Path: ip, Reason: fmt.Sprintf("%s input has no option value", in.Kind)})
			}
		default:
			errs = append(errs, &ValidationError{Path: ip, Reason: fmt.Sprintf("unknown input kind %q", in.Kind)})
		}
	}
	return errs
}
