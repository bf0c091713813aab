package hierarchy

import (
	"testing"

	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/schema"
)

// signupForm is the shared discovery fixture: two cards, a groupless set, a
// grouped set, merged choice inputs and a masked input.
func signupForm() *schema.Form {
	return &schema.Form{
		ID:       "signup",
		Title:    "Sign Up",
		Behavior: "field",
		Cards: []*schema.Card{
			{
				ID:    "account",
				Title: "Account",
				Sets: []*schema.Set{
					{
						ID: "credentials",
						Fields: []*schema.Field{
							{
								ID:     "email",
								Title:  "Email",
								Inputs: []*schema.Input{{Name: "email", Kind: "text", Required: true}},
							},
							{
								ID: "phone",
								Inputs: []*schema.Input{{
									Name: "phone",
									Kind: "text",
									Meta: map[string]any{"mask": "(99) 99999-9999"},
								}},
							},
						},
					},
					{
						ID: "preferences",
						Groups: []*schema.Group{
							{
								ID: "contact",
								Fields: []*schema.Field{
									{
										ID: "newsletter",
										Inputs: []*schema.Input{
											{Name: "newsletter", Kind: "radio", Option: "yes"},
											{Name: "newsletter", Kind: "radio", Option: "no"},
										},
									},
									{
										ID: "topics",
										Inputs: []*schema.Input{
											{Name: "topics", Kind: "checkbox", Option: "news", Multiple: true},
											{Name: "topics", Kind: "checkbox", Option: "product", Multiple: true},
										},
									},
								},
							},
						},
					},
				},
			},
			{
				Title: "Review",
				Sets: []*schema.Set{
					{
						Ref: "set:summary",
						Fields: []*schema.Field{
							{
								Title:  "Final Notes",
								Inputs: []*schema.Input{{Name: "notes", Kind: "textarea"}},
							},
						},
					},
				},
			},
		},
	}
}

func newHierarchy(t *testing.T, behavior domain.Behavior) *Hierarchy {
	t.Helper()
	h, err := New(signupForm(), behavior)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return h
}

func TestHierarchy_Discovery(t *testing.T) {
	h := newHierarchy(t, domain.ByField)

	counts := map[domain.Level]int{
		domain.LevelCard:  2,
		domain.LevelSet:   3,
		domain.LevelGroup: 1,
		domain.LevelField: 5,
		domain.LevelInput: 5, // radio/checkbox declarations merge by name
	}
	for lvl, want := range counts {
		if got := h.Manager(lvl).Store().Len(); got != want {
			t.Errorf("%s: expected %d items, got %d", lvl, want, got)
		}
	}

	// Identity resolution across the priority rule.
	if _, ok := h.Manager(domain.LevelCard).Store().ByID("review"); !ok {
		t.Error("Card without id should be identified by slugified title")
	}
	if _, ok := h.Manager(domain.LevelSet).Store().ByID("summary"); !ok {
		t.Error("Set without id or title should fall back to ref")
	}
	if _, ok := h.Manager(domain.LevelField).Store().ByID("final-notes"); !ok {
		t.Error("Field should be identified by slugified title")
	}

	// Merged choice group binds all declarations to one item.
	newsletter, ok := h.Manager(domain.LevelInput).Store().ByID("newsletter")
	if !ok {
		t.Fatal("Missing merged newsletter input")
	}
	if len(newsletter.Controls) != 2 {
		t.Errorf("Expected 2 bound controls, got %d", len(newsletter.Controls))
	}
}

func TestHierarchy_Ancestry(t *testing.T) {
	h := newHierarchy(t, domain.ByField)

	topics, ok := h.Manager(domain.LevelInput).Store().ByID("topics")
	if !ok {
		t.Fatal("Missing topics input")
	}
	checks := []struct {
		level domain.Level
		id    string
	}{
		{domain.LevelCard, "account"},
		{domain.LevelSet, "preferences"},
		{domain.LevelGroup, "contact"},
		{domain.LevelField, "topics"},
	}
	for _, c := range checks {
		ref, ok := topics.Ancestry.At(c.level)
		if !ok || ref.ID != c.id {
			t.Errorf("Ancestry at %s = %v (%v), want %s", c.level, ref, ok, c.id)
		}
	}
	if topics.Ancestry.Form != "signup" {
		t.Errorf("Expected form id in ancestry, got %q", topics.Ancestry.Form)
	}

	// Groupless branch has no group ancestor.
	email, _ := h.Manager(domain.LevelInput).Store().ByID("email")
	if _, ok := email.Ancestry.At(domain.LevelGroup); ok {
		t.Error("Groupless field input must have no group ancestor")
	}
}

func TestHierarchy_InitialActivation(t *testing.T) {
	h := newHierarchy(t, domain.ByField)

	assertActive := func(level domain.Level, id string, want bool) {
		t.Helper()
		item, ok := h.Manager(level).Store().ByID(id)
		if !ok {
			t.Fatalf("Missing %s item %s", level, id)
		}
		if item.Active != want {
			t.Errorf("%s %s: active = %v, want %v", level, id, item.Active, want)
		}
	}

	assertActive(domain.LevelCard, "account", true)
	assertActive(domain.LevelCard, "review", false)
	assertActive(domain.LevelSet, "credentials", true)
	assertActive(domain.LevelSet, "preferences", false)
	assertActive(domain.LevelField, "email", true)
	assertActive(domain.LevelField, "phone", false)
	assertActive(domain.LevelInput, "email", true)
	assertActive(domain.LevelInput, "phone", false)
}

func TestHierarchy_ActivationBySet(t *testing.T) {
	h := newHierarchy(t, domain.BySet)

	// Under set-wise movement only the card level is restricted; every
	// field of the first card's first set is active at once.
	for _, id := range []string{"email", "phone"} {
		item, _ := h.Manager(domain.LevelField).Store().ByID(id)
		if !item.Active {
			t.Errorf("Field %s should be active under set behavior", id)
		}
	}
	set, _ := h.Manager(domain.LevelSet).Store().ByID("preferences")
	if !set.Active {
		t.Error("Second set should be active under set behavior")
	}
}

func TestHierarchy_DirectChildren(t *testing.T) {
	h := newHierarchy(t, domain.ByField)

	// A groupless set's direct children are its fields.
	credentials, _ := h.Manager(domain.LevelSet).Store().ByID("credentials")
	lvl, children := h.DirectChildren(credentials)
	if lvl != domain.LevelField || len(children) != 2 {
		t.Errorf("Expected 2 field children, got %d at %s", len(children), lvl)
	}

	preferences, _ := h.Manager(domain.LevelSet).Store().ByID("preferences")
	lvl, children = h.DirectChildren(preferences)
	if lvl != domain.LevelGroup || len(children) != 1 {
		t.Errorf("Expected 1 group child, got %d at %s", len(children), lvl)
	}

	email, _ := h.Manager(domain.LevelInput).Store().ByID("email")
	if _, children := h.DirectChildren(email); children != nil {
		t.Error("Input items have no children")
	}
}

func TestHierarchy_AggregationCascade(t *testing.T) {
	h := newHierarchy(t, domain.ByField)

	email, _ := h.Manager(domain.LevelInput).Store().ByID("email")
	if email.Completed {
		t.Fatal("Required input must start incomplete")
	}

	ApplyValue(email, "dev@example.com")
	h.RebuildBranch(email)

	if !email.Completed {
		t.Error("Input with value should be completed")
	}
	field, _ := h.Manager(domain.LevelField).Store().ByID("email")
	if !field.Completed {
		t.Error("Field should aggregate its single completed input")
	}
	set, _ := h.Manager(domain.LevelSet).Store().ByID("credentials")
	if set.Progress != 50 {
		t.Errorf("Set progress should be 50 with one of two fields done, got %d", set.Progress)
	}
	card, _ := h.Manager(domain.LevelCard).Store().ByID("account")
	if card.Completed {
		t.Error("Card must not be complete while other descendants are open")
	}
}

func TestHierarchy_SnapshotValues(t *testing.T) {
	h := newHierarchy(t, domain.ByField)

	phone, _ := h.Manager(domain.LevelInput).Store().ByID("phone")
	ApplyValue(phone, "(11) 98765-4321")
	h.RebuildBranch(phone)

	state := h.Snapshot()
	if state.FormID != "signup" {
		t.Errorf("Expected form id signup, got %q", state.FormID)
	}
	if len(state.Values) != 5 {
		t.Errorf("Expected one value slot per input, got %d", len(state.Values))
	}
	// Masked inputs publish the raw digits, not the formatted text.
	if state.Values["phone"] != "11987654321" {
		t.Errorf("Expected raw digits, got %q", state.Values["phone"])
	}
	if state.Levels[domain.LevelCard].Total != 2 {
		t.Errorf("Expected 2 cards in level state, got %d", state.Levels[domain.LevelCard].Total)
	}
	if state.Levels[domain.LevelCard].CurrentIndex != -1 {
		t.Error("Nothing is current before the first move")
	}
}

func TestHierarchy_Clear(t *testing.T) {
	h := newHierarchy(t, domain.ByField)
	h.Clear()
	for _, lvl := range domain.Levels {
		if h.Manager(lvl).Store().Len() != 0 {
			t.Errorf("%s store should be empty after Clear", lvl)
		}
		if h.Manager(lvl).NavigationOrder() != nil {
			t.Errorf("%s navigation order should be dropped after Clear", lvl)
		}
	}
}
