package condition

import (
	"testing"

	"github.com/formflow/formflow/pkg/schema"
)

func conditionalForm() *schema.Form {
	return &schema.Form{
		ID:       "wizard",
		Behavior: "field",
		Cards: []*schema.Card{
			{
				ID:     "details",
				ShowIf: "{plan} != free",
				Sets: []*schema.Set{
					{
						ID: "billing",
						Groups: []*schema.Group{
							{
								ID:     "payment",
								HideIf: "{plan} = trial",
								Fields: []*schema.Field{
									{
										ID:     "cc",
										ShowIf: "{plan} = pro && {country} = br",
										Inputs: []*schema.Input{{Name: "cc", Kind: "text"}},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestManager_DiscoverAndEvaluate(t *testing.T) {
	form := conditionalForm()
	m := New(WithLogger(testLogger()))
	m.Discover(form)

	if m.Len() != 3 {
		t.Fatalf("Expected 3 conditional elements, got %d", m.Len())
	}

	values := map[string]string{"plan": "pro", "country": "br"}
	m.SetLookup(lookupFrom(values))

	card := form.Cards[0]
	group := card.Sets[0].Groups[0]
	field := group.Fields[0]

	if !m.Evaluate(card) {
		t.Error("Card should be included for plan=pro")
	}
	if !m.Evaluate(group) {
		t.Error("Group should be included while plan != trial")
	}
	if !m.Evaluate(field) {
		t.Error("Field should be included for plan=pro && country=br")
	}

	values["plan"] = "trial"
	if m.Evaluate(group) {
		t.Error("Group should be hidden for plan=trial")
	}
	if m.Evaluate(field) {
		t.Error("Field showif no longer holds for plan=trial")
	}

	values["plan"] = "free"
	if m.Evaluate(card) {
		t.Error("Card should be excluded for plan=free")
	}
}

func TestManager_UnregisteredNodeIncluded(t *testing.T) {
	form := conditionalForm()
	m := New()
	m.Discover(form)

	set := form.Cards[0].Sets[0]
	if !m.Evaluate(set) {
		t.Error("Node without expressions must always be included")
	}
}

func TestManager_DependentsOf(t *testing.T) {
	form := conditionalForm()
	m := New()
	m.Discover(form)

	plan := m.DependentsOf("plan")
	if len(plan) != 3 {
		t.Errorf("Expected 3 dependents of plan, got %d", len(plan))
	}
	country := m.DependentsOf("country")
	if len(country) != 1 {
		t.Errorf("Expected 1 dependent of country, got %d", len(country))
	}
	if deps := m.DependentsOf("unrelated"); len(deps) != 0 {
		t.Errorf("Expected no dependents for unrelated field, got %d", len(deps))
	}
}

func TestManager_ShowAndHideCombination(t *testing.T) {
	form := &schema.Form{
		Cards: []*schema.Card{
			{
				ID:     "c",
				ShowIf: "{a}=1",
				HideIf: "{b}=1",
				Sets:   []*schema.Set{{ID: "s", Fields: []*schema.Field{{ID: "f", Inputs: []*schema.Input{{Name: "x"}}}}}},
			},
		},
	}
	m := New()
	m.Discover(form)
	card := form.Cards[0]

	values := map[string]string{"a": "1", "b": "0"}
	m.SetLookup(lookupFrom(values))
	if !m.Evaluate(card) {
		t.Error("show true + hide false must include")
	}

	values["b"] = "1"
	if m.Evaluate(card) {
		t.Error("hide condition must win over show condition")
	}
}
