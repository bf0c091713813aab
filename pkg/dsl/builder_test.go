package dsl

import (
	"testing"
)

func TestBuilder_SimpleForm(t *testing.T) {
	b := New("signup").Title("Sign Up").Behavior("field")

	set := b.Card("account").Title("Your Account").Set("credentials")
	set.Field("email").
		Title("Email").
		Text("email").Required().Pattern(`^\S+@\S+$`)
	set.Field("phone").
		Title("Phone").
		Text("phone").Mask("(99) 99999-9999")

	form, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if form.ID != "signup" {
		t.Errorf("Expected form ID 'signup', got %q", form.ID)
	}
	if form.Behavior != "field" {
		t.Errorf("Expected behavior 'field', got %q", form.Behavior)
	}
	if len(form.Cards) != 1 {
		t.Fatalf("Expected 1 card, got %d", len(form.Cards))
	}

	fields := form.Cards[0].Sets[0].Fields
	if len(fields) != 2 {
		t.Fatalf("Expected 2 fields, got %d", len(fields))
	}

	email := fields[0].Inputs[0]
	if !email.Required {
		t.Error("Expected email input to be required")
	}
	if email.Pattern == "" {
		t.Error("Expected email input to carry a pattern")
	}

	phone := fields[1].Inputs[0]
	if phone.Meta["mask"] != "(99) 99999-9999" {
		t.Errorf("Expected phone mask metadata, got %v", phone.Meta)
	}
}

func TestBuilder_ChoiceGroups(t *testing.T) {
	b := New("survey")
	set := b.Card("main").Set("questions")

	set.Field("plan").
		Radio("plan", "free").
		Radio("plan", "pro").
		Radio("plan", "enterprise")
	set.Field("extras").
		Checkbox("extras", "support").
		Checkbox("extras", "backups")

	form, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	plan := form.Cards[0].Sets[0].Fields[0]
	if len(plan.Inputs) != 3 {
		t.Fatalf("Expected 3 radio declarations, got %d", len(plan.Inputs))
	}
	for _, in := range plan.Inputs {
		if in.Name != "plan" || in.Kind != "radio" {
			t.Errorf("Unexpected radio declaration: %+v", in)
		}
	}

	extras := form.Cards[0].Sets[0].Fields[1]
	for _, in := range extras.Inputs {
		if !in.Multiple {
			t.Errorf("Expected checkbox %q to be multiple", in.Option)
		}
	}
}

func TestBuilder_ConditionalLevels(t *testing.T) {
	b := New("wizard")

	card := b.Card("details").ShowIf("{plan}=pro")
	group := card.Set("billing").Group("payment").HideIf("{plan}=free")
	group.Field("cc").Title("Card Number").Text("cc").Required()

	form, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if form.Cards[0].ShowIf != "{plan}=pro" {
		t.Errorf("Expected card showif, got %q", form.Cards[0].ShowIf)
	}
	if form.Cards[0].Sets[0].Groups[0].HideIf != "{plan}=free" {
		t.Errorf("Expected group hideif, got %q", form.Cards[0].Sets[0].Groups[0].HideIf)
	}
}

func TestBuilder_ReusesExistingLevels(t *testing.T) {
	b := New("form")

	first := b.Card("c1")
	second := b.Card("c1")
	if first != second {
		t.Error("Expected Card() to return the existing builder for a known ID")
	}
	if s1, s2 := first.Set("s1"), second.Set("s1"); s1 != s2 {
		t.Error("Expected Set() to return the existing builder for a known ID")
	}
}

func TestBuilder_InvalidDefinition(t *testing.T) {
	b := New("broken")
	b.Card("empty")

	if _, err := b.Build(); err == nil {
		t.Error("Expected validation error for card without sets")
	}
}
