package formflow_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/formflow/formflow"
	"github.com/formflow/formflow/pkg/domain"
	"github.com/formflow/formflow/pkg/dsl"
	"github.com/formflow/formflow/pkg/schema"
)

func surveyForm(t *testing.T) *schema.Form {
	t.Helper()
	b := dsl.New("survey").Title("Survey").Behavior("field")
	set := b.Card("main").Title("Main").Set("questions")
	set.Field("name").Title("Name").Text("name").Required()
	set.Field("email").Title("Email").Text("email").Pattern(`^\S+@\S+$`)
	set.Field("phone").Title("Phone").Text("phone").Mask("(99) 99999-9999")
	form, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return form
}

func TestFacade_Integration(t *testing.T) {
	engine, err := formflow.New(surveyForm(t))
	if err != nil {
		t.Fatalf("Failed to initialize engine: %v", err)
	}
	defer engine.Destroy()

	ctx := context.Background()
	if err := engine.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	field, ok := engine.Current(domain.LevelField)
	if !ok || field.ID != "name" {
		t.Fatalf("Expected name current after start, got %v", field)
	}

	// The forward guard holds while the required field is empty.
	moved, err := engine.Next(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if moved {
		t.Fatal("Expected denied move with required field empty")
	}

	if err := engine.SetInput(ctx, "name", "Alice"); err != nil {
		t.Fatal(err)
	}
	moved, err = engine.Next(ctx)
	if err != nil || !moved {
		t.Fatalf("Expected move after answering, got %v %v", moved, err)
	}

	// A pattern violation blocks the next move the same way.
	if err := engine.SetInput(ctx, "email", "nonsense"); err != nil {
		t.Fatal(err)
	}
	if moved, _ := engine.Next(ctx); moved {
		t.Fatal("Expected denied move on pattern violation")
	}
	if err := engine.SetInput(ctx, "email", "alice@example.com"); err != nil {
		t.Fatal(err)
	}
	if moved, _ := engine.Next(ctx); !moved {
		t.Fatal("Expected move after fixing the answer")
	}

	// Masked answers publish raw digits.
	if err := engine.SetInput(ctx, "phone", "(11) 98765-4321"); err != nil {
		t.Fatal(err)
	}
	state := engine.State()
	if state.Values["phone"] != "11987654321" {
		t.Errorf("Expected raw digits, got %q", state.Values["phone"])
	}
	if state.Levels[domain.LevelField].Progress != 100 {
		t.Errorf("Expected 100%% field progress, got %d", state.Levels[domain.LevelField].Progress)
	}

	// Prev walks back without a guard.
	if moved, _ := engine.Prev(ctx); !moved {
		t.Error("Expected prev to move")
	}
	if field, _ := engine.Current(domain.LevelField); field.ID != "email" {
		t.Errorf("Expected email current after prev, got %s", field.ID)
	}
}

func TestFacade_LoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	content := []byte(`
form:
  id: loaded
  behavior: set
  cards:
    - id: only
      sets:
        - id: s0
          fields:
            - id: f0
              inputs:
                - name: f0
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	engine, err := formflow.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	defer engine.Destroy()

	if engine.Form().ID != "loaded" {
		t.Errorf("Expected form id loaded, got %q", engine.Form().ID)
	}
	if engine.Behavior() != domain.BySet {
		t.Errorf("Expected set behavior, got %q", engine.Behavior())
	}

	if _, err := formflow.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing definition")
	}
}

func TestFacade_BehaviorOverride(t *testing.T) {
	engine, err := formflow.New(surveyForm(t), formflow.WithBehavior(domain.ByCard))
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Destroy()

	if engine.Behavior() != domain.ByCard {
		t.Errorf("Expected card behavior, got %q", engine.Behavior())
	}
}

func TestFacade_Inputs(t *testing.T) {
	engine, err := formflow.New(surveyForm(t))
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Destroy()

	inputs := engine.Inputs("name")
	if len(inputs) != 1 || inputs[0].ID != "name" {
		t.Errorf("Expected the name input, got %v", inputs)
	}
	if engine.Inputs("nope") != nil {
		t.Error("Expected no inputs for unknown field")
	}
}

func TestFacade_ActiveItems(t *testing.T) {
	engine, err := formflow.New(surveyForm(t))
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Destroy()

	cards := engine.ActiveItems(domain.LevelCard)
	if len(cards) != 1 || cards[0].ID != "main" {
		t.Errorf("Expected the main card active, got %v", cards)
	}
}
