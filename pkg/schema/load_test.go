package schema

import (
	"os"
	"path/filepath"
	"testing"
)

const wrappedYAML = `
form:
  id: signup
  title: Sign Up
  behavior: set
  cards:
    - id: account
      sets:
        - id: credentials
          fields:
            - id: email
              inputs:
                - name: email
                  kind: text
                  required: true
                  pattern: "^\\S+@\\S+$"
            - id: phone
              inputs:
                - name: phone
                  meta:
                    mask: "(99) 99999-9999"
                    placeholder: "phone number"
`

const bareYAML = `
id: quick
cards:
  - id: only
    sets:
      - id: s
        fields:
          - id: f
            inputs:
              - name: f
`

func TestParse_WrappedForm(t *testing.T) {
	form, err := Parse([]byte(wrappedYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if form.ID != "signup" || form.Behavior != "set" {
		t.Errorf("Unexpected form header: %+v", form)
	}
	if len(form.Cards) != 1 || len(form.Cards[0].Sets[0].Fields) != 2 {
		t.Fatalf("Unexpected structure: %+v", form)
	}

	email := form.Cards[0].Sets[0].Fields[0].Inputs[0]
	if !email.Required || email.Pattern == "" {
		t.Errorf("Input constraints not decoded: %+v", email)
	}
	phone := form.Cards[0].Sets[0].Fields[1].Inputs[0]
	if phone.Meta["mask"] != "(99) 99999-9999" {
		t.Errorf("Meta not decoded: %+v", phone.Meta)
	}
}

func TestParse_BareForm(t *testing.T) {
	form, err := Parse([]byte(bareYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if form.ID != "quick" {
		t.Errorf("Expected id quick, got %q", form.ID)
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse([]byte("{not yaml")); err == nil {
		t.Error("Expected parse error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "form.yaml")
	if err := os.WriteFile(path, []byte(wrappedYAML), 0644); err != nil {
		t.Fatal(err)
	}

	form, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if form.ID != "signup" {
		t.Errorf("Expected id signup, got %q", form.ID)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
