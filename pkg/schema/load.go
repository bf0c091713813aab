package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// wrapper matches the top-level `form:` key of a definition file.
type wrapper struct {
	Form *Form `yaml:"form"`
}

// Parse decodes a YAML form definition. Definitions may either nest the
// form under a top-level `form:` key or start directly with the form fields.
func Parse(data []byte) (*Form, error) {
	var w wrapper
	if err := yaml.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}
	if w.Form != nil {
		return w.Form, nil
	}

	var f Form
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}
	return &f, nil
}

// Load reads and parses a definition file.
func Load(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form definition %s: %w", path, err)
	}
	return Parse(data)
}
