package dto

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// InputMeta represents the free-form metadata map attached to an input
// definition. It uses "mapstructure" tags so definitions can carry extra
// keys without breaking decoding.
type InputMeta struct {
	// Mask is a numeric format pattern, e.g. "(99) 999-9999".
	Mask string `json:"mask" mapstructure:"mask"`

	Placeholder string `json:"placeholder" mapstructure:"placeholder"`
	Hint        string `json:"hint" mapstructure:"hint"`
}

// DecodeInputMeta decodes a raw metadata map. A nil map yields a zero value.
func DecodeInputMeta(raw map[string]any) (*InputMeta, error) {
	meta := &InputMeta{}
	if len(raw) == 0 {
		return meta, nil
	}
	if err := mapstructure.Decode(raw, meta); err != nil {
		return nil, fmt.Errorf("failed to decode input metadata: %w", err)
	}
	return meta, nil
}
