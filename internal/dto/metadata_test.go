package dto

import "testing"

func TestDecodeInputMeta(t *testing.T) {
	meta, err := DecodeInputMeta(map[string]any{
		"mask":        "(99) 99999-9999",
		"placeholder": "phone",
		"custom-key":  "ignored but tolerated",
	})
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if meta.Mask != "(99) 99999-9999" {
		t.Errorf("Mask = %q", meta.Mask)
	}
	if meta.Placeholder != "phone" {
		t.Errorf("Placeholder = %q", meta.Placeholder)
	}
}

func TestDecodeInputMeta_Nil(t *testing.T) {
	meta, err := DecodeInputMeta(nil)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if meta.Mask != "" {
		t.Errorf("Expected zero value, got %+v", meta)
	}
}

func TestDecodeInputMeta_WrongType(t *testing.T) {
	if _, err := DecodeInputMeta(map[string]any{"mask": []int{1, 2}}); err == nil {
		t.Error("Expected decode error for non-string mask")
	}
}
