package domain

import "strings"

// maskDigit is the placeholder rune inside a mask pattern. Every other rune
// is a literal re-applied positionally around the typed digits.
const maskDigit = '9'

// Mask describes a numeric format pattern such as "(99) 999-9999".
type Mask struct {
	Pattern string
}

// NewMask wraps a raw pattern string. An empty pattern yields nil.
func NewMask(pattern string) *Mask {
	if pattern == "" {
		return nil
	}
	return &Mask{Pattern: pattern}
}

// MaxLen is the formatted length constraint implied by the pattern.
func (m *Mask) MaxLen() int {
	return len([]rune(m.Pattern))
}

// MaxDigits is how many digits the pattern can hold.
func (m *Mask) MaxDigits() int {
	n := 0
	for _, r := range m.Pattern {
		if r == maskDigit {
			n++
		}
	}
	return n
}

// Strip reduces arbitrary typed text to its raw digit value, truncated to
// the pattern's capacity.
func (m *Mask) Strip(typed string) string {
	var b strings.Builder
	max := m.MaxDigits()
	for _, r := range typed {
		if r >= '0' && r <= '9' && b.Len() < max {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Apply formats a raw digit string by re-applying the pattern's literal
// characters positionally. Literals past the last typed digit are omitted.
func (m *Mask) Apply(raw string) string {
	digits := []rune(raw)
	var b strings.Builder
	var pending strings.Builder
	i := 0
	for _, r := range m.Pattern {
		if r == maskDigit {
			if i >= len(digits) {
				break
			}
			b.WriteString(pending.String())
			pending.Reset()
			b.WriteRune(digits[i])
			i++
			continue
		}
		pending.WriteRune(r)
	}
	return b.String()
}

// Format masks freshly typed text and recomputes the cursor position so the
// caret stays after the digit it followed before formatting.
func (m *Mask) Format(typed string, cursor int) (string, int) {
	runes := []rune(typed)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	before := 0
	for _, r := range runes[:cursor] {
		if r >= '0' && r <= '9' {
			before++
		}
	}

	out := m.Apply(m.Strip(typed))
	seen := 0
	pos := 0
	for i, r := range []rune(out) {
		if r >= '0' && r <= '9' {
			seen++
		}
		if seen == before {
			pos = i + 1
			break
		}
	}
	if before == 0 {
		pos = 0
	} else if seen < before {
		pos = len([]rune(out))
	}
	return out, pos
}
