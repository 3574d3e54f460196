package analysis

import (
	"strings"

	"github.com/Aditya-Prakash14/AI-Interview-API/internal/model"
)

// Normalizer validates and cleans raw response text before analysis.
// It is a pure function of its input: no I/O, no failure beyond validation.
type Normalizer struct {
	MinLength int
	MaxLength int
}

// NewNormalizer creates a normalizer with the given length bounds.
// A MinLength of 0 disables the minimum check (used for transcripts, where
// a very short but valid answer must not be rejected after the fact).
func NewNormalizer(minLength, maxLength int) *Normalizer {
	return &Normalizer{MinLength: minLength, MaxLength: maxLength}
}

// Normalize validates text and returns the cleaned processed form.
func (n *Normalizer) Normalize(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", model.NewValidationError("text response cannot be empty")
	}

	length := len(strings.TrimSpace(text))
	if n.MinLength > 0 && length < n.MinLength {
		return "", model.NewValidationError("text response too short. Minimum length: %d characters", n.MinLength)
	}
	if n.MaxLength > 0 && length > n.MaxLength {
		return "", model.NewValidationError("text response too long. Maximum length: %d characters", n.MaxLength)
	}

	return Clean(text), nil
}

// Clean collapses whitespace and strips control characters except
// newline and tab.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	collapsed := strings.Join(strings.Fields(text), " ")

	var sb strings.Builder
	sb.Grow(len(collapsed))
	for _, r := range collapsed {
		if r >= 32 || r == '\n' || r == '\t' {
			sb.WriteRune(r)
		}
	}

	return strings.TrimSpace(sb.String())
}
