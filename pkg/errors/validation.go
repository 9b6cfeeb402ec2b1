package errors

import (
	"math"
	"strings"
	"unicode"
)

// Limits applied by the validators.
const (
	MaxTokenLength = 256
	MaxTokens      = 5000
	MaxRegionSize  = 20000.0
)

// ValidateTokenText rejects blank text, control characters and text longer
// than [MaxTokenLength] bytes.
func ValidateTokenText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidInput, "token text cannot be empty")
	}

	if len(text) > MaxTokenLength {
		return New(ErrCodeInvalidInput, "token text too long (max %d characters)", MaxTokenLength)
	}

	for _, r := range text {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "token text contains invalid control characters")
		}
	}

	return nil
}

// ValidateTokenCount rejects token lists larger than [MaxTokens].
func ValidateTokenCount(n int) error {
	if n > MaxTokens {
		return New(ErrCodeInvalidInput, "too many tokens: %d (max %d)", n, MaxTokens)
	}
	return nil
}

// ValidateRegion validates layout dimensions supplied by a user. Degenerate
// regions are clamped by the placers; this only rejects nonsense input.
func ValidateRegion(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidRegion, "region dimensions must be finite")
		}
		if v < 0 {
			return New(ErrCodeInvalidRegion, "region dimensions cannot be negative")
		}
		if v > MaxRegionSize {
			return New(ErrCodeInvalidRegion, "region dimension %g too large (max %g)", v, MaxRegionSize)
		}
	}
	return nil
}

// ValidateURL validates a backend connection URL. It ensures the URL uses one
// of the allowed schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
