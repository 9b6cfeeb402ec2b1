// Package render names the output formats of a word cloud and their media
// types. The renderers themselves live in the [sink] subpackage.
//
// [sink]: github.com/matzehuels/techcloud/pkg/render/sink
package render

import (
	"fmt"
	"slices"
	"strings"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatTXT  = "txt"
)

// Formats lists the supported formats.
var Formats = []string{FormatSVG, FormatPNG, FormatPDF, FormatJSON, FormatTXT}

var contentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatTXT:  "text/plain; charset=utf-8",
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if _, ok := contentTypes[format]; !ok {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ParseFormats splits a comma-separated list like "svg,png", lowercases and
// deduplicates it, and validates every entry.
func ParseFormats(s string) ([]string, error) {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

// ContentType returns the media type for format, or application/octet-stream.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	return "." + format
}
