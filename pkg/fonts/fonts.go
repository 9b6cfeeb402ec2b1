// Package fonts provides the embedded font files used for measuring and
// rendering word clouds.
//
// The fonts are the Go font family shipped with golang.org/x/image, so every
// build has the same metrics regardless of what is installed on the host.
package fonts

import (
	"encoding/base64"
	"slices"
	"strings"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Family names understood by [TTF].
const (
	FamilyRegular = "Go"
	FamilyBold    = "Go Bold"
	FamilyMono    = "Go Mono"
)

// DefaultFamily is used when a caller asks for an unknown family.
const DefaultFamily = FamilyBold

// FallbackFontFamily is the CSS font-family list written into SVG output.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Helvetica, Arial, sans-serif`

var ttfs = map[string][]byte{
	FamilyRegular: goregular.TTF,
	FamilyBold:    gobold.TTF,
	FamilyMono:    gomono.TTF,
}

// Families returns the embedded family names in sorted order.
func Families() []string {
	names := make([]string, 0, len(ttfs))
	for name := range ttfs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve maps a family name to an embedded family, case-insensitively.
// Unknown and empty names resolve to [DefaultFamily].
func Resolve(family string) string {
	for name := range ttfs {
		if strings.EqualFold(name, strings.TrimSpace(family)) {
			return name
		}
	}
	return DefaultFamily
}

// TTF returns the TrueType data for family (see [Resolve]).
func TTF(family string) []byte {
	return ttfs[Resolve(family)]
}

// Cache for base64-encoded fonts (computed once per family on first access).
var (
	b64Mu sync.Mutex
	b64   = map[string]string{}
)

// TTFBase64 returns the TrueType data for family as a base64 string, suitable
// for an SVG @font-face data URL. The result is cached.
func TTFBase64(family string) string {
	name := Resolve(family)
	b64Mu.Lock()
	defer b64Mu.Unlock()
	if s, ok := b64[name]; ok {
		return s
	}
	s := base64.StdEncoding.EncodeToString(ttfs[name])
	b64[name] = s
	return s
}
