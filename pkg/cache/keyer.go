package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys from content hashes and the options that affect
// the cached value. Two calls with equal inputs must return equal keys.
type Keyer interface {
	// LayoutKey keys a layout result computed from a token list.
	LayoutKey(tokensHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact computed from a layout result.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout result.
type LayoutKeyOpts struct {
	Strategy string  `json:"strategy"`
	Measurer string  `json:"measurer"`
	Family   string  `json:"family"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Padding  float64 `json:"padding,omitempty"`
	Shuffle  bool    `json:"shuffle,omitempty"`
	Seed     uint64  `json:"seed,omitempty"`

	// Tuning is a hash of the strategy and size-scale settings.
	Tuning string `json:"tuning,omitempty"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Family     string  `json:"family,omitempty"`
	Rotate     float64 `json:"rotate,omitempty"`
	Zoom       float64 `json:"zoom,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Boxes      bool    `json:"boxes,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
	Background string  `json:"background,omitempty"`
	Foreground string  `json:"foreground,omitempty"`
}

// DefaultKeyer produces keys of the form kind:sha256(parts).
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(tokensHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", tokensHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}

// Hash returns the hex SHA-256 of data. The pipeline hashes normalized token
// lists and layout documents with it before asking a Keyer for a key.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns kind:sha256(json(parts)). Marshalling cannot fail for the
// string and option-struct parts keyers pass in.
func hashKey(kind string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return kind + ":" + Hash(data)
}
