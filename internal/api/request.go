package api

import (
	"bytes"
	"encoding/json"
	"io"
	"maps"
	"net/http"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/errors"
	"github.com/matzehuels/techcloud/pkg/pipeline"
	"github.com/matzehuels/techcloud/pkg/source"
)

// Request is the body of the layout and render endpoints. Zero fields keep
// the server defaults.
type Request struct {
	// Tokens is a tech-bits array: {"text", "size"} objects or plain strings.
	Tokens json.RawMessage `json:"tokens"`

	Strategy string             `json:"strategy,omitempty"`
	Measurer string             `json:"measurer,omitempty"`
	Family   string             `json:"family,omitempty"`
	Width    float64            `json:"width,omitempty"`
	Height   float64            `json:"height,omitempty"`
	Padding  float64            `json:"padding,omitempty"`
	Shuffle  bool               `json:"shuffle,omitempty"`
	Seed     *uint64            `json:"seed,omitempty"`
	Sizes    map[string]float64 `json:"sizes,omitempty"`

	Rotate     float64 `json:"rotate,omitempty"`
	Zoom       float64 `json:"zoom,omitempty"`
	Boxes      bool    `json:"boxes,omitempty"`
	EmbedFont  bool    `json:"embed_font,omitempty"`
	Background string  `json:"background,omitempty"`
	Foreground string  `json:"foreground,omitempty"`
}

// decodeRequest reads a JSON request body of at most limit bytes.
func decodeRequest(w http.ResponseWriter, r *http.Request, limit int64) (Request, error) {
	var req Request
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return req, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return req, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	return req, nil
}

// tokens parses and validates the token list. A missing list is empty.
func (req Request) tokens() ([]cloud.Token, error) {
	if len(bytes.TrimSpace(req.Tokens)) == 0 || bytes.Equal(bytes.TrimSpace(req.Tokens), []byte("null")) {
		return nil, nil
	}
	tokens, err := source.ReadJSON(bytes.NewReader(req.Tokens))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "tokens")
	}
	if err := source.Validate(tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// options overlays the request on the server defaults.
func (req Request) options(defaults pipeline.Options) pipeline.Options {
	opts := defaults
	if req.Strategy != "" {
		opts.Strategy = req.Strategy
	}
	if req.Measurer != "" {
		opts.Measurer = req.Measurer
	}
	if req.Family != "" {
		opts.Family = req.Family
	}
	if req.Width != 0 {
		opts.Width = req.Width
	}
	if req.Height != 0 {
		opts.Height = req.Height
	}
	if req.Padding != 0 {
		opts.Padding = req.Padding
	}
	if req.Shuffle {
		opts.Shuffle = true
	}
	if req.Seed != nil {
		opts.Shuffle, opts.Seed = true, *req.Seed
	}
	if len(req.Sizes) > 0 {
		sizes := maps.Clone(defaults.Sizes)
		if sizes == nil {
			sizes = make(map[string]float64, len(req.Sizes))
		}
		maps.Copy(sizes, req.Sizes)
		opts.Sizes = sizes
	}
	if req.Rotate != 0 {
		opts.Rotate = req.Rotate
	}
	if req.Zoom != 0 {
		opts.Zoom = req.Zoom
	}
	if req.Boxes {
		opts.Boxes = true
	}
	if req.EmbedFont {
		opts.EmbedFont = true
	}
	if req.Background != "" {
		opts.Background = req.Background
	}
	if req.Foreground != "" {
		opts.Foreground = req.Foreground
	}
	return opts
}
