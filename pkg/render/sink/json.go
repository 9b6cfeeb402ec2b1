package sink

import (
	"encoding/json"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	id       string
	measurer string
	family   string
	seed     uint64
	shuffled bool
}

// WithJSONID records a layout identifier, as assigned by the HTTP API.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

// WithJSONMeasurer records the measurer the layout was computed with.
func WithJSONMeasurer(name string) JSONOption { return func(r *jsonRenderer) { r.measurer = name } }

// WithJSONFamily records the font family the layout was measured with.
func WithJSONFamily(family string) JSONOption { return func(r *jsonRenderer) { r.family = family } }

// WithJSONShuffle records the shuffle seed so the layout can be reproduced.
func WithJSONShuffle(seed uint64) JSONOption {
	return func(r *jsonRenderer) { r.shuffled = true; r.seed = seed }
}

// Document is the JSON export of a layout result.
type Document struct {
	ID       string         `json:"id,omitempty"`
	Strategy string         `json:"strategy"`
	Measurer string         `json:"measurer,omitempty"`
	Family   string         `json:"family,omitempty"`
	Shuffled bool           `json:"shuffled,omitempty"`
	Seed     uint64         `json:"seed,omitempty"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Complete bool           `json:"complete"`
	Tokens   []cloud.Placed `json:"tokens"`
}

// RenderJSON exports a layout result as indented JSON.
func RenderJSON(res cloud.Result, opts ...JSONOption) ([]byte, error) {
	var r jsonRenderer
	for _, opt := range opts {
		opt(&r)
	}
	doc := Document{
		ID:       r.id,
		Strategy: res.Strategy,
		Measurer: r.measurer,
		Family:   r.family,
		Shuffled: r.shuffled,
		Seed:     r.seed,
		Width:    res.Region.Width,
		Height:   res.Region.Height,
		Complete: res.Complete,
		Tokens:   res.Tokens,
	}
	if doc.Tokens == nil {
		doc.Tokens = []cloud.Placed{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ReadJSON parses a document written by [RenderJSON] back into a result.
func ReadJSON(data []byte) (cloud.Result, Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return cloud.Result{}, Document{}, err
	}
	res := cloud.Result{
		Strategy: doc.Strategy,
		Region:   cloud.Region{Width: doc.Width, Height: doc.Height},
		Tokens:   doc.Tokens,
		Complete: doc.Complete,
	}
	return res, doc, nil
}
