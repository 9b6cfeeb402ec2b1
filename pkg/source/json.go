package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/errors"
)

type entry struct {
	Text string `json:"text" toml:"text"`
	Size string `json:"size,omitempty" toml:"size"`
}

// ReadJSON decodes a tech-bits array from r.
//
// Object entries are split on whitespace into one token per word. String
// entries become single base-sized tokens; empty strings are skipped.
func ReadJSON(r io.Reader) ([]cloud.Token, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode token array")
	}

	var tokens []cloud.Token
	for i, msg := range raw {
		msg = bytes.TrimSpace(msg)
		if len(msg) > 0 && msg[0] == '"' {
			var s string
			if err := json.Unmarshal(msg, &s); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "entry %d", i)
			}
			if s = strings.TrimSpace(s); s != "" {
				tokens = append(tokens, cloud.Token{Text: s, Size: cloud.SizeBase})
			}
			continue
		}

		var e entry
		if err := json.Unmarshal(msg, &e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "entry %d", i)
		}
		size := cloud.ParseSizeCategory(e.Size)
		for _, word := range strings.Fields(e.Text) {
			tokens = append(tokens, cloud.Token{Text: word, Size: size})
		}
	}
	return tokens, nil
}

// WriteJSON writes tokens as a pretty-printed tech-bits array. Tokens
// containing whitespace are written as-is and will split when read back.
func WriteJSON(w io.Writer, tokens []cloud.Token) error {
	entries := make([]entry, len(tokens))
	for i, t := range tokens {
		size := t.Size
		if !size.Valid() {
			size = cloud.SizeBase
		}
		entries[i] = entry{Text: t.Text, Size: string(size)}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tokens: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
