package source

import (
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/errors"
)

type tomlFile struct {
	Tokens []entry  `toml:"token"`
	Words  []string `toml:"words"`
}

// ReadTOML decodes [[token]] tables and an optional words array from r. Token
// text is split on whitespace like the JSON format.
func ReadTOML(r io.Reader) ([]cloud.Token, error) {
	var f tomlFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "decode toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidSource, "unknown key %q", undecoded[0].String())
	}

	var tokens []cloud.Token
	for _, e := range f.Tokens {
		size := cloud.ParseSizeCategory(e.Size)
		for _, word := range strings.Fields(e.Text) {
			tokens = append(tokens, cloud.Token{Text: word, Size: size})
		}
	}
	for _, w := range f.Words {
		if w = strings.TrimSpace(w); w != "" {
			tokens = append(tokens, cloud.Token{Text: w, Size: cloud.SizeBase})
		}
	}
	return tokens, nil
}
