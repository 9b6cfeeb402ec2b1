package source

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/errors"
)

var (
	cloudLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "HashComment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "LBrace", Pattern: `{`},
		{Name: "RBrace", Pattern: `}`},
		{Name: "Word", Pattern: `[^\s{}"#]+`},
	})

	cloudParser = participle.MustBuild[cloudFile](
		participle.Lexer(cloudLexer),
		participle.Elide("Whitespace", "HashComment"),
		participle.Unquote("String"),
		participle.UseLookahead(2),
	)
)

type cloudFile struct {
	Entries []*cloudEntry `parser:"@@*"`
}

type cloudEntry struct {
	Group *cloudGroup `parser:"  @@"`
	Word  *cloudWord  `parser:"| @@"`
}

type cloudGroup struct {
	Pos   lexer.Position
	Size  string       `parser:"@Word '{'"`
	Words []*cloudWord `parser:"@@* '}'"`
}

type cloudWord struct {
	Text string `parser:"@(Word | String)"`
}

// ReadCloud parses the .cloud DSL from r. Syntax errors and unknown size
// names are reported with their line and column.
func ReadCloud(r io.Reader) ([]cloud.Token, error) {
	f, err := cloudParser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "parse cloud file")
	}

	var tokens []cloud.Token
	for _, e := range f.Entries {
		switch {
		case e.Group != nil:
			size := cloud.SizeCategory(strings.ToLower(e.Group.Size))
			if !size.Valid() {
				return nil, errors.New(errors.ErrCodeInvalidSource, "%d:%d: unknown size %q", e.Group.Pos.Line, e.Group.Pos.Column, e.Group.Size)
			}
			for _, w := range e.Group.Words {
				tokens = append(tokens, cloud.Token{Text: w.Text, Size: size})
			}
		case e.Word != nil:
			tokens = append(tokens, cloud.Token{Text: e.Word.Text, Size: cloud.SizeBase})
		}
	}
	return tokens, nil
}
