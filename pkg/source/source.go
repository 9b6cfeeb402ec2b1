package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/errors"
)

// Format identifies a token file format.
type Format string

// Supported formats.
const (
	FormatJSON  Format = "json"
	FormatTOML  Format = "toml"
	FormatCloud Format = "cloud"
)

// DetectFormat returns the format implied by the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".cloud":
		return FormatCloud, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported token file %q (expected .json, .toml or .cloud)", filepath.Base(path))
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatJSON, FormatTOML, FormatCloud:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported token format %q", name)
}

// Read decodes tokens in format f from r and validates them.
func Read(r io.Reader, f Format) ([]cloud.Token, error) {
	var (
		tokens []cloud.Token
		err    error
	)
	switch f {
	case FormatJSON:
		tokens, err = ReadJSON(r)
	case FormatTOML:
		tokens, err = ReadTOML(r)
	case FormatCloud:
		tokens, err = ReadCloud(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported token format %q", f)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// Parse is [Read] over a byte slice.
func Parse(data []byte, f Format) ([]cloud.Token, error) {
	return Read(bytes.NewReader(data), f)
}

// Load reads the token file at path, detecting the format from its extension.
func Load(path string) ([]cloud.Token, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return LoadFormat(path, f)
}

// LoadFormat reads the token file at path in format f. The path "-" reads
// standard input.
func LoadFormat(path string, f Format) ([]cloud.Token, error) {
	if path == "-" {
		tokens, err := Read(os.Stdin, f)
		if err != nil {
			return nil, errors.Wrap(errors.CodeOr(err, errors.ErrCodeInvalidSource), err, "load stdin")
		}
		return tokens, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "token file %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSource, err, "open %s", path)
	}
	defer file.Close()

	tokens, err := Read(file, f)
	if err != nil {
		return nil, errors.Wrap(errors.CodeOr(err, errors.ErrCodeInvalidSource), err, "load %s", path)
	}
	return tokens, nil
}

// Validate checks every token's text and the total count.
func Validate(tokens []cloud.Token) error {
	if err := errors.ValidateTokenCount(len(tokens)); err != nil {
		return err
	}
	for i, t := range tokens {
		if err := errors.ValidateTokenText(t.Text); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "token %d", i)
		}
	}
	return nil
}

// Demo returns the placeholder cloud shown when no tokens are available.
func Demo() []cloud.Token {
	return []cloud.Token{
		{Text: "HELLO", Size: cloud.SizeBase},
		{Text: "WORLD", Size: cloud.SizeBase},
	}
}
