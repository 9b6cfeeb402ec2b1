package source

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/errors"
)

func texts(tokens []cloud.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestReadJSONSplitsEntries(t *testing.T) {
	in := `[
		{"text": "Go Rust", "size": "5xl"},
		{"text": "  Postgres  ", "size": "XL"},
		{"text": "Redis", "size": "enormous"},
		{"text": "Docker"}
	]`
	tokens, err := ReadJSON(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	want := []cloud.Token{
		{Text: "Go", Size: cloud.Size5XL},
		{Text: "Rust", Size: cloud.Size5XL},
		{Text: "Postgres", Size: cloud.SizeXL},
		{Text: "Redis", Size: cloud.SizeBase},
		{Text: "Docker", Size: cloud.SizeBase},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("tokens = %+v, want %+v", tokens, want)
	}
}

func TestReadJSONStrings(t *testing.T) {
	tokens, err := ReadJSON(strings.NewReader(`["HELLO", "", "WORLD", {"text": "big", "size": "2xl"}]`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if got := texts(tokens); !reflect.DeepEqual(got, []string{"HELLO", "WORLD", "big"}) {
		t.Errorf("texts = %v", got)
	}
	if tokens[0].Size != cloud.SizeBase || tokens[2].Size != cloud.Size2XL {
		t.Errorf("sizes = %v, %v", tokens[0].Size, tokens[2].Size)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not array", `{"text": "Go"}`},
		{"malformed", `[{"text": }]`},
		{"number entry", `[42]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidSource) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidSource)
			}
		})
	}
}

func TestReadTOML(t *testing.T) {
	in := `
words = ["HELLO", "WORLD"]

[[token]]
text = "Go Rust"
size = "3xl"

[[token]]
text = "Redis"
`
	tokens, err := ReadTOML(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	want := []cloud.Token{
		{Text: "Go", Size: cloud.Size3XL},
		{Text: "Rust", Size: cloud.Size3XL},
		{Text: "Redis", Size: cloud.SizeBase},
		{Text: "HELLO", Size: cloud.SizeBase},
		{Text: "WORLD", Size: cloud.SizeBase},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("tokens = %+v, want %+v", tokens, want)
	}
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader(`colour = "red"`))
	if !errors.Is(err, errors.ErrCodeInvalidSource) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidSource)
	}
}

func TestReadCloud(t *testing.T) {
	in := `# languages
5xl { Go Rust }
XL  { "Visual Studio" Node.js }
Redis C++   # trailing comment
"C#"
`
	tokens, err := ReadCloud(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCloud: %v", err)
	}
	want := []cloud.Token{
		{Text: "Go", Size: cloud.Size5XL},
		{Text: "Rust", Size: cloud.Size5XL},
		{Text: "Visual Studio", Size: cloud.SizeXL},
		{Text: "Node.js", Size: cloud.SizeXL},
		{Text: "Redis", Size: cloud.SizeBase},
		{Text: "C++", Size: cloud.SizeBase},
		{Text: "C#", Size: cloud.SizeBase},
	}
	if !reflect.DeepEqual(tokens, want) {
		t.Errorf("tokens = %+v, want %+v", tokens, want)
	}
}

func TestReadCloudErrorsCarryPosition(t *testing.T) {
	tests := []struct {
		name string
		in   string
		pos  string
	}{
		{"unknown size", "Go\nhuge { Rust }", "2:1"},
		{"unclosed group", "xl { Go Rust", "1:"},
		{"stray brace", "Go }", "1:4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCloud(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidSource) {
				t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidSource)
			}
			if !strings.Contains(err.Error(), tt.pos) {
				t.Errorf("error %q does not mention position %s", err, tt.pos)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"tech-bits.json", FormatJSON, false},
		{"dir/Tokens.TOML", FormatTOML, false},
		{"my.cloud", FormatCloud, false},
		{"notes.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DetectFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tech-bits.json")
	if err := os.WriteFile(path, []byte(`[{"text": "Go Rust", "size": "xl"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	tokens, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tokens) != 2 {
		t.Errorf("got %d tokens", len(tokens))
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestReadValidates(t *testing.T) {
	_, err := Parse([]byte(`["ok", "bad\u0001"]`), FormatJSON)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := Parse([]byte(`[]`), "yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format err = %v", err)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	in := []cloud.Token{
		{Text: "Go", Size: cloud.Size5XL},
		{Text: "Redis", Size: "weird"},
	}
	var buf bytes.Buffer
	if err := WriteJSON(&buf, in); err != nil {
		t.Fatal(err)
	}
	out, err := ReadJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []cloud.Token{{Text: "Go", Size: cloud.Size5XL}, {Text: "Redis", Size: cloud.SizeBase}}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("round trip = %+v", out)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" TOML "); err != nil || f != FormatTOML {
		t.Errorf("ParseFormat = %q, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("expected error")
	}
}

func TestLoadShippedExamples(t *testing.T) {
	tests := []struct {
		file  string
		count int
		first cloud.Token
		has   string
	}{
		{"tech-bits.json", 15, cloud.Token{Text: "Go", Size: cloud.Size5XL}, "gRPC"},
		{"stack.toml", 7, cloud.Token{Text: "Go", Size: cloud.Size5XL}, "Protobuf"},
		{"stack.cloud", 12, cloud.Token{Text: "Go", Size: cloud.Size5XL}, "Cloud Native"},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			tokens, err := Load(filepath.Join("..", "..", "examples", tt.file))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(tokens) != tt.count {
				t.Errorf("got %d tokens %v, want %d", len(tokens), texts(tokens), tt.count)
			}
			if len(tokens) > 0 && tokens[0] != tt.first {
				t.Errorf("first token = %+v, want %+v", tokens[0], tt.first)
			}
			if !strings.Contains(strings.Join(texts(tokens), "|"), tt.has) {
				t.Errorf("tokens %v missing %q", texts(tokens), tt.has)
			}
		})
	}
}
