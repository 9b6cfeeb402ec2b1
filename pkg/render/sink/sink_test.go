package sink

import (
	"bytes"
	"image/png"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
)

func testResult() cloud.Result {
	mk := func(text string, size cloud.SizeCategory, px, x, y, rot float64) cloud.Placed {
		return cloud.Placed{
			Measured: cloud.Measured{
				Token:  cloud.Token{Text: text, Size: size, FontSizePx: px},
				Width:  float64(len(text)) * px * 0.55,
				Height: px * 1.2,
			},
			X: x, Y: y, Rotation: rot,
		}
	}
	return cloud.Result{
		Strategy: cloud.StrategySpiral,
		Region:   cloud.Region{Width: 400, Height: 300},
		Complete: true,
		Tokens: []cloud.Placed{
			mk("Go", cloud.Size5XL, 48, 200, 150, math.Pi),
			mk("Redis", cloud.SizeXL, 20, 120, 80, math.Pi/2),
			mk("a<b & c", cloud.SizeBase, 16, 300, 220, 0),
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testResult()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400.0 300.0"`) {
		t.Errorf("unexpected svg header: %.80s", svg)
	}
	if n := strings.Count(svg, "<text "); n != 3 {
		t.Errorf("svg has %d <text> elements, want 3", n)
	}
	if !strings.Contains(svg, "a&lt;b &amp; c") {
		t.Error("token text should be XML-escaped")
	}
	if !strings.Contains(svg, `rotate(180.00 200.00 150.00)`) {
		t.Error("token rotation should be written in degrees about the token centre")
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font should not be embedded by default")
	}
	if strings.Contains(svg, "<rect") {
		t.Error("no background or boxes requested")
	}

	// Placement order is preserved.
	iGo := strings.Index(svg, ">Go</text>")
	iRedis := strings.Index(svg, ">Redis</text>")
	if iGo < 0 || iRedis < 0 || iGo > iRedis {
		t.Error("tokens should be emitted in placement order")
	}
	for i := range 3 {
		if !strings.Contains(svg, `data-order="`+string(rune('0'+i))+`"`) {
			t.Errorf("missing data-order=%d", i)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testResult(),
		WithZoom(10),
		WithRotate(30),
		WithEmbeddedFont(),
		WithBoxes(),
		WithBackground("#ffffff"),
	))

	if !strings.Contains(svg, "scale(4.000) rotate(30.00)") {
		t.Error("zoom should be clamped to MaxZoom and rotation applied")
	}
	if !strings.Contains(svg, "@font-face") || !strings.Contains(svg, "data:font/ttf;base64,") {
		t.Error("embedded font missing")
	}
	if n := strings.Count(svg, `stroke="`+DefaultBoxColor+`"`); n != 3 {
		t.Errorf("got %d box outlines, want 3", n)
	}
	if !strings.Contains(svg, `fill="#ffffff"`) {
		t.Error("background missing")
	}
}

func TestRenderSVGFamilyEscaped(t *testing.T) {
	tests := []struct {
		name   string
		family string
		want   string
		banned []string
	}{
		{"plain", "Inter Tight", "font-family: 'Inter Tight', ", nil},
		{"markup", "Evil</style><script>alert(1)</script>", "font-family: 'Evil/stylescriptalert(1)/script', ", []string{"<script>", "</style><"}},
		{"quote", "Bad'; } body { fill: red", "font-family: 'Bad  body  fill: red', ", []string{"Bad';"}},
		{"ampersand", "A & B", "font-family: 'A  B', ", []string{"A & B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svg := string(RenderSVG(testResult(), WithFamily(tt.family), WithEmbeddedFont()))
			if !strings.Contains(svg, tt.want) {
				t.Errorf("SVG missing %q", tt.want)
			}
			for _, b := range tt.banned {
				if strings.Contains(svg, b) {
					t.Errorf("SVG contains unescaped %q", b)
				}
			}
			if n := strings.Count(svg, "</style>"); n != 1 {
				t.Errorf("got %d closing style tags, want 1", n)
			}
		})
	}
}

func TestRenderSVGEmpty(t *testing.T) {
	svg := string(RenderSVG(cloud.Result{Region: cloud.Region{Width: 0, Height: 0}}))
	if strings.Contains(svg, "<text") {
		t.Error("empty result should have no text")
	}
	if !strings.Contains(svg, `viewBox="0 0 1.0 1.0"`) {
		t.Error("degenerate region should be clamped")
	}
}

func TestClampZoom(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, DefaultZoom},
		{math.NaN(), DefaultZoom},
		{0.1, MinZoom},
		{2.25, 2.25},
		{9, MaxZoom},
	}
	for _, tt := range tests {
		if got := ClampZoom(tt.in); got != tt.want {
			t.Errorf("ClampZoom(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderJSONRoundTrip(t *testing.T) {
	res := testResult()
	data, err := RenderJSON(res, WithJSONID("abc"), WithJSONMeasurer("heuristic"), WithJSONShuffle(7))
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	got, doc, err := ReadJSON(data)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if doc.ID != "abc" || doc.Measurer != "heuristic" || !doc.Shuffled || doc.Seed != 7 {
		t.Errorf("metadata lost: %+v", doc)
	}
	if got.Strategy != res.Strategy || got.Region != res.Region || !got.Complete {
		t.Errorf("result header lost: %+v", got)
	}
	if len(got.Tokens) != len(res.Tokens) {
		t.Fatalf("got %d tokens, want %d", len(got.Tokens), len(res.Tokens))
	}
	for i := range res.Tokens {
		if got.Tokens[i] != res.Tokens[i] {
			t.Errorf("token %d = %+v, want %+v", i, got.Tokens[i], res.Tokens[i])
		}
	}
}

func TestRenderJSONEmptyTokens(t *testing.T) {
	data, err := RenderJSON(cloud.Result{Strategy: cloud.StrategyScatter, Complete: true})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"tokens": []`)) {
		t.Errorf("empty token list should encode as []: %s", data)
	}
}

func TestRenderText(t *testing.T) {
	res := testResult()
	out := RenderText(res, WithGrid(40, 10))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	for _, l := range lines {
		if len([]rune(l)) > 40 {
			t.Errorf("line exceeds grid width: %q", l)
		}
	}
	// "Go" sits at the region centre.
	if !strings.Contains(lines[5], "Go") {
		t.Errorf("centre row = %q, want it to contain Go", lines[5])
	}
	if !strings.Contains(out, "Redis") {
		t.Error("Redis missing from text grid")
	}
}

func TestRenderTextRotated(t *testing.T) {
	res := cloud.Result{
		Region: cloud.Region{Width: 100, Height: 100},
		Tokens: []cloud.Placed{{Measured: cloud.Measured{Token: cloud.Token{Text: "X"}}, X: 75, Y: 50}},
	}
	out := RenderText(res, WithGrid(10, 10), WithRotate(90))
	lines := strings.Split(out, "\n")
	// A quarter turn clockwise moves the right-hand point below the centre.
	if !strings.Contains(lines[7], "X") {
		t.Errorf("rotated grid:\n%s", out)
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testResult(), WithScale(1), WithBackground("#ffffff"))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if math.Abs(float64(b.Dx())-400) > 1 || math.Abs(float64(b.Dy())-300) > 1 {
		t.Errorf("image size = %dx%d, want about 400x300", b.Dx(), b.Dy())
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := RenderPDF(testResult(), WithBoxes())
	if err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %.16q", data)
	}
}
