package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/techcloud/pkg/pipeline"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleLink    = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleOK      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Foreground(colorRed)
	styleNote    = lipgloss.NewStyle().Foreground(colorGray)
	styleSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(10)
)

const (
	markOK     = "✓"
	markFailed = "✗"
	markWarn   = "!"
	markNote   = "›"
	markFile   = "→"
	sep        = " · "
)

// printer writes styled status lines for one command. Commands build it
// from cmd.OutOrStdout so tests can capture what a user would see.
type printer struct {
	w io.Writer
}

func newPrinter(w io.Writer) printer { return printer{w: w} }

func (p printer) line(mark lipgloss.Style, icon, msg string) {
	fmt.Fprintln(p.w, mark.Render(icon)+" "+msg)
}

func (p printer) success(format string, args ...any) {
	p.line(styleOK, markOK, fmt.Sprintf(format, args...))
}

func (p printer) failure(format string, args ...any) {
	p.line(styleFailed, markFailed, fmt.Sprintf(format, args...))
}

func (p printer) warn(format string, args ...any) {
	p.line(StyleWarning, markWarn, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func (p printer) info(format string, args ...any) {
	p.line(styleNote, markNote, fmt.Sprintf(format, args...))
}

func (p printer) detail(format string, args ...any) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func (p printer) file(path string) {
	fmt.Fprintln(p.w, "  "+StyleDim.Render(markFile)+" "+StyleValue.Render(path))
}

func (p printer) keyValue(key, value string) {
	fmt.Fprintln(p.w, "  "+styleKey.Render(key)+StyleValue.Render(value))
}

func (p printer) nextStep(what, cmd string) {
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, StyleDim.Render(what+":")+" "+styleCommand.Render(cmd))
}

// summary prints the stats line for a pipeline run and warns when the
// placer had to fall back for some tokens.
func (p printer) summary(res *pipeline.Result, cached bool) {
	fmt.Fprintln(p.w, statsLine(res.Stats.TokenCount, res.Stats.Fallbacks, res.Layout.Strategy, cached))
	if !res.Layout.Complete {
		p.warn("%d of %d tokens could not be placed without overlap", res.Stats.Fallbacks, res.Stats.TokenCount)
	}
}

// statsLine renders "  12 tokens · scatter · 2 fallbacks · cached".
func statsLine(tokens, fallbacks int, strategy string, cached bool) string {
	parts := []string{fmt.Sprintf("%d tokens", tokens), strategy}
	if fallbacks > 0 {
		parts = append(parts, fmt.Sprintf("%d fallbacks", fallbacks))
	}
	for i, s := range parts {
		parts[i] = StyleDim.Render(s)
	}
	state := styleNote.Render("fresh")
	if cached {
		state = styleOK.Render("cached")
	}
	return "  " + strings.Join(append(parts, state), StyleDim.Render(sep))
}
