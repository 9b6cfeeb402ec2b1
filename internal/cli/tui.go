package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/techcloud/pkg/core/cloud"
	"github.com/matzehuels/techcloud/pkg/render/sink"
)

// rotateStep is the rotation applied per key press, in degrees.
const rotateStep = 15.0

var (
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
	previewFrameStyle = lipgloss.NewStyle().Foreground(colorWhite)
	previewErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// previewCommand creates the interactive terminal preview.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		lf layoutFlags
		rf renderFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [tokens-file]",
		Short: "Preview a word cloud in the terminal",
		Long: `Show the placed cloud on a character grid.

Keys: + and - zoom in steps of 0.25 between 0.5 and 4, left and right rotate
by 15 degrees, tab switches between the spiral and scatter placers, 0 resets
the view and q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			if err := lf.input(args, &opts); err != nil {
				return err
			}
			lf.apply(cmd, &opts)
			if err := rf.apply(cmd, &opts); err != nil {
				return err
			}
			opts.Logger = c.Logger

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, lf.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			tokens, err := runner.Load(ctx, opts)
			if err != nil {
				return err
			}
			layout := func(strategy string) (cloud.Result, error) {
				o := opts
				o.Strategy = strategy
				return runner.Layout(ctx, tokens, o)
			}

			m, err := newPreviewModel(layout, opts.Strategy, opts.Rotate, opts.Zoom)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	lf.bind(cmd)
	rf.bind(cmd, false)

	return cmd
}

// layoutFunc places the loaded tokens with the named strategy.
type layoutFunc func(strategy string) (cloud.Result, error)

// layoutMsg carries a finished relayout back to the model.
type layoutMsg struct {
	strategy string
	result   cloud.Result
	err      error
}

// previewModel is the bubbletea model for the terminal preview.
type previewModel struct {
	layout   layoutFunc
	result   cloud.Result
	strategy string
	rotate   float64
	zoom     float64
	cols     int
	rows     int
	err      error
}

func newPreviewModel(layout layoutFunc, strategy string, rotate, zoom float64) (previewModel, error) {
	if strategy == "" {
		strategy = cloud.StrategySpiral
	}
	res, err := layout(strategy)
	if err != nil {
		return previewModel{}, err
	}
	return previewModel{
		layout:   layout,
		result:   res,
		strategy: res.Strategy,
		rotate:   rotate,
		zoom:     sink.ClampZoom(zoom),
		cols:     80,
		rows:     24,
	}, nil
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=":
			m.zoom = sink.ClampZoom(m.zoom + sink.ZoomStep)
		case "-", "_":
			m.zoom = sink.ClampZoom(m.zoom - sink.ZoomStep)
		case "left", "h":
			m.rotate -= rotateStep
		case "right", "l":
			m.rotate += rotateStep
		case "0":
			m.rotate, m.zoom = 0, sink.DefaultZoom
		case "tab":
			return m, m.relayout(otherStrategy(m.strategy))
		}
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
	case layoutMsg:
		m.err = msg.err
		if msg.err == nil {
			m.result, m.strategy = msg.result, msg.strategy
		}
	}
	return m, nil
}

func (m previewModel) relayout(strategy string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.layout(strategy)
		return layoutMsg{strategy: strategy, result: res, err: err}
	}
}

func otherStrategy(s string) string {
	if s == cloud.StrategySpiral {
		return cloud.StrategyScatter
	}
	return cloud.StrategySpiral
}

func (m previewModel) View() string {
	var b strings.Builder

	status := fmt.Sprintf("%s · %d tokens · zoom %.2f · rotate %g°",
		m.strategy, len(m.result.Tokens), m.zoom, m.rotate)
	b.WriteString(StyleTitle.Render(appName) + " " + StyleDim.Render(status))
	b.WriteString("\n\n")

	cols, rows := max(m.cols, 20), max(m.rows-4, 5)
	grid := sink.RenderText(m.result,
		sink.WithGrid(cols, rows),
		sink.WithZoom(m.zoom),
		sink.WithRotate(m.rotate))
	b.WriteString(previewFrameStyle.Render(grid))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(previewErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(previewHelpStyle.Render("+/- zoom  ←/→ rotate  tab strategy  0 reset  q quit"))
	return b.String()
}
