package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/techcloud/pkg/pipeline"
	"github.com/matzehuels/techcloud/pkg/render"
)

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [tokens-file]",
		Short: "Place tokens and write the layout as JSON",
		Long: `Place tokens inside the region and write the placed cloud as JSON.

The token file may be JSON (a list of {"text", "size"} entries or plain
strings), TOML ([[token]] tables) or the .cloud format. Use - to read JSON
from stdin.

The output is the same document 'render -f json' produces. Layouts are cached,
so repeated runs with the same tokens and options are instant.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Options()
			if err := lf.input(args, &opts); err != nil {
				return err
			}
			lf.apply(cmd, &opts)
			opts.Formats = []string{render.FormatJSON}
			return c.runLayout(cmd.Context(), newPrinter(cmd.OutOrStdout()), opts, output, lf.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	lf.bind(cmd)

	return cmd
}

// runLayout places the tokens and writes the JSON document.
func (c *CLI) runLayout(ctx context.Context, out printer, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Placing tokens...")
	spinner.Start()
	stage := startStage(c.Logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Stop()
		out.failure("Layout failed")
		return err
	}
	spinner.Stop()
	stage.done("placed tokens", "tokens", result.Stats.TokenCount, "strategy", result.Layout.Strategy)

	data := result.Artifacts[render.FormatJSON]
	if output == "-" {
		_, err := out.w.Write(data)
		return err
	}

	path := output
	if path == "" {
		path = outputBase(opts.Source) + ".layout.json"
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}

	out.success("Layout complete")
	out.file(path)
	out.summary(result, result.CacheInfo.LayoutHit)
	target := opts.Source
	if target == "" {
		target = "--demo"
	}
	out.nextStep("Render", appName+" render "+target+" -f svg,png")
	return nil
}

// outputBase derives the output path prefix from the token source.
func outputBase(src string) string {
	if src == "" || src == "-" {
		return "cloud"
	}
	return strings.TrimSuffix(src, filepath.Ext(src))
}
