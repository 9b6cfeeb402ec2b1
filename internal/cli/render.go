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

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
		rf     renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [tokens-file]",
		Short: "Render a word cloud to SVG, PNG, PDF, JSON or text",
		Long: `Place tokens and render the cloud in one or more formats.

Each format is written to <output>.<format>; the output prefix defaults to the
token file name without its extension. A single format may also be written to
stdout with -o -.

The SVG output reveals tokens in placement order. Rotation and zoom are
applied about the region centre, as in the interactive preview.`,
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
			return c.runRender(cmd.Context(), newPrinter(cmd.OutOrStdout()), opts, output, lf.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path prefix, or - for stdout with a single format")
	lf.bind(cmd)
	rf.bind(cmd, true)

	return cmd
}

// runRender executes the pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, out printer, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering cloud...")
	spinner.Start()
	stage := startStage(c.Logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.Stop()
		out.failure("Render failed")
		return err
	}
	spinner.Stop()
	stage.done("rendered", "formats", strings.Join(opts.Formats, ","))

	if output == "-" {
		if len(opts.Formats) != 1 {
			return fmt.Errorf("-o - requires exactly one format, got %d", len(opts.Formats))
		}
		_, err := out.w.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, outputPrefix(output, opts.Source))
	if err != nil {
		return err
	}

	out.success("Render complete")
	for _, p := range paths {
		out.file(p)
	}
	out.summary(result, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	return nil
}

// outputPrefix strips a known format extension from output, or derives the
// prefix from the token source when output is empty.
func outputPrefix(output, src string) string {
	if output == "" {
		return outputBase(src)
	}
	ext := filepath.Ext(output)
	if render.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes each format to prefix plus its extension, in the
// requested order, and returns the written paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, prefix string) ([]string, error) {
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := prefix + render.Extension(f)
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
