package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/render"
)

// renderFlagSet holds every flag of the render command.
type renderFlagSet struct {
	layoutFlags
	styleFlags
	outputFlags
	noCache bool
	refresh bool
	watch   bool
}

// renderCommand creates the render command, which draws clouds from text
// files.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlagSet

	cmd := &cobra.Command{
		Use:   "render <input>...",
		Short: "Draw a word cloud from text files",
		Long: `Draw a word cloud from one or more text files.

Inputs are file paths or glob patterns ("notes/**/*.md"); their texts are
counted together. The most frequent words are drawn largest and closest to
the center. Words that do not fit on the canvas are skipped and reported.

Defaults come from the config file; flags given here override it.
Layouts and images are cached, so re-running with different colors only
re-draws.`,
		Example: `  tagcloud render speech.txt
  tagcloud render "docs/**/*.md" -c 100 -f svg,png -n docs
  tagcloud render notes.txt --watch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.FromConfig(cfg)
			flags.layoutFlags.apply(cmd, &opts)
			flags.styleFlags.apply(cmd, &opts)
			opts.Refresh = flags.refresh
			opts.Logger = c.Logger

			out, err := flags.outputFlags.target(cmd, cfg)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args, opts, out, flags.noCache, flags.watch)
		},
	}

	flags.layoutFlags.register(cmd)
	flags.styleFlags.register(cmd)
	flags.outputFlags.register(cmd)
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "re-render whenever an input file changes")

	return cmd
}

// runRender renders once and, in watch mode, again after every change.
func (c *CLI) runRender(ctx context.Context, args []string, opts pipeline.Options, out outputTarget, noCache, watch bool) error {
	paths, err := expandInputs(args)
	if err != nil {
		return err
	}
	c.Logger.Debug("resolved inputs", "files", paths)

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	err = c.renderOnce(ctx, runner, paths, opts, out)
	if !watch {
		return err
	}
	if err != nil {
		printError("%v", err)
	}

	printNewline()
	printInfo("Watching %d file(s) for changes (ctrl+c to stop)", len(paths))
	return watchInputs(ctx, c.Logger, paths, watchDebounce, func(ctx context.Context) error {
		p := newProgress(c.Logger)
		if err := c.renderOnce(ctx, runner, paths, opts, out); err != nil {
			return err
		}
		p.done("Re-rendered cloud")
		return nil
	})
}

// renderOnce reads the inputs, runs the pipeline and writes every artifact.
func (c *CLI) renderOnce(ctx context.Context, runner *pipeline.Runner, paths []string, opts pipeline.Options, out outputTarget) error {
	text, err := readInputs(paths)
	if err != nil {
		return err
	}
	opts.Text = text

	spinner := newSpinner(ctx, "Drawing cloud...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	written, err := writeArtifacts(out, result.Artifacts)
	if err != nil {
		return err
	}

	printSuccess("Cloud rendered")
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.Placed, result.Stats.Skipped, result.CacheInfo.LayoutHit)
	if n := len(result.Cloud.Skipped); n > 0 {
		printWarning("%d word(s) did not fit: %s", n, summarize(result.Cloud.Skipped, 5))
		printDetail("Try a larger --width/--height, a smaller --font-size or a higher --max-candidates")
	}
	return nil
}

// writeArtifacts writes each artifact to <dir>/<name>.<format> in format
// order and returns the written paths.
func writeArtifacts(out outputTarget, artifacts map[string][]byte) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for f := range artifacts {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	paths := make([]string, 0, len(formats))
	for _, f := range formats {
		path := out.path(render.Format(f).Ext())
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// summarize joins up to n items and counts the rest.
func summarize(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s and %d more", strings.Join(items[:n], ", "), len(items)-n)
}
