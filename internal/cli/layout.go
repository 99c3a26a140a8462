package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

// layoutCommand creates the layout command, which computes word positions
// without drawing them.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags   layoutFlags
		output  outputFlags
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout <input>...",
		Short: "Compute word positions and write them as JSON",
		Long: `Compute word positions and write them as JSON.

The output lists every placed word with its count, font size and rectangle,
plus the words that did not fit. It is the same document as
'render -f json' and is written to <out-path>/<name>.json.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.FromConfig(cfg)
			flags.apply(cmd, &opts)
			opts.Logger = c.Logger

			out, err := output.target(cmd, cfg)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), args, opts, out, noCache)
		},
	}

	flags.register(cmd)
	output.register(cmd)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout counts and places the words and writes the cloud JSON.
func (c *CLI) runLayout(ctx context.Context, args []string, opts pipeline.Options, out outputTarget, noCache bool) error {
	paths, err := expandInputs(args)
	if err != nil {
		return err
	}
	if opts.Text, err = readInputs(paths); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Placing words...")
	spinner.Start()

	result, _, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts, nil)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := out.path("json")
	if err := cloud.WriteFile(outputPath, result); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(result.Words), len(result.Skipped), cacheHit)
	if n := len(result.Skipped); n > 0 {
		printWarning("%d word(s) did not fit: %s", n, summarize(result.Skipped, 5))
	}
	return nil
}
