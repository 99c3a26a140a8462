package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/core/geom"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/sizing"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout sizes the ranked words and places them on the canvas.
// Words that do not fit within the search ceiling are listed in
// Cloud.Skipped.
func GenerateLayout(ctx context.Context, entries []words.Entry, opts Options) (*cloud.Cloud, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(entries))
	start := time.Now()

	c, err := generateLayout(ctx, entries, &opts)

	placed, skipped := 0, 0
	if c != nil {
		placed, skipped = len(c.Words), len(c.Skipped)
	}
	hooks.OnLayoutComplete(ctx, placed, skipped, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	if skipped > 0 {
		opts.Logger.Warn("some words did not fit", "skipped", skipped, "words", c.Skipped)
	}
	return c, nil
}

func generateLayout(ctx context.Context, entries []words.Entry, opts *Options) (*cloud.Cloud, error) {
	m, err := opts.FontMeasurer()
	if err != nil {
		return nil, err
	}
	mapper := &sizing.Mapper{Measurer: m, MaxFontSize: opts.FontSize, Ratio: opts.Ratio}
	sized, err := mapper.Map(entries)
	if err != nil {
		return nil, err
	}

	layoutOpts, err := opts.LayoutOptions()
	if err != nil {
		return nil, err
	}
	return cloud.Build(ctx, geom.Sz(opts.Width, opts.Height), sized, layoutOpts...)
}
