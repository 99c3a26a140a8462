package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/observability"
	"github.com/matzehuels/tagcloud/pkg/render"
)

// Render draws the cloud in every format of opts.Formats. Formats are
// rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, c *cloud.Cloud, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := renderFormats(ctx, c, &opts, opts.Formats)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, c *cloud.Cloud, opts *Options, formats []string) (map[string][]byte, error) {
	renderOpts, err := opts.renderOptions()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for _, f := range formats {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := render.Render(c, render.Format(f), renderOpts...)
			if err != nil {
				return fmt.Errorf("render %s: %w", f, err)
			}
			mu.Lock()
			artifacts[f] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

// renderOptions converts the render fields to renderer options.
func (o *Options) renderOptions() ([]render.Option, error) {
	palette, err := o.Palette()
	if err != nil {
		return nil, err
	}
	opts := []render.Option{render.WithPalette(palette)}
	if o.Rectangles {
		opts = append(opts, render.WithRectangles())
	}
	if needsFont(o.Formats) {
		m, err := o.FontMeasurer()
		if err != nil {
			return nil, err
		}
		opts = append(opts, render.WithFont(m))
	}
	return opts, nil
}

func needsFont(formats []string) bool {
	for _, f := range formats {
		if render.Format(f).IsRaster() {
			return true
		}
	}
	return false
}
