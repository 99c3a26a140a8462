package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
)

func testOptions() Options {
	return Options{
		Text:    sampleText,
		Count:   12,
		Width:   700,
		Height:  500,
		Step:    2,
		Formats: []string{"svg", "json"},
	}
}

func TestRunnerExecute(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(0), nil, nil)
	defer r.Close()

	first, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss the cache: %+v", first.CacheInfo)
	}
	if len(first.Artifacts) != 2 || first.Artifacts["svg"] == nil || first.Artifacts["json"] == nil {
		t.Errorf("artifacts = %v, want svg and json", keys(first.Artifacts))
	}
	if first.Stats.Placed == 0 || first.Stats.DistinctWords < first.Stats.Placed {
		t.Errorf("unexpected stats: %+v", first.Stats)
	}
	if first.LayoutHash == "" {
		t.Error("LayoutHash should be set")
	}

	second, err := r.Execute(ctx, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit the cache: %+v", second.CacheInfo)
	}
	if second.LayoutHash != first.LayoutHash {
		t.Error("cached layout should hash identically")
	}
	if second.Stats.DistinctWords != first.Stats.DistinctWords {
		t.Errorf("cached DistinctWords = %d, want %d", second.Stats.DistinctWords, first.Stats.DistinctWords)
	}

	recolored := testOptions()
	recolored.Foreground = "navy"
	third, err := r.Execute(ctx, recolored)
	if err != nil {
		t.Fatal(err)
	}
	if !third.CacheInfo.LayoutHit {
		t.Error("a color change should reuse the layout")
	}
	if third.CacheInfo.RenderHit {
		t.Error("a color change should re-render")
	}
	if string(third.Artifacts["json"]) != string(first.Artifacts["json"]) {
		t.Error("JSON does not depend on colors but differs")
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(0), nil, nil)

	if _, err := r.Execute(ctx, testOptions()); err != nil {
		t.Fatal(err)
	}
	opts := testOptions()
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("Refresh should bypass the cache: %+v", res.CacheInfo)
	}
}

func TestRunnerPartialRenderHit(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(0), nil, nil)

	opts := testOptions()
	opts.Formats = []string{"svg"}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}

	opts.Formats = []string{"svg", "png"}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("png was never rendered, RenderHit should be false")
	}
	if len(res.Artifacts) != 2 {
		t.Errorf("artifacts = %v, want svg and png", keys(res.Artifacts))
	}
}

func TestRunnerOutOfBounds(t *testing.T) {
	opts := testOptions()
	opts.Width, opts.Height = 60, 30
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), opts)
	if !errors.Is(err, cloud.ErrOutOfBounds) {
		t.Errorf("Execute error = %v, want ErrOutOfBounds", err)
	}
}

func TestRunnerInvalidOptions(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{})
	if err == nil {
		t.Error("empty text should fail")
	}
}

func TestRenderAllFormats(t *testing.T) {
	ctx := context.Background()
	c, err := NewRunner(nil, nil, nil).Layout(ctx, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	opts := testOptions()
	opts.Formats = []string{"svg", "png", "jpeg", "gif", "bmp", "json"}
	artifacts, err := Render(ctx, c, opts)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, f := range opts.Formats {
		if len(artifacts[f]) == 0 {
			t.Errorf("format %s missing", f)
		}
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
