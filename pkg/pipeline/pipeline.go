// Package pipeline provides the tag cloud pipeline shared by the CLI and the
// HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Count: tokenize the input text, drop stop words and rank words by
//     frequency
//  2. Layout: map frequencies to font sizes, measure the words and place
//     them around the canvas center
//  3. Render: draw the cloud in each requested format
//
// Each stage can be run on its own. [Runner] chains them with caching: a
// layout is keyed by the input text and the options that affect placement,
// and each artifact by the layout and the options that affect drawing, so
// changing only a color re-renders without re-laying out.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Text:    text,
//	    Count:   50,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/tagcloud/pkg/cache"
	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/core/layout"
	"github.com/matzehuels/tagcloud/pkg/core/spiral"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/render"
	"github.com/matzehuels/tagcloud/pkg/sizing"
	"github.com/matzehuels/tagcloud/pkg/words"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultCount is the number of words drawn.
	DefaultCount = 70

	// DefaultWidth and DefaultHeight are the canvas size in pixels.
	DefaultWidth  = 1000
	DefaultHeight = 1000

	// DefaultSpiral is the candidate generator.
	DefaultSpiral = spiral.KindSquare

	// DefaultForeground, DefaultBackground and DefaultCanvas are color names
	// understood by render.ParseColor.
	DefaultForeground = "black"
	DefaultBackground = "white"
	DefaultCanvas     = "white"

)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. It doubles as the
// JSON request body of the HTTP API.
type Options struct {
	// Input
	Text string `json:"text"`

	// Count options
	Count              int      `json:"count,omitempty"`
	MinLength          int      `json:"min_length,omitempty"`
	StopWords          []string `json:"stop_words,omitempty"`
	NoDefaultStopWords bool     `json:"no_default_stop_words,omitempty"`

	// Layout options
	FontSize      float64 `json:"font_size,omitempty"`
	Ratio         float64 `json:"ratio,omitempty"`
	Width         int     `json:"width,omitempty"`
	Height        int     `json:"height,omitempty"`
	Spiral        string  `json:"spiral,omitempty"`
	Step          int     `json:"step,omitempty"`
	MaxCandidates int     `json:"max_candidates,omitempty"`
	Restart       bool    `json:"restart,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Foreground string   `json:"foreground,omitempty"`
	Background string   `json:"background,omitempty"`
	Canvas     string   `json:"canvas,omitempty"`
	Rectangles bool     `json:"rectangles,omitempty"`

	// Refresh bypasses cached layouts and artifacts.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	FontFile string               `json:"-"` // TTF/OTF used to measure and draw
	Measurer *sizing.FontMeasurer `json:"-"` // overrides FontFile
	Logger   *log.Logger          `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// FromConfig builds options from a configuration file.
func FromConfig(cfg config.Config) Options {
	return Options{
		Count:              cfg.Words.Count,
		MinLength:          cfg.Words.MinLength,
		StopWords:          cfg.Words.StopWords,
		NoDefaultStopWords: cfg.Words.NoDefaultStopWords,
		FontSize:           cfg.Font.MaxSize,
		Ratio:              cfg.Font.Ratio,
		Width:              cfg.Canvas.Width,
		Height:             cfg.Canvas.Height,
		Spiral:             cfg.Layout.Spiral,
		Step:               cfg.Layout.Step,
		MaxCandidates:      cfg.Layout.MaxCandidates,
		Restart:            cfg.Layout.Restart,
		Formats:            cfg.Output.Formats,
		Foreground:         cfg.Colors.Foreground,
		Background:         cfg.Colors.Background,
		Canvas:             cfg.Colors.Canvas,
		FontFile:           cfg.Font.File,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Cloud is the placed layout.
	Cloud *cloud.Cloud

	// LayoutHash is the content hash of the cloud JSON. Equal hashes mean
	// identical layouts.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	InputBytes    int
	DistinctWords int
	Placed        int
	Skipped       int
	CountTime     time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // count and layout came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormats checks that all formats are supported and normalizes their
// names in place ("JPG" becomes "jpeg").
func ValidateFormats(formats []string) error {
	for i, f := range formats {
		parsed, err := render.ParseFormat(f)
		if err != nil {
			return err
		}
		formats[i] = string(parsed)
	}
	return nil
}

// ValidateSpiral checks that a spiral kind is known.
func ValidateSpiral(kind string) error {
	if !spiral.ValidKinds[kind] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid spiral: %q (must be one of: square, archimedean)", kind)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if strings.TrimSpace(o.Text) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "text is required")
	}
	if err := o.ValidateForCount(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCount validates and sets defaults for counting.
func (o *Options) ValidateForCount() error {
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.Count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid count of words: %d", o.Count)
	}
	if err := errors.ValidateNonNegative("min_length", o.MinLength); err != nil {
		return err
	}
	for _, w := range o.StopWords {
		if err := errors.ValidateWord(w); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.FontSize == 0 {
		o.FontSize = sizing.DefaultMaxFontSize
	}
	if o.Ratio == 0 {
		o.Ratio = sizing.DefaultRatio
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Spiral == "" {
		o.Spiral = DefaultSpiral
	}
	if o.Step == 0 {
		o.Step = spiral.DefaultStep
	}
	if o.MaxCandidates == 0 {
		o.MaxCandidates = layout.DefaultMaxCandidates
		if o.Restart {
			o.MaxCandidates = RestartCandidates(o.Width, o.Height, o.Step)
		}
	}
	o.setLogger()
}

// RestartCandidates is the search ceiling that lets a search restarted from
// the center reach every square-spiral position whose center lies on a
// width x height canvas. Zero arguments take the defaults.
func RestartCandidates(width, height, step int) int {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if step <= 0 {
		step = spiral.DefaultStep
	}
	side := max(width, height)/step + 1
	return side * side
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidatePositive("font size", o.FontSize); err != nil {
		return err
	}
	if o.Ratio < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "ratio must be at least 1, got %v", o.Ratio)
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidSize, "canvas must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Step < 0 || o.MaxCandidates < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "step and max_candidates cannot be negative")
	}
	return ValidateSpiral(o.Spiral)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{string(render.FormatPNG)}
	}
	if o.Foreground == "" {
		o.Foreground = DefaultForeground
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Canvas == "" {
		o.Canvas = DefaultCanvas
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	_, err := o.Palette()
	return err
}

// Palette parses the configured colors.
func (o *Options) Palette() (render.Palette, error) {
	var p render.Palette
	var err error
	if p.Foreground, err = render.ParseColor(o.Foreground); err != nil {
		return p, err
	}
	if p.Background, err = render.ParseColor(o.Background); err != nil {
		return p, err
	}
	if p.Canvas, err = render.ParseColor(o.Canvas); err != nil {
		return p, err
	}
	return p, nil
}

// Excluder returns the stop-word set for counting.
func (o *Options) Excluder() *words.Excluder {
	ex := words.NewExcluder()
	if !o.NoDefaultStopWords {
		ex = words.DefaultExcluder()
	}
	for _, w := range o.StopWords {
		ex.Add(w)
	}
	return ex
}

// LayoutOptions converts the layout fields to layouter options.
func (o *Options) LayoutOptions() ([]layout.Option, error) {
	factory, err := spiral.NewFactory(o.Spiral, o.Step)
	if err != nil {
		return nil, err
	}
	opts := []layout.Option{
		layout.WithSpiral(factory),
		layout.WithMaxCandidates(o.MaxCandidates),
	}
	if o.Restart {
		// Offsets past half the canvas put the word's center off the canvas.
		opts = append(opts,
			layout.WithRestartPerRequest(),
			layout.WithMaxRadius(max(o.Width, o.Height)/2))
	}
	return opts, nil
}

// FontMeasurer resolves the measuring font: Measurer, then FontFile, then
// Go Regular. The result is stored in Measurer.
func (o *Options) FontMeasurer() (*sizing.FontMeasurer, error) {
	if o.Measurer != nil {
		return o.Measurer, nil
	}
	var m *sizing.FontMeasurer
	var err error
	if o.FontFile != "" {
		m, err = sizing.LoadFontMeasurer(o.FontFile)
	} else {
		m, err = sizing.DefaultMeasurer()
	}
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	o.Measurer = m
	return m, nil
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	stop := o.Excluder().Words()
	return cache.LayoutKeyOpts{
		Count:         o.Count,
		MinLength:     o.MinLength,
		StopWords:     stop,
		FontFile:      o.FontFile,
		FontSize:      o.FontSize,
		Ratio:         o.Ratio,
		Width:         o.Width,
		Height:        o.Height,
		Spiral:        o.Spiral,
		Step:          o.Step,
		MaxCandidates: o.MaxCandidates,
		Restart:       o.Restart,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Foreground: strings.ToLower(o.Foreground),
		Background: strings.ToLower(o.Background),
		Canvas:     strings.ToLower(o.Canvas),
		Rectangles: o.Rectangles,
	}
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
