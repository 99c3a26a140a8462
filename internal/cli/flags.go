package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tagcloud/pkg/config"
	"github.com/matzehuels/tagcloud/pkg/core/layout"
	"github.com/matzehuels/tagcloud/pkg/core/spiral"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
	"github.com/matzehuels/tagcloud/pkg/sizing"
)

// Option flags start from the config file; only flags given on the command
// line override it.

// countFlags select the words.
type countFlags struct {
	count         int
	minLength     int
	stopWords     []string
	noDefaultStop bool
}

func (f *countFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.count, "count", "c", pipeline.DefaultCount, "number of words to draw")
	cmd.Flags().IntVar(&f.minLength, "min-length", 1, "ignore shorter words")
	cmd.Flags().StringSliceVarP(&f.stopWords, "stop-word", "x", nil, "additional words to leave out (repeatable)")
	cmd.Flags().BoolVar(&f.noDefaultStop, "no-default-stop-words", false, "keep English function words")
}

func (f *countFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("count") {
		opts.Count = f.count
	}
	if fs.Changed("min-length") {
		opts.MinLength = f.minLength
	}
	if fs.Changed("stop-word") {
		opts.StopWords = append(opts.StopWords, f.stopWords...)
	}
	if fs.Changed("no-default-stop-words") {
		opts.NoDefaultStopWords = f.noDefaultStop
	}
}

// layoutFlags size and place the words.
type layoutFlags struct {
	countFlags
	fontSize      float64
	ratio         float64
	font          string
	width         int
	height        int
	spiral        string
	step          int
	maxCandidates int
	restart       bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	f.countFlags.register(cmd)
	cmd.Flags().Float64Var(&f.fontSize, "font-size", sizing.DefaultMaxFontSize, "font size of the most frequent word")
	cmd.Flags().Float64Var(&f.ratio, "ratio", sizing.DefaultRatio, "ratio between the largest and smallest font size")
	cmd.Flags().StringVar(&f.font, "font", "", "TTF/OTF font file (default: Go Regular)")
	cmd.Flags().IntVar(&f.width, "width", pipeline.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&f.height, "height", pipeline.DefaultHeight, "image height in pixels")
	cmd.Flags().StringVar(&f.spiral, "spiral", pipeline.DefaultSpiral, "candidate spiral: square, archimedean")
	cmd.Flags().IntVar(&f.step, "step", spiral.DefaultStep, "spiral step in pixels")
	cmd.Flags().IntVar(&f.maxCandidates, "max-candidates", 0, fmt.Sprintf("positions probed per word before skipping it (0: %d, or enough to cover the canvas with --restart)", layout.DefaultMaxCandidates))
	cmd.Flags().BoolVar(&f.restart, "restart", false, "search every word from the center (denser, slower)")
}

func (f *layoutFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	f.countFlags.apply(cmd, opts)
	fs := cmd.Flags()
	if fs.Changed("font-size") {
		opts.FontSize = f.fontSize
	}
	if fs.Changed("ratio") {
		opts.Ratio = f.ratio
	}
	if fs.Changed("font") {
		opts.FontFile = f.font
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("spiral") {
		opts.Spiral = f.spiral
	}
	if fs.Changed("step") {
		opts.Step = f.step
	}
	if fs.Changed("max-candidates") {
		opts.MaxCandidates = f.maxCandidates
	}
	if fs.Changed("restart") {
		opts.Restart = f.restart
	}
}

// styleFlags choose how the cloud is drawn.
type styleFlags struct {
	formats     string
	color       string
	backColor   string
	canvasColor string
	rectangles  bool
}

func (f *styleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "png", "output format(s): svg, png, jpeg, gif, bmp, json (comma-separated)")
	cmd.Flags().StringVar(&f.color, "color", pipeline.DefaultForeground, "word color (name or #rrggbb)")
	cmd.Flags().StringVar(&f.backColor, "back-color", pipeline.DefaultBackground, "color of the ellipse behind each word")
	cmd.Flags().StringVar(&f.canvasColor, "canvas-color", pipeline.DefaultCanvas, "image background color")
	cmd.Flags().BoolVar(&f.rectangles, "rectangles", false, "draw word rectangles instead of words")
}

func (f *styleFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	fs := cmd.Flags()
	if fs.Changed("format") {
		opts.Formats = parseFormats(f.formats, opts.Formats)
	}
	if fs.Changed("color") {
		opts.Foreground = f.color
	}
	if fs.Changed("back-color") {
		opts.Background = f.backColor
	}
	if fs.Changed("canvas-color") {
		opts.Canvas = f.canvasColor
	}
	opts.Rectangles = f.rectangles
}

// outputFlags name the written files.
type outputFlags struct {
	name    string
	outPath string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "name", "n", "cloud", "output file name without extension")
	cmd.Flags().StringVarP(&f.outPath, "out-path", "o", "", "output directory (default: current directory)")
}

// target resolves and validates the output directory and base name.
func (f *outputFlags) target(cmd *cobra.Command, cfg config.Config) (outputTarget, error) {
	t := outputTarget{dir: cfg.Output.Dir, name: cfg.Output.Name}
	if cmd.Flags().Changed("name") || t.name == "" {
		t.name = f.name
	}
	if cmd.Flags().Changed("out-path") {
		t.dir = f.outPath
	}
	if t.dir == "" {
		t.dir = "."
	}
	t.name = strings.TrimSpace(t.name)
	if err := errors.ValidateFileName(t.name); err != nil {
		return t, err
	}
	if err := errors.ValidateOutputDir(t.dir); err != nil {
		return t, err
	}
	return t, nil
}

type outputTarget struct {
	dir  string
	name string
}

// path returns <dir>/<name>.<ext>.
func (t outputTarget) path(ext string) string {
	return filepath.Join(t.dir, t.name+"."+ext)
}
