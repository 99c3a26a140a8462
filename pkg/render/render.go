package render

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/core/geom"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/sizing"
)

// Format is an output format name, also used as the file extension.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatGIF  Format = "gif"
	FormatBMP  Format = "bmp"
	FormatJSON Format = "json"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatJSON}

// ParseFormat normalizes a format name or extension ("PNG", ".jpg").
func ParseFormat(s string) (Format, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	if s == "jpg" {
		s = string(FormatJPEG)
	}
	if f := Format(s); slices.Contains(Formats, f) {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", s)
}

// Ext returns the file extension without the dot.
func (f Format) Ext() string { return string(f) }

// ContentType returns the MIME type for HTTP responses.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatGIF:
		return "image/gif"
	case FormatBMP:
		return "image/bmp"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// IsRaster reports whether f is drawn with gg.
func (f Format) IsRaster() bool {
	switch f {
	case FormatPNG, FormatJPEG, FormatGIF, FormatBMP:
		return true
	}
	return false
}

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	palette    Palette
	rectangles bool
	fontFamily string
	font       *sizing.FontMeasurer
	quality    int
}

// WithPalette sets the drawing colors.
func WithPalette(p Palette) Option { return func(r *renderer) { r.palette = p } }

// WithRectangles draws only rectangle outlines shaded by distance from the center.
func WithRectangles() Option { return func(r *renderer) { r.rectangles = true } }

// WithFontFamily sets the SVG font-family attribute.
func WithFontFamily(family string) Option { return func(r *renderer) { r.fontFamily = family } }

// WithFont sets the font raster formats draw with. It should be the font
// the words were measured with.
func WithFont(m *sizing.FontMeasurer) Option { return func(r *renderer) { r.font = m } }

// WithQuality sets JPEG quality (1-100, default 90).
func WithQuality(q int) Option { return func(r *renderer) { r.quality = q } }

func newRenderer(opts ...Option) renderer {
	r := renderer{palette: DefaultPalette, fontFamily: "Go, sans-serif", quality: 90}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// Render draws c in the given format.
func Render(c *cloud.Cloud, format Format, opts ...Option) ([]byte, error) {
	switch format {
	case FormatSVG:
		return RenderSVG(c, opts...)
	case FormatJSON:
		return RenderJSON(c)
	case FormatPNG, FormatJPEG, FormatGIF, FormatBMP:
		return RenderImage(c, format, opts...)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

// RenderJSON encodes the cloud after checking it fits its canvas.
func RenderJSON(c *cloud.Cloud) ([]byte, error) {
	if err := c.CheckBounds(); err != nil {
		return nil, err
	}
	return cloud.Marshal(c)
}

// distanceShades returns the outline shade of each word for the rectangle
// drawing: distance of its rectangle center from the cloud center over the
// largest such distance.
func distanceShades(c *cloud.Cloud) []float64 {
	dists := make([]float64, len(c.Words))
	maxDist := 0.0
	for i, w := range c.Words {
		d := math.Sqrt(float64(w.Rect.Center().Sub(c.Center).DistanceSquared()))
		dists[i] = d
		maxDist = max(maxDist, d)
	}
	if maxDist == 0 {
		return make([]float64, len(c.Words))
	}
	for i := range dists {
		dists[i] /= maxDist
	}
	return dists
}

func ellipse(r geom.Rectangle) (cx, cy, rx, ry float64) {
	rx = float64(r.Size.Width) / 2
	ry = float64(r.Size.Height) / 2
	return float64(r.Left()) + rx, float64(r.Top()) + ry, rx, ry
}
