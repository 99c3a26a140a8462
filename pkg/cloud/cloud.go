package cloud

import (
	"context"

	"github.com/matzehuels/tagcloud/pkg/core/geom"
	"github.com/matzehuels/tagcloud/pkg/core/layout"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/sizing"
)

// ErrOutOfBounds is returned when a placed word leaves the canvas.
var ErrOutOfBounds = errors.New(errors.ErrCodeOutOfBounds, "too small image size")

// PlacedWord is a word with its final rectangle on the canvas.
type PlacedWord struct {
	Text     string         `json:"text"`
	Count    int            `json:"count"`
	FontSize float64        `json:"font_size"`
	Rect     geom.Rectangle `json:"rect"`
}

// Cloud is a finished layout on a canvas of Width x Height pixels.
// Words are in placement order, which is descending frequency.
type Cloud struct {
	Center  geom.Point   `json:"center"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Words   []PlacedWord `json:"words"`
	Skipped []string     `json:"skipped,omitempty"`
}

// Canvas returns the canvas rectangle anchored at the origin.
func (c *Cloud) Canvas() geom.Rectangle {
	return geom.Rect(0, 0, c.Width, c.Height)
}

// Bounds returns the union of all placed rectangles.
func (c *Cloud) Bounds() geom.Rectangle {
	var b geom.Rectangle
	for _, w := range c.Words {
		b = b.Union(w.Rect)
	}
	return b
}

// MaxCount returns the highest frequency among placed words.
func (c *Cloud) MaxCount() int {
	m := 0
	for _, w := range c.Words {
		m = max(m, w.Count)
	}
	return m
}

// CheckBounds reports ErrOutOfBounds if any word extends past the canvas.
func (c *Cloud) CheckBounds() error {
	canvas := c.Canvas()
	for _, w := range c.Words {
		if !canvas.Contains(w.Rect) {
			return errors.Wrap(errors.ErrCodeOutOfBounds, ErrOutOfBounds,
				"word %q at %v does not fit a %dx%d canvas", w.Text, w.Rect, c.Width, c.Height)
		}
	}
	return nil
}

// Build lays out words on a canvas of the given size, centered on the canvas
// midpoint. Words that cannot be placed, or that have an empty size, are
// skipped and recorded in Cloud.Skipped. Any other failure aborts the build.
func Build(ctx context.Context, canvas geom.Size, words []sizing.Word, opts ...layout.Option) (*Cloud, error) {
	if !canvas.IsValid() {
		return nil, errors.New(errors.ErrCodeInvalidSize, "canvas must be positive, got %v", canvas)
	}

	center := geom.Pt(canvas.Width/2, canvas.Height/2)
	l := layout.New(center, opts...)

	c := &Cloud{
		Center: center,
		Width:  canvas.Width,
		Height: canvas.Height,
		Words:  make([]PlacedWord, 0, len(words)),
	}
	for _, w := range words {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := l.PutNextRectangle(w.Size)
		switch {
		case err == nil:
			c.Words = append(c.Words, PlacedWord{Text: w.Text, Count: w.Count, FontSize: w.FontSize, Rect: r})
		case errors.Is(err, errors.ErrCodeNoSpaceFound), errors.Is(err, errors.ErrCodeInvalidSize):
			c.Skipped = append(c.Skipped, w.Text)
		default:
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "place %q", w.Text)
		}
	}
	return c, nil
}
