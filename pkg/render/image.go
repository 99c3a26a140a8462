package render

import (
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
	"github.com/matzehuels/tagcloud/pkg/sizing"
)

// RenderPNG draws the cloud as a PNG image.
func RenderPNG(c *cloud.Cloud, opts ...Option) ([]byte, error) {
	return RenderImage(c, FormatPNG, opts...)
}

// RenderImage draws the cloud and encodes it in a raster format.
func RenderImage(c *cloud.Cloud, format Format, opts ...Option) ([]byte, error) {
	if !format.IsRaster() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%q is not a raster format", format)
	}
	img, err := Draw(c, opts...)
	if err != nil {
		return nil, err
	}
	r := newRenderer(opts...)
	return encode(img, format, r.quality)
}

// Draw rasterizes the cloud into an image.
func Draw(c *cloud.Cloud, opts ...Option) (image.Image, error) {
	if err := c.CheckBounds(); err != nil {
		return nil, err
	}
	r := newRenderer(opts...)

	dc := gg.NewContext(c.Width, c.Height)
	dc.SetColor(r.palette.Canvas)
	dc.Clear()

	if r.rectangles {
		drawRectangles(dc, c, r.palette)
		return dc.Image(), nil
	}
	if err := drawWords(dc, c, &r); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func drawWords(dc *gg.Context, c *cloud.Cloud, r *renderer) error {
	fm := r.font
	if fm == nil {
		var err error
		if fm, err = sizing.DefaultMeasurer(); err != nil {
			return err
		}
	}

	dc.SetColor(r.palette.Background)
	for _, w := range c.Words {
		cx, cy, rx, ry := ellipse(w.Rect)
		dc.DrawEllipse(cx, cy, rx, ry)
		dc.Fill()
	}

	faces := make(map[float64]font.Face)
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()
	for i, w := range c.Words {
		face, ok := faces[w.FontSize]
		if !ok {
			var err error
			if face, err = fm.NewFace(w.FontSize); err != nil {
				return err
			}
			faces[w.FontSize] = face
		}
		// Baseline sits one ascent below the rectangle top, matching how the
		// word was measured.
		dc.SetFontFace(face)
		dc.SetColor(rankColor(r.palette.Foreground, i, len(c.Words)))
		cx, _, _, _ := ellipse(w.Rect)
		baseline := float64(w.Rect.Top()) + float64(face.Metrics().Ascent.Ceil())
		dc.DrawStringAnchored(w.Text, cx, baseline, 0.5, 0)
	}
	return nil
}

func drawRectangles(dc *gg.Context, c *cloud.Cloud, p Palette) {
	dc.SetLineWidth(1)
	for i, t := range distanceShades(c) {
		rect := c.Words[i].Rect
		dc.SetColor(scale(p.Foreground, t))
		dc.DrawRectangle(float64(rect.Left())+0.5, float64(rect.Top())+0.5,
			float64(rect.Size.Width-1), float64(rect.Size.Height-1))
		dc.Stroke()
	}
}

func encode(img image.Image, format Format, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatPNG:
		err = png.Encode(&buf, img)
	case FormatJPEG:
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: max(1, min(100, quality))})
	case FormatGIF:
		err = gif.Encode(&buf, img, nil)
	case FormatBMP:
		err = bmp.Encode(&buf, img)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%q is not a raster format", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", format)
	}
	return buf.Bytes(), nil
}
