package render

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/cloud"
)

// RenderSVG draws the cloud as a standalone SVG document.
func RenderSVG(c *cloud.Cloud, opts ...Option) ([]byte, error) {
	if err := c.CheckBounds(); err != nil {
		return nil, err
	}
	r := newRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		c.Width, c.Height, c.Width, c.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", Hex(r.palette.Canvas))

	if r.rectangles {
		renderSVGRectangles(&buf, c, r.palette)
	} else {
		renderSVGWords(&buf, c, &r)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

func renderSVGWords(buf *bytes.Buffer, c *cloud.Cloud, r *renderer) {
	bg := Hex(r.palette.Background)
	for _, w := range c.Words {
		cx, cy, rx, ry := ellipse(w.Rect)
		fmt.Fprintf(buf, `  <ellipse cx="%.1f" cy="%.1f" rx="%.1f" ry="%.1f" fill="%s"/>`+"\n", cx, cy, rx, ry, bg)
	}

	fmt.Fprintf(buf, `  <g font-family="%s" text-anchor="middle" dominant-baseline="central">`+"\n", escapeXML(r.fontFamily))
	for i, w := range c.Words {
		cx, cy, _, _ := ellipse(w.Rect)
		fill := Hex(rankColor(r.palette.Foreground, i, len(c.Words)))
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.2f" fill="%s">%s</text>`+"\n",
			cx, cy, w.FontSize, fill, escapeXML(w.Text))
	}
	buf.WriteString("  </g>\n")
}

func renderSVGRectangles(buf *bytes.Buffer, c *cloud.Cloud, p Palette) {
	for i, t := range distanceShades(c) {
		rect := c.Words[i].Rect
		fmt.Fprintf(buf, `  <rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="%s" stroke-width="1"/>`+"\n",
			rect.Left(), rect.Top(), rect.Size.Width, rect.Size.Height, Hex(scale(p.Foreground, t)))
	}
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
