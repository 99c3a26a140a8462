// Package render draws a placed [cloud.Cloud] as SVG, raster images or JSON.
//
// # Overview
//
// Every sink checks the cloud against its canvas first and fails with
// cloud.ErrOutOfBounds when a word would be clipped. The drawing itself
// follows one recipe in all formats:
//
//  1. Fill the canvas with the canvas color.
//  2. Fill an ellipse inscribed in every word rectangle with the background
//     color.
//  3. Draw each word centered in its rectangle. Words are shaded by rank:
//     the i-th of n words gets the foreground color scaled by (i/n)^0.4,
//     so the most frequent word is the darkest.
//
// [WithRectangles] switches to a debug drawing that outlines the rectangles
// only, shading each by its distance from the cloud center.
//
// # Formats
//
// [FormatSVG] is built by hand into a bytes.Buffer. Raster formats
// ([FormatPNG], [FormatJPEG], [FormatGIF], [FormatBMP]) are drawn with
// fogleman/gg using the same OpenType font that measured the words, so text
// fits its rectangle exactly. [FormatJSON] is the cloud itself.
//
//	data, err := render.Render(c, render.FormatPNG,
//	    render.WithPalette(render.Palette{Foreground: navy, Background: white, Canvas: white}),
//	)
//
// [cloud.Cloud]: github.com/matzehuels/tagcloud/pkg/cloud
package render
