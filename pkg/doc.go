// Package pkg provides the core libraries for tagcloud word-cloud generation.
//
// # Overview
//
// Tagcloud turns plain text into a tag cloud: words are counted, sized by
// frequency and packed without overlap around the center of a canvas by
// walking a spiral outward from it. The pkg directory is organized into
// three areas:
//
//  1. [core] - Domain logic (geometry, spirals, rectangle packing)
//  2. Text and sizing - [words] tokenizes and counts, [sizing] maps counts
//     to font sizes and measures labels
//  3. Orchestration - [pipeline] runs count, layout and render with
//     [cache] in front of the expensive steps
//
// # Architecture
//
// The typical data flow through tagcloud:
//
//	Text (file, stdin, HTTP body)
//	         ↓
//	    [words] package (decode, tokenize, exclude, rank)
//	         ↓
//	    [sizing] package (font size per word, label extents)
//	         ↓
//	    [core/layout] package (place rectangles along a spiral)
//	         ↓
//	    [cloud] package (placed words, JSON form)
//	         ↓
//	    [render] package (SVG/PNG/JPEG/GIF/BMP)
//
// # Quick Start
//
// Lay out a handful of rectangles directly:
//
//	import (
//	    "github.com/matzehuels/tagcloud/pkg/core/geom"
//	    "github.com/matzehuels/tagcloud/pkg/core/layout"
//	)
//
//	l := layout.New(geom.Point{X: 400, Y: 300})
//	r, err := l.PutNextRectangle(geom.Size{Width: 120, Height: 40})
//
// Or run the whole pipeline over some text:
//
//	opts := pipeline.Options{Text: text, Formats: []string{"svg"}}
//	runner := pipeline.NewRunner(cache.NewNullCache(), cache.NewDefaultKeyer(), nil)
//	res, err := runner.Execute(ctx, opts)
//	svg := res.Artifacts["svg"]
//
// # Main Packages
//
// [core/geom] - Integer points, sizes and rectangles with intersection tests.
//
// [core/spiral] - Point generators that walk outward from a center: an
// Archimedean spiral and a square (Ulam) spiral.
//
// [core/layout] - CloudLayouter places rectangles one at a time so that no
// two intersect, reporting NO_SPACE_FOUND when the candidate budget runs out.
//
// [cloud] - The laid-out cloud with its canvas, and its JSON encoding.
//
// [render] - Vector and raster output with named or hex colors.
//
// [pipeline] - Options, validation and the Runner that ties the stages to
// the cache.
//
// [cache] - Memory, file, Redis and null backends behind one interface, with
// content-addressed keys.
//
// [config] - TOML configuration shared by the CLI and the HTTP server.
//
// [errors] - Coded errors that map to exit codes and HTTP statuses.
//
// [observability] - Hook registry for pipeline and HTTP events.
package pkg
