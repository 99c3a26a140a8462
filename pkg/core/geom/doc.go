// Package geom provides the integer geometry used by the cloud layouter.
//
// All types are small immutable values: a [Point] is an (x, y) offset, a
// [Size] is a (width, height) pair and a [Rectangle] is an origin plus a size.
// The coordinate system has its origin at the top-left with Y increasing
// downward, matching raster images.
//
// The only predicate with real semantics is [Rectangle.Overlaps]: two
// rectangles overlap when they share interior area. Rectangles that merely
// touch along an edge or at a corner do not overlap.
package geom
