// Package spiral generates candidate offsets for the cloud layouter.
//
// # Overview
//
// A [Generator] is a lazy, infinite, pull-based cursor. Each call to
// [Generator.Next] returns the next offset on an outward path around (0, 0);
// callers translate the offset by their own center. A generator never
// terminates and never emits the same point twice, so bounding the search is
// the caller's job.
//
// Two traversals are provided:
//
//   - [Square]: walks the four sides of growing concentric squares on a grid
//     of step pixels (right, down, left, up with side lengths 1, 1, 2, 2, ...).
//     The ring index (Chebyshev distance) of emitted points never decreases.
//
//   - [Archimedean]: samples r = spacing·θ/2π at a fixed angular step and
//     rounds to integer pixels, skipping points that rounding already produced.
//
// # Restarting
//
// Generators cannot be rewound. A fresh traversal is obtained by building a
// new instance, usually through a [Factory]:
//
//	f, err := spiral.NewFactory(spiral.KindSquare, 10)
//	g := f()
//	first := g.Next() // (0, 0)
package spiral
