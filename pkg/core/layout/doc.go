// Package layout places rectangles around a fixed center without overlap.
//
// # Overview
//
// A [CloudLayouter] owns a center point and the append-only sequence of
// rectangles it has placed. Each call to [CloudLayouter.PutNextRectangle]
// pulls candidate offsets from a [spiral.Generator], centers a rectangle of
// the requested size on center+offset and accepts the first candidate that
// does not overlap any placed rectangle (see [Overlaps]).
//
// Placement is greedy and single-pass. "First" means first in spiral emission
// order, so results are fully deterministic for a given center, spiral,
// ceiling and request sequence.
//
// # Search Ceiling
//
// Spirals never end, so every request is bounded by [WithMaxCandidates] and
// optionally [WithMaxRadius]. When the ceiling is hit the request fails with
// [ErrNoSpaceFound] and the layouter is left exactly as it was: nothing is
// placed and the candidates probed by the failed request are queued so the
// next request sees them again, as if the cursor had not moved.
//
// # Ordering
//
// Callers should request rectangles in descending size order so the largest
// words claim the central positions. The layouter does not enforce this.
//
// # Concurrency
//
// A CloudLayouter is not safe for concurrent use: every placement depends on
// all previous ones. Independent clouds use independent instances, which
// share no state.
//
//	l := layout.New(geom.Pt(500, 500),
//	    layout.WithSpiral(spiral.Factory(func() spiral.Generator { return spiral.NewSquare(10) })),
//	    layout.WithMaxCandidates(5000),
//	)
//	r, err := l.PutNextRectangle(geom.Sz(120, 40))
//
// [spiral.Generator]: github.com/matzehuels/tagcloud/pkg/core/spiral
package layout
