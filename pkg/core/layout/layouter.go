package layout

import (
	"github.com/matzehuels/tagcloud/pkg/core/geom"
	"github.com/matzehuels/tagcloud/pkg/core/spiral"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

// DefaultMaxCandidates is the default search ceiling per request.
const DefaultMaxCandidates = 100_000

// Sentinel errors. Returned errors carry request details but match these
// under errors.Is because they share the code.
var (
	ErrInvalidSize  = errors.New(errors.ErrCodeInvalidSize, "rectangle size must be positive")
	ErrNoSpaceFound = errors.New(errors.ErrCodeNoSpaceFound, "no collision-free position within search ceiling")
)

// Option configures a CloudLayouter.
type Option func(*CloudLayouter)

// WithSpiral sets the factory for the candidate generator.
// Default: square spiral with step 1.
func WithSpiral(f spiral.Factory) Option {
	return func(l *CloudLayouter) {
		if f != nil {
			l.factory = f
		}
	}
}

// WithMaxCandidates caps the number of candidates probed per request.
// Non-positive values keep the default.
func WithMaxCandidates(n int) Option {
	return func(l *CloudLayouter) {
		if n > 0 {
			l.maxCandidates = n
		}
	}
}

// WithMaxRadius stops a search once a candidate offset lies more than r
// pixels from the center (Chebyshev distance). Zero disables the check.
func WithMaxRadius(r int) Option {
	return func(l *CloudLayouter) {
		if r >= 0 {
			l.maxRadius = r
		}
	}
}

// WithRestartPerRequest makes every request probe a fresh spiral from the
// center instead of continuing where the previous request stopped. This packs
// small late words into gaps near the center at the cost of more probes.
func WithRestartPerRequest() Option {
	return func(l *CloudLayouter) { l.restart = true }
}

// CloudLayouter places rectangles around a fixed center.
type CloudLayouter struct {
	center        geom.Point
	placed        []geom.Rectangle
	factory       spiral.Factory
	cursor        spiral.Generator
	pending       []geom.Point // probed by a failed request, replayed first
	maxCandidates int
	maxRadius     int
	restart       bool
}

// New creates a layouter bound to center.
func New(center geom.Point, opts ...Option) *CloudLayouter {
	l := &CloudLayouter{
		center:        center,
		factory:       func() spiral.Generator { return spiral.NewSquare(spiral.DefaultStep) },
		maxCandidates: DefaultMaxCandidates,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cursor = l.factory()
	return l
}

// Center returns the fixed center point.
func (l *CloudLayouter) Center() geom.Point { return l.center }

// Len returns the number of placed rectangles.
func (l *CloudLayouter) Len() int { return len(l.placed) }

// Rectangles returns a copy of the placed rectangles in placement order.
func (l *CloudLayouter) Rectangles() []geom.Rectangle {
	out := make([]geom.Rectangle, len(l.placed))
	copy(out, l.placed)
	return out
}

// Bounds returns the smallest rectangle containing every placed rectangle.
func (l *CloudLayouter) Bounds() geom.Rectangle {
	var b geom.Rectangle
	for _, r := range l.placed {
		b = b.Union(r)
	}
	return b
}

// PutNextRectangle places a rectangle of the given size at the first
// collision-free spiral position and returns it.
//
// It fails with [ErrInvalidSize] when either dimension is not positive and
// with [ErrNoSpaceFound] when the search ceiling is reached. In both cases
// the layouter state is unchanged.
func (l *CloudLayouter) PutNextRectangle(size geom.Size) (geom.Rectangle, error) {
	if !size.IsValid() {
		return geom.Rectangle{}, errors.New(errors.ErrCodeInvalidSize,
			"rectangle size must be positive, got %v", size)
	}

	if l.restart {
		return l.searchFresh(size)
	}
	return l.searchShared(size)
}

// searchShared continues the layouter's own cursor. Probed offsets are
// collected so a failed search can hand them back through pending.
func (l *CloudLayouter) searchShared(size geom.Size) (geom.Rectangle, error) {
	probed := make([]geom.Point, 0, min(l.maxCandidates, 1024))
	for len(probed) < l.maxCandidates {
		offset := l.nextOffset(len(probed))
		probed = append(probed, offset)
		if l.beyondRadius(offset) {
			break
		}
		if r, ok := l.tryPlace(offset, size); ok {
			l.consume(len(probed))
			return r, nil
		}
	}
	l.requeue(probed)
	return geom.Rectangle{}, l.noSpace(size, len(probed))
}

// searchFresh probes a new spiral from the center; no cursor state survives.
func (l *CloudLayouter) searchFresh(size geom.Size) (geom.Rectangle, error) {
	g := l.factory()
	for i := 0; i < l.maxCandidates; i++ {
		offset := g.Next()
		if l.beyondRadius(offset) {
			return geom.Rectangle{}, l.noSpace(size, i+1)
		}
		if r, ok := l.tryPlace(offset, size); ok {
			return r, nil
		}
	}
	return geom.Rectangle{}, l.noSpace(size, l.maxCandidates)
}

// nextOffset returns the i-th candidate of the current request: queued
// offsets first, then fresh ones from the cursor.
func (l *CloudLayouter) nextOffset(i int) geom.Point {
	if i < len(l.pending) {
		return l.pending[i]
	}
	return l.cursor.Next()
}

// consume drops the first n candidates of the current request from pending.
func (l *CloudLayouter) consume(n int) {
	if n >= len(l.pending) {
		l.pending = nil
		return
	}
	l.pending = l.pending[n:]
}

// requeue replaces pending with everything the failed request probed, which
// starts with the old pending entries it replayed.
func (l *CloudLayouter) requeue(probed []geom.Point) {
	if len(probed) >= len(l.pending) {
		l.pending = probed
		return
	}
	// Ceiling smaller than the queue: keep the unreplayed tail.
	l.pending = append(probed, l.pending[len(probed):]...)
}

func (l *CloudLayouter) tryPlace(offset geom.Point, size geom.Size) (geom.Rectangle, bool) {
	candidate := geom.CenteredAt(l.center.Add(offset), size)
	if Overlaps(candidate, l.placed) {
		return geom.Rectangle{}, false
	}
	l.placed = append(l.placed, candidate)
	return candidate, true
}

func (l *CloudLayouter) beyondRadius(offset geom.Point) bool {
	return l.maxRadius > 0 && offset.Chebyshev() > l.maxRadius
}

func (l *CloudLayouter) noSpace(size geom.Size, probed int) error {
	return errors.New(errors.ErrCodeNoSpaceFound,
		"no collision-free position for %v after %d candidates", size, probed)
}
