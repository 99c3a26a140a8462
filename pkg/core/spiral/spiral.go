package spiral

import (
	"fmt"

	"github.com/matzehuels/tagcloud/pkg/core/geom"
)

// DefaultStep is the grid spacing used when a non-positive step is supplied.
const DefaultStep = 1

// Spiral kinds accepted by [NewFactory].
const (
	KindSquare      = "square"
	KindArchimedean = "archimedean"
)

// Generator produces an unbounded sequence of offsets from the origin.
// Implementations are stateful and not safe for concurrent use.
type Generator interface {
	Next() geom.Point
}

// Factory builds a fresh generator positioned at the start of its path.
type Factory func() Generator

// NewFactory returns a factory for the named spiral kind.
// An empty kind selects the square spiral.
func NewFactory(kind string, step int) (Factory, error) {
	switch kind {
	case KindSquare, "":
		return func() Generator { return NewSquare(step) }, nil
	case KindArchimedean:
		return func() Generator { return NewArchimedean(float64(step), DefaultAngleStep) }, nil
	default:
		return nil, fmt.Errorf("unknown spiral kind: %q (must be one of: square, archimedean)", kind)
	}
}

// ValidKinds lists the accepted spiral kinds.
var ValidKinds = map[string]bool{
	KindSquare:      true,
	KindArchimedean: true,
}

// =============================================================================
// Square
// =============================================================================

// directions in walk order: right, down, left, up.
var directions = [4]geom.Point{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}}

// Square walks a square spiral on a grid of Step pixels.
//
// The first point is the origin. Each subsequent point is one grid cell away
// from the previous one; after every two legs the leg length grows by one.
type Square struct {
	step    int
	cell    geom.Point // position in grid units
	dir     int
	legLen  int
	legPos  int
	legs    int
	started bool
}

// NewSquare creates a square spiral with the given grid step.
func NewSquare(step int) *Square {
	if step <= 0 {
		step = DefaultStep
	}
	return &Square{step: step, legLen: 1}
}

// Step returns the grid spacing in pixels.
func (s *Square) Step() int { return s.step }

// Next returns the next offset on the spiral.
func (s *Square) Next() geom.Point {
	if !s.started {
		s.started = true
		return geom.Point{}
	}

	s.cell = s.cell.Add(directions[s.dir])
	s.legPos++
	if s.legPos == s.legLen {
		s.legPos = 0
		s.dir = (s.dir + 1) % len(directions)
		s.legs++
		if s.legs%2 == 0 {
			s.legLen++
		}
	}
	return geom.Point{X: s.cell.X * s.step, Y: s.cell.Y * s.step}
}
