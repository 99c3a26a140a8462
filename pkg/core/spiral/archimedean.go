package spiral

import (
	"math"

	"github.com/matzehuels/tagcloud/pkg/core/geom"
)

// DefaultAngleStep is the angular increment in radians between samples.
const DefaultAngleStep = 0.05

// Archimedean samples the spiral r = spacing·θ/2π, so consecutive turns are
// spacing pixels apart. Samples that round to an already emitted pixel are
// skipped. Once per turn, emitted pixels the spiral has moved past are
// forgotten, so memory grows with the current circumference rather than
// with the number of points emitted.
type Archimedean struct {
	spacing   float64
	angleStep float64
	theta     float64
	pruneAt   float64
	seen      map[geom.Point]struct{}
}

// NewArchimedean creates an Archimedean spiral. Non-positive arguments fall
// back to [DefaultStep] and [DefaultAngleStep].
func NewArchimedean(spacing, angleStep float64) *Archimedean {
	if spacing <= 0 {
		spacing = DefaultStep
	}
	if angleStep <= 0 {
		angleStep = DefaultAngleStep
	}
	return &Archimedean{
		spacing:   spacing,
		angleStep: angleStep,
		seen:      make(map[geom.Point]struct{}),
	}
}

// Next returns the next previously unseen offset on the spiral.
func (a *Archimedean) Next() geom.Point {
	for {
		r := a.spacing * a.theta / (2 * math.Pi)
		if a.theta >= a.pruneAt {
			a.prune(r)
			a.pruneAt = a.theta + 2*math.Pi
		}
		p := geom.Point{
			X: int(math.Round(r * math.Cos(a.theta))),
			Y: int(math.Round(r * math.Sin(a.theta))),
		}
		a.theta += a.angleStep
		if _, dup := a.seen[p]; dup {
			continue
		}
		a.seen[p] = struct{}{}
		return p
	}
}

// prune drops remembered pixels closer to the origin than r-1. Every later
// sample lies at radius r or more and rounds to a pixel at least r-√2/2 out,
// so those pixels cannot come up again.
func (a *Archimedean) prune(r float64) {
	limit := r - 1
	if limit <= 0 {
		return
	}
	limit *= limit
	for p := range a.seen {
		if float64(p.DistanceSquared()) < limit {
			delete(a.seen, p)
		}
	}
}
