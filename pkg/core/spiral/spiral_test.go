package spiral

import (
	"testing"

	"github.com/matzehuels/tagcloud/pkg/core/geom"
)

func take(g Generator, n int) []geom.Point {
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = g.Next()
	}
	return pts
}

func TestSquareFirstPoints(t *testing.T) {
	want := []geom.Point{
		{X: 0, Y: 0},
		{X: 1, Y: 0}, {X: 1, Y: 1},
		{X: 0, Y: 1}, {X: -1, Y: 1},
		{X: -1, Y: 0}, {X: -1, Y: -1},
		{X: 0, Y: -1}, {X: 1, Y: -1}, {X: 2, Y: -1},
		{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
	}
	got := take(NewSquare(1), len(want))
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("point %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSquareStepScalesOffsets(t *testing.T) {
	pts := take(NewSquare(10), 4)
	want := []geom.Point{{}, {X: 10}, {X: 10, Y: 10}, {Y: 10}}
	for i := range want {
		if pts[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, pts[i], want[i])
		}
	}
}

func TestSquareInvalidStepFallsBack(t *testing.T) {
	for _, step := range []int{0, -5} {
		if got := NewSquare(step).Step(); got != DefaultStep {
			t.Errorf("NewSquare(%d).Step() = %d, want %d", step, got, DefaultStep)
		}
	}
}

func TestSquareRingsNeverShrink(t *testing.T) {
	pts := take(NewSquare(1), 10000)
	for i := 1; i < len(pts); i++ {
		if pts[i].Chebyshev() < pts[i-1].Chebyshev() {
			t.Fatalf("ring shrank at %d: %v after %v", i, pts[i], pts[i-1])
		}
	}
}

func TestSquareCoversRingsCompletely(t *testing.T) {
	// (2k+1)^2 points cover every cell with Chebyshev distance <= k.
	const k = 6
	pts := take(NewSquare(1), (2*k+1)*(2*k+1))
	seen := make(map[geom.Point]bool, len(pts))
	for _, p := range pts {
		if seen[p] {
			t.Fatalf("duplicate point %v", p)
		}
		seen[p] = true
	}
	for x := -k; x <= k; x++ {
		for y := -k; y <= k; y++ {
			if !seen[geom.Pt(x, y)] {
				t.Errorf("cell (%d,%d) not visited", x, y)
			}
		}
	}
}

func TestArchimedeanNoDuplicates(t *testing.T) {
	pts := take(NewArchimedean(2, 0.1), 5000)
	if pts[0] != (geom.Point{}) {
		t.Errorf("first point = %v, want origin", pts[0])
	}
	seen := make(map[geom.Point]bool, len(pts))
	for i, p := range pts {
		if seen[p] {
			t.Fatalf("point %d %v emitted twice", i, p)
		}
		seen[p] = true
	}
}

func TestArchimedeanForgetsInnerTurns(t *testing.T) {
	a := NewArchimedean(2, 0.05)
	all := make(map[geom.Point]bool)
	for i := 0; i < 20000; i++ {
		p := a.Next()
		if all[p] {
			t.Fatalf("point %d %v emitted twice", i, p)
		}
		all[p] = true
	}
	if len(a.seen) >= len(all)/2 {
		t.Errorf("remembers %d of %d emitted points, want inner turns pruned", len(a.seen), len(all))
	}
}

func TestArchimedeanMovesOutward(t *testing.T) {
	pts := take(NewArchimedean(5, 0.05), 3000)
	// Rounding allows small local wobble; compare distant samples.
	for i := 500; i < len(pts); i += 500 {
		if pts[i].DistanceSquared() <= pts[i-500].DistanceSquared() {
			t.Errorf("point %d %v not farther out than point %d %v", i, pts[i], i-500, pts[i-500])
		}
	}
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	for _, kind := range []string{KindSquare, KindArchimedean} {
		t.Run(kind, func(t *testing.T) {
			f, err := NewFactory(kind, 3)
			if err != nil {
				t.Fatalf("NewFactory: %v", err)
			}
			a, b := take(f(), 500), take(f(), 500)
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
				}
			}
		})
	}
}

func TestNewFactory(t *testing.T) {
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{"square", false},
		{"archimedean", false},
		{"", false},
		{"hexagonal", true},
		{"Square", true},
	}
	for _, tt := range tests {
		_, err := NewFactory(tt.kind, 1)
		if (err != nil) != tt.wantErr {
			t.Errorf("NewFactory(%q) error = %v, wantErr %v", tt.kind, err, tt.wantErr)
		}
	}
}
