package geom

import "testing"

func TestRectangleEdges(t *testing.T) {
	r := Rect(10, 20, 30, 40)
	if r.Left() != 10 || r.Top() != 20 || r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("edges = %d,%d,%d,%d, want 10,20,40,60", r.Left(), r.Top(), r.Right(), r.Bottom())
	}
	if got := r.Center(); got != Pt(25, 40) {
		t.Errorf("Center() = %v, want (25,40)", got)
	}
}

func TestCenteredAt(t *testing.T) {
	tests := []struct {
		name   string
		center Point
		size   Size
		want   Rectangle
	}{
		{"even", Pt(500, 500), Sz(120, 40), Rect(440, 480, 120, 40)},
		{"odd", Pt(0, 0), Sz(5, 3), Rect(-2, -1, 5, 3)},
		{"unit", Pt(7, 9), Sz(1, 1), Rect(7, 9, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CenteredAt(tt.center, tt.size)
			if got != tt.want {
				t.Errorf("CenteredAt() = %v, want %v", got, tt.want)
			}
			if got.Center() != tt.center {
				t.Errorf("Center() = %v, want %v", got.Center(), tt.center)
			}
		})
	}
}

func TestRectangleOverlaps(t *testing.T) {
	base := Rect(0, 0, 10, 10)
	tests := []struct {
		name  string
		other Rectangle
		want  bool
	}{
		{"identical", Rect(0, 0, 10, 10), true},
		{"inside", Rect(2, 2, 3, 3), true},
		{"partial", Rect(5, 5, 10, 10), true},
		{"touching right edge", Rect(10, 0, 5, 10), false},
		{"touching bottom edge", Rect(0, 10, 10, 5), false},
		{"touching corner", Rect(10, 10, 5, 5), false},
		{"disjoint", Rect(20, 20, 5, 5), false},
		{"one pixel in", Rect(9, 9, 5, 5), true},
		{"overlap x only", Rect(5, 15, 10, 10), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps() is not symmetric: %v", got)
			}
		})
	}
}

func TestRectangleUnion(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(20, -5, 5, 5)
	if got, want := a.Union(b), Rect(0, -5, 25, 15); got != want {
		t.Errorf("Union() = %v, want %v", got, want)
	}
	if got := (Rectangle{}).Union(a); got != a {
		t.Errorf("empty Union() = %v, want %v", got, a)
	}
	if !a.Union(b).Contains(a) || !a.Union(b).Contains(b) {
		t.Error("Union() should contain both operands")
	}
}

func TestPointChebyshev(t *testing.T) {
	tests := []struct {
		p    Point
		want int
	}{
		{Pt(0, 0), 0},
		{Pt(3, -1), 3},
		{Pt(-2, 5), 5},
		{Pt(-4, -4), 4},
	}
	for _, tt := range tests {
		if got := tt.p.Chebyshev(); got != tt.want {
			t.Errorf("%v.Chebyshev() = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestSizeIsValid(t *testing.T) {
	tests := []struct {
		size Size
		want bool
	}{
		{Sz(1, 1), true},
		{Sz(0, 5), false},
		{Sz(5, 0), false},
		{Sz(-1, 5), false},
	}
	for _, tt := range tests {
		if got := tt.size.IsValid(); got != tt.want {
			t.Errorf("%v.IsValid() = %v, want %v", tt.size, got, tt.want)
		}
	}
}
