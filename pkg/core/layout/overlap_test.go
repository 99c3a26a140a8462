package layout

import (
	"testing"

	"github.com/matzehuels/tagcloud/pkg/core/geom"
)

func TestOverlaps(t *testing.T) {
	placed := []geom.Rectangle{
		geom.Rect(0, 0, 10, 10),
		geom.Rect(20, 0, 10, 10),
	}

	tests := []struct {
		name      string
		candidate geom.Rectangle
		want      bool
	}{
		{"empty gap between", geom.Rect(10, 0, 10, 10), false},
		{"overlaps first", geom.Rect(5, 5, 10, 10), true},
		{"overlaps second", geom.Rect(25, 5, 10, 10), true},
		{"spans both", geom.Rect(5, 0, 20, 5), true},
		{"below both", geom.Rect(0, 10, 30, 10), false},
		{"far away", geom.Rect(100, 100, 1, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.candidate, placed); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestOverlapsEmptySet(t *testing.T) {
	if Overlaps(geom.Rect(0, 0, 10, 10), nil) {
		t.Error("nothing overlaps an empty set")
	}
}
