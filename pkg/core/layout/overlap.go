package layout

import "github.com/matzehuels/tagcloud/pkg/core/geom"

// Overlaps reports whether candidate shares interior area with any rectangle
// in placed. Touching edges are not overlap.
func Overlaps(candidate geom.Rectangle, placed []geom.Rectangle) bool {
	for _, r := range placed {
		if candidate.Overlaps(r) {
			return true
		}
	}
	return false
}
