// Package cloud turns sized words into a placed tag cloud.
//
// [Build] feeds word sizes, largest first, into a fresh
// [layout.CloudLayouter] centered on the canvas and pairs every resulting
// rectangle with its word. Words the layouter cannot place are skipped and
// listed in [Cloud.Skipped] rather than aborting the whole cloud.
//
// A [Cloud] is the unit the renderers and the cache work with. It serializes
// to JSON, so a layout can be computed once and rendered many times:
//
//	c, err := cloud.Build(ctx, geom.Sz(1000, 1000), sized)
//	if err != nil {
//	    return err
//	}
//	if err := c.CheckBounds(); err != nil {
//	    return err // canvas too small
//	}
//	data, _ := cloud.Marshal(c)
//
// [layout.CloudLayouter]: github.com/matzehuels/tagcloud/pkg/core/layout
package cloud
