package draw

import "pathview/internal/geom"

// Patch rewrites the end point pixel of each segment at indices and marks
// the texture dirty. Out of range indices and points that do not map into
// the grid are skipped. Without a bitmap the pass does nothing.
func (g *RasterGeometry) Patch(segs []*geom.Segment, indices []int, cls Classifier) PatchResult {
	var res PatchResult
	if g.Image == nil {
		res.Skipped = len(indices)
		return res
	}
	for _, i := range indices {
		if i < 0 || i >= len(segs) {
			res.Skipped++
			continue
		}
		s := segs[i]
		if !g.setPixel(s.End, cls.Color(s)) {
			Logger().Debug("raster patch: pixel rejected",
				"index", i, "x", s.End.X, "y", s.End.Y)
			res.Skipped++
			continue
		}
		res.Applied++
	}
	g.textureDirty.Store(true)
	return res
}
