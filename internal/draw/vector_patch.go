package draw

import (
	"github.com/pkg/errors"

	"pathview/internal/geom"
)

// Patch recolours the line pairs of the segments at indices.
//
// When m maps successfully the mapped buffer is written and the engine's own
// Lines are left as they were (see Desynced). When m is nil or reports
// ErrNotMappable the engine's Lines are written instead and the result is
// marked Staged; the caller must then re-upload them. ErrBusy, any other map
// error, or a mapped buffer shorter than Lines turn the pass into a no-op
// with Busy set.
//
// Indices outside segs and segments without a vertex index in g's
// generation are skipped. If several indices share a vertex pair the last
// one wins.
func (g *VectorGeometry) Patch(segs []*geom.Segment, indices []int, cls Classifier, m LineMapper) PatchResult {
	var res PatchResult
	dst := g.Lines
	mapped := false
	if m != nil {
		data, err := m.MapLines()
		switch {
		case err == nil:
			if len(data) < len(g.Lines) {
				if uerr := m.UnmapLines(); uerr != nil {
					Logger().Debug("unmap after short map failed", "err", uerr)
				}
				Logger().Debug("mapped line buffer is stale",
					"mapped", len(data), "want", len(g.Lines))
				res.Busy = true
				return res
			}
			dst, mapped = data, true
		case errors.Is(err, ErrNotMappable):
		default:
			Logger().Debug("line buffer busy, patch deferred", "err", err, "pending", len(indices))
			res.Busy = true
			return res
		}
	}

	for _, i := range indices {
		if i < 0 || i >= len(segs) {
			res.Skipped++
			continue
		}
		s := segs[i]
		vi, ok := s.VertexIndex(g.generation)
		if !ok || vi+1 >= len(dst) {
			res.Skipped++
			continue
		}
		c := cls.Color(s)
		dst[vi].Color = c
		dst[vi+1].Color = c
		res.Applied++
	}

	if mapped {
		if err := m.UnmapLines(); err != nil {
			Logger().Debug("unmap line buffer", "err", err)
		}
		if res.Applied > 0 {
			g.desynced = true
		}
	} else {
		res.Staged = true
	}
	return res
}
