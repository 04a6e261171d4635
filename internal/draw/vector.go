package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"pathview/internal/geom"
)

// BuildVectors walks segs once and produces line and point buffers.
//
// Segments with an undefined end Z are skipped. The first segment with a
// defined end X/Y anchors the start marker: at its start point when that is
// fully defined (the segment is then drawn as usual), otherwise at its end
// point (the segment only positions the marker). The last segment with a
// defined end Z gets the end marker.
//
// With simplification enabled, runs of consecutive segments sharing a group
// type are merged into one line while their accumulated length stays below
// cfg.SimplifyPrecision. Every merged segment records the run's vertex index
// so per-segment patches still resolve.
//
// Vertex indices are stamped with gen; indices from older builds read as
// unset afterwards.
func BuildVectors(segs []*geom.Segment, cfg Config, gen uint64) *VectorGeometry {
	cls := cfg.Classifier()
	g := &VectorGeometry{generation: gen}

	flat := func(p geom.Vec3) geom.Vec3 {
		if cfg.IgnoreZ {
			p.Z = 0
		}
		return p
	}
	marker := func(p geom.Vec3, c colorful.Color) Vertex {
		return Vertex{
			Position: flat(p),
			Color:    c,
			Aux:      geom.Vec3{X: math.NaN(), Y: math.NaN(), Z: cfg.PointSize},
		}
	}

	n := len(segs)
	// last is the final segment with a defined end Z; it carries the end marker.
	last := n - 1
	for last >= 0 && math.IsNaN(segs[last].End.Z) {
		last--
	}
	first := true
	for i := 0; i <= last; i++ {
		s := segs[i]
		if math.IsNaN(s.End.Z) {
			continue
		}
		if first {
			if !s.End.XYDefined() {
				continue
			}
			first = false
			if s.Start.IsNaN() {
				g.Points = append(g.Points, marker(s.End, cfg.Palette.Start))
				continue
			}
			g.Points = append(g.Points, marker(s.Start, cfg.Palette.Start))
		}

		aux := noAux()
		if s.IsRapid() {
			aux = flat(s.Start)
		}

		j := i
		if cfg.Simplify && i < last {
			length := s.Length()
			startGroup := GroupOf(segs[j])
			for {
				segs[i].SetVertexIndex(gen, len(g.Lines))
				i++
				if i > last || math.IsNaN(segs[i].End.Z) {
					break
				}
				if i < last {
					length += segs[i].Length()
				}
				// NaN lengths compare false and end the run.
				if !(length < cfg.SimplifyPrecision) || GroupOf(segs[i]) != startGroup {
					break
				}
			}
			i--
			s = segs[i]
		} else {
			s.SetVertexIndex(gen, len(g.Lines))
		}

		c := cls.Color(s)
		g.Lines = append(g.Lines,
			Vertex{Position: flat(segs[j].Start), Color: c, Aux: aux},
			Vertex{Position: flat(s.End), Color: c, Aux: aux},
		)

		if i == last {
			g.Points = append(g.Points, marker(s.End, cfg.Palette.End))
		}
	}

	Logger().Debug("vectors prepared",
		"segments", n, "lines", g.LineCount(), "points", len(g.Points), "generation", gen)
	return g
}
