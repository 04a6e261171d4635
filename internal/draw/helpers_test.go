package draw

import (
	"math"

	"pathview/internal/geom"
)

func seg(x0, y0, z0, x1, y1, z1 float64, m geom.Motion) *geom.Segment {
	return geom.NewSegment(geom.Vec3{X: x0, Y: y0, Z: z0}, geom.Vec3{X: x1, Y: y1, Z: z1}, m, 0)
}

// chain builds segments visiting pts in order with the given motions.
func chain(pts []geom.Vec3, motions ...geom.Motion) []*geom.Segment {
	segs := make([]*geom.Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		m := geom.Feed
		if i-1 < len(motions) {
			m = motions[i-1]
		}
		segs = append(segs, geom.NewSegment(pts[i-1], pts[i], m, 0))
	}
	return segs
}

// line returns n collinear feed segments of the given length along X.
func line(n int, step float64) []*geom.Segment {
	pts := make([]geom.Vec3, n+1)
	for i := range pts {
		pts[i] = geom.Vec3{X: float64(i) * step}
	}
	return chain(pts)
}

type fakeSource struct {
	segs     []*geom.Segment
	min, max geom.Vec3
	minLen   float64
	w, h     int
}

func (f *fakeSource) Segments() []*geom.Segment { return f.segs }
func (f *fakeSource) MinExtremes() geom.Vec3    { return f.min }
func (f *fakeSource) MaxExtremes() geom.Vec3    { return f.max }
func (f *fakeSource) MinLength() float64        { return f.minLen }
func (f *fakeSource) Resolution() (int, int)    { return f.w, f.h }

// fakeMapper hands out a renderer side copy of the line buffer.
type fakeMapper struct {
	lines  []Vertex
	err    error
	mapped int
	unmaps int
}

func (f *fakeMapper) MapLines() ([]Vertex, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mapped++
	return f.lines, nil
}

func (f *fakeMapper) UnmapLines() error {
	f.unmaps++
	return nil
}

func isNaN(v float64) bool { return math.IsNaN(v) }
