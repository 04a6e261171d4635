package geom

import (
	"math"
	"sync/atomic"
)

// Motion classifies how the machine travels along a segment.
type Motion int

const (
	Feed Motion = iota
	Rapid
	Arc
)

func (m Motion) String() string {
	switch m {
	case Rapid:
		return "rapid"
	case Arc:
		return "arc"
	default:
		return "feed"
	}
}

// ParseMotion accepts the names produced by Motion.String as well as the
// G-code words G0..G3. Unknown values read as Feed.
func ParseMotion(s string) Motion {
	switch s {
	case "rapid", "G0", "g0", "G00":
		return Rapid
	case "arc", "G2", "G3", "g2", "g3", "G02", "G03":
		return Arc
	default:
		return Feed
	}
}

// ArcProperties describes the circle an arc segment was interpolated from.
type ArcProperties struct {
	Radius    float64
	Center    Vec3
	Clockwise bool
}

// Segment is one straight motion unit of a decoded toolpath. Geometry and
// motion attributes are fixed at creation. The Drawn and Highlighted flags
// belong to whoever owns the toolpath; the vertex index belongs to the
// geometry builder.
type Segment struct {
	Start        Vec3
	End          Vec3
	Motion       Motion
	SpindleSpeed float64
	Arc          *ArcProperties
	LineNumber   int

	drawn       atomic.Bool
	highlighted atomic.Bool

	vertexGen   uint64
	vertexIndex int
}

// NewSegment returns a segment with no vertex index assigned.
func NewSegment(start, end Vec3, motion Motion, speed float64) *Segment {
	return &Segment{Start: start, End: end, Motion: motion, SpindleSpeed: speed}
}

func (s *Segment) Drawn() bool           { return s.drawn.Load() }
func (s *Segment) SetDrawn(v bool)       { s.drawn.Store(v) }
func (s *Segment) Highlighted() bool     { return s.highlighted.Load() }
func (s *Segment) SetHighlighted(v bool) { s.highlighted.Store(v) }
func (s *Segment) IsRapid() bool         { return s.Motion == Rapid }
func (s *Segment) IsArc() bool           { return s.Motion == Arc }

// IsZMovement reports a plunge or retract: the tool moves along Z only.
func (s *Segment) IsZMovement() bool {
	return s.Start.X == s.End.X && s.Start.Y == s.End.Y && s.Start.Z != s.End.Z &&
		!math.IsNaN(s.Start.Z) && !math.IsNaN(s.End.Z)
}

// Length is the straight line distance from start to end.
func (s *Segment) Length() float64 {
	return s.End.Sub(s.Start).Length()
}

// SetVertexIndex records where the segment's line pair starts in the vertex
// buffer of build generation gen.
func (s *Segment) SetVertexIndex(gen uint64, idx int) {
	s.vertexGen = gen
	s.vertexIndex = idx
}

// VertexIndex returns the segment's vertex index for generation gen. An
// index written by any other generation reads as unset.
func (s *Segment) VertexIndex(gen uint64) (int, bool) {
	if gen == 0 || s.vertexGen != gen {
		return -1, false
	}
	return s.vertexIndex, true
}
