package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"pathview/internal/geom"
)

// GroupType is the coarse class used to decide whether adjacent segments
// may be merged into one line.
type GroupType uint8

const (
	GroupRapid GroupType = 1 << iota
	GroupZMovement
)

// GroupOf returns the group type of s.
func GroupOf(s *geom.Segment) GroupType {
	var t GroupType
	if s.IsRapid() {
		t |= GroupRapid
	}
	if s.IsZMovement() {
		t |= GroupZMovement
	}
	return t
}

// Classifier maps segment state to a display colour. It only reads segment
// state and may be used from any goroutine.
type Classifier struct {
	Palette   Palette
	Grayscale Grayscale
}

// Classify returns the colour and group type of s.
func (c Classifier) Classify(s *geom.Segment) (colorful.Color, GroupType) {
	return c.Color(s), GroupOf(s)
}

// Color applies the precedence drawn, highlighted, rapid, Z movement,
// grayscale, normal.
func (c Classifier) Color(s *geom.Segment) colorful.Color {
	switch {
	case s.Drawn():
		return c.Palette.Drawn
	case s.Highlighted():
		return c.Palette.Highlight
	case s.IsRapid():
		return c.Palette.Normal
	case s.IsZMovement():
		return c.Palette.ZMovement
	}
	switch c.Grayscale.Code {
	case GrayscaleSpeed:
		return c.gray(s.SpindleSpeed)
	case GrayscaleZ:
		return c.gray(s.Start.Z)
	}
	return c.Palette.Normal
}

func (c Classifier) gray(attr float64) colorful.Color {
	if math.IsNaN(attr) {
		return c.Palette.Normal
	}
	return colorful.Hsl(0, 0, float64(grayLevel(attr, c.Grayscale.Min, c.Grayscale.Max))/255)
}

// grayLevel maps attr linearly from [lo, hi] onto [255, 0], truncated and
// clamped.
func grayLevel(attr, lo, hi float64) int {
	if hi <= lo {
		if attr >= lo {
			return 0
		}
		return 255
	}
	v := 255 - 255*(attr-lo)/(hi-lo)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return int(v)
}
