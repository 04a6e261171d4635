package tui

import (
	"fmt"
	"math"

	"pathview/internal/geom"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// fmtVec prints a point compactly, "-" for undefined axes.
func fmtVec(v geom.Vec3) string {
	c := func(f float64) string {
		if math.IsNaN(f) {
			return "-"
		}
		return fmt.Sprintf("%.3f", f)
	}
	return c(v.X) + " " + c(v.Y) + " " + c(v.Z)
}
