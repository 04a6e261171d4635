package geom

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseWKT turns LINESTRING and MULTILINESTRING text (2D, Z or M variants)
// into a segment sequence. Each line string becomes a run of feed segments;
// consecutive line strings are joined by a rapid move. Missing Z reads as 0.
func ParseWKT(wkt string) ([]*Segment, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) []Vec3 {
		var out []Vec3
		for _, tup := range strings.Split(block, ",") {
			parts := strings.Fields(strings.TrimSpace(tup))
			if len(parts) < 2 {
				continue
			}
			x, e1 := strconv.ParseFloat(parts[0], 64)
			y, e2 := strconv.ParseFloat(parts[1], 64)
			if e1 != nil || e2 != nil {
				continue
			}
			z := 0.0
			if len(parts) >= 3 {
				if v, err := strconv.ParseFloat(parts[2], 64); err == nil {
					z = v
				}
			}
			out = append(out, Vec3{x, y, z})
		}
		return out
	}

	var strs [][]Vec3
	switch {
	case strings.HasPrefix(up, "MULTILINESTRING"):
		i := strings.Index(s, "((")
		j := strings.LastIndex(s, "))")
		if i < 0 || j <= i {
			return nil, errors.New("wkt multilinestring: invalid")
		}
		for _, part := range splitRings(s[i+2 : j]) {
			if pts := parseTuples(part); len(pts) > 0 {
				strs = append(strs, pts)
			}
		}
	case strings.HasPrefix(up, "LINESTRING"):
		i := strings.Index(s, "(")
		j := strings.LastIndex(s, ")")
		if i < 0 || j <= i {
			return nil, errors.New("wkt linestring: invalid")
		}
		if pts := parseTuples(s[i+1 : j]); len(pts) > 0 {
			strs = append(strs, pts)
		}
	default:
		return nil, errors.New("unsupported wkt type")
	}

	var segs []*Segment
	prev := Vec3{math.NaN(), math.NaN(), math.NaN()}
	for _, pts := range strs {
		if !prev.IsNaN() {
			segs = append(segs, NewSegment(prev, pts[0], Rapid, 0))
		}
		for k := 1; k < len(pts); k++ {
			segs = append(segs, NewSegment(pts[k-1], pts[k], Feed, 0))
		}
		prev = pts[len(pts)-1]
	}
	if len(segs) == 0 {
		return nil, errors.New("wkt: no segments parsed")
	}
	return segs, nil
}

// splitRings splits "a b, c d), (e f, g h" into its parenthesised parts.
func splitRings(body string) []string {
	var out []string
	for _, p := range strings.Split(body, ")") {
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, ",")
		p = strings.TrimSpace(p)
		p = strings.TrimPrefix(p, "(")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
