package geom

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
)

// LoadJSON reads a segment dump of the form
//
//	{"segments": [{"start": [x, y, z], "end": [x, y, z], "motion": "rapid",
//	  "speed": 1000, "line": 12,
//	  "arc": {"radius": 5, "center": [x, y, z], "clockwise": true}}]}
//
// A null coordinate reads as NaN. A bare top level array of segments is
// accepted as well.
func LoadJSON(path string) ([]*Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return ParseJSON(data)
}

// ParseJSON decodes the LoadJSON format from memory.
func ParseJSON(data []byte) ([]*Segment, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "json")
	}
	var list []any
	switch v := raw.(type) {
	case map[string]any:
		list, _ = v["segments"].([]any)
	case []any:
		list = v
	}
	if len(list) == 0 {
		return nil, errors.New("json: no segments found")
	}

	parsePoint := func(v any) (Vec3, bool) {
		a, ok := v.([]any)
		if !ok || len(a) < 2 {
			return Vec3{}, false
		}
		c := [3]float64{math.NaN(), math.NaN(), math.NaN()}
		for i := 0; i < len(a) && i < 3; i++ {
			switch n := a[i].(type) {
			case float64:
				c[i] = n
			case nil:
			default:
				return Vec3{}, false
			}
		}
		return Vec3{c[0], c[1], c[2]}, true
	}

	segs := make([]*Segment, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, errors.Errorf("json: segment %d is not an object", i)
		}
		start, ok1 := parsePoint(m["start"])
		end, ok2 := parsePoint(m["end"])
		if !ok1 || !ok2 {
			return nil, errors.Errorf("json: segment %d: invalid start or end", i)
		}
		s := NewSegment(start, end, Feed, 0)
		if mo, ok := m["motion"].(string); ok {
			s.Motion = ParseMotion(mo)
		}
		if sp, ok := m["speed"].(float64); ok {
			s.SpindleSpeed = sp
		}
		if ln, ok := m["line"].(float64); ok {
			s.LineNumber = int(ln)
		}
		if a, ok := m["arc"].(map[string]any); ok {
			arc := &ArcProperties{}
			arc.Radius, _ = a["radius"].(float64)
			arc.Clockwise, _ = a["clockwise"].(bool)
			if c, ok := parsePoint(a["center"]); ok {
				arc.Center = c
			}
			s.Arc = arc
			s.Motion = Arc
		}
		segs = append(segs, s)
	}
	return segs, nil
}
