package geom

import (
	"encoding/xml"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LoadKML extracts LineString coordinates (Placemark > LineString >
// coordinates) from a KML file. Tuples are "x,y[,z]". Each line string is
// a feed run; placemarks are joined by rapid moves as in ParseWKT.
func LoadKML(path string) ([]*Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	type kmlLineString struct {
		Coordinates string `xml:"coordinates"`
	}
	type kmlPlacemark struct {
		LineString *kmlLineString `xml:"LineString"`
	}
	type kmlDoc struct {
		Placemarks []kmlPlacemark `xml:"Document>Placemark"`
		Loose      []kmlPlacemark `xml:"Placemark"`
	}

	var doc kmlDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "kml")
	}
	var segs []*Segment
	prev := NaN3()
	for _, pm := range append(doc.Placemarks, doc.Loose...) {
		if pm.LineString == nil {
			continue
		}
		var pts []Vec3
		for _, tuple := range strings.Fields(pm.LineString.Coordinates) {
			vals := strings.Split(tuple, ",")
			if len(vals) < 2 {
				continue
			}
			x, err1 := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)
			y, err2 := strconv.ParseFloat(strings.TrimSpace(vals[1]), 64)
			if err1 != nil || err2 != nil {
				continue
			}
			z := 0.0
			if len(vals) >= 3 {
				if v, err := strconv.ParseFloat(strings.TrimSpace(vals[2]), 64); err == nil && !math.IsNaN(v) {
					z = v
				}
			}
			pts = append(pts, Vec3{x, y, z})
		}
		if len(pts) == 0 {
			continue
		}
		if !prev.IsNaN() {
			segs = append(segs, NewSegment(prev, pts[0], Rapid, 0))
		}
		for k := 1; k < len(pts); k++ {
			segs = append(segs, NewSegment(pts[k-1], pts[k], Feed, 0))
		}
		prev = pts[len(pts)-1]
	}
	if len(segs) == 0 {
		return nil, errors.New("kml: no line strings found")
	}
	return segs, nil
}
