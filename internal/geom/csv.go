package geom

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var csvColumns = []string{"x0", "y0", "z0", "x1", "y1", "z1"}

// LoadCSV reads a segment dump with one segment per row.
// Required columns: x0,y0,z0,x1,y1,z1 (case-insensitive). Optional:
// motion, speed, line. Empty coordinate cells read as NaN.
func LoadCSV(path string) ([]*Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1
	recs, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "csv")
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idx := map[string]int{}
	for i, h := range recs[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range csvColumns {
		if _, ok := idx[c]; !ok {
			return nil, errors.Errorf("csv: column %q not found", c)
		}
	}
	cell := func(row []string, name string) (string, bool) {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}
	coord := func(row []string, name string) (float64, error) {
		v, _ := cell(row, name)
		if v == "" || strings.EqualFold(v, "nan") {
			return math.NaN(), nil
		}
		return strconv.ParseFloat(v, 64)
	}

	var segs []*Segment
	for n, row := range recs[1:] {
		var c [6]float64
		for i, name := range csvColumns {
			v, err := coord(row, name)
			if err != nil {
				return nil, errors.Wrapf(err, "csv row %d", n+2)
			}
			c[i] = v
		}
		s := NewSegment(Vec3{c[0], c[1], c[2]}, Vec3{c[3], c[4], c[5]}, Feed, 0)
		if v, ok := cell(row, "motion"); ok {
			s.Motion = ParseMotion(v)
		}
		if v, ok := cell(row, "speed"); ok && v != "" {
			sp, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "csv row %d: speed", n+2)
			}
			s.SpindleSpeed = sp
		}
		if v, ok := cell(row, "line"); ok && v != "" {
			if ln, err := strconv.Atoi(v); err == nil {
				s.LineNumber = ln
			}
		}
		segs = append(segs, s)
	}
	if len(segs) == 0 {
		return nil, errors.New("csv: no segments parsed")
	}
	return segs, nil
}
