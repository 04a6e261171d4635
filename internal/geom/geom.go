package geom

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Toolpath is a decoded segment sequence together with the metadata the
// geometry engine needs: spatial extremes, the shortest planar feature and a
// suggested raster resolution.
type Toolpath struct {
	segments  []*Segment
	bbox      BBox
	minLength float64
	resW      int
	resH      int
}

// NewToolpath takes ownership of segs and derives the toolpath metadata.
func NewToolpath(segs []*Segment) *Toolpath {
	t := &Toolpath{segments: segs}
	bb := emptyBBox()
	minLen := math.Inf(1)
	for _, s := range segs {
		bb.add(s.Start)
		bb.add(s.End)
		if s.Start.XYDefined() && s.End.XYDefined() {
			if l := s.End.XY().Sub(s.Start.XY()).Length(); l > 1e-9 && l < minLen {
				minLen = l
			}
		}
	}
	t.bbox = bb.zeroUndefined()
	if math.IsInf(minLen, 1) {
		minLen = 1
	}
	t.minLength = minLen
	size := t.bbox.Size()
	t.resW = int(math.Ceil(size.X/minLen)) + 1
	t.resH = int(math.Ceil(size.Y/minLen)) + 1
	return t
}

func (t *Toolpath) Segments() []*Segment { return t.segments }
func (t *Toolpath) BBox() BBox           { return t.bbox }
func (t *Toolpath) MinExtremes() Vec3    { return t.bbox.Min }
func (t *Toolpath) MaxExtremes() Vec3    { return t.bbox.Max }
func (t *Toolpath) MinLength() float64   { return t.minLength }

// Resolution is the raster size that gives every shortest feature its own
// pixel. It is not clamped; very fine toolpaths may exceed what a renderer
// accepts.
func (t *Toolpath) Resolution() (w, h int) { return t.resW, t.resH }

// Load reads a toolpath dump, choosing the format by file extension.
func Load(path string) (*Toolpath, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		segs []*Segment
		err  error
	)
	switch ext {
	case ".csv":
		segs, err = LoadCSV(path)
	case ".json":
		segs, err = LoadJSON(path)
	case ".kml":
		segs, err = LoadKML(path)
	case ".wkt":
		var data []byte
		data, err = os.ReadFile(path)
		if err == nil {
			segs, err = ParseWKT(string(data))
		}
	default:
		return nil, errors.Errorf("unsupported toolpath file %q", filepath.Base(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", filepath.Base(path))
	}
	return NewToolpath(segs), nil
}

// Supported reports whether Load understands the file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".json", ".kml", ".wkt":
		return true
	}
	return false
}
