package geom

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestNewToolpathMetadata(t *testing.T) {
	segs := []*Segment{
		NewSegment(NaN3(), Vec3{0, 0, 5}, Rapid, 0),
		NewSegment(Vec3{0, 0, 5}, Vec3{0, 0, -1}, Feed, 1000),
		NewSegment(Vec3{0, 0, -1}, Vec3{10, 0, -1}, Feed, 1000),
		NewSegment(Vec3{10, 0, -1}, Vec3{10, 0.5, -1}, Feed, 1000),
	}
	tp := NewToolpath(segs)

	assert.Equal(t, Vec3{0, 0, -1}, tp.MinExtremes())
	assert.Equal(t, Vec3{10, 0.5, 5}, tp.MaxExtremes())
	assert.Equal(t, 0.5, tp.MinLength())
	w, h := tp.Resolution()
	assert.Equal(t, 21, w)
	assert.Equal(t, 2, h)
	assert.Len(t, tp.Segments(), 4)
}

func TestNewToolpathWithoutPlanarMoves(t *testing.T) {
	tp := NewToolpath([]*Segment{NewSegment(Vec3{1, 1, 0}, Vec3{1, 1, 3}, Feed, 0)})
	assert.Equal(t, 1.0, tp.MinLength())
	w, h := tp.Resolution()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestSegmentClassification(t *testing.T) {
	plunge := NewSegment(Vec3{1, 2, 3}, Vec3{1, 2, 0}, Feed, 0)
	assert.True(t, plunge.IsZMovement())
	assert.False(t, plunge.IsRapid())

	undefined := NewSegment(Vec3{1, 2, math.NaN()}, Vec3{1, 2, 0}, Feed, 0)
	assert.False(t, undefined.IsZMovement())

	planar := NewSegment(Vec3{0, 0, 0}, Vec3{3, 4, 0}, Rapid, 0)
	assert.False(t, planar.IsZMovement())
	assert.True(t, planar.IsRapid())
	assert.Equal(t, 5.0, planar.Length())
}

func TestSegmentVertexIndexGeneration(t *testing.T) {
	s := NewSegment(Vec3{}, Vec3{1, 0, 0}, Feed, 0)
	_, ok := s.VertexIndex(1)
	assert.False(t, ok, "fresh segment has no vertex index")

	s.SetVertexIndex(1, 8)
	idx, ok := s.VertexIndex(1)
	require.True(t, ok)
	assert.Equal(t, 8, idx)

	_, ok = s.VertexIndex(2)
	assert.False(t, ok, "index from an older build must read as unset")
}

func TestSegmentFlags(t *testing.T) {
	s := NewSegment(Vec3{}, Vec3{1, 0, 0}, Feed, 0)
	s.SetDrawn(true)
	s.SetHighlighted(true)
	assert.True(t, s.Drawn())
	assert.True(t, s.Highlighted())
	s.SetDrawn(false)
	assert.False(t, s.Drawn())
}

func TestLoadCSV(t *testing.T) {
	p := writeFile(t, "path.csv", `X0,Y0,Z0,X1,Y1,Z1,motion,speed,line
,,,0,0,5,rapid,,1
0,0,5,0,0,-1,feed,1200,2
0,0,-1,10,0,-1,G1,1200,3
`)
	segs, err := LoadCSV(p)
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.True(t, segs[0].Start.IsNaN())
	assert.Equal(t, Rapid, segs[0].Motion)
	assert.Equal(t, 1200.0, segs[1].SpindleSpeed)
	assert.Equal(t, Vec3{10, 0, -1}, segs[2].End)
	assert.Equal(t, 3, segs[2].LineNumber)
}

func TestLoadCSVMissingColumn(t *testing.T) {
	p := writeFile(t, "bad.csv", "x0,y0,z0,x1,y1\n1,2,3,4,5\n")
	_, err := LoadCSV(p)
	assert.Error(t, err)
}

func TestParseJSON(t *testing.T) {
	segs, err := ParseJSON([]byte(`{"segments":[
		{"start":[null,null,null],"end":[0,0,5],"motion":"rapid"},
		{"start":[0,0,5],"end":[5,0,5],"speed":800,"line":7,
		 "arc":{"radius":2.5,"center":[2.5,0,5],"clockwise":true}}
	]}`))
	require.NoError(t, err)
	require.Len(t, segs, 2)

	assert.True(t, segs[0].Start.IsNaN())
	assert.Equal(t, Rapid, segs[0].Motion)
	assert.Equal(t, Arc, segs[1].Motion)
	require.NotNil(t, segs[1].Arc)
	assert.Equal(t, 2.5, segs[1].Arc.Radius)
	assert.True(t, segs[1].Arc.Clockwise)
	assert.Equal(t, Vec3{2.5, 0, 5}, segs[1].Arc.Center)
	assert.Equal(t, 7, segs[1].LineNumber)
}

func TestParseJSONRejectsGarbage(t *testing.T) {
	_, err := ParseJSON([]byte(`{"segments":[{"start":"x","end":[1,2,3]}]}`))
	assert.Error(t, err)
	_, err = ParseJSON([]byte(`{}`))
	assert.Error(t, err)
}

func TestParseWKT(t *testing.T) {
	segs, err := ParseWKT("MULTILINESTRING Z ((0 0 1, 1 0 1, 1 1 1), (5 5 0, 6 5 0))")
	require.NoError(t, err)
	require.Len(t, segs, 4)

	assert.Equal(t, Feed, segs[0].Motion)
	assert.Equal(t, Feed, segs[1].Motion)
	assert.Equal(t, Rapid, segs[2].Motion)
	assert.Equal(t, Vec3{1, 1, 1}, segs[2].Start)
	assert.Equal(t, Vec3{5, 5, 0}, segs[2].End)
	assert.Equal(t, Vec3{6, 5, 0}, segs[3].End)
}

func TestParseWKTLineString2D(t *testing.T) {
	segs, err := ParseWKT("LINESTRING (0 0, 3 4)")
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, 5.0, segs[0].Length())

	_, err = ParseWKT("POINT (1 2)")
	assert.Error(t, err)
}

func TestLoadKML(t *testing.T) {
	p := writeFile(t, "path.kml", `<kml><Document>
<Placemark><LineString><coordinates>0,0,1 1,0,1</coordinates></LineString></Placemark>
<Placemark><LineString><coordinates>2,2,0 3,2,0</coordinates></LineString></Placemark>
</Document></kml>`)
	segs, err := LoadKML(p)
	require.NoError(t, err)
	require.Len(t, segs, 3)
	assert.Equal(t, Rapid, segs[1].Motion)
}

func TestLoadDispatch(t *testing.T) {
	p := writeFile(t, "p.wkt", "LINESTRING Z (0 0 0, 2 0 0, 2 2 0)")
	tp, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, tp.Segments(), 2)

	_, err = Load(writeFile(t, "p.gcode", "G0 X1"))
	assert.Error(t, err)
	assert.True(t, Supported("a/b/C.JSON"))
	assert.False(t, Supported("a.nc"))
}
