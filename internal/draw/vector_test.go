package draw

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathview/internal/geom"
)

func TestBuildVectorsRapidsThenFeeds(t *testing.T) {
	pts := []geom.Vec3{{X: 0, Y: 0, Z: 5}, {X: 10, Y: 0, Z: 5}, {X: 10, Y: 10, Z: 5}, {X: 10, Y: 10, Z: 0}, {X: 20, Y: 10, Z: 0}, {X: 20, Y: 20, Z: 0}}
	segs := chain(pts, geom.Rapid, geom.Rapid, geom.Rapid, geom.Feed, geom.Feed)
	cfg := DefaultConfig()

	g := BuildVectors(segs, cfg, 1)

	require.Equal(t, 5, g.LineCount())
	require.Len(t, g.Points, 2)
	assert.Empty(t, g.Triangles)

	for i, s := range segs {
		assert.Equal(t, s.Start, g.Lines[2*i].Position, "line %d start", i)
		assert.Equal(t, s.End, g.Lines[2*i+1].Position, "line %d end", i)
		idx, ok := s.VertexIndex(1)
		require.True(t, ok)
		assert.Equal(t, 2*i, idx)
	}

	// rapid lines carry their pre-motion point, feed lines carry nothing
	for i := 0; i < 3; i++ {
		assert.Equal(t, segs[i].Start, g.Lines[2*i].Aux)
		assert.Equal(t, segs[i].Start, g.Lines[2*i+1].Aux)
	}
	for i := 3; i < 5; i++ {
		assert.True(t, isNaN(g.Lines[2*i].Aux.X))
	}

	start, end := g.Points[0], g.Points[1]
	assert.Equal(t, pts[0], start.Position)
	assert.Equal(t, cfg.Palette.Start, start.Color)
	assert.True(t, isNaN(start.Aux.X))
	assert.Equal(t, cfg.PointSize, start.Aux.Z)
	assert.Equal(t, pts[5], end.Position)
	assert.Equal(t, cfg.Palette.End, end.Color)
}

func TestBuildVectorsPlaceholderStart(t *testing.T) {
	segs := []*geom.Segment{
		geom.NewSegment(geom.NaN3(), geom.Vec3{X: 1, Y: 1, Z: 5}, geom.Rapid, 0),
		seg(1, 1, 5, 1, 1, 0, geom.Feed),
		seg(1, 1, 0, 4, 1, 0, geom.Feed),
	}
	g := BuildVectors(segs, DefaultConfig(), 1)

	assert.Equal(t, 2, g.LineCount())
	require.Len(t, g.Points, 2)
	assert.Equal(t, geom.Vec3{X: 1, Y: 1, Z: 5}, g.Points[0].Position)
	_, ok := segs[0].VertexIndex(1)
	assert.False(t, ok, "placeholder segment only positions the marker")
}

func TestBuildVectorsSkipsUndefinedEnds(t *testing.T) {
	segs := []*geom.Segment{
		geom.NewSegment(geom.Vec3{}, geom.Vec3{X: 1, Y: nan, Z: nan}, geom.Feed, 0),
		geom.NewSegment(geom.Vec3{}, geom.Vec3{X: nan, Y: nan, Z: 0}, geom.Feed, 0),
		seg(0, 0, 0, 1, 0, 0, geom.Feed),
		geom.NewSegment(geom.Vec3{X: 1}, geom.Vec3{X: 2, Y: 0, Z: nan}, geom.Feed, 0),
		seg(2, 0, 0, 3, 0, 0, geom.Feed),
	}
	g := BuildVectors(segs, DefaultConfig(), 7)

	assert.Equal(t, 2, g.LineCount())
	for _, i := range []int{0, 1, 3} {
		_, ok := segs[i].VertexIndex(7)
		assert.False(t, ok, "segment %d", i)
	}
	assert.Equal(t, segs[2].Start, g.Points[0].Position, "start marker on first defined segment")
}

func TestBuildVectorsSimplifyCollinear(t *testing.T) {
	segs := line(100, 0.01)
	cfg := DefaultConfig()
	cfg.Simplify = true
	cfg.SimplifyPrecision = 1.0

	g := BuildVectors(segs, cfg, 1)

	n := g.LineCount()
	require.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 3)
	assert.Equal(t, segs[0].Start, g.Lines[0].Position)
	assert.Equal(t, segs[99].End, g.Lines[len(g.Lines)-1].Position)
	for k := 1; k < n; k++ {
		assert.Equal(t, g.Lines[2*k-1].Position, g.Lines[2*k].Position, "runs connect")
	}
	for i, s := range segs {
		idx, ok := s.VertexIndex(1)
		require.True(t, ok, "segment %d", i)
		assert.Less(t, idx, len(g.Lines))
	}
}

func TestBuildVectorsSimplifyRespectsGroups(t *testing.T) {
	pts := []geom.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 2}, {X: 5, Y: 0, Z: 2}, {X: 6, Y: 0, Z: 2}}
	segs := chain(pts, geom.Feed, geom.Feed, geom.Rapid, geom.Rapid, geom.Feed, geom.Feed, geom.Feed)
	cfg := DefaultConfig()
	cfg.Simplify = true
	cfg.SimplifyPrecision = 1000

	g := BuildVectors(segs, cfg, 1)

	// feed,feed | rapid,rapid | plunge | feed,feed
	require.Equal(t, 4, g.LineCount())
	byIndex := map[int][]*geom.Segment{}
	for _, s := range segs {
		idx, ok := s.VertexIndex(1)
		require.True(t, ok)
		byIndex[idx] = append(byIndex[idx], s)
	}
	for idx, run := range byIndex {
		for _, s := range run {
			assert.Equal(t, GroupOf(run[0]), GroupOf(s), "run at %d mixes groups", idx)
		}
		assert.Equal(t, run[0].Start, g.Lines[idx].Position)
		assert.Equal(t, run[len(run)-1].End, g.Lines[idx+1].Position)
	}
}

func TestBuildVectorsSimplifyThreshold(t *testing.T) {
	segs := line(6, 1)
	cfg := DefaultConfig()
	cfg.Simplify = true
	cfg.SimplifyPrecision = 2.5

	g := BuildVectors(segs, cfg, 1)

	// the run length includes the candidate: 1+1 < 2.5 joins, 1+1+1 does not
	require.Equal(t, 3, g.LineCount())
	assert.Equal(t, geom.Vec3{X: 0}, g.Lines[0].Position)
	assert.Equal(t, geom.Vec3{X: 2}, g.Lines[1].Position)
	assert.Equal(t, geom.Vec3{X: 6}, g.Lines[5].Position)
}

func TestBuildVectorsDeterministic(t *testing.T) {
	segs := line(50, 0.3)
	segs[10].Motion = geom.Rapid
	segs[20].SetDrawn(true)
	cfg := DefaultConfig()
	cfg.Simplify = true
	cfg.SimplifyPrecision = 1.2

	a := BuildVectors(segs, cfg, 1)
	b := BuildVectors(segs, cfg, 2)

	assert.True(t, bytes.Equal(EncodeVertices(a.Lines), EncodeVertices(b.Lines)))
	assert.True(t, bytes.Equal(EncodeVertices(a.Points), EncodeVertices(b.Points)))
	assert.Len(t, EncodeVertices(a.Lines), len(a.Lines)*VertexSize)
}

func TestBuildVectorsIgnoreZ(t *testing.T) {
	pts := []geom.Vec3{{X: 0, Y: 0, Z: 5}, {X: 1, Y: 0, Z: 5}, {X: 1, Y: 0, Z: -2}, {X: 3, Y: 2, Z: -2}}
	segs := chain(pts, geom.Rapid, geom.Feed, geom.Feed)
	cfg := DefaultConfig()
	cfg.IgnoreZ = true

	g := BuildVectors(segs, cfg, 1)

	for _, v := range append(append([]Vertex{}, g.Lines...), g.Points...) {
		assert.Zero(t, v.Position.Z)
	}
	assert.Equal(t, 5.0, segs[0].Start.Z, "segment data untouched")
	assert.Equal(t, -2.0, segs[2].End.Z)
}

func TestBuildVectorsTrailingUndefinedZ(t *testing.T) {
	for _, simplify := range []bool{false, true} {
		segs := []*geom.Segment{
			seg(0, 0, 0, 1, 0, 0, geom.Feed),
			seg(1, 0, 0, 2, 0, 0, geom.Feed),
			seg(2, 0, 0, 3, 0, nan, geom.Feed),
		}
		cfg := DefaultConfig()
		cfg.Simplify = simplify
		cfg.SimplifyPrecision = 100

		g := BuildVectors(segs, cfg, 1)

		require.Len(t, g.Points, 2, "simplify=%v", simplify)
		end := g.Points[1]
		assert.Equal(t, cfg.Palette.End, end.Color)
		assert.Equal(t, geom.Vec3{X: 2}, end.Position, "simplify=%v", simplify)
		for i, v := range g.Lines {
			assert.False(t, v.Position.IsNaN(), "simplify=%v line vertex %d", simplify, i)
		}
		assert.Equal(t, geom.Vec3{X: 2}, g.Lines[len(g.Lines)-1].Position)
		_, ok := segs[2].VertexIndex(1)
		assert.False(t, ok, "simplify=%v", simplify)
	}
}

func TestBuildVectorsSimplifyStopsAtUndefinedZ(t *testing.T) {
	segs := []*geom.Segment{
		seg(0, 0, 0, 1, 0, 0, geom.Feed),
		seg(1, 0, 0, 2, 0, nan, geom.Feed),
		seg(2, 0, 0, 3, 0, 0, geom.Feed),
		seg(3, 0, 0, 4, 0, 0, geom.Feed),
	}
	cfg := DefaultConfig()
	cfg.Simplify = true
	cfg.SimplifyPrecision = 100

	g := BuildVectors(segs, cfg, 1)

	require.Equal(t, 2, g.LineCount())
	assert.Equal(t, geom.Vec3{X: 1}, g.Lines[1].Position)
	assert.Equal(t, geom.Vec3{X: 2}, g.Lines[2].Position)
	assert.Equal(t, geom.Vec3{X: 4}, g.Lines[3].Position)
	_, ok := segs[1].VertexIndex(1)
	assert.False(t, ok)
}
