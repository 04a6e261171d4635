package draw

import (
	"image"
	"sync/atomic"

	"github.com/pkg/errors"
	"seehuhn.de/go/geom/vec"

	"pathview/internal/geom"
)

// Source is what the engine consumes from the toolpath decoder.
// *geom.Toolpath implements it.
type Source interface {
	Segments() []*geom.Segment
	MinExtremes() geom.Vec3
	MaxExtremes() geom.Vec3
	MinLength() float64
	Resolution() (w, h int)
}

var (
	// ErrBusy is returned by a LineMapper that cannot hand out its buffer
	// right now. The patch pass is skipped and retried on the next tick.
	ErrBusy = errors.New("line buffer busy")

	// ErrNotMappable is returned by a LineMapper whose buffer cannot be
	// written in place. Patches then go to the engine's own copy and the
	// consumer is asked to re-upload.
	ErrNotMappable = errors.New("line buffer not mappable")
)

// LineMapper is a renderer-owned copy of the line buffer that can be
// written in place.
type LineMapper interface {
	MapLines() ([]Vertex, error)
	UnmapLines() error
}

// Geometry is the output of a build pass: either *VectorGeometry or
// *RasterGeometry.
type Geometry interface {
	Mode() Mode
	Primitives() *Buffers
}

// PatchResult reports what a patch pass did.
type PatchResult struct {
	Applied int  // vertex pairs or pixels rewritten
	Skipped int  // stale, unset or unmappable indices
	Staged  bool // written to the engine copy instead of the mapped buffer
	Busy    bool // nothing written, the buffer could not be mapped
}

// VectorGeometry is the line/point representation of a toolpath.
type VectorGeometry struct {
	Buffers
	generation uint64
	desynced   bool
}

func (g *VectorGeometry) Mode() Mode           { return Vectors }
func (g *VectorGeometry) Primitives() *Buffers { return &g.Buffers }

// Generation is the build generation whose vertex indices address g.
func (g *VectorGeometry) Generation() uint64 { return g.generation }

// Desynced reports whether a patch went straight to a mapped renderer
// buffer since the last build. The engine's own Lines then lag behind what
// is displayed until the next full rebuild.
func (g *VectorGeometry) Desynced() bool { return g.desynced }

// RasterGeometry is the bitmap representation of a toolpath. When the
// bitmap could not be produced Image is nil and Lines holds the outline of
// the bounding rectangle.
type RasterGeometry struct {
	Buffers
	Image     *image.RGBA
	Origin    vec.Vec2
	PixelSize float64

	textureDirty atomic.Bool
}

func (g *RasterGeometry) Mode() Mode           { return Raster }
func (g *RasterGeometry) Primitives() *Buffers { return &g.Buffers }

// TextureDirty reports whether Image changed since the consumer last
// uploaded it.
func (g *RasterGeometry) TextureDirty() bool { return g.textureDirty.Load() }

// ClearTextureDirty is called by the consumer after uploading Image.
func (g *RasterGeometry) ClearTextureDirty() { g.textureDirty.Store(false) }
