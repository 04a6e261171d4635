package tui

import (
	"image"

	"seehuhn.de/go/geom/rect"

	"pathview/internal/draw"
)

// device is the viewer's copy of the engine buffers, the terminal's
// stand-in for GPU memory. Its line buffer can be mapped by the engine for
// in-place colour patches.
type device struct {
	lines  []draw.Vertex
	points []draw.Vertex

	mode    draw.Mode
	texture *image.RGBA // top-down, nil in vector mode or without a bitmap
	extent  rect.Rect

	mapped  bool
	uploads int
}

func newDevice() *device { return &device{} }

// MapLines hands out the line buffer for writing. A second map before
// UnmapLines reports draw.ErrBusy; an empty buffer cannot be mapped.
func (d *device) MapLines() ([]draw.Vertex, error) {
	if d.mapped {
		return nil, draw.ErrBusy
	}
	if len(d.lines) == 0 {
		return nil, draw.ErrNotMappable
	}
	d.mapped = true
	return d.lines, nil
}

func (d *device) UnmapLines() error {
	d.mapped = false
	return nil
}

// upload copies g into device memory.
func (d *device) upload(g draw.Geometry) {
	if g == nil {
		return
	}
	b := g.Primitives()
	d.mode = g.Mode()
	d.lines = append(d.lines[:0], b.Lines...)
	d.points = append(d.points[:0], b.Points...)
	d.texture = nil
	d.extent = rect.Rect{}
	if rg, ok := g.(*draw.RasterGeometry); ok {
		d.uploadTexture(rg)
	}
	d.uploads++
}

// uploadTexture refreshes the bitmap from rg and clears its dirty flag.
func (d *device) uploadTexture(rg *draw.RasterGeometry) {
	d.texture = rg.Snapshot()
	d.extent = rg.Extent()
	rg.ClearTextureDirty()
}
