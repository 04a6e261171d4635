package draw

import (
	"sync/atomic"

	"pathview/internal/geom"
)

type geometrySlot struct{ g Geometry }

// Drawer keeps renderable geometry for a toolpath in sync with segment
// state. Build and patch passes run on the goroutine calling UpdateData;
// Update, UpdateIndex and the read accessors are safe from any goroutine.
// SetSource and SetConfig belong to the UpdateData goroutine.
type Drawer struct {
	src   Source
	cfg   Config
	sched *Scheduler

	gen     uint64
	current atomic.Pointer[geometrySlot]
	updated atomic.Bool
}

// New returns a drawer that builds on its first UpdateData call.
func New(src Source, cfg Config) *Drawer {
	return &Drawer{src: src, cfg: cfg, sched: NewScheduler()}
}

// Config returns the active configuration.
func (d *Drawer) Config() Config { return d.cfg }

// Source returns the toolpath being drawn.
func (d *Drawer) Source() Source { return d.src }

// Scheduler exposes the update queue, e.g. to drive Run.
func (d *Drawer) Scheduler() *Scheduler { return d.sched }

// SetSource replaces the toolpath. All geometry and vertex indices are
// discarded by the next build.
func (d *Drawer) SetSource(src Source) {
	d.src = src
	d.sched.Invalidate()
}

// SetConfig replaces the configuration and forces a full rebuild.
func (d *Drawer) SetConfig(cfg Config) {
	d.cfg = cfg
	d.sched.Invalidate()
}

// SetMode switches representation. Pending patches are discarded.
func (d *Drawer) SetMode(m Mode) {
	cfg := d.cfg
	cfg.Mode = m
	d.SetConfig(cfg)
}

// Update requests a full rebuild.
func (d *Drawer) Update() { d.sched.Invalidate() }

// UpdateIndex requests a patch for the given segment indices.
func (d *Drawer) UpdateIndex(indices ...int) { d.sched.Notify(indices...) }

// Geometry returns the current geometry, nil before the first build. The
// value is replaced, never torn, by a rebuild.
func (d *Drawer) Geometry() Geometry {
	if s := d.current.Load(); s != nil {
		return s.g
	}
	return nil
}

// GeometryUpdated reports whether buffers changed since AckGeometry.
func (d *Drawer) GeometryUpdated() bool { return d.updated.Load() }

// AckGeometry is called by the consumer once it has uploaded the buffers.
func (d *Drawer) AckGeometry() { d.updated.Store(false) }

// UpdateData performs the work queued in the scheduler: a full rebuild, or
// a patch pass over the pending indices. m is the renderer's line buffer
// and may be nil. It reports whether the buffers must be re-uploaded.
func (d *Drawer) UpdateData(m LineMapper) bool {
	indices, full := d.sched.Drain()
	cur := d.Geometry()
	if full || cur == nil || cur.Mode() != d.cfg.Mode {
		d.rebuild()
		return true
	}
	if len(indices) == 0 {
		return false
	}
	segs := d.segments()
	cls := d.cfg.Classifier()
	switch g := cur.(type) {
	case *VectorGeometry:
		res := g.Patch(segs, indices, cls, m)
		if res.Busy {
			d.sched.Notify(indices...)
			return false
		}
		if res.Staged && res.Applied > 0 {
			d.updated.Store(true)
			return true
		}
	case *RasterGeometry:
		g.Patch(segs, indices, cls)
	}
	return false
}

func (d *Drawer) segments() []*geom.Segment {
	if d.src == nil {
		return nil
	}
	return d.src.Segments()
}

func (d *Drawer) rebuild() {
	d.gen++
	var g Geometry
	switch {
	case d.src == nil:
		g = &VectorGeometry{generation: d.gen}
	case d.cfg.Mode == Raster:
		g = BuildRaster(d.src, d.cfg)
	default:
		g = BuildVectors(d.src.Segments(), d.cfg, d.gen)
	}
	d.current.Store(&geometrySlot{g: g})
	d.updated.Store(true)
}

// MinExtremes is the lower corner of the toolpath, with Z zeroed when
// IgnoreZ is set.
func (d *Drawer) MinExtremes() geom.Vec3 {
	if d.src == nil {
		return geom.Vec3{}
	}
	return d.flat(d.src.MinExtremes())
}

// MaxExtremes is the upper corner of the toolpath, with Z zeroed when
// IgnoreZ is set.
func (d *Drawer) MaxExtremes() geom.Vec3 {
	if d.src == nil {
		return geom.Vec3{}
	}
	return d.flat(d.src.MaxExtremes())
}

// Sizes is the extent of the toolpath along each axis.
func (d *Drawer) Sizes() geom.Vec3 { return d.MaxExtremes().Sub(d.MinExtremes()) }

func (d *Drawer) flat(v geom.Vec3) geom.Vec3 {
	if d.cfg.IgnoreZ {
		v.Z = 0
	}
	return v
}
