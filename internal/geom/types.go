package geom

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Vec3 is a point or direction in machine space. Any component may be NaN
// to mark an axis the decoder could not resolve.
type Vec3 struct {
	X, Y, Z float64
}

// NaN3 returns a vector with every component undefined.
func NaN3() Vec3 {
	n := math.NaN()
	return Vec3{n, n, n}
}

func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }
func (v Vec3) Sub(w Vec3) Vec3 { return Vec3{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Length is the euclidean norm; NaN if any component is NaN.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsNaN reports whether any component is undefined.
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// XYDefined reports whether both planar components are defined.
func (v Vec3) XYDefined() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y)
}

// XY drops the Z component.
func (v Vec3) XY() vec.Vec2 {
	return vec.Vec2{X: v.X, Y: v.Y}
}

// WithZ returns v with its Z component replaced.
func (v Vec3) WithZ(z float64) Vec3 {
	v.Z = z
	return v
}

// BBox is the axis aligned extent of a toolpath.
type BBox struct {
	Min Vec3
	Max Vec3
}

// Size returns the extent along each axis.
func (b BBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// add grows the box by p, ignoring undefined components. The first call
// must be made on a box produced by emptyBBox.
func (b *BBox) add(p Vec3) {
	grow := func(lo, hi *float64, c float64) {
		if math.IsNaN(c) {
			return
		}
		if math.IsNaN(*lo) || c < *lo {
			*lo = c
		}
		if math.IsNaN(*hi) || c > *hi {
			*hi = c
		}
	}
	grow(&b.Min.X, &b.Max.X, p.X)
	grow(&b.Min.Y, &b.Max.Y, p.Y)
	grow(&b.Min.Z, &b.Max.Z, p.Z)
}

func emptyBBox() BBox {
	return BBox{Min: NaN3(), Max: NaN3()}
}

// zeroUndefined replaces undefined axes of an otherwise finished box with 0
// so that consumers never see NaN extremes.
func (b BBox) zeroUndefined() BBox {
	fix := func(c *float64) {
		if math.IsNaN(*c) {
			*c = 0
		}
	}
	fix(&b.Min.X)
	fix(&b.Min.Y)
	fix(&b.Min.Z)
	fix(&b.Max.X)
	fix(&b.Max.Y)
	fix(&b.Max.Z)
	return b
}
