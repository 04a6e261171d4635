package draw

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/rect"

	"pathview/internal/geom"
)

// MaxImageSize bounds each raster dimension.
const MaxImageSize = 8192

var quadColor = colorful.Color{R: 1, G: 0, B: 0}

// BuildRaster rasterizes the end point of every segment into a bitmap of
// the source's suggested resolution and emits a textured quad over the
// toolpath's bounding rectangle.
//
// If the resolution exceeds MaxImageSize, or the source metadata cannot
// describe a grid, no bitmap is produced: the quad vertices go to the line
// buffer with undefined aux data and Image stays nil.
func BuildRaster(src Source, cfg Config) *RasterGeometry {
	cls := cfg.Classifier()
	g := &RasterGeometry{
		Origin:    src.MinExtremes().XY(),
		PixelSize: src.MinLength(),
	}

	w, h := src.Resolution()
	if img := g.allocate(w, h, cfg.Palette.Background); img != nil {
		g.Image = img
		rejected := 0
		for _, s := range src.Segments() {
			if s.End.IsNaN() {
				continue
			}
			if !g.setPixel(s.End, cls.Color(s)) {
				rejected++
			}
		}
		if rejected > 0 {
			Logger().Debug("raster pixels outside grid", "count", rejected)
		}
	} else {
		Logger().Warn("raster unavailable, drawing outline",
			"width", w, "height", h, "pixelSize", g.PixelSize, "max", MaxImageSize)
	}

	lo, hi := src.MinExtremes(), src.MaxExtremes()
	quad := boundingQuad(rect.Rect{LLx: lo.X, LLy: lo.Y, URx: hi.X, URy: hi.Y})
	if g.Image != nil {
		g.Triangles = quad
		g.textureDirty.Store(true)
	} else {
		for i := range quad {
			quad[i].Aux = noAux()
		}
		g.Lines = quad
	}

	Logger().Debug("raster prepared",
		"segments", len(src.Segments()), "width", w, "height", h, "textured", g.Image != nil)
	return g
}

func (g *RasterGeometry) allocate(w, h int, bg colorful.Color) *image.RGBA {
	if w <= 0 || h <= 0 || w > MaxImageSize || h > MaxImageSize {
		return nil
	}
	if !(g.PixelSize > 0) || math.IsInf(g.PixelSize, 0) {
		return nil
	}
	if math.IsNaN(g.Origin.X) || math.IsNaN(g.Origin.Y) {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r, gr, b := bg.RGB255()
	xdraw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: r, G: gr, B: b, A: 0xff}), image.Point{}, xdraw.Src)
	return img
}

// PixelOf maps a point to its pixel. ok is false for undefined points and
// points outside the grid.
func (g *RasterGeometry) PixelOf(p geom.Vec3) (x, y int, ok bool) {
	if g.Image == nil {
		return 0, 0, false
	}
	v := p.XY().Sub(g.Origin).Mul(1 / g.PixelSize)
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || v.X < 0 || v.Y < 0 {
		return 0, 0, false
	}
	b := g.Image.Bounds()
	if v.X >= float64(b.Dx()) || v.Y >= float64(b.Dy()) {
		return 0, 0, false
	}
	return int(v.X), int(v.Y), true
}

func (g *RasterGeometry) setPixel(p geom.Vec3, c colorful.Color) bool {
	x, y, ok := g.PixelOf(p)
	if !ok {
		return false
	}
	r, gr, b := c.RGB255()
	g.Image.SetRGBA(x, y, color.RGBA{R: r, G: gr, B: b, A: 0xff})
	return true
}

// boundingQuad returns two triangles covering r at Z 0. Aux carries
// (NaN, u, v) texture coordinates.
func boundingQuad(r rect.Rect) []Vertex {
	corner := func(x, y, u, v float64) Vertex {
		return Vertex{
			Position: geom.Vec3{X: x, Y: y},
			Color:    quadColor,
			Aux:      geom.Vec3{X: math.NaN(), Y: u, Z: v},
		}
	}
	return []Vertex{
		corner(r.LLx, r.LLy, 0, 0),
		corner(r.URx, r.URy, 1, 1),
		corner(r.LLx, r.URy, 0, 1),
		corner(r.LLx, r.LLy, 0, 0),
		corner(r.URx, r.LLy, 1, 0),
		corner(r.URx, r.URy, 1, 1),
	}
}

// Snapshot returns a copy of Image with row 0 at the top of the toolpath
// (largest Y), the orientation image encoders and terminals expect. It
// returns nil when there is no bitmap.
func (g *RasterGeometry) Snapshot() *image.RGBA {
	if g.Image == nil {
		return nil
	}
	b := g.Image.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := g.Image.Pix[g.Image.PixOffset(b.Min.X, b.Max.Y-1-y):]
		copy(out.Pix[out.PixOffset(0, y):out.PixOffset(0, y)+4*b.Dx()], src[:4*b.Dx()])
	}
	return out
}

// Extent is the world rectangle covered by Image.
func (g *RasterGeometry) Extent() rect.Rect {
	if g.Image == nil {
		return rect.Rect{}
	}
	b := g.Image.Bounds()
	return rect.Rect{
		LLx: g.Origin.X,
		LLy: g.Origin.Y,
		URx: g.Origin.X + float64(b.Dx())*g.PixelSize,
		URy: g.Origin.Y + float64(b.Dy())*g.PixelSize,
	}
}
