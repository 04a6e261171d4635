package tui

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/geom/vec"

	"pathview/internal/draw"
	"pathview/internal/geom"
)

// viewport maps toolpath X/Y onto the braille microgrid (2x4 dots per
// cell). The toolpath is fitted to the map area keeping its aspect ratio,
// then zoomed around the centre and panned.
type viewport struct {
	mid        vec.Vec2
	scale      float64 // micro-pixels per toolpath unit
	wMic, hMic int
	offX, offY int // micro-pixels
}

func (m Model) viewport(w, h int) (viewport, bool) {
	if m.drawer == nil || m.drawer.Source() == nil || w <= 1 || h <= 1 {
		return viewport{}, false
	}
	lo, hi := m.drawer.MinExtremes().XY(), m.drawer.MaxExtremes().XY()
	span := hi.Sub(lo)
	if span.X <= 0 {
		span.X = 1
	}
	if span.Y <= 0 {
		span.Y = 1
	}
	v := viewport{
		mid:  lo.Add(hi).Mul(0.5),
		wMic: w * 2,
		hMic: h * 4,
		offX: m.offsetX * 2,
		offY: m.offsetY * 4,
	}
	v.scale = math.Min(float64(v.wMic-1)/span.X, float64(v.hMic-1)/span.Y) * m.zoom
	return v, true
}

// toMicro maps a toolpath point to micro coordinates. Y grows upwards in
// the toolpath and downwards on screen.
func (v viewport) toMicro(p vec.Vec2) (int, int) {
	d := p.Sub(v.mid).Mul(v.scale)
	return int(math.Floor(float64(v.wMic)/2+d.X)) + v.offX,
		int(math.Floor(float64(v.hMic)/2-d.Y)) + v.offY
}

// fromMicro is the inverse of toMicro at the centre of the micro-pixel.
func (v viewport) fromMicro(mx, my int) vec.Vec2 {
	dx := float64(mx-v.offX) + 0.5 - float64(v.wMic)/2
	dy := float64(v.hMic)/2 - (float64(my-v.offY) + 0.5)
	return v.mid.Add(vec.Vec2{X: dx, Y: dy}.Mul(1 / v.scale))
}

func (m Model) renderMap(w, h int) string {
	bg := m.drawer.Config().Palette.Background
	if m.dev.mode == draw.Raster && m.dev.texture != nil {
		return m.renderRaster(w, h, bg)
	}

	br := newBrailleBuf(w, h, bg)
	if v, ok := m.viewport(w, h); ok {
		lines := m.dev.lines
		for i := 0; i+1 < len(lines); i += 2 {
			a, b := lines[i].Position, lines[i+1].Position
			x0, y0 := v.toMicro(a.XY())
			x1, y1 := v.toMicro(b.XY())
			br.drawLineMicro(x0, y0, x1, y1, lines[i].Color)
		}
		for _, p := range m.dev.points {
			mx, my := v.toMicro(p.Position.XY())
			br.fillCell(mx, my, p.Color)
		}
	}

	out := br.toLines()
	if m.hovering {
		out = m.overlayHover(out, br)
	}
	return strings.Join(out, "\n")
}

// overlayHover re-renders the hovered cell as a circle.
func (m Model) overlayHover(lines []string, br *brailleBuf) []string {
	cx, cy := m.hoverCellX, m.hoverCellY
	if cy < 0 || cy >= len(lines) || cx < 0 || cx >= br.w {
		return lines
	}
	circle := lipgloss.NewStyle().
		Foreground(hoverFg).
		Background(lipgloss.Color(br.bg.Hex())).
		Render("◯")
	lines[cy] = br.row(cy, 0, cx) + circle + br.row(cy, cx+1, br.w)
	return lines
}

// renderRaster scales the bitmap into a w x 2h pixel grid and prints two
// pixels per cell with the upper half block.
func (m Model) renderRaster(w, h int, bg colorful.Color) string {
	r, g, b := bg.RGB255()
	dst := image.NewRGBA(image.Rect(0, 0, w, h*2))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{R: r, G: g, B: b, A: 0xff}), image.Point{}, xdraw.Src)

	if v, ok := m.viewport(w, h); ok {
		ext := m.dev.extent
		x0, y0 := v.toMicro(vec.Vec2{X: ext.LLx, Y: ext.URy})
		x1, y1 := v.toMicro(vec.Vec2{X: ext.URx, Y: ext.LLy})
		dr := image.Rect(x0/2, y0/2, x1/2, y1/2)
		if !dr.Empty() {
			xdraw.NearestNeighbor.Scale(dst, dr, m.dev.texture, m.dev.texture.Bounds(), xdraw.Src, nil)
		}
	}

	out := make([]string, h)
	for y := 0; y < h; y++ {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			top, bot := dst.RGBAAt(x, 2*y), dst.RGBAAt(x, 2*y+1)
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexOf(top))).
				Background(lipgloss.Color(hexOf(bot))).
				Render("▀"))
		}
		out[y] = sb.String()
	}
	return strings.Join(out, "\n")
}

func hexOf(c color.RGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}

// nearestSegment returns the index of the segment closest to the micro
// coordinate, within maxDist micro-pixels.
func (m Model) nearestSegment(v viewport, mx, my int, maxDist float64) int {
	segs := m.drawer.Source().Segments()
	p := vec.Vec2{X: float64(mx), Y: float64(my)}
	best, bestD := -1, maxDist
	for i, s := range segs {
		if !s.Start.XYDefined() || !s.End.XYDefined() {
			continue
		}
		if d := distToSegment(p, microOf(v, s.Start), microOf(v, s.End)); d <= bestD {
			best, bestD = i, d
		}
	}
	return best
}

func microOf(v viewport, p geom.Vec3) vec.Vec2 {
	x, y := v.toMicro(p.XY())
	return vec.Vec2{X: float64(x), Y: float64(y)}
}

func distToSegment(p, a, b vec.Vec2) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Sub(a.Add(ab.Mul(t))).Length()
}
