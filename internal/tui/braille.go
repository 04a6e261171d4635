package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

type brailleBuf struct {
	w, h int                // in cells
	m    [][]uint8          // per-cell 8-bit mask
	c    [][]colorful.Color // per-cell ink, last write wins
	bg   colorful.Color
}

func newBrailleBuf(w, h int, bg colorful.Color) *brailleBuf {
	m := make([][]uint8, h)
	c := make([][]colorful.Color, h)
	for i := range m {
		m[i] = make([]uint8, w)
		c[i] = make([]colorful.Color, w)
	}
	return &brailleBuf{w: w, h: h, m: m, c: c, bg: bg}
}

// brailleBits indexes dot bits by [column][row] inside a cell.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int, c colorful.Color) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy >= b.h || cx >= b.w {
		return
	}
	b.m[cy][cx] |= brailleBits[rx][ry]
	b.c[cy][cx] = c
}

// fillCell sets every dot of the cell containing the micro-pixel.
func (b *brailleBuf) fillCell(mx, my int, c colorful.Color) {
	if mx < 0 || my < 0 || my/4 >= b.h || mx/2 >= b.w {
		return
	}
	b.m[my/4][mx/2] = 0xff
	b.c[my/4][mx/2] = c
}

// drawLineMicro draws a line on the microgrid using Bresenham
func (b *brailleBuf) drawLineMicro(x0, y0, x1, y1 int, c colorful.Color) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.setPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// glyph returns the braille rune of a cell, ' ' when empty.
func (b *brailleBuf) glyph(x, y int) rune {
	if b.m[y][x] == 0 {
		return ' '
	}
	return rune(0x2800 + int(b.m[y][x]))
}

// toLines renders the buffer one string per cell row.
func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := range out {
		out[y] = b.row(y, 0, b.w)
	}
	return out
}

// row renders cells [x0, x1) of row y, grouping runs of equally coloured
// cells into one styled span.
func (b *brailleBuf) row(y, x0, x1 int) string {
	bg := lipgloss.Color(b.bg.Hex())
	var sb strings.Builder
	var run []rune
	var ink colorful.Color
	flush := func() {
		if len(run) == 0 {
			return
		}
		sb.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ink.Hex())).
			Background(bg).
			Render(string(run)))
		run = run[:0]
	}
	for x := x0; x < x1; x++ {
		c := b.c[y][x]
		if b.m[y][x] == 0 {
			c = ink
		}
		if len(run) > 0 && c != ink {
			flush()
		}
		ink = c
		run = append(run, b.glyph(x, y))
	}
	flush()
	return sb.String()
}
