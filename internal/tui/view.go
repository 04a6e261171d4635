package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"pathview/internal/draw"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout returns the map area's origin and size in cells.
func (m Model) layout() (x, y, w, h int) {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	if m.showSidebar {
		return sidebarWidth + 1, headerHeight, max(10, contentWidth-sidebarWidth-1), contentHeight
	}
	return 0, headerHeight, max(10, contentWidth-1), contentHeight
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentWidth := max(10, m.width)
	_, _, mapWidth, mapHeight := m.layout()

	// Update list size with accurate content height when sidebar visible
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, mapHeight-2)
	}

	// Header
	header := titleStyle.Render(" pathview ─ terminal toolpath viewer ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	// Sidebar
	var sidebar string
	if m.showSidebar {
		sidebar = lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
	}

	m.mapW = max(8, mapWidth)
	m.mapH = max(4, mapHeight)
	var mapView string
	switch {
	case m.showAttrs:
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 3
		}
		maxW := min(mapWidth, max(32, colW))
		m.tbl.SetWidth(maxW - 4)
		m.tbl.SetHeight(min(mapHeight-2, 20))
		attrsBox := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(mapWidth, mapHeight, lipgloss.Center, lipgloss.Center, attrsBox)
	case m.pasteMode:
		m.ta.SetWidth(m.mapW)
		m.ta.SetHeight(min(m.mapH, 12))
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.ta.View())
	default:
		mapView = lipgloss.NewStyle().Width(mapWidth).Height(mapHeight).Render(m.renderMap(m.mapW, m.mapH))
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer: status, help and cursor position
	status := dimStyle.Render(" " + m.status + " ")
	if m.helpVisible {
		status = lipgloss.JoinHorizontal(lipgloss.Bottom, status, " ", m.help.View(m.keys))
	}
	coords := dimStyle.Render(m.engineLine() + "  ")
	if m.hoverHasXY {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.3f y=%.3f", m.hoverPos[0], m.hoverPos[1])) + m.hoverLabel() + coords
	}
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, status, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

// engineLine summarises the engine state for the footer.
func (m Model) engineLine() string {
	cfg := m.drawer.Config()
	s := fmt.Sprintf("  %s", cfg.Mode)
	if cfg.Simplify {
		s += " simplified"
	}
	if cfg.IgnoreZ {
		s += " 2D"
	}
	if cfg.Grayscale.Code != draw.GrayscaleOff {
		s += " gray:" + cfg.Grayscale.Code.String()
	}
	if g := m.drawer.Geometry(); g != nil {
		s += fmt.Sprintf(" lines=%d", g.Primitives().LineCount())
		if vg, ok := g.(*draw.VectorGeometry); ok && vg.Desynced() {
			s += "*"
		}
	}
	return s
}

func (m Model) hoverLabel() string {
	if m.hoverSeg < 0 || m.tp == nil {
		return ""
	}
	s := m.tp.Segments()[m.hoverSeg]
	return accentStyle.Render(fmt.Sprintf("  #%d %s", m.hoverSeg, s.Motion))
}
