package tui

import (
	"fmt"
	"strings"
	"time"

	key "github.com/charmbracelet/bubbles/key"
	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"pathview/internal/draw"
	"pathview/internal/geom"
)

// tickMsg drives the engine's update cadence.
type tickMsg time.Time

// playMsg advances playback. Messages from a stopped run carry an old id.
type playMsg struct{ id int }

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.drawer.Config().UpdateInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model) schedulePlay() tea.Cmd {
	id := m.playID
	return tea.Tick(m.settings.Viewer.PlaybackInterval.Duration, func(time.Time) tea.Msg { return playMsg{id: id} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.sync()
		return m, m.scheduleTick()
	case playMsg:
		if !m.playing || msg.id != m.playID {
			return m, nil
		}
		if m.advance(m.settings.Viewer.PlaybackStep) {
			return m, m.schedulePlay()
		}
		m.playing = false
		m.status = "playback finished"
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.height-1-2) // provisional; will be refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				segs, err := geom.ParseWKT(w)
				if err != nil {
					m.status = "wkt error: " + err.Error()
					return m, nil
				}
				m.selPath = ""
				m.setToolpath(geom.NewToolpath(segs))
				m.status = fmt.Sprintf("rendered WKT  segments=%d", len(segs))
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showAttrs && (msg.String() == "up" || msg.String() == "down" || msg.String() == "pgup" || msg.String() == "pgdown") {
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Play):
			return m, m.togglePlayback()
		case key.Matches(msg, m.keys.Reset):
			m.resetDrawn()
		case key.Matches(msg, m.keys.Mode):
			mode := draw.Raster
			if m.drawer.Config().Mode == draw.Raster {
				mode = draw.Vectors
			}
			m.drawer.SetMode(mode)
			m.status = "mode: " + mode.String()
		case key.Matches(msg, m.keys.Simplify):
			m.toggleSimplify()
		case key.Matches(msg, m.keys.IgnoreZ):
			cfg := m.drawer.Config()
			cfg.IgnoreZ = !cfg.IgnoreZ
			m.drawer.SetConfig(cfg)
			m.status = fmt.Sprintf("ignore Z: %v", cfg.IgnoreZ)
		case key.Matches(msg, m.keys.Grayscale):
			m.cycleGrayscale()
		case key.Matches(msg, m.keys.ZoomIn):
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case key.Matches(msg, m.keys.ZoomOut):
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case key.Matches(msg, m.keys.Sidebar):
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(sidebarWidth-2, m.height-1-2)
			}
		case key.Matches(msg, m.keys.Paste):
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
		case key.Matches(msg, m.keys.Attrs):
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromCurrent()
			}
		case key.Matches(msg, m.keys.Open):
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case key.Matches(msg, m.keys.Up):
			m.offsetY -= 1
		case key.Matches(msg, m.keys.Down):
			m.offsetY += 1
		case key.Matches(msg, m.keys.Left):
			m.offsetX -= 2
		case key.Matches(msg, m.keys.Right):
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m.hover(msg.X, msg.Y)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// sync runs the engine's queued work and copies changed buffers to the
// device.
func (m *Model) sync() {
	if m.drawer.Scheduler().Tick() {
		m.drawer.UpdateData(m.dev)
	}
	if m.drawer.GeometryUpdated() {
		m.dev.upload(m.drawer.Geometry())
		m.drawer.AckGeometry()
		return
	}
	if rg, ok := m.drawer.Geometry().(*draw.RasterGeometry); ok && rg.TextureDirty() {
		m.dev.uploadTexture(rg)
	}
}

func (m *Model) togglePlayback() tea.Cmd {
	if m.tp == nil {
		m.status = "nothing loaded"
		return nil
	}
	m.playing = !m.playing
	if !m.playing {
		m.status = fmt.Sprintf("paused at segment %d", m.cursor)
		return nil
	}
	m.playID++
	m.status = "playing"
	return m.schedulePlay()
}

// advance marks the next n segments drawn. It reports whether segments
// remain.
func (m *Model) advance(n int) bool {
	segs := m.tp.Segments()
	var idx []int
	for ; n > 0 && m.cursor < len(segs); n-- {
		segs[m.cursor].SetDrawn(true)
		idx = append(idx, m.cursor)
		m.cursor++
	}
	m.drawer.UpdateIndex(idx...)
	return m.cursor < len(segs)
}

func (m *Model) resetDrawn() {
	if m.tp == nil {
		return
	}
	for _, s := range m.tp.Segments() {
		s.SetDrawn(false)
	}
	m.cursor = 0
	m.playing = false
	m.drawer.Update()
	m.status = "reset"
}

func (m *Model) toggleSimplify() {
	cfg := m.drawer.Config()
	cfg.Simplify = !cfg.Simplify
	if cfg.Simplify && cfg.SimplifyPrecision <= 0 && m.tp != nil {
		// merge runs shorter than a few of the shortest features
		cfg.SimplifyPrecision = 4 * m.tp.MinLength()
	}
	m.drawer.SetConfig(cfg)
	m.status = fmt.Sprintf("simplify: %v (precision %g)", cfg.Simplify, cfg.SimplifyPrecision)
}

// cycleGrayscale steps off, spindle speed, Z. Speed uses the configured
// range; Z uses the toolpath's depth range.
func (m *Model) cycleGrayscale() {
	cfg := m.drawer.Config()
	switch cfg.Grayscale.Code {
	case draw.GrayscaleOff:
		cfg.Grayscale = m.settings.Drawer().Grayscale
		cfg.Grayscale.Code = draw.GrayscaleSpeed
	case draw.GrayscaleSpeed:
		// the toolpath's own range; the drawer's extremes are flattened under IgnoreZ
		cfg.Grayscale = draw.Grayscale{Code: draw.GrayscaleZ}
		if m.tp != nil {
			cfg.Grayscale.Min = m.tp.MinExtremes().Z
			cfg.Grayscale.Max = m.tp.MaxExtremes().Z
		}
	default:
		cfg.Grayscale.Code = draw.GrayscaleOff
	}
	m.drawer.SetConfig(cfg)
	m.status = "grayscale: " + cfg.Grayscale.Code.String()
}

// hover tracks the mouse over the map area and highlights the nearest
// segment.
func (m *Model) hover(x, y int) {
	mx0, my0, w, h := m.layout()
	if x < mx0 || x >= mx0+w || y < my0 || y >= my0+h || m.showAttrs || m.pasteMode {
		m.hovering = false
		m.hoverHasXY = false
		m.setHover(-1)
		return
	}
	m.hovering = true
	m.hoverCellX = x - mx0
	m.hoverCellY = y - my0
	v, ok := m.viewport(w, h)
	if !ok {
		m.hoverHasXY = false
		return
	}
	hx, hy := m.hoverCellX*2, m.hoverCellY*4
	p := v.fromMicro(hx, hy)
	m.hoverPos = [2]float64{p.X, p.Y}
	m.hoverHasXY = true
	m.setHover(m.nearestSegment(v, hx, hy, 8))
}

// setHover moves the highlight to segment i, -1 for none.
func (m *Model) setHover(i int) {
	if i == m.hoverSeg || m.tp == nil {
		return
	}
	segs := m.tp.Segments()
	var idx []int
	if m.hoverSeg >= 0 && m.hoverSeg < len(segs) {
		segs[m.hoverSeg].SetHighlighted(false)
		idx = append(idx, m.hoverSeg)
	}
	if i >= 0 && i < len(segs) {
		segs[i].SetHighlighted(true)
		idx = append(idx, i)
	}
	m.hoverSeg = i
	m.drawer.UpdateIndex(idx...)
}
