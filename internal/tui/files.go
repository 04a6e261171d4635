package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"pathview/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{
			title: name,
			desc:  strings.ToLower(filepath.Ext(name)),
			path:  filepath.Join(m.cwd, name),
		})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no toolpath files in current directory"
	}
}

// loadPath loads a toolpath file into the viewer.
func (m *Model) loadPath(p string) {
	tp, err := geom.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.setToolpath(tp)
	w, h := tp.Resolution()
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  segments=%d  raster=%dx%d", len(tp.Segments()), w, h)
}

// setToolpath hands tp to the engine and resets view and playback state.
func (m *Model) setToolpath(tp *geom.Toolpath) {
	m.tp = tp
	m.drawer.SetSource(tp)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.cursor = 0
	m.playing = false
	m.hoverSeg = -1
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}
