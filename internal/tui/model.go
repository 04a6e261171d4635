package tui

import (
	"os"

	help "github.com/charmbracelet/bubbles/help"
	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"pathview/internal/config"
	"pathview/internal/draw"
	"pathview/internal/geom"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	tp       *geom.Toolpath
	drawer   *draw.Drawer
	dev      *device
	settings *config.File

	// playback
	playing bool
	playID  int
	cursor  int // next segment to mark drawn

	// last rendered map size
	mapW int
	mapH int

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverSeg   int
	hoverPos   [2]float64
	hoverHasXY bool

	// attributes table
	showAttrs bool
	tbl       table.Model

	keys keyMap
	help help.Model
}

// New returns a viewer with no toolpath loaded. A nil settings file means
// defaults.
func New(settings *config.File) Model {
	if settings == nil {
		settings = config.Default()
	}
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "pathview ready",
		settings:    settings,
		drawer:      draw.New(nil, settings.Drawer()),
		dev:         newDevice(),
		hoverSeg:    -1,
		keys:        newKeyMap(),
		help:        help.New(),
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Toolpaths"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (LINESTRING, MULTILINESTRING). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// segment table, columns are fixed
	m.tbl = table.New(table.WithColumns(segmentColumns()), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a toolpath at launch.
func NewWithPath(settings *config.File, path string) Model {
	m := New(settings)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return m.scheduleTick() }
