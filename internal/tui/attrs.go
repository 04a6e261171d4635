package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"pathview/internal/geom"
)

func segmentColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 6},
		{Title: "line", Width: 5},
		{Title: "motion", Width: 6},
		{Title: "start", Width: 24},
		{Title: "end", Width: 24},
		{Title: "speed", Width: 7},
		{Title: "arc", Width: 10},
		{Title: "state", Width: 6},
	}
}

// refreshAttrsFromCurrent rebuilds the segment table from the loaded toolpath.
func (m *Model) refreshAttrsFromCurrent() {
	if m.tp == nil || len(m.tp.Segments()) == 0 {
		m.showAttrs = false
		m.status = "no segments for current toolpath"
		return
	}
	m.tbl.SetRows(segmentRows(m.tp.Segments()))
	m.tbl.SetCursor(max(0, m.cursor-1))
}

func segmentRows(segs []*geom.Segment) []table.Row {
	rows := make([]table.Row, 0, len(segs))
	for i, s := range segs {
		line := ""
		if s.LineNumber > 0 {
			line = fmt.Sprintf("%d", s.LineNumber)
		}
		arc := ""
		if s.Arc != nil {
			dir := "ccw"
			if s.Arc.Clockwise {
				dir = "cw"
			}
			arc = fmt.Sprintf("r%.2f %s", s.Arc.Radius, dir)
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i),
			line,
			s.Motion.String(),
			fmtVec(s.Start),
			fmtVec(s.End),
			fmt.Sprintf("%g", s.SpindleSpeed),
			arc,
			segmentState(s),
		})
	}
	return rows
}

func segmentState(s *geom.Segment) string {
	switch {
	case s.Drawn():
		return "drawn"
	case s.Highlighted():
		return "hover"
	}
	return ""
}
