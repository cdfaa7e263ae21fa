package tui

import (
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/filter"
	"github.com/existflow/taskcal/internal/gesture"
	"github.com/existflow/taskcal/internal/model"
)

const (
	headerLines = 2 // month title, weekday names
	footerLines = 2 // filter bar, status bar
	minCellW    = 6
	minCellH    = 2
)

// layout is the month grid geometry. The grid starts at column 0 of line
// headerLines; each day is a cellW x cellH block whose first line holds
// the day number and whose remaining lines hold task bars.
type layout struct {
	monthStart time.Time
	monthEnd   time.Time
	gridStart  time.Time
	weeks      int
	cellW      int
	cellH      int
}

func newLayout(month time.Time, width, height int) layout {
	first, last := calendar.MonthBounds(month)
	start, end := calendar.GridBounds(first, last, time.Sunday)
	weeks := calendar.DaysBetweenInclusive(start, end) / 7

	cellW := width / 7
	if cellW < minCellW {
		cellW = minCellW
	}
	cellH := (height - headerLines - footerLines) / weeks
	if cellH < minCellH {
		cellH = minCellH
	}

	return layout{
		monthStart: first,
		monthEnd:   last,
		gridStart:  start,
		weeks:      weeks,
		cellW:      cellW,
		cellH:      cellH,
	}
}

// days lists every grid day in row-major order
func (l layout) days() []time.Time {
	return calendar.EnumerateDays(l.gridStart, calendar.AddDays(l.gridStart, l.weeks*7-1))
}

// inMonth reports whether day belongs to the displayed month
func (l layout) inMonth(day time.Time) bool {
	return calendar.WithinInterval(day, l.monthStart, l.monthEnd)
}

// barRows is the number of task lines in a cell
func (l layout) barRows() int {
	return l.cellH - 1
}

// cell resolves a screen position to a grid day and the line and column
// inside that day's cell
func (l layout) cell(x, y int) (day time.Time, line, col int, ok bool) {
	gy := y - headerLines
	if x < 0 || gy < 0 || x >= l.cellW*7 || gy >= l.cellH*l.weeks {
		return time.Time{}, 0, 0, false
	}
	row, column := gy/l.cellH, x/l.cellW
	return calendar.AddDays(l.gridStart, row*7+column), gy % l.cellH, x % l.cellW, true
}

// origin returns the screen position of the top-left corner of day's cell
func (l layout) origin(day time.Time) (x, y int, ok bool) {
	offset := calendar.DaysBetweenInclusive(l.gridStart, day) - 1
	if offset < 0 || offset >= l.weeks*7 {
		return 0, 0, false
	}
	return (offset % 7) * l.cellW, headerLines + (offset/7)*l.cellH, true
}

// shown splits the tasks on a day into the bars drawn and the overflow
// count. When they do not all fit, the last line becomes "+N more".
func (l layout) shown(onDay []model.Task) ([]model.Task, int) {
	rows := l.barRows()
	if len(onDay) <= rows {
		return onDay, 0
	}
	if rows <= 1 {
		return nil, len(onDay)
	}
	return onDay[:rows-1], len(onDay) - (rows - 1)
}

// hit maps a screen position to a gesture target using the same geometry
// the grid is drawn with
func (l layout) hit(x, y int, tasks []model.Task) gesture.Target {
	day, line, col, ok := l.cell(x, y)
	if !ok {
		return gesture.Nowhere
	}
	if line == 0 {
		return gesture.OnDay(day)
	}

	bars, _ := l.shown(filter.OnDay(tasks, day))
	if line-1 >= len(bars) {
		return gesture.OnDay(day)
	}

	t := bars[line-1]
	switch {
	case col == 0 && t.IsFirstDay(day):
		return gesture.OnStartHandle(t.ID, day)
	case col == l.cellW-1 && t.IsLastDay(day):
		return gesture.OnEndHandle(t.ID, day)
	default:
		return gesture.OnBody(t.ID, day)
	}
}
