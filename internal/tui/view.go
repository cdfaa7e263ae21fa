package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/filter"
	"github.com/existflow/taskcal/internal/gesture"
	"github.com/existflow/taskcal/internal/model"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	l := m.layout()
	tasks := m.visible()

	header := m.renderHeader(l, len(tasks))
	mainContent := m.renderGrid(l, tasks)

	switch m.mode {
	case ModeAddTask:
		mainContent = lipgloss.Place(
			m.width, l.weeks*l.cellH,
			lipgloss.Center, lipgloss.Center,
			m.renderForm(),
			lipgloss.WithWhitespaceChars(" "),
		)
	case ModeHelp:
		mainContent = m.renderHelp(l.weeks * l.cellH)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		mainContent,
		m.renderFilterBar(),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader(l layout, count int) string {
	title := HeaderStyle.Render(calendar.FormatMonth(l.monthStart))
	noun := "tasks"
	if count == 1 {
		noun = "task"
	}
	title += HelpStyle.Render(fmt.Sprintf("  %d %s", count, noun))

	var names strings.Builder
	for _, d := range l.days()[:7] {
		names.WriteString(WeekdayStyle.Render(fit(" "+d.Format("Mon"), l.cellW)))
	}

	return fit(title, m.width) + "\n" + names.String()
}

func (m Model) renderGrid(l layout, tasks []model.Task) string {
	days := l.days()
	today := m.now()
	drag, dragging := m.gesture.DragContext()

	rows := make([]string, 0, l.weeks*l.cellH)
	for w := 0; w < l.weeks; w++ {
		week := days[w*7 : w*7+7]
		for line := 0; line < l.cellH; line++ {
			var row strings.Builder
			for _, day := range week {
				row.WriteString(m.renderCellLine(l, day, line, tasks, today, drag, dragging))
			}
			rows = append(rows, row.String())
		}
	}
	return strings.Join(rows, "\n")
}

// renderCellLine draws one line of a day cell, exactly cellW wide
func (m Model) renderCellLine(l layout, day time.Time, line int, tasks []model.Task,
	today time.Time, drag gesture.Context, dragging bool) string {
	selected := m.gesture.InSelection(day)

	if line == 0 {
		style := DayNumberStyle
		switch {
		case calendar.IsSameDay(day, today):
			style = TodayStyle
		case !l.inMonth(day):
			style = OutsideMonthStyle
		}
		if selected {
			style = style.Background(Highlight)
		}
		return style.Render(fit(fmt.Sprintf("%2d", day.Day()), l.cellW))
	}

	bars, more := l.shown(filter.OnDay(tasks, day))
	idx := line - 1
	switch {
	case idx < len(bars):
		return renderBar(bars[idx], day, l.cellW, dragging && drag.TaskID == bars[idx].ID)
	case more > 0 && line == l.barRows():
		return MoreStyle.Render(fit(fmt.Sprintf("+%d more", more), l.cellW))
	}

	blank := strings.Repeat(" ", l.cellW)
	if selected {
		return SelectedStyle.Render(blank)
	}
	return blank
}

// renderBar draws the slice of a task bar that falls on day. The first
// and last columns of the bar's end cells are its resize handles.
func renderBar(t model.Task, day time.Time, w int, active bool) string {
	left, right := " ", " "
	if t.IsFirstDay(day) {
		left = "["
	}
	if t.IsLastDay(day) {
		right = "]"
	}

	name := ""
	if t.IsFirstDay(day) || day.Weekday() == time.Sunday {
		name = t.Name
	}

	style := BarStyle(t.Category)
	if active {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(left + fit(name, w-2) + right)
}

func (m Model) renderFilterBar() string {
	var b strings.Builder
	for i, c := range model.Categories {
		chip := fmt.Sprintf("%d %s", i+1, c)
		if m.criteria.Categories.Has(c) {
			b.WriteString(ChipOnStyle.Foreground(CategoryColor(c)).Render(chip))
		} else {
			b.WriteString(ChipOffStyle.Render(chip))
		}
		b.WriteString("  ")
	}
	b.WriteString(FilterBarStyle.Render("w " + m.criteria.Window.Label()))

	switch {
	case m.mode == ModeSearch:
		b.WriteString("  " + m.search.View())
	case m.criteria.Search != "":
		b.WriteString(FilterBarStyle.Render("  /" + m.criteria.Search))
	}

	return fit(b.String(), m.width)
}

func (m Model) renderStatusBar() string {
	var status string
	switch {
	case m.gesture.Dragging():
		status = m.dragStatus()
	case m.gesture.Selecting():
		days := m.gesture.ActiveDays()
		status = "Selecting " + spanLabel(days[0], days[len(days)-1])
	case m.message != "":
		status = m.message
	default:
		status = "drag days: add  drag bar: move  drag [ ]: resize  /:search  1-4:category  w:window  ?:help  q:quit"
	}
	return StatusBarStyle.Render(fit(status, m.width))
}

func (m Model) dragStatus() string {
	ctx, _ := m.gesture.DragContext()
	t, ok := m.store.Get(ctx.TaskID)
	if !ok {
		return ""
	}

	verb := "Moving"
	switch ctx.Mode {
	case gesture.ModeResizeStart:
		verb = "Resizing start of"
	case gesture.ModeResizeEnd:
		verb = "Resizing end of"
	}
	return fmt.Sprintf("%s %s: %s", verb, t.Name, spanLabel(t.Start, t.End))
}

func (m Model) renderForm() string {
	p, _ := m.gesture.Pending()

	content := lipgloss.NewStyle().Bold(true).Render("Add Task") + "\n"
	content += HelpStyle.Render(spanLabel(p.Start, p.End)) + "\n\n"
	content += m.input.View() + "\n\n"

	var cats []string
	for _, c := range model.Categories {
		if c == m.category {
			cats = append(cats, FormatCategory(c))
		} else {
			cats = append(cats, HelpStyle.Render(c.String()))
		}
	}
	content += strings.Join(cats, "  ") + "\n\n"

	if m.formErr != "" {
		content += ErrorStyle.Render(m.formErr) + "\n\n"
	}
	content += HelpStyle.Render("Enter:save  Tab:category  Esc:cancel")

	return ModalStyle.Render(content)
}

func (m Model) renderHelp(height int) string {
	help := `
╭──── Mouse and keys ────────╮
│                            │
│  Mouse                     │
│  ─────                     │
│  drag days   New task      │
│  drag bar    Move task     │
│  drag [ / ]  Resize task   │
│                            │
│  Filters                   │
│  ───────                   │
│  /       Search            │
│  1-4     Toggle category   │
│  w       Time window       │
│  c       Clear filters     │
│                            │
│  Other                     │
│  ─────                     │
│  ?       Toggle help       │
│  q       Quit              │
│                            │
╰────────────────────────────╯

     Press any key to close
`
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, help)
}
