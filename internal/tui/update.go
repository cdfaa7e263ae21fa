package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/filter"
	"github.com/existflow/taskcal/internal/gesture"
	"github.com/existflow/taskcal/internal/logger"
	"github.com/existflow/taskcal/internal/model"
	"github.com/existflow/taskcal/internal/store"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		// A gesture that began in normal mode still gets its release
		if m.mode != ModeNormal {
			if !m.gesture.Tracking() {
				return m, nil
			}
			if msg.Action == tea.MouseActionPress {
				m.gesture.Close()
				return m, m.tracker.drain()
			}
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}

		switch m.mode {
		case ModeAddTask:
			return m.updateForm(msg)
		case ModeSearch:
			return m.updateSearch(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}

		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// handleMouse translates a mouse message into a pointer event for the
// gesture controller
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if tea.MouseEvent(msg).IsWheel() {
		return m, nil
	}

	target := m.layout().hit(msg.X, msg.Y, m.visible())

	var ev gesture.Event
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		ev = gesture.Down(target)
	case tea.MouseActionMotion:
		if !m.gesture.Tracking() {
			return m, nil
		}
		ev = gesture.Move(target)
	case tea.MouseActionRelease:
		if !m.gesture.Tracking() {
			return m, nil
		}
		ev = gesture.Up(target)
	default:
		return m, nil
	}

	res, err := m.gesture.Handle(ev)
	cmd := m.tracker.drain()
	if err != nil {
		logger.Error("Pointer event failed",
			logger.F("event", ev.Kind),
			logger.F("target", ev.Target.Kind),
			logger.F("error", err))
		m.message = fmt.Sprintf("Error: %v", err)
		return m, cmd
	}

	if res.Proposed {
		return m.openForm(res.Proposal, cmd)
	}
	if res.Changed {
		m.message = ""
	}
	return m, cmd
}

func (m Model) openForm(p gesture.Proposal, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.mode = ModeAddTask
	m.category = model.ToDo
	m.formErr = ""
	m.input.SetValue("")
	m.input.Focus()
	logger.Debug("Entry form opened", logger.F("days", p.Days()))
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m *Model) closeForm() {
	m.mode = ModeNormal
	m.formErr = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.gesture.Cancel()
		m.closeForm()
		m.message = "Cancelled"
		return m, nil

	case key.Matches(msg, keys.Tab):
		m.category = cycleCategory(m.category, 1)
		return m, nil

	case key.Matches(msg, keys.ShiftTab):
		m.category = cycleCategory(m.category, -1)
		return m, nil

	case key.Matches(msg, keys.Enter):
		task, err := m.gesture.Confirm(m.input.Value(), m.category)
		if err != nil {
			if errors.Is(err, store.ErrEmptyName) {
				m.formErr = "Task name is required"
			} else {
				logger.Error("Failed to create task", logger.F("error", err))
				m.formErr = err.Error()
			}
			return m, nil
		}
		m.closeForm()
		m.message = fmt.Sprintf("Added: %s (%s)", task.Name, spanLabel(task.Start, task.End))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.search.SetValue("")
		m.criteria.Search = ""
		m.search.Blur()
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Enter):
		m.search.Blur()
		m.mode = ModeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Live filter as user types
	m.criteria.Search = m.search.Value()
	return m, cmd
}

// handleNormalKeys handles key presses in normal mode
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.quit()

	case key.Matches(msg, keys.Search):
		m.mode = ModeSearch
		m.search.SetValue(m.criteria.Search)
		m.search.CursorEnd()
		m.search.Focus()
		return m, textinput.Blink

	case key.Matches(msg, keys.Categories):
		c := model.Categories[msg.String()[0]-'1']
		m.criteria.Categories = m.criteria.Categories.Toggle(c)
		state := "hidden"
		if m.criteria.Categories.Has(c) {
			state = "shown"
		}
		m.message = fmt.Sprintf("%s %s", c, state)

	case key.Matches(msg, keys.Window):
		m.criteria.Window = filter.Within((m.criteria.Window.Weeks + 1) % 4)
		m.message = m.criteria.Window.Label()

	case key.Matches(msg, keys.Clear):
		m.criteria = filter.DefaultCriteria()
		m.search.SetValue("")
		m.message = "Filters cleared"

	case key.Matches(msg, keys.Help):
		// The grid is hidden behind help, so a gesture on it cannot go on
		m.gesture.Close()
		m.mode = ModeHelp
		return m, m.tracker.drain()

	case key.Matches(msg, keys.Escape):
		m.message = ""
	}

	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.gesture.Close()
	m.tracker.drain()
	logger.Info("Quitting TUI", logger.F("tasks", m.store.Len()))
	return m, tea.Quit
}

func cycleCategory(c model.Category, step int) model.Category {
	n := len(model.Categories)
	return model.Categories[((int(c)+step)%n+n)%n]
}

// spanLabel formats an inclusive day range as "Aug 8" or "Aug 8 to Aug 10, 3d"
func spanLabel(start, end time.Time) string {
	if calendar.IsSameDay(start, end) {
		return start.Format("Jan 2")
	}
	return fmt.Sprintf("%s to %s, %dd",
		start.Format("Jan 2"), end.Format("Jan 2"), calendar.DaysBetweenInclusive(start, end))
}
