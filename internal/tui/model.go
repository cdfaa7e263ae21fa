package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/taskcal/internal/filter"
	"github.com/existflow/taskcal/internal/gesture"
	"github.com/existflow/taskcal/internal/logger"
	"github.com/existflow/taskcal/internal/model"
	"github.com/existflow/taskcal/internal/store"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeSearch
	ModeHelp
)

// Option configures a Model
type Option func(*Model)

// WithMonth sets the month shown in the grid
func WithMonth(t time.Time) Option {
	return func(m *Model) { m.month = t }
}

// WithCriteria sets the initial filters
func WithCriteria(c filter.Criteria) Option {
	return func(m *Model) { m.criteria = c }
}

// WithClock replaces time.Now, used for "today"
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// motionTracker turns gesture listener scopes into bubbletea mouse-mode
// commands: all-motion reporting while a gesture is live, cell motion
// otherwise.
type motionTracker struct {
	pending []tea.Cmd
	active  int
}

func (t *motionTracker) Track() func() {
	t.active++
	t.pending = append(t.pending, tea.EnableMouseAllMotion)
	return func() {
		t.active--
		t.pending = append(t.pending, tea.EnableMouseCellMotion)
	}
}

// drain returns the queued mode changes as a single command
func (t *motionTracker) drain() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Sequence(cmds...)
}

// Model is the main TUI model
type Model struct {
	store   *store.Store
	gesture *gesture.Controller
	tracker *motionTracker

	month    time.Time
	now      func() time.Time
	criteria filter.Criteria

	// UI state
	width  int
	height int
	mode   Mode

	// Entry form
	input    textinput.Model
	category model.Category
	formErr  string

	// Search
	search textinput.Model

	message string
}

// NewModel creates a new TUI model over s
func NewModel(s *store.Store, opts ...Option) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Enter task name"
	ti.CharLimit = 256
	ti.Width = 40

	si := textinput.New()
	si.Placeholder = "Search tasks..."
	si.Prompt = "/"
	si.CharLimit = 128
	si.Width = 30

	tracker := &motionTracker{}
	m := Model{
		store:    s,
		gesture:  gesture.NewController(s, tracker),
		tracker:  tracker,
		now:      time.Now,
		criteria: filter.DefaultCriteria(),
		mode:     ModeNormal,
		input:    ti,
		search:   si,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.month.IsZero() {
		m.month = m.now()
	}
	m.search.SetValue(m.criteria.Search)

	logger.Debug("TUI model initialized",
		logger.F("tasks", s.Len()),
		logger.F("month", m.month.Format("2006-01")),
		logger.F("window", m.criteria.Window))
	return m
}

// Close ends any gesture in progress and releases its listeners
func (m Model) Close() {
	m.gesture.Close()
}

// visible returns the filtered task list, recomputed on every call
func (m Model) visible() []model.Task {
	return filter.Apply(m.store.Tasks(), m.criteria, m.now())
}

// layout returns the grid geometry for the current window size
func (m Model) layout() layout {
	return newLayout(m.month, m.width, m.height)
}
