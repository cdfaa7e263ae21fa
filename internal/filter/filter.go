// Package filter computes read-only views of the task list: the subset
// matching the user's filter criteria, and the tasks occupying a given day.
package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/model"
	"gopkg.in/yaml.v3"
)

// Window limits tasks to those starting within a number of weeks from
// today. The zero value is All.
type Window struct {
	Weeks int
}

// All matches every start date.
var All = Window{}

// Within returns a window of n weeks. n <= 0 yields All.
func Within(n int) Window {
	if n <= 0 {
		return All
	}
	return Window{Weeks: n}
}

// IsAll returns true when the window does not restrict dates.
func (w Window) IsAll() bool {
	return w.Weeks <= 0
}

// Contains reports whether start lies in [today, today+7*Weeks].
//
// Only the task's start date is tested, so a task that began before today
// is excluded even while it is still running.
func (w Window) Contains(start, today time.Time) bool {
	if w.IsAll() {
		return true
	}
	from := calendar.StartOfDay(today)
	return calendar.WithinInterval(start, from, calendar.AddDays(from, w.Weeks*7))
}

// String returns "all" or "<n>w".
func (w Window) String() string {
	if w.IsAll() {
		return "all"
	}
	return fmt.Sprintf("%dw", w.Weeks)
}

// Label is the human description shown in the filter panel.
func (w Window) Label() string {
	switch {
	case w.IsAll():
		return "All tasks"
	case w.Weeks == 1:
		return "Within 1 week"
	default:
		return fmt.Sprintf("Within %d weeks", w.Weeks)
	}
}

// ParseWindow accepts "all", "", "2", "2w", "2week" or "2weeks".
func ParseWindow(s string) (Window, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	if norm == "" || norm == "all" {
		return All, nil
	}
	for _, suffix := range []string{"weeks", "week", "w"} {
		if strings.HasSuffix(norm, suffix) {
			norm = strings.TrimSuffix(norm, suffix)
			break
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(norm))
	if err != nil || n < 0 {
		return All, fmt.Errorf("invalid time window %q", s)
	}
	return Within(n), nil
}

// MarshalYAML writes the window in ParseWindow form.
func (w Window) MarshalYAML() (interface{}, error) {
	return w.String(), nil
}

// UnmarshalYAML reads a window in ParseWindow form.
func (w *Window) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseWindow(s)
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Criteria is the full set of filter inputs.
type Criteria struct {
	Search     string
	Categories model.CategorySet
	Window     Window
}

// DefaultCriteria shows everything.
func DefaultCriteria() Criteria {
	return Criteria{Categories: model.AllCategories, Window: All}
}

// Match reports whether a single task passes every criterion.
func (c Criteria) Match(t model.Task, today time.Time) bool {
	if c.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(c.Search)) {
		return false
	}
	if !c.Categories.Has(t.Category) {
		return false
	}
	return c.Window.Contains(t.Start, today)
}

// Apply returns the tasks matching c, in their original order.
func Apply(tasks []model.Task, c Criteria, today time.Time) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if c.Match(t, today) {
			out = append(out, t)
		}
	}
	return out
}

// OnDay returns the tasks whose span includes day, in their original order.
func OnDay(tasks []model.Task, day time.Time) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if t.Covers(day) {
			out = append(out, t)
		}
	}
	return out
}
