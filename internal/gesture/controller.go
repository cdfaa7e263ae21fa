// Package gesture interprets pointer events over the month grid as day-range
// selections, task moves and task edge resizes.
//
// Two independent state machines are involved. Selection and Drag are
// never active together, and Drag wins: a pointer-down on a task always
// starts a drag and abandons any selection in progress. Controller routes
// events between them and writes drag results to the task store.
package gesture

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/logger"
	"github.com/existflow/taskcal/internal/model"
	"github.com/existflow/taskcal/internal/store"
)

// ErrNoProposal is returned by Confirm when no selection is awaiting a name.
var ErrNoProposal = errors.New("no pending selection to confirm")

// Tasks is the store surface the controller needs.
type Tasks interface {
	Mutator
	Get(id string) (model.Task, bool)
	Create(name string, category model.Category, start, end time.Time) (model.Task, error)
}

// Tracker subscribes to pointer motion and release anywhere on screen for
// the duration of a gesture. Track returns the func that unsubscribes.
type Tracker interface {
	Track() (release func())
}

// TrackerFunc adapts a plain func to Tracker.
type TrackerFunc func() func()

// Track implements Tracker.
func (f TrackerFunc) Track() func() { return f() }

type noTracker struct{}

func (noTracker) Track() func() { return func() {} }

// Result reports what an event did.
type Result struct {
	// Proposed is set when a selection finished on this event; Proposal
	// holds the range the entry form should be opened for.
	Proposed bool
	Proposal Proposal
	// Changed is set when a drag altered the dragged task's dates.
	Changed bool
}

// Controller routes pointer events to the selection and drag machines.
type Controller struct {
	tasks     Tasks
	tracker   Tracker
	release   func()
	selection Selection
	drag      Drag
}

// NewController creates a controller writing to tasks. A nil tracker
// disables listener scoping.
func NewController(tasks Tasks, tracker Tracker) *Controller {
	if tracker == nil {
		tracker = noTracker{}
	}
	return &Controller{tasks: tasks, tracker: tracker}
}

// Handle processes one pointer event.
func (c *Controller) Handle(ev Event) (Result, error) {
	switch ev.Kind {
	case PointerDown:
		return Result{}, c.down(ev.Target)
	case PointerMove:
		return c.move(ev.Target)
	case PointerUp:
		return c.up(), nil
	}
	return Result{}, fmt.Errorf("unknown pointer event %v", ev.Kind)
}

func (c *Controller) down(t Target) error {
	// A release we never saw (pointer let go outside the terminal) leaves
	// a gesture open. A drag keeps its last position; a selection is
	// dropped.
	if c.drag.Active() {
		c.endDrag()
	}
	if c.selection.Selecting() {
		c.selection.Clear()
		c.untrack()
	}

	if mode, ok := modeFor(t.Kind); ok {
		task, found := c.tasks.Get(t.TaskID)
		if !found {
			return fmt.Errorf("%w: %s", store.ErrTaskNotFound, t.TaskID)
		}
		c.drag.Begin(task, mode)
		c.track()
		logger.Debug("Drag started",
			logger.F("task", task.ID),
			logger.F("mode", mode),
			logger.F("start", task.Start.Format(calendar.DayLayout)))
		return nil
	}

	if t.Kind == TargetDay {
		c.selection.Begin(t.Day)
		c.track()
		logger.Debug("Selection started", logger.F("day", t.Day.Format(calendar.DayLayout)))
	}
	return nil
}

func (c *Controller) move(t Target) (Result, error) {
	if !t.HasDay() {
		return Result{}, nil
	}

	if ctx, ok := c.drag.Context(); ok {
		before, _ := c.tasks.Get(ctx.TaskID)
		called, err := c.drag.Over(c.tasks, t.Day)
		if errors.Is(err, store.ErrTaskNotFound) {
			c.endDrag()
		}
		if !called {
			return Result{}, err
		}
		// A resize past the opposite edge is a store no-op
		after, _ := c.tasks.Get(ctx.TaskID)
		return Result{Changed: after != before}, err
	}

	c.selection.Extend(t.Day)
	return Result{}, nil
}

func (c *Controller) up() Result {
	if c.drag.Active() {
		c.endDrag()
		return Result{}
	}

	if p, ok := c.selection.Finish(); ok {
		c.untrack()
		logger.Debug("Selection finished",
			logger.F("start", p.Start.Format(calendar.DayLayout)),
			logger.F("end", p.End.Format(calendar.DayLayout)))
		return Result{Proposed: true, Proposal: p}
	}
	return Result{}
}

func (c *Controller) endDrag() {
	ctx, ok := c.drag.End()
	c.untrack()
	if !ok {
		return
	}
	fields := []logger.Field{
		logger.F("task", ctx.TaskID),
		logger.F("mode", ctx.Mode),
		logger.F("from", ctx.OriginalStart.Format(calendar.DayLayout)),
	}
	if t, found := c.tasks.Get(ctx.TaskID); found {
		fields = append(fields,
			logger.F("start", t.Start.Format(calendar.DayLayout)),
			logger.F("end", t.End.Format(calendar.DayLayout)))
	}
	logger.Debug("Drag finished", fields...)
}

func (c *Controller) track() {
	c.untrack()
	c.release = c.tracker.Track()
}

func (c *Controller) untrack() {
	if c.release != nil {
		release := c.release
		c.release = nil
		release()
	}
}

// Confirm creates a task from the pending selection. On success the
// selection returns to idle; on failure the proposal is kept so the form
// can be corrected and resubmitted.
func (c *Controller) Confirm(name string, category model.Category) (model.Task, error) {
	p, ok := c.selection.Pending()
	if !ok {
		return model.Task{}, ErrNoProposal
	}
	task, err := c.tasks.Create(strings.TrimSpace(name), category, p.Start, p.End)
	if err != nil {
		return model.Task{}, err
	}
	c.selection.Clear()
	logger.Info("Task created from selection",
		logger.F("id", task.ID),
		logger.F("days", task.Days()),
		logger.F("category", task.Category))
	return task, nil
}

// Cancel abandons the pending selection.
func (c *Controller) Cancel() {
	if _, ok := c.selection.Pending(); ok {
		logger.Debug("Selection cancelled")
	}
	c.selection.Clear()
}

// Close tears down any gesture in progress and releases its listeners.
func (c *Controller) Close() {
	c.drag.End()
	if c.selection.Selecting() {
		c.selection.Clear()
	}
	c.untrack()
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.drag.Active()
}

// DragContext returns the active drag context.
func (c *Controller) DragContext() (Context, bool) {
	return c.drag.Context()
}

// Selecting reports whether a selection gesture is in progress.
func (c *Controller) Selecting() bool {
	return c.selection.Selecting()
}

// Tracking reports whether gesture listeners are currently held.
func (c *Controller) Tracking() bool {
	return c.release != nil
}

// Pending returns the selection awaiting confirmation.
func (c *Controller) Pending() (Proposal, bool) {
	return c.selection.Pending()
}

// ActiveDays lists the highlighted selection days.
func (c *Controller) ActiveDays() []time.Time {
	return c.selection.ActiveDays()
}

// InSelection reports whether day is highlighted.
func (c *Controller) InSelection(day time.Time) bool {
	return c.selection.Contains(day)
}
