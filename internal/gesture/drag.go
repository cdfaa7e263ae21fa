package gesture

import (
	"fmt"
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/model"
)

// Mode is what a drag does to its task.
type Mode int

const (
	ModeMove Mode = iota
	ModeResizeStart
	ModeResizeEnd
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeResizeStart:
		return "resize-start"
	case ModeResizeEnd:
		return "resize-end"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// modeFor maps a pointer-down target to a drag mode.
func modeFor(k TargetKind) (Mode, bool) {
	switch k {
	case TargetBody:
		return ModeMove, true
	case TargetStartHandle:
		return ModeResizeStart, true
	case TargetEndHandle:
		return ModeResizeEnd, true
	}
	return 0, false
}

// Mutator is the part of the task store a drag writes through.
type Mutator interface {
	Move(id string, newStart time.Time) error
	ResizeStart(id string, newStart time.Time) error
	ResizeEnd(id string, newEnd time.Time) error
}

// Context describes the task being dragged.
type Context struct {
	TaskID        string
	Mode          Mode
	OriginalStart time.Time
}

type dragPhase interface {
	dragPhase()
}

type dragIdle struct{}

type dragging struct {
	ctx  Context
	last time.Time
	seen bool // last holds a day already applied
}

func (dragIdle) dragPhase() {}
func (dragging) dragPhase() {}

// Drag tracks a move or resize gesture on one task.
// The zero value is idle.
type Drag struct {
	phase dragPhase
}

// Begin starts dragging t in the given mode.
func (d *Drag) Begin(t model.Task, mode Mode) {
	d.phase = dragging{ctx: Context{TaskID: t.ID, Mode: mode, OriginalStart: t.Start}}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	_, ok := d.phase.(dragging)
	return ok
}

// Context returns the current drag context.
func (d *Drag) Context() (Context, bool) {
	g, ok := d.phase.(dragging)
	return g.ctx, ok
}

// Over applies the drag to the day under the pointer. It makes exactly one
// store call per newly entered day and none when the day repeats. The
// returned bool reports whether the store was called successfully.
func (d *Drag) Over(m Mutator, day time.Time) (bool, error) {
	g, ok := d.phase.(dragging)
	if !ok {
		return false, nil
	}
	day = calendar.StartOfDay(day)
	if g.seen && calendar.IsSameDay(g.last, day) {
		return false, nil
	}

	var err error
	switch g.ctx.Mode {
	case ModeMove:
		err = m.Move(g.ctx.TaskID, day)
	case ModeResizeStart:
		err = m.ResizeStart(g.ctx.TaskID, day)
	case ModeResizeEnd:
		err = m.ResizeEnd(g.ctx.TaskID, day)
	}
	if err != nil {
		return false, err
	}

	g.last, g.seen = day, true
	d.phase = g
	return true, nil
}

// End finishes the drag and returns the context it held.
func (d *Drag) End() (Context, bool) {
	g, ok := d.phase.(dragging)
	d.phase = dragIdle{}
	return g.ctx, ok
}
