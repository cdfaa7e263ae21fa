package gesture

import (
	"fmt"
	"time"
)

// EventKind is the pointer action carried by an Event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// TargetKind says what is under the pointer.
type TargetKind int

const (
	// TargetNone is outside the grid: no day can be resolved.
	TargetNone TargetKind = iota
	TargetDay
	TargetBody
	TargetStartHandle
	TargetEndHandle
)

func (k TargetKind) String() string {
	switch k {
	case TargetNone:
		return "none"
	case TargetDay:
		return "day"
	case TargetBody:
		return "body"
	case TargetStartHandle:
		return "start-handle"
	case TargetEndHandle:
		return "end-handle"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}

// Target is a hit-tested pointer position. TaskID is set for body and
// handle targets; Day is set for every kind except TargetNone.
type Target struct {
	Kind   TargetKind
	Day    time.Time
	TaskID string
}

// HasDay reports whether the target resolved to a calendar day.
func (t Target) HasDay() bool {
	return t.Kind != TargetNone
}

// OnTask reports whether the target is a task body or one of its handles.
func (t Target) OnTask() bool {
	return t.Kind == TargetBody || t.Kind == TargetStartHandle || t.Kind == TargetEndHandle
}

// Event is one pointer action over a target.
type Event struct {
	Kind   EventKind
	Target Target
}

// Down is shorthand for a PointerDown event.
func Down(t Target) Event { return Event{Kind: PointerDown, Target: t} }

// Move is shorthand for a PointerMove event.
func Move(t Target) Event { return Event{Kind: PointerMove, Target: t} }

// Up is shorthand for a PointerUp event.
func Up(t Target) Event { return Event{Kind: PointerUp, Target: t} }

// OnDay targets an empty part of a day cell.
func OnDay(day time.Time) Target { return Target{Kind: TargetDay, Day: day} }

// OnBody targets the body of a task bar drawn on day.
func OnBody(id string, day time.Time) Target {
	return Target{Kind: TargetBody, Day: day, TaskID: id}
}

// OnStartHandle targets the start handle of a task.
func OnStartHandle(id string, day time.Time) Target {
	return Target{Kind: TargetStartHandle, Day: day, TaskID: id}
}

// OnEndHandle targets the end handle of a task.
func OnEndHandle(id string, day time.Time) Target {
	return Target{Kind: TargetEndHandle, Day: day, TaskID: id}
}

// Nowhere is a position outside the grid.
var Nowhere = Target{}
