package gesture

import (
	"time"

	"github.com/existflow/taskcal/internal/calendar"
)

// Proposal is the day range a finished selection offers for a new task.
type Proposal struct {
	Start time.Time
	End   time.Time
}

// Days returns the inclusive length of the proposal.
func (p Proposal) Days() int {
	return calendar.DaysBetweenInclusive(p.Start, p.End)
}

type selectionPhase interface {
	selectionPhase()
}

type selIdle struct{}

type selSelecting struct {
	anchor  time.Time
	current time.Time
}

// selProposed keeps the finished range highlighted until the entry form
// confirms or cancels it.
type selProposed struct {
	proposal Proposal
}

func (selIdle) selectionPhase()      {}
func (selSelecting) selectionPhase() {}
func (selProposed) selectionPhase()  {}

// Selection tracks a day-range selection gesture.
// The zero value is idle.
type Selection struct {
	phase selectionPhase
}

// Begin starts selecting at day, discarding any pending proposal.
func (s *Selection) Begin(day time.Time) {
	d := calendar.StartOfDay(day)
	s.phase = selSelecting{anchor: d, current: d}
}

// Extend moves the free end of an active selection to day. It returns
// false if no selection is in progress or the day is unchanged.
func (s *Selection) Extend(day time.Time) bool {
	sel, ok := s.phase.(selSelecting)
	if !ok {
		return false
	}
	d := calendar.StartOfDay(day)
	if calendar.IsSameDay(sel.current, d) {
		return false
	}
	sel.current = d
	s.phase = sel
	return true
}

// Finish ends an active selection and returns the proposed range.
func (s *Selection) Finish() (Proposal, bool) {
	sel, ok := s.phase.(selSelecting)
	if !ok {
		return Proposal{}, false
	}
	p := Proposal{
		Start: calendar.Min(sel.anchor, sel.current),
		End:   calendar.Max(sel.anchor, sel.current),
	}
	s.phase = selProposed{proposal: p}
	return p, true
}

// Pending returns the proposal awaiting confirmation, if any.
func (s *Selection) Pending() (Proposal, bool) {
	p, ok := s.phase.(selProposed)
	return p.proposal, ok
}

// Clear returns to idle and drops the active day set.
func (s *Selection) Clear() {
	s.phase = selIdle{}
}

// Selecting reports whether a selection gesture is in progress.
func (s *Selection) Selecting() bool {
	_, ok := s.phase.(selSelecting)
	return ok
}

// Idle reports whether there is neither a gesture nor a pending proposal.
func (s *Selection) Idle() bool {
	switch s.phase.(type) {
	case nil, selIdle:
		return true
	}
	return false
}

// Anchor returns the day the selection started on.
func (s *Selection) Anchor() (time.Time, bool) {
	sel, ok := s.phase.(selSelecting)
	return sel.anchor, ok
}

// bounds returns the highlighted span.
func (s *Selection) bounds() (time.Time, time.Time, bool) {
	switch p := s.phase.(type) {
	case selSelecting:
		return calendar.Min(p.anchor, p.current), calendar.Max(p.anchor, p.current), true
	case selProposed:
		return p.proposal.Start, p.proposal.End, true
	}
	return time.Time{}, time.Time{}, false
}

// ActiveDays lists the highlighted days in ascending order.
func (s *Selection) ActiveDays() []time.Time {
	start, end, ok := s.bounds()
	if !ok {
		return nil
	}
	return calendar.EnumerateDays(start, end)
}

// Contains reports whether day is highlighted.
func (s *Selection) Contains(day time.Time) bool {
	start, end, ok := s.bounds()
	return ok && calendar.WithinInterval(day, start, end)
}
