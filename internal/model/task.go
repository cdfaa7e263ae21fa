package model

import (
	"time"

	"github.com/existflow/taskcal/internal/calendar"
)

// Task is a named span of calendar days.
type Task struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Start    time.Time `json:"start_date" yaml:"start_date"`
	End      time.Time `json:"end_date" yaml:"end_date"`
	Category Category  `json:"category" yaml:"category"`
}

// Days returns the inclusive length of the task in calendar days.
func (t Task) Days() int {
	return calendar.DaysBetweenInclusive(t.Start, t.End)
}

// Covers returns true if day falls on or between the task's start and end
func (t Task) Covers(day time.Time) bool {
	return calendar.WithinInterval(day, t.Start, t.End)
}

// IsFirstDay returns true if day is the task's start day
func (t Task) IsFirstDay(day time.Time) bool {
	return calendar.IsSameDay(t.Start, day)
}

// IsLastDay returns true if day is the task's end day
func (t Task) IsLastDay(day time.Time) bool {
	return calendar.IsSameDay(t.End, day)
}

// Valid reports whether the task's dates are in order.
func (t Task) Valid() bool {
	return !calendar.Before(t.End, t.Start)
}
