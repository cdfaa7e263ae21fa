package gesture

import (
	"fmt"
	"testing"
	"time"

	"github.com/existflow/taskcal/internal/model"
	"github.com/existflow/taskcal/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingTracker records listener acquisition and release.
type countingTracker struct {
	acquired int
	released int
}

func (c *countingTracker) Track() func() {
	c.acquired++
	return func() { c.released++ }
}

func (c *countingTracker) held() int {
	return c.acquired - c.released
}

func newFixture(t *testing.T) (*Controller, *store.Store, *countingTracker, model.Task) {
	t.Helper()
	n := 0
	s := store.New(store.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("t%d", n)
	}))
	task, err := s.Create("Design", model.ToDo, aug(18), aug(20))
	require.NoError(t, err)
	tr := &countingTracker{}
	return NewController(s, tr), s, tr, task
}

func mustHandle(t *testing.T, c *Controller, ev Event) Result {
	t.Helper()
	res, err := c.Handle(ev)
	require.NoError(t, err)
	return res
}

func TestSelectionGestureProposesRange(t *testing.T) {
	c, s, tr, _ := newFixture(t)

	mustHandle(t, c, Down(OnDay(aug(10))))
	assert.True(t, c.Selecting())
	assert.Equal(t, 1, tr.held())

	mustHandle(t, c, Move(OnDay(aug(9))))
	mustHandle(t, c, Move(OnDay(aug(8))))
	assert.Equal(t, []string{"2025-08-08", "2025-08-09", "2025-08-10"}, dayStrings(c.ActiveDays()))

	res := mustHandle(t, c, Up(Nowhere))
	require.True(t, res.Proposed)
	assert.Equal(t, Proposal{Start: aug(8), End: aug(10)}, res.Proposal)
	assert.Equal(t, 0, tr.held())
	assert.False(t, c.Selecting())
	assert.True(t, c.InSelection(aug(9)), "proposal stays highlighted while the form is open")

	task, err := c.Confirm("  Sprint  ", model.Review)
	require.NoError(t, err)
	assert.Equal(t, "Sprint", task.Name)
	assert.Equal(t, aug(8), task.Start)
	assert.Equal(t, aug(10), task.End)
	assert.Equal(t, 2, s.Len())
	assert.Empty(t, c.ActiveDays())
}

func TestSelectionCancelCreatesNothing(t *testing.T) {
	c, s, _, _ := newFixture(t)

	mustHandle(t, c, Down(OnDay(aug(3))))
	mustHandle(t, c, Up(OnDay(aug(3))))
	c.Cancel()

	assert.Empty(t, c.ActiveDays())
	assert.Equal(t, 1, s.Len())
	_, err := c.Confirm("late", model.ToDo)
	assert.ErrorIs(t, err, ErrNoProposal)
}

func TestConfirmRejectsBlankNameAndKeepsProposal(t *testing.T) {
	c, s, _, _ := newFixture(t)

	mustHandle(t, c, Down(OnDay(aug(3))))
	mustHandle(t, c, Up(Nowhere))

	_, err := c.Confirm("   ", model.ToDo)
	assert.ErrorIs(t, err, store.ErrEmptyName)
	_, pending := c.Pending()
	assert.True(t, pending)
	assert.Equal(t, 1, s.Len())

	_, err = c.Confirm("ok", model.ToDo)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Len())
}

func TestDragMoveCommitsEachNewDay(t *testing.T) {
	c, s, tr, task := newFixture(t)

	mustHandle(t, c, Down(OnBody(task.ID, aug(19))))
	assert.True(t, c.Dragging())
	assert.Equal(t, 1, tr.held())

	res := mustHandle(t, c, Move(OnDay(aug(21))))
	assert.True(t, res.Changed)
	res = mustHandle(t, c, Move(OnBody(task.ID, aug(21))))
	assert.False(t, res.Changed, "same day again must not write")
	res = mustHandle(t, c, Move(OnDay(aug(22))))
	assert.True(t, res.Changed)

	got, _ := s.Get(task.ID)
	assert.Equal(t, aug(22), got.Start)
	assert.Equal(t, aug(24), got.End)
	assert.Equal(t, task.Days(), got.Days())

	ctx, ok := c.DragContext()
	require.True(t, ok)
	assert.Equal(t, aug(18), ctx.OriginalStart)

	res = mustHandle(t, c, Up(Nowhere))
	assert.False(t, res.Proposed)
	assert.False(t, c.Dragging())
	assert.Equal(t, 0, tr.held())

	after, _ := s.Get(task.ID)
	assert.Equal(t, got, after, "release does not mutate")
}

func TestDragOutsideGridIsIgnored(t *testing.T) {
	c, s, _, task := newFixture(t)

	mustHandle(t, c, Down(OnBody(task.ID, aug(18))))
	res := mustHandle(t, c, Move(Nowhere))
	assert.False(t, res.Changed)
	got, _ := s.Get(task.ID)
	assert.Equal(t, task, got)
}

func TestResizePastOppositeEdgeIsNotAChange(t *testing.T) {
	c, s, _, task := newFixture(t)

	mustHandle(t, c, Down(OnStartHandle(task.ID, aug(18))))
	res := mustHandle(t, c, Move(OnDay(aug(25))))
	assert.False(t, res.Changed)
	got, _ := s.Get(task.ID)
	assert.Equal(t, task, got)

	res = mustHandle(t, c, Move(OnDay(aug(17))))
	assert.True(t, res.Changed)
	mustHandle(t, c, Up(Nowhere))

	mustHandle(t, c, Down(OnEndHandle(task.ID, aug(20))))
	res = mustHandle(t, c, Move(OnDay(aug(10))))
	assert.False(t, res.Changed)
}

func TestResizeHandles(t *testing.T) {
	c, s, _, task := newFixture(t)

	mustHandle(t, c, Down(OnStartHandle(task.ID, aug(18))))
	mustHandle(t, c, Move(OnDay(aug(16))))
	mustHandle(t, c, Move(OnDay(aug(25)))) // past the end: ignored
	mustHandle(t, c, Up(Nowhere))

	got, _ := s.Get(task.ID)
	assert.Equal(t, aug(16), got.Start)
	assert.Equal(t, aug(20), got.End)

	mustHandle(t, c, Down(OnEndHandle(task.ID, aug(20))))
	mustHandle(t, c, Move(OnDay(aug(12)))) // before the start: ignored
	mustHandle(t, c, Move(OnDay(aug(17))))
	mustHandle(t, c, Up(Nowhere))

	got, _ = s.Get(task.ID)
	assert.Equal(t, aug(16), got.Start)
	assert.Equal(t, aug(17), got.End)
}

func TestDragSuppressesSelection(t *testing.T) {
	c, _, tr, task := newFixture(t)

	mustHandle(t, c, Down(OnBody(task.ID, aug(18))))
	// The day cell under the bar would see the same press; it must not
	// start a selection while the drag is live.
	mustHandle(t, c, Move(OnDay(aug(19))))
	assert.False(t, c.Selecting())
	assert.Empty(t, c.ActiveDays())

	res := mustHandle(t, c, Up(OnDay(aug(19))))
	assert.False(t, res.Proposed)
	assert.Equal(t, 0, tr.held())
}

func TestDragAbandonsSelectionInProgress(t *testing.T) {
	c, _, tr, task := newFixture(t)

	mustHandle(t, c, Down(OnDay(aug(2))))
	mustHandle(t, c, Down(OnEndHandle(task.ID, aug(20))))

	assert.True(t, c.Dragging())
	assert.False(t, c.Selecting())
	assert.Empty(t, c.ActiveDays())
	assert.Equal(t, 1, tr.held())
}

func TestMissedReleaseIsFinalizedByNextPress(t *testing.T) {
	c, s, tr, task := newFixture(t)

	mustHandle(t, c, Down(OnBody(task.ID, aug(18))))
	mustHandle(t, c, Move(OnDay(aug(25))))
	mustHandle(t, c, Down(OnDay(aug(1))))

	assert.False(t, c.Dragging())
	assert.True(t, c.Selecting())
	assert.Equal(t, 1, tr.held())
	got, _ := s.Get(task.ID)
	assert.Equal(t, aug(25), got.Start)
}

func TestDragOnUnknownTaskFails(t *testing.T) {
	c, _, tr, _ := newFixture(t)

	_, err := c.Handle(Down(OnBody("ghost", aug(18))))
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.False(t, c.Dragging())
	assert.Equal(t, 0, tr.acquired)
}

// vanishing wraps a store and forgets a task after the drag begins.
type vanishing struct {
	*store.Store
	gone string
}

func (v *vanishing) Move(id string, d time.Time) error {
	if id == v.gone {
		return fmt.Errorf("%w: %s", store.ErrTaskNotFound, id)
	}
	return v.Store.Move(id, d)
}

func TestDragEndsWhenTaskDisappears(t *testing.T) {
	_, s, _, task := newFixture(t)
	tr := &countingTracker{}
	v := &vanishing{Store: s}
	c := NewController(v, tr)

	mustHandle(t, c, Down(OnBody(task.ID, aug(18))))
	v.gone = task.ID

	_, err := c.Handle(Move(OnDay(aug(22))))
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.False(t, c.Dragging())
	assert.Equal(t, 0, tr.held())
}

func TestCloseReleasesListeners(t *testing.T) {
	c, _, tr, task := newFixture(t)

	mustHandle(t, c, Down(OnBody(task.ID, aug(18))))
	c.Close()
	assert.False(t, c.Dragging())
	assert.Equal(t, 0, tr.held())

	mustHandle(t, c, Down(OnDay(aug(2))))
	c.Close()
	c.Close()
	assert.False(t, c.Selecting())
	assert.Equal(t, 2, tr.released)
}

func TestTrackerFunc(t *testing.T) {
	released := false
	var tr Tracker = TrackerFunc(func() func() {
		return func() { released = true }
	})
	tr.Track()()
	assert.True(t, released)
}

func TestNilTrackerIsAllowed(t *testing.T) {
	s := store.New()
	c := NewController(s, nil)
	mustHandle(t, c, Down(OnDay(aug(1))))
	assert.True(t, c.Tracking())
	mustHandle(t, c, Up(Nowhere))
	assert.False(t, c.Tracking())
}

func dayStrings(days []time.Time) []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}
