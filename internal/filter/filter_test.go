package filter

import (
	"testing"
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var today = time.Date(2025, 8, 18, 16, 45, 0, 0, time.Local)

func task(id, name string, c model.Category, start, end time.Time) model.Task {
	return model.Task{ID: id, Name: name, Category: c, Start: start, End: end}
}

func sample() []model.Task {
	return []model.Task{
		task("a", "Project Planning", model.InProgress, calendar.Date(2025, 8, 18), calendar.Date(2025, 8, 20)),
		task("b", "Code Review", model.Review, calendar.Date(2025, 8, 22), calendar.Date(2025, 8, 22)),
		task("c", "Ship release", model.ToDo, calendar.Date(2025, 9, 5), calendar.Date(2025, 9, 7)),
		task("d", "Retro", model.Completed, calendar.Date(2025, 8, 10), calendar.Date(2025, 8, 25)),
	}
}

func ids(tasks []model.Task) []string {
	out := []string{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestApplyDefaultKeepsEverythingInOrder(t *testing.T) {
	got := Apply(sample(), DefaultCriteria(), today)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(got))
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	c := DefaultCriteria()
	c.Search = "REVIEW"
	assert.Equal(t, []string{"b"}, ids(Apply(sample(), c, today)))

	c.Search = "re"
	assert.Equal(t, []string{"b", "c", "d"}, ids(Apply(sample(), c, today)))
}

func TestApplyEmptyCategorySetShowsNothing(t *testing.T) {
	c := DefaultCriteria()
	c.Categories = 0
	assert.Empty(t, Apply(sample(), c, today))
}

func TestApplyCategorySubset(t *testing.T) {
	c := DefaultCriteria()
	c.Categories = model.NewCategorySet(model.ToDo, model.Completed)
	assert.Equal(t, []string{"c", "d"}, ids(Apply(sample(), c, today)))
}

func TestApplyWindowTestsStartDateOnly(t *testing.T) {
	c := DefaultCriteria()

	c.Window = Within(1)
	// "d" is running today but started before it, so it is excluded.
	assert.Equal(t, []string{"a", "b"}, ids(Apply(sample(), c, today)))

	c.Window = Within(3)
	assert.Equal(t, []string{"a", "b", "c"}, ids(Apply(sample(), c, today)))
}

func TestWindowBoundsAreInclusive(t *testing.T) {
	w := Within(1)
	assert.True(t, w.Contains(calendar.Date(2025, 8, 18), today))
	assert.True(t, w.Contains(calendar.Date(2025, 8, 25), today))
	assert.False(t, w.Contains(calendar.Date(2025, 8, 26), today))
	assert.False(t, w.Contains(calendar.Date(2025, 8, 17), today))
	assert.True(t, All.Contains(calendar.Date(1999, 1, 1), today))
}

func TestApplyIsIdempotent(t *testing.T) {
	criteria := []Criteria{
		DefaultCriteria(),
		{Search: "r", Categories: model.AllCategories, Window: Within(2)},
		{Search: "", Categories: model.NewCategorySet(model.Review), Window: All},
		{Search: "zzz", Categories: model.AllCategories},
	}
	for _, c := range criteria {
		once := Apply(sample(), c, today)
		assert.Equal(t, once, Apply(once, c, today))
	}
}

func TestParseWindow(t *testing.T) {
	tests := map[string]Window{
		"":       All,
		"all":    All,
		"ALL":    All,
		"0":      All,
		"1":      Within(1),
		"2w":     Within(2),
		"1week":  Within(1),
		"3weeks": Within(3),
	}
	for in, want := range tests {
		got, err := ParseWindow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWindow("soon")
	assert.Error(t, err)
	_, err = ParseWindow("-2")
	assert.Error(t, err)
}

func TestWindowStrings(t *testing.T) {
	assert.Equal(t, "all", All.String())
	assert.Equal(t, "2w", Within(2).String())
	assert.Equal(t, "All tasks", All.Label())
	assert.Equal(t, "Within 1 week", Within(1).Label())
	assert.Equal(t, "Within 3 weeks", Within(3).Label())
}

func TestWindowYAML(t *testing.T) {
	var doc struct {
		Window Window `yaml:"window"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("window: 2weeks\n"), &doc))
	assert.Equal(t, Within(2), doc.Window)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "window: 2w\n", string(out))
}

func TestOnDay(t *testing.T) {
	tasks := sample()

	assert.Equal(t, []string{"a", "d"}, ids(OnDay(tasks, calendar.Date(2025, 8, 19))))
	assert.Equal(t, []string{"b", "d"}, ids(OnDay(tasks, time.Date(2025, 8, 22, 13, 0, 0, 0, time.Local))))
	assert.Empty(t, OnDay(tasks, calendar.Date(2025, 9, 1)))

	// Projection over a filtered view only sees what passed the filter.
	c := DefaultCriteria()
	c.Categories = model.NewCategorySet(model.Completed)
	assert.Equal(t, []string{"d"}, ids(OnDay(Apply(tasks, c, today), calendar.Date(2025, 8, 19))))
}
