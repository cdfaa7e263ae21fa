package model

import (
	"testing"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestTaskDays(t *testing.T) {
	task := Task{Start: calendar.Date(2025, 8, 18), End: calendar.Date(2025, 8, 20)}
	assert.Equal(t, 3, task.Days())
	assert.True(t, task.Valid())
	assert.True(t, task.Covers(calendar.Date(2025, 8, 19)))
	assert.False(t, task.Covers(calendar.Date(2025, 8, 21)))
	assert.True(t, task.IsFirstDay(calendar.Date(2025, 8, 18)))
	assert.True(t, task.IsLastDay(calendar.Date(2025, 8, 20)))

	inverted := Task{Start: calendar.Date(2025, 8, 20), End: calendar.Date(2025, 8, 18)}
	assert.False(t, inverted.Valid())
}

func TestParseCategory(t *testing.T) {
	tests := map[string]Category{
		"To Do":       ToDo,
		"todo":        ToDo,
		"in-progress": InProgress,
		"In Progress": InProgress,
		"REVIEW":      Review,
		"completed":   Completed,
		"done":        Completed,
	}
	for in, want := range tests {
		got, err := ParseCategory(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseCategory("blocked")
	assert.Error(t, err)
}

func TestCategoryYAML(t *testing.T) {
	var doc struct {
		Category Category `yaml:"category"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("category: In Progress\n"), &doc))
	assert.Equal(t, InProgress, doc.Category)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "category: in-progress\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("category: nope\n"), &doc))
}

func TestCategorySet(t *testing.T) {
	var empty CategorySet
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Has(ToDo))

	assert.Equal(t, 4, AllCategories.Len())
	for _, c := range Categories {
		assert.True(t, AllCategories.Has(c))
	}

	s := NewCategorySet(ToDo, Review)
	assert.Equal(t, []Category{ToDo, Review}, s.Categories())
	s = s.Toggle(Review).Toggle(Completed)
	assert.Equal(t, []Category{ToDo, Completed}, s.Categories())
	assert.Equal(t, s, s.With(Category(42)))

	parsed, err := ParseCategorySet([]string{"todo", "review"})
	require.NoError(t, err)
	assert.Equal(t, NewCategorySet(ToDo, Review), parsed)
}
