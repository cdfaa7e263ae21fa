package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is the workflow column a task belongs to
type Category int

const (
	ToDo Category = iota
	InProgress
	Review
	Completed
)

// Categories lists every category in display order
var Categories = []Category{ToDo, InProgress, Review, Completed}

// String returns the display label of the category
func (c Category) String() string {
	switch c {
	case ToDo:
		return "To Do"
	case InProgress:
		return "In Progress"
	case Review:
		return "Review"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// Slug returns the flag/config spelling of the category
func (c Category) Slug() string {
	switch c {
	case ToDo:
		return "todo"
	case InProgress:
		return "in-progress"
	case Review:
		return "review"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

// Valid returns true for the four known categories
func (c Category) Valid() bool {
	return c >= ToDo && c <= Completed
}

// ParseCategory accepts either a display label or a slug, ignoring case
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(norm)
	switch norm {
	case "todo":
		return ToDo, nil
	case "inprogress":
		return InProgress, nil
	case "review":
		return Review, nil
	case "completed", "done":
		return Completed, nil
	}
	return ToDo, fmt.Errorf("unknown category %q", s)
}

// MarshalYAML writes the category as its slug
func (c Category) MarshalYAML() (interface{}, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return c.Slug(), nil
}

// UnmarshalYAML reads a category from a label or slug
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategorySet is a set of categories. The zero value is empty.
type CategorySet uint8

// AllCategories contains every category
const AllCategories = CategorySet(1<<ToDo | 1<<InProgress | 1<<Review | 1<<Completed)

// NewCategorySet builds a set from the given categories
func NewCategorySet(cs ...Category) CategorySet {
	var s CategorySet
	for _, c := range cs {
		s = s.With(c)
	}
	return s
}

// Has returns true if c is in the set
func (s CategorySet) Has(c Category) bool {
	return c.Valid() && s&(1<<c) != 0
}

// With returns the set plus c
func (s CategorySet) With(c Category) CategorySet {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

// Without returns the set minus c
func (s CategorySet) Without(c Category) CategorySet {
	if !c.Valid() {
		return s
	}
	return s &^ (1 << c)
}

// Toggle flips membership of c
func (s CategorySet) Toggle(c Category) CategorySet {
	if s.Has(c) {
		return s.Without(c)
	}
	return s.With(c)
}

// Len returns the number of categories in the set
func (s CategorySet) Len() int {
	n := 0
	for _, c := range Categories {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Categories returns the members in display order
func (s CategorySet) Categories() []Category {
	var out []Category
	for _, c := range Categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// ParseCategorySet parses a list of category names
func ParseCategorySet(names []string) (CategorySet, error) {
	var s CategorySet
	for _, n := range names {
		c, err := ParseCategory(n)
		if err != nil {
			return 0, err
		}
		s = s.With(c)
	}
	return s, nil
}
