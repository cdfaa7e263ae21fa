package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/filter"
	"github.com/existflow/taskcal/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks grouped by category, filtered the same way as the calendar.

Examples:
  taskcal list
  taskcal list --category review --category completed
  taskcal list --search plan --within 2w
  taskcal list --month 2025-08`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := seedStore(appConfig)
	if err != nil {
		return err
	}
	criteria, err := resolveCriteria(cmd, appConfig)
	if err != nil {
		return err
	}

	now := time.Now()
	tasks := filter.Apply(s.Tasks(), criteria, now)
	if cmd.Flags().Changed("month") {
		month, err := resolveMonth(now)
		if err != nil {
			return err
		}
		tasks = inMonth(tasks, month)
	}

	printTasks(cmd.OutOrStdout(), tasks)
	return nil
}

// inMonth keeps tasks whose span overlaps month
func inMonth(tasks []model.Task, month time.Time) []model.Task {
	first, last := calendar.MonthBounds(month)
	var out []model.Task
	for _, t := range tasks {
		if !calendar.Before(last, t.Start) && !calendar.Before(t.End, first) {
			out = append(out, t)
		}
	}
	return out
}

func printTasks(w io.Writer, tasks []model.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found. Drag across days in the calendar to add one.")
		return
	}

	byCategory := make(map[model.Category][]model.Task)
	for _, t := range tasks {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}

	for _, c := range model.Categories {
		group := byCategory[c]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n📁 %s (%d)\n", c, len(group))
		fmt.Fprintln(w, strings.Repeat("─", 60))
		for _, t := range group {
			printTask(w, t)
		}
	}
	fmt.Fprintln(w)
}

func printTask(w io.Writer, t model.Task) {
	span := t.Start.Format("Jan 2")
	if t.Days() > 1 {
		span += " - " + t.End.Format("Jan 2")
	}

	shortID := ansi.Truncate(t.ID, 8, "")

	fmt.Fprintf(w, "  %s  %s  %-16s (%dd)\n",
		pad(shortID, 8), pad(truncate(t.Name, 32), 32), span, t.Days())
}
