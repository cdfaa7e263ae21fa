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

const monthCellWidth = 14

var monthCmd = &cobra.Command{
	Use:   "month",
	Short: "Print a month grid",
	Long: `Print a plain-text month grid with the tasks on each day.

Examples:
  taskcal month
  taskcal month --month 2025-08 --category in-progress`,
	RunE: runMonth,
}

func runMonth(cmd *cobra.Command, args []string) error {
	s, err := seedStore(appConfig)
	if err != nil {
		return err
	}
	criteria, err := resolveCriteria(cmd, appConfig)
	if err != nil {
		return err
	}

	now := time.Now()
	month, err := resolveMonth(now)
	if err != nil {
		return err
	}

	printMonth(cmd.OutOrStdout(), month, filter.Apply(s.Tasks(), criteria, now))
	return nil
}

func printMonth(w io.Writer, month time.Time, tasks []model.Task) {
	first, last := calendar.MonthBounds(month)
	start, end := calendar.GridBounds(first, last, time.Sunday)
	days := calendar.EnumerateDays(start, end)

	fmt.Fprintf(w, "\n%s\n", calendar.FormatMonth(first))
	rule := strings.Repeat("─", monthCellWidth*7)
	fmt.Fprintln(w, rule)

	for _, d := range days[:7] {
		fmt.Fprint(w, cell(d.Format("Mon")))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)

	for i := 0; i < len(days); i += 7 {
		week := days[i : i+7]

		rows := 0
		onDay := make([][]model.Task, len(week))
		for j, d := range week {
			onDay[j] = filter.OnDay(tasks, d)
			rows = max(rows, len(onDay[j]))
		}

		for _, d := range week {
			label := fmt.Sprintf("%2d", d.Day())
			if !calendar.WithinInterval(d, first, last) {
				label = " ·"
			}
			fmt.Fprint(w, cell(label))
		}
		fmt.Fprintln(w)

		for r := 0; r < rows; r++ {
			for j, d := range week {
				text := ""
				if r < len(onDay[j]) {
					text = barText(onDay[j][r], d)
				}
				fmt.Fprint(w, cell(text))
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, rule)
	}
}

// barText is the slice of a task bar shown on one day: the name where the
// bar starts or wraps onto a new week, a continuation mark elsewhere
func barText(t model.Task, day time.Time) string {
	text := "··"
	if t.IsFirstDay(day) || day.Weekday() == time.Sunday {
		text = t.Name
	}
	if t.IsFirstDay(day) {
		text = "[" + text
	}
	if t.IsLastDay(day) {
		text = truncate(text, monthCellWidth-2) + "]"
	}
	return text
}

func cell(s string) string {
	return pad(truncate(s, monthCellWidth-1), monthCellWidth)
}

// pad fills s with spaces up to n display columns
func pad(s string, n int) string {
	return s + strings.Repeat(" ", max(0, n-ansi.StringWidth(s)))
}

func truncate(s string, n int) string {
	if ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, "…")
}
