package cli

import (
	"fmt"
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/config"
	"github.com/existflow/taskcal/internal/filter"
	"github.com/existflow/taskcal/internal/logger"
	"github.com/existflow/taskcal/internal/model"
	"github.com/existflow/taskcal/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	flagSearch     string
	flagCategories []string
	flagWithin     string
	flagMonth      string
)

func addFilterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&flagSearch, "search", "s", "", "Only tasks whose name contains this text")
	fs.StringSliceVarP(&flagCategories, "category", "c", nil, "Categories to show (todo, in-progress, review, completed)")
	fs.StringVarP(&flagWithin, "within", "w", "", "Only tasks starting within N weeks (1w, 2w, 3w, all)")
	fs.StringVarP(&flagMonth, "month", "m", "", "Month to show (YYYY-MM)")
}

// resolveCriteria starts from the configured defaults and applies any
// filter flags given on the command line
func resolveCriteria(cmd *cobra.Command, cfg *config.Config) (filter.Criteria, error) {
	criteria, err := cfg.Criteria()
	if err != nil {
		return filter.Criteria{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("search") {
		criteria.Search = flagSearch
	}
	if flags.Changed("category") {
		cats, err := model.ParseCategorySet(flagCategories)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid --category: %w", err)
		}
		criteria.Categories = cats
	}
	if flags.Changed("within") {
		w, err := filter.ParseWindow(flagWithin)
		if err != nil {
			return filter.Criteria{}, fmt.Errorf("invalid --within: %w", err)
		}
		criteria.Window = w
	}
	return criteria, nil
}

// resolveMonth returns the --month flag value, or now when unset
func resolveMonth(now time.Time) (time.Time, error) {
	if flagMonth == "" {
		return now, nil
	}
	return calendar.ParseMonth(flagMonth)
}

// seedStore builds the in-memory task store from the configured seed tasks
func seedStore(cfg *config.Config) (*store.Store, error) {
	s := store.New()
	for _, seed := range cfg.Tasks {
		start, end, err := seed.Dates()
		if err != nil {
			return nil, err
		}
		if _, err := s.Create(seed.Name, seed.Category, start, end); err != nil {
			return nil, fmt.Errorf("seed task %q: %w", seed.Name, err)
		}
	}
	logger.Debug("Seed tasks loaded", logger.F("count", s.Len()))
	return s, nil
}
