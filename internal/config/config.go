package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/existflow/taskcal/internal/calendar"
	"github.com/existflow/taskcal/internal/filter"
	"github.com/existflow/taskcal/internal/model"
	"gopkg.in/yaml.v3"
)

// SeedTask is a task loaded into the store at startup
type SeedTask struct {
	Name     string         `yaml:"name"`
	Category model.Category `yaml:"category"`
	Start    string         `yaml:"start"` // YYYY-MM-DD
	End      string         `yaml:"end"`   // YYYY-MM-DD, defaults to Start
}

// Dates parses the seed's start and end days
func (s SeedTask) Dates() (time.Time, time.Time, error) {
	start, err := calendar.ParseDay(s.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("seed task %q: %w", s.Name, err)
	}
	if s.End == "" {
		return start, start, nil
	}
	end, err := calendar.ParseDay(s.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("seed task %q: %w", s.Name, err)
	}
	return start, end, nil
}

// Config holds user preferences
type Config struct {
	// Calendar defaults
	TimeWindow filter.Window `yaml:"time_window"` // all, 1w, 2w, 3w
	Categories []string      `yaml:"categories"`  // Categories shown at startup
	Tasks      []SeedTask    `yaml:"tasks"`       // Tasks loaded at startup

	// Logging configuration
	LogLevel   string `yaml:"log_level"`   // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file"`    // Path to log file
	LogConsole bool   `yaml:"log_console"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".taskcal", "logs", "taskcal.log")
	}

	categories := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		categories = append(categories, c.Slug())
	}

	return &Config{
		TimeWindow: filter.All,
		Categories: categories,
		Tasks: []SeedTask{
			{Name: "Project Planning", Category: model.InProgress, Start: "2025-08-18", End: "2025-08-20"},
			{Name: "Code Review", Category: model.Review, Start: "2025-08-22", End: "2025-08-22"},
		},
		LogLevel:   getEnv("TASKCAL_LOG_LEVEL", "INFO"),
		LogFile:    getEnv("TASKCAL_LOG_FILE", logPath),
		LogConsole: getEnv("TASKCAL_LOG_CONSOLE", "false") == "true",
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Path returns ~/.taskcal/config.yaml
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskcal", "config.yaml"), nil
}

// Load loads config from ~/.taskcal/config.yaml
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom loads config from path, returning defaults if it does not exist
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Save saves config to ~/.taskcal/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Criteria returns the startup filter criteria
func (c *Config) Criteria() (filter.Criteria, error) {
	cats, err := model.ParseCategorySet(c.Categories)
	if err != nil {
		return filter.Criteria{}, fmt.Errorf("invalid categories: %w", err)
	}
	return filter.Criteria{Categories: cats, Window: c.TimeWindow}, nil
}
