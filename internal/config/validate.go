package config

import (
	"fmt"
	"strings"
)

// Issue captures a validation problem in the config file.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("config validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Normalize trims fields and fills unset values with defaults.
func Normalize(cfg *Config) {
	defaults := Default()
	cfg.DecksDir = strings.TrimSpace(cfg.DecksDir)
	cfg.TemplatesDir = strings.TrimSpace(cfg.TemplatesDir)
	cfg.ResultsDir = strings.TrimSpace(cfg.ResultsDir)
	cfg.UI = strings.ToLower(strings.TrimSpace(cfg.UI))
	if cfg.DecksDir == "" {
		cfg.DecksDir = defaults.DecksDir
	}
	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = defaults.TemplatesDir
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = defaults.ResultsDir
	}
	if cfg.SetSize == 0 {
		cfg.SetSize = defaults.SetSize
	}
	if cfg.Hints == nil {
		cfg.Hints = defaults.Hints
	}
	if cfg.UI == "" {
		cfg.UI = defaults.UI
	}
}

// Validate checks a normalized config.
func Validate(cfg *Config) error {
	collector := &issueCollector{}
	if cfg.SetSize < 1 {
		collector.add("set_size", fmt.Sprintf("must be at least 1, got %d", cfg.SetSize))
	}
	switch cfg.UI {
	case "auto", "live", "plain":
	default:
		collector.add("ui", fmt.Sprintf("invalid mode %q (expected auto|live|plain)", cfg.UI))
	}
	return collector.result()
}
