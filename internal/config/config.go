// Package config defines the .cram/config.yml file: where decks, templates,
// and results live, and how study sessions behave.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the parsed configuration file.
type Config struct {
	// DecksDir holds the practice decks being studied.
	DecksDir string `yaml:"decks_dir"`
	// TemplatesDir holds canonical deck templates, including the output of
	// the format command.
	TemplatesDir string `yaml:"templates_dir"`
	// ResultsDir holds the results database and session artifacts.
	ResultsDir string `yaml:"results_dir"`
	// SetSize is how many cards a vocabulary study set holds.
	SetSize int `yaml:"set_size"`
	// Hints toggles the in-question hint command. Unset means enabled.
	Hints *bool `yaml:"hints"`
	// UI selects the front end: auto, live, or plain.
	UI string `yaml:"ui"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	enabled := true
	return Config{
		DecksDir:     "practice_decks",
		TemplatesDir: "vocabulary_template",
		ResultsDir:   ".cram/results",
		SetSize:      7,
		Hints:        &enabled,
		UI:           "auto",
	}
}

// HintsEnabled reports whether the hint command is available.
func (cfg Config) HintsEnabled() bool {
	return cfg.Hints == nil || *cfg.Hints
}

// Parse decodes a single-document YAML config, rejecting unknown fields and
// multi-document files. Empty input yields a zero Config for Normalize to
// fill.
func Parse(data []byte) (Config, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	var extra Config
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		return Config{}, errors.New("parse config: multiple YAML documents are not allowed")
	}
	return cfg, nil
}
