package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cram/internal/config"
)

// environment is the loaded config plus the root all its relative paths are
// resolved against.
type environment struct {
	cfg  config.Config
	root string
}

// loadEnvironment finds and loads the config. An explicit path must exist;
// otherwise the upward search runs and a missing config falls back to
// defaults rooted at the working directory.
func loadEnvironment(configPath string) (environment, error) {
	if strings.TrimSpace(configPath) != "" {
		abs, err := filepath.Abs(configPath)
		if err != nil {
			return environment{}, fmt.Errorf("resolve config path: %w", err)
		}
		cfg, err := config.Load(abs)
		if err != nil {
			return environment{}, err
		}
		return environment{cfg: cfg, root: config.RootFromConfigPath(abs)}, nil
	}

	found, err := config.FindConfigPath("")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				return environment{}, fmt.Errorf("get working directory: %w", wdErr)
			}
			return environment{cfg: config.Default(), root: wd}, nil
		}
		return environment{}, err
	}
	cfg, err := config.Load(found)
	if err != nil {
		return environment{}, err
	}
	return environment{cfg: cfg, root: config.RootFromConfigPath(found)}, nil
}

// path resolves a config-relative path against the environment root.
func (env environment) path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(env.root, rel)
}

// decksDir returns the absolute practice decks directory.
func (env environment) decksDir() string {
	return env.path(env.cfg.DecksDir)
}

// templatesDir returns the absolute templates directory.
func (env environment) templatesDir() string {
	return env.path(env.cfg.TemplatesDir)
}

// resultsDir returns the absolute results directory.
func (env environment) resultsDir() string {
	return env.path(env.cfg.ResultsDir)
}

// resolveDeckPath maps a deck argument to a file path. A bare name is looked
// up in the decks directory; anything with a path separator or .csv suffix
// is used as a path.
func (env environment) resolveDeckPath(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".csv") {
		return env.path(name)
	}
	return filepath.Join(env.decksDir(), name+".csv")
}
