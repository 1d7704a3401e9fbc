package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"cram/internal/config"
	"cram/internal/deck"
)

// runValidate builds the handler for the validate command. It checks the
// config file and then loads every deck, reporting skipped records.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .cram/config.yml)")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if flags.NArg() > 0 {
			fmt.Fprintf(stderr, "unexpected arguments: %v\n", flags.Args())
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		if *configPath != "" {
			if _, err := config.Load(*configPath); err != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
				return ExitError
			}
		} else if found, err := config.FindConfigPath(""); err == nil {
			if _, loadErr := config.Load(found); loadErr != nil {
				fmt.Fprintf(stderr, "Validation failed:\n%s\n", loadErr.Error())
				return ExitError
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, "Config OK")

		env, err := loadEnvironment(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		broken, err := validateDecks(env, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		if broken {
			return ExitError
		}
		return ExitOK
	}
}

// validateDecks loads every deck under the decks and templates directories
// and prints any records that would be skipped.
func validateDecks(env environment, stdout io.Writer) (broken bool, err error) {
	var paths []string
	for _, dir := range []string{env.decksDir(), env.templatesDir()} {
		matches, globErr := filepath.Glob(filepath.Join(dir, "*.csv"))
		if globErr != nil {
			return false, fmt.Errorf("list %s: %w", dir, globErr)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	if len(paths) == 0 {
		fmt.Fprintln(stdout, "No decks found.")
		return false, nil
	}

	for _, path := range paths {
		d, loadErr := deck.Load(path)
		if loadErr != nil {
			fmt.Fprintf(stdout, "%s: %v\n", path, loadErr)
			broken = true
			continue
		}
		if len(d.Issues) == 0 {
			fmt.Fprintf(stdout, "%s: OK (%d %s records)\n", path, d.Size(), d.Kind)
			continue
		}
		broken = true
		fmt.Fprintf(stdout, "%s: %d records skipped\n", path, len(d.Issues))
		for _, issue := range d.Issues {
			fmt.Fprintf(stdout, "  %s\n", issue)
		}
	}
	return broken, nil
}
