package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cram/internal/deck"
)

// runDecks builds the handler for the decks command.
func runDecks(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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

		env, err := loadEnvironment(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}

		fmt.Fprintln(stdout, "Practice decks:")
		if err := listDeckDir(env.decksDir(), stdout); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		fmt.Fprintln(stdout, "\nTemplates:")
		if err := listDeckDir(env.templatesDir(), stdout); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// listDeckDir prints one line per CSV deck in a directory.
func listDeckDir(dir string, stdout io.Writer) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}
	if len(paths) == 0 {
		fmt.Fprintln(stdout, "  (none)")
		return nil
	}
	sort.Strings(paths)

	fmt.Fprintf(stdout, "  %-20s %-12s %-8s %-10s %-10s %s\n",
		"name", "kind", "cards", "avg ease", "avg reps", "modified")
	for _, path := range paths {
		fmt.Fprintf(stdout, "  %s\n", deckLine(path))
	}
	return nil
}

// deckLine summarizes one deck file, tolerating broken decks.
func deckLine(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), ".csv")
	d, err := deck.Load(path)
	if err != nil {
		return fmt.Sprintf("%-20s ERROR %v", name, err)
	}

	modified := "unknown"
	if info, statErr := os.Stat(path); statErr == nil {
		modified = info.ModTime().Format("2006-01-02")
	}

	if d.Kind == deck.KindMCQ {
		return fmt.Sprintf("%-20s %-12s %-8d %-10s %-10s %s",
			name, d.Kind, len(d.Questions), "-", "-", modified)
	}

	var ease, reps float64
	for _, card := range d.Cards {
		ease += card.Schedule.Ease
		reps += float64(card.Schedule.Repetitions)
	}
	count := len(d.Cards)
	if count == 0 {
		return fmt.Sprintf("%-20s %-12s %-8d %-10s %-10s %s", name, d.Kind, 0, "-", "-", modified)
	}
	return fmt.Sprintf("%-20s %-12s %-8d %-10.2f %-10.1f %s",
		name, d.Kind, count, ease/float64(count), reps/float64(count), modified)
}
