package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"cram/internal/deck"
	"cram/internal/results"
	"cram/internal/srs"
)

// runReport builds the handler for the report command.
func runReport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		deckName := flags.String("deck", "", "Deck name in the decks directory, or a path to a CSV file")
		configPath := flags.String("config", "", "Path to config file (default: search for .cram/config.yml)")
		limit := flags.Int("sessions", 10, "How many recent sessions to show")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			return ExitUsage
		}
		if *deckName == "" {
			fmt.Fprintln(stderr, "missing required flag: --deck")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		env, err := loadEnvironment(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitError
		}
		d, err := deck.Load(env.resolveDeckPath(*deckName))
		if err != nil {
			fmt.Fprintf(stderr, "load deck: %v\n", err)
			return ExitError
		}
		reportIssues(d, stderr)

		fmt.Fprintf(stdout, "Progress report: %s\n\n", d.Name)
		if d.Kind == deck.KindVocabulary {
			printVocabularyProgress(d, stdout)
		} else {
			fmt.Fprintf(stdout, "Questions: %d\n", len(d.Questions))
		}

		if err := printHistory(env, d.Name, *limit, stdout); err != nil {
			fmt.Fprintf(stderr, "read session history: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// printVocabularyProgress shows stage distribution, maturity buckets, and
// the hardest cards.
func printVocabularyProgress(d *deck.Deck, stdout io.Writer) {
	total := len(d.Cards)
	if total == 0 {
		fmt.Fprintln(stdout, "No cards in this deck.")
		return
	}

	var stages [3]int
	var newCards, learning, mature int
	var ease, interval float64
	for _, card := range d.Cards {
		stages[srs.StageOf(card.Schedule)-1]++
		switch reps := card.Schedule.Repetitions; {
		case reps == 0:
			newCards++
		case reps < 3:
			learning++
		default:
			mature++
		}
		ease += card.Schedule.Ease
		interval += float64(card.Schedule.Interval)
	}

	fmt.Fprintf(stdout, "Total cards: %d\n", total)
	percent := func(n int) float64 { return float64(n) / float64(total) * 100 }
	fmt.Fprintf(stdout, "New: %d (%.1f%%)  Learning: %d (%.1f%%)  Mature: %d (%.1f%%)\n",
		newCards, percent(newCards), learning, percent(learning), mature, percent(mature))
	for stage := srs.StageReview; stage <= srs.StageTermToDefinition; stage++ {
		count := stages[stage-1]
		fmt.Fprintf(stdout, "Stage %d (%s): %d cards (%.1f%%)\n", stage, stage, count, percent(count))
	}
	fmt.Fprintf(stdout, "Average ease: %.2f\n", ease/float64(total))
	fmt.Fprintf(stdout, "Average interval: %.1f days\n", interval/float64(total))

	hardest := append([]deck.VocabCard(nil), d.Cards...)
	sort.SliceStable(hardest, func(i, j int) bool {
		return hardest[i].Schedule.Ease < hardest[j].Schedule.Ease
	})
	if len(hardest) > 5 {
		hardest = hardest[:5]
	}
	fmt.Fprintln(stdout, "\nMost difficult cards:")
	for i, card := range hardest {
		fmt.Fprintf(stdout, "%d. %s (ease: %.2f, reps: %d)\n",
			i+1, card.Term, card.Schedule.Ease, card.Schedule.Repetitions)
	}
}

// printHistory lists recent sessions from the results database. A deck with
// no recorded sessions is not an error.
func printHistory(env environment, deckName string, limit int, stdout io.Writer) error {
	dbPath := filepath.Join(env.resultsDir(), results.DatabaseFileName)
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(stdout, "\nNo recorded sessions.")
		return nil
	}

	ctx := context.Background()
	store, err := results.Open(ctx, env.resultsDir())
	if err != nil {
		return err
	}
	defer store.Close()

	history, err := store.DeckHistory(ctx, deckName, limit)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Fprintln(stdout, "\nNo recorded sessions.")
		return nil
	}
	fmt.Fprintln(stdout, "\nRecent sessions:")
	for _, entry := range history {
		fmt.Fprintf(stdout, "%s  %d/%d correct  score %.1f%%\n",
			entry.FinishedAt.Format("2006-01-02 15:04"), entry.Perfect, entry.Questions, entry.Score*100)
	}
	return nil
}
