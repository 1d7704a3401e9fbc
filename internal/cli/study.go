package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cram/internal/deck"
	"cram/internal/quiz"
	"cram/internal/results"
	"cram/internal/study"
	"cram/internal/ui/live"
	"cram/internal/ui/plain"
)

// stdin is swapped out by tests.
var stdin io.Reader = os.Stdin

// runStudy builds the handler for the study command.
func runStudy(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		deckName := flags.String("deck", "", "Deck name in the decks directory, or a path to a CSV file")
		configPath := flags.String("config", "", "Path to config file (default: search for .cram/config.yml)")
		uiMode := flags.String("ui", "", "UI mode: auto, live, or plain (default: from config)")
		noHints := flags.Bool("no-hints", false, "Disable the hint command")
		if err := flags.Parse(args); err != nil {
			if err == flag.ErrHelp {
				printCommandUsage(cmd, stdout)
				return ExitOK
			}
			fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
			printCommandUsage(cmd, stderr)
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
		mode := *uiMode
		if mode == "" {
			mode = env.cfg.UI
		}
		hintsDisabled := *noHints || !env.cfg.HintsEnabled()

		path := env.resolveDeckPath(*deckName)
		d, err := deck.Load(path)
		if err != nil {
			fmt.Fprintf(stderr, "load deck: %v\n", err)
			return ExitError
		}
		reportIssues(d, stderr)

		if d.Kind == deck.KindVocabulary {
			return studyVocabulary(env, d, hintsDisabled, stdout, stderr)
		}
		return studyMCQ(env, d, mode, hintsDisabled, stdout, stderr)
	}
}

// reportIssues warns about records skipped during loading.
func reportIssues(d *deck.Deck, stderr io.Writer) {
	for _, issue := range d.Issues {
		fmt.Fprintf(stderr, "warning: %s: %s\n", d.Name, issue)
	}
}

// studyMCQ runs a question session in the chosen UI and records the results.
func studyMCQ(env environment, d *deck.Deck, mode string, hintsDisabled bool, stdout, stderr io.Writer) int {
	if len(d.Questions) == 0 {
		fmt.Fprintf(stderr, "deck %s has no usable questions\n", d.Name)
		return ExitError
	}
	decision, err := resolveUIMode(mode, stdout)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return ExitUsage
	}
	if decision.warning != "" {
		fmt.Fprintln(stderr, decision.warning)
	}

	startedAt := time.Now()
	var answers []quiz.Result
	var summary quiz.Summary
	if decision.useLive {
		model := live.New(d.Questions, live.Options{HintsDisabled: hintsDisabled})
		program := tea.NewProgram(model, tea.WithOutput(stdout))
		final, err := program.Run()
		if err != nil {
			fmt.Fprintf(stderr, "run live ui: %v\n", err)
			return ExitError
		}
		answers, summary = final.(live.Model).Results()
	} else {
		presenter := plain.New(stdin, stdout, plain.Options{HintsDisabled: hintsDisabled})
		session := quiz.NewSession(d.Questions, presenter)
		answers, summary, err = session.Run()
		if err != nil {
			fmt.Fprintf(stderr, "run session: %v\n", err)
			return ExitError
		}
		presenter.ReportSummary(summary)
	}
	if len(answers) == 0 {
		return ExitOK
	}

	if err := recordResults(env, d, answers, summary, startedAt); err != nil {
		fmt.Fprintf(stderr, "record results: %v\n", err)
		return ExitError
	}
	return ExitOK
}

// recordResults persists the finished session into the results database and
// its JSON artifact.
func recordResults(env environment, d *deck.Deck, answers []quiz.Result, summary quiz.Summary, startedAt time.Time) error {
	session := results.NewSession(d.Name, startedAt)
	now := time.Now()
	for i, answer := range answers {
		session.AddResult(d.Questions[i], answer, now)
	}
	session.Finish(summary, now)

	ctx := context.Background()
	store, err := results.Open(ctx, env.resultsDir())
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.RecordSession(ctx, session); err != nil {
		return err
	}
	if _, err := results.WriteArtifact(env.resultsDir(), session); err != nil {
		return err
	}
	return nil
}

// studyVocabulary runs a spaced-repetition session and saves the updated
// schedules back to the deck file.
func studyVocabulary(env environment, d *deck.Deck, hintsDisabled bool, stdout, stderr io.Writer) int {
	presenter := plain.New(stdin, stdout, plain.Options{HintsDisabled: hintsDisabled})
	session, err := study.NewSession(d, presenter, study.Options{SetSize: env.cfg.SetSize})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return ExitError
	}
	summary, err := session.Run()
	if err != nil {
		fmt.Fprintf(stderr, "run session: %v\n", err)
		return ExitError
	}

	if err := deck.Save(d, d.Path); err != nil {
		fmt.Fprintf(stderr, "save deck: %v\n", err)
		return ExitError
	}
	fmt.Fprintf(stdout, "\nDeck saved to %s\n", d.Path)
	printStudySummary(summary, stdout)
	return ExitOK
}

// printStudySummary prints the end-of-run totals for a vocabulary session.
func printStudySummary(summary study.Summary, stdout io.Writer) {
	if summary.Cards == 0 {
		return
	}
	accuracy := float64(summary.Correct) / float64(summary.Cards) * 100
	lines := []string{
		fmt.Sprintf("Sets completed: %d", summary.Sets),
		fmt.Sprintf("Cards practiced: %d", summary.Cards),
		fmt.Sprintf("Accuracy: %.1f%%", accuracy),
	}
	if summary.Hinted > 0 {
		lines = append(lines, fmt.Sprintf("Hints used: %d", summary.Hinted))
	}
	fmt.Fprintln(stdout, strings.Join(lines, "\n"))
}
