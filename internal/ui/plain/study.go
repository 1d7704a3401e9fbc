package plain

import (
	"fmt"
	"strconv"
	"strings"

	"cram/internal/deck"
	"cram/internal/srs"
	"cram/internal/study"
)

// ShowCard presents a review-stage card until the learner moves on.
func (p *Presenter) ShowCard(card *deck.VocabCard) (study.Outcome, error) {
	p.printCard(card)
	for {
		fmt.Fprint(p.out, "Press Enter to continue (r to repeat, q to quit): ")
		line, err := p.readLine()
		if err != nil {
			return study.OutcomeQuit, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "q":
			return study.OutcomeQuit, nil
		case "r":
			p.printCard(card)
		default:
			fmt.Fprintln(p.out, correctStyle.Render("✓ Reviewed"))
			return study.OutcomeCorrect, nil
		}
	}
}

// AskChoice presents a synthesized multiple-choice exercise. The hint
// command removes two wrong options once.
func (p *Presenter) AskChoice(exercise study.Exercise) (study.Outcome, error) {
	label := "Definition"
	if exercise.Stage == srs.StageTermToDefinition {
		label = "Term"
	}
	fmt.Fprintf(p.out, "\n%s: %s\n", label, boldStyle.Render(exercise.Prompt))
	if exercise.Formula != "" {
		fmt.Fprintln(p.out, infoStyle.Render("Formula: "+exercise.Formula))
	}

	options := exercise.Options
	correct := exercise.Correct
	hinted := false
	p.printChoices(options)

	for {
		commands := "q to quit"
		if p.hints && !hinted {
			commands = "h for hint, " + commands
		}
		fmt.Fprintf(p.out, "Enter choice 1-%d (%s): ", len(options), commands)
		line, err := p.readLine()
		if err != nil {
			return study.OutcomeQuit, err
		}
		input := strings.ToLower(strings.TrimSpace(line))
		switch input {
		case "q":
			return study.OutcomeQuit, nil
		case "h":
			if !p.hints {
				fmt.Fprintln(p.out, "Hints are disabled.")
				continue
			}
			if hinted {
				fmt.Fprintln(p.out, "Hint already used for this question.")
				continue
			}
			options, correct = p.eliminateChoices(options, correct)
			hinted = true
			fmt.Fprintln(p.out, hintStyle.Render("Hint used. Remaining options:"))
			p.printChoices(options)
			continue
		}
		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(options) {
			fmt.Fprintf(p.out, "Invalid input. Enter 1-%d.\n", len(options))
			continue
		}
		answer := options[correct-1]
		if choice == correct {
			if hinted {
				fmt.Fprintln(p.out, hintStyle.Render("✓ Correct (with hint): "+answer))
				return study.OutcomeHinted, nil
			}
			fmt.Fprintln(p.out, correctStyle.Render("✓ Correct: "+answer))
			return study.OutcomeCorrect, nil
		}
		fmt.Fprintln(p.out, incorrectStyle.Render("✗ Incorrect: "+options[choice-1]))
		fmt.Fprintf(p.out, "The correct answer was: %d. %s\n", correct, answer)
		return study.OutcomeIncorrect, nil
	}
}

// SetFinished prints the statistics for a completed set.
func (p *Presenter) SetFinished(stats study.SetStats) {
	fmt.Fprintf(p.out, "\n%s\n", boldStyle.Render("Set complete"))
	fmt.Fprintf(p.out, "Cards: %d\n", stats.Cards)
	fmt.Fprintln(p.out, correctStyle.Render(fmt.Sprintf("Correct: %d", stats.Correct)))
	fmt.Fprintln(p.out, incorrectStyle.Render(fmt.Sprintf("Incorrect: %d", stats.Incorrect)))
	if stats.Hinted > 0 {
		fmt.Fprintln(p.out, hintStyle.Render(fmt.Sprintf("Correct with hint: %d", stats.Hinted)))
	}
	total := stats.Stages[0] + stats.Stages[1] + stats.Stages[2]
	if total > 0 {
		fmt.Fprintln(p.out, "Deck progress:")
		for stage := srs.StageReview; stage <= srs.StageTermToDefinition; stage++ {
			count := stats.Stages[stage-1]
			fmt.Fprintf(p.out, "  stage %d (%s): %d cards (%.1f%%)\n",
				stage, stage, count, float64(count)/float64(total)*100)
		}
	}
}

// ContinueReview asks whether to run another randomized review set.
func (p *Presenter) ContinueReview() (bool, error) {
	fmt.Fprint(p.out, "\nContinue with another review set? (y/n): ")
	line, err := p.readLine()
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// printCard shows a card's term, definition, and optional formula.
func (p *Presenter) printCard(card *deck.VocabCard) {
	fmt.Fprintf(p.out, "\nTerm: %s\n", boldStyle.Render(card.Term))
	fmt.Fprintf(p.out, "Definition: %s\n", card.Definition)
	if card.Formula != "" {
		fmt.Fprintln(p.out, infoStyle.Render("Formula: "+card.Formula))
	}
}

// printChoices prints numbered exercise options.
func (p *Presenter) printChoices(options []string) {
	for i, option := range options {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, option)
	}
}

// eliminateChoices drops two wrong options and returns the compacted list
// with the updated correct index.
func (p *Presenter) eliminateChoices(options []string, correct int) ([]string, int) {
	var wrong []int
	for i := range options {
		if i != correct-1 {
			wrong = append(wrong, i)
		}
	}
	p.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
	count := 2
	if count > len(wrong) {
		count = len(wrong)
	}
	drop := make(map[int]bool, count)
	for _, index := range wrong[:count] {
		drop[index] = true
	}

	var kept []string
	newCorrect := 0
	for i, option := range options {
		if drop[i] {
			continue
		}
		kept = append(kept, option)
		if i == correct-1 {
			newCorrect = len(kept)
		}
	}
	return kept, newCorrect
}
