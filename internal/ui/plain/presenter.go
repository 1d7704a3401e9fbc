// Package plain implements the line-oriented terminal front end. It is used
// when stdout is not a TTY and as the fallback for the live UI.
package plain

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"time"

	"cram/internal/quiz"
)

// Presenter prompts for answers over a line-based reader and writer. It
// implements both the quiz and study presenter interfaces.
type Presenter struct {
	scanner *bufio.Scanner
	out     io.Writer
	rng     *rand.Rand
	hints   bool

	// Hint state for the question currently on screen.
	hintQuestion string
	hintUsed     bool
	eliminated   map[int]bool
}

// Options configures a Presenter. Zero values enable hints and seed the
// eliminator from the clock.
type Options struct {
	HintsDisabled bool
	Rand          *rand.Rand
}

// New builds a presenter over the given streams.
func New(in io.Reader, out io.Writer, opts Options) *Presenter {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Presenter{
		scanner: bufio.NewScanner(in),
		out:     out,
		rng:     rng,
		hints:   !opts.HintsDisabled,
	}
}

// Ask shows the question and reads one answer line. The commands "q" (quit)
// and "h" (hint, once per question) are handled here; everything else is
// returned raw for parsing.
func (p *Presenter) Ask(question quiz.Question, attempt int) (quiz.Response, error) {
	if p.hintQuestion != question.ID {
		p.hintQuestion = question.ID
		p.hintUsed = false
		p.eliminated = nil
	}
	if attempt == 1 {
		fmt.Fprintf(p.out, "\n%s\n", boldStyle.Render(question.Prompt))
		p.printOptions(question)
	}

	for {
		fmt.Fprint(p.out, p.prompt(question))
		line, err := p.readLine()
		if err != nil {
			return quiz.Response{}, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "q":
			return quiz.Response{Quit: true}, nil
		case "h":
			if !p.hints {
				fmt.Fprintln(p.out, "Hints are disabled.")
				continue
			}
			if p.hintUsed {
				fmt.Fprintln(p.out, "Hint already used for this question.")
				continue
			}
			p.applyHint(question)
			continue
		}
		if index, ok := p.pickedEliminated(line, question); ok {
			fmt.Fprintf(p.out, "Option %d was eliminated by the hint. Choose another.\n", index)
			continue
		}
		return quiz.Response{Raw: line, Hinted: p.hintUsed}, nil
	}
}

// pickedEliminated reports whether a parseable answer selects an option the
// hint removed. Unparseable input passes through for the session to report.
func (p *Presenter) pickedEliminated(raw string, question quiz.Question) (int, bool) {
	if len(p.eliminated) == 0 {
		return 0, false
	}
	selection, err := quiz.ParseAnswer(raw, question.OptionCount())
	if err != nil {
		return 0, false
	}
	for _, index := range selection.Indices() {
		if p.eliminated[index] {
			return index, true
		}
	}
	return 0, false
}

// ReportResult prints the verdict and, for imperfect answers, which options
// were missed or selected in excess.
func (p *Presenter) ReportResult(question quiz.Question, result quiz.Result) {
	switch {
	case result.Perfect && result.Hinted:
		fmt.Fprintln(p.out, hintStyle.Render("✓ Correct (with hint)"))
	case result.Perfect:
		fmt.Fprintln(p.out, correctStyle.Render("✓ Correct"))
	case result.Score > 0:
		fmt.Fprintln(p.out, hintStyle.Render(fmt.Sprintf("~ Partially correct (%.0f%%)", result.Score*100)))
	default:
		fmt.Fprintln(p.out, incorrectStyle.Render("✗ Incorrect"))
	}
	if !result.Perfect {
		if len(result.Missed) > 0 {
			fmt.Fprintf(p.out, "Missed: %s\n", p.optionList(question, result.Missed))
		}
		if len(result.Extra) > 0 {
			fmt.Fprintf(p.out, "Not correct: %s\n", p.optionList(question, result.Extra))
		}
		fmt.Fprintf(p.out, "Answer: %s\n", p.optionList(question, question.Key))
	}
	if question.Explanation != "" {
		fmt.Fprintln(p.out, infoStyle.Render("Explanation: "+question.Explanation))
	}
}

// ReportParseError explains what was wrong with the input before the
// question is asked again.
func (p *Presenter) ReportParseError(question quiz.Question, err error) {
	fmt.Fprintln(p.out, incorrectStyle.Render(err.Error()))
	fmt.Fprintf(p.out, "Enter option numbers 1-%d, separated by commas or spaces.\n", question.OptionCount())
}

// printOptions lists the options that survived any hint elimination.
func (p *Presenter) printOptions(question quiz.Question) {
	for i, option := range question.Options {
		if p.eliminated[i+1] {
			continue
		}
		fmt.Fprintf(p.out, "%d. %s\n", i+1, option)
	}
}

// prompt builds the input prompt, advertising the available commands.
func (p *Presenter) prompt(question quiz.Question) string {
	commands := "q to quit"
	if p.hints && !p.hintUsed {
		commands = "h for hint, " + commands
	}
	if len(question.Key) > 1 {
		return fmt.Sprintf("Select all that apply (%s): ", commands)
	}
	return fmt.Sprintf("Your answer (%s): ", commands)
}

// applyHint removes about half of the wrong options and reprints the rest.
func (p *Presenter) applyHint(question quiz.Question) {
	var wrong []int
	for i := 1; i <= question.OptionCount(); i++ {
		if !question.Key.Contains(i) && !p.eliminated[i] {
			wrong = append(wrong, i)
		}
	}
	count := len(wrong) / 2
	if count < 1 {
		count = 1
	}
	if count > len(wrong) {
		count = len(wrong)
	}
	p.eliminated = make(map[int]bool)
	p.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
	for _, index := range wrong[:count] {
		p.eliminated[index] = true
	}
	p.hintUsed = true

	fmt.Fprintln(p.out, hintStyle.Render("Hint used. Remaining options:"))
	p.printOptions(question)
}

// optionList renders option indices as "n. text" joined by commas.
func (p *Presenter) optionList(question quiz.Question, indices []int) string {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	parts := make([]string, 0, len(sorted))
	for _, index := range sorted {
		if index >= 1 && index <= len(question.Options) {
			parts = append(parts, fmt.Sprintf("%d. %s", index, question.Options[index-1]))
		}
	}
	return strings.Join(parts, ", ")
}

// readLine reads one input line, treating EOF as a quit request.
func (p *Presenter) readLine() (string, error) {
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "q", nil
	}
	return p.scanner.Text(), nil
}

// ReportSummary prints the end-of-session totals.
func (p *Presenter) ReportSummary(summary quiz.Summary) {
	fmt.Fprintf(p.out, "\n%s\n", boldStyle.Render("Session summary"))
	fmt.Fprintf(p.out, "Questions answered: %d\n", summary.Questions)
	fmt.Fprintln(p.out, correctStyle.Render(fmt.Sprintf("Fully correct: %d", summary.Perfect)))
	if summary.Partial > 0 {
		fmt.Fprintln(p.out, hintStyle.Render(fmt.Sprintf("Partially correct: %d", summary.Partial)))
	}
	fmt.Fprintln(p.out, incorrectStyle.Render(fmt.Sprintf("Incorrect: %d", summary.Incorrect)))
	if summary.Hinted > 0 {
		fmt.Fprintf(p.out, "Hints used: %d\n", summary.Hinted)
	}
	fmt.Fprintf(p.out, "Score: %.1f%%\n", summary.Score*100)
}
