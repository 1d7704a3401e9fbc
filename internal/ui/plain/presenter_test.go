package plain_test

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"cram/internal/deck"
	"cram/internal/quiz"
	"cram/internal/srs"
	"cram/internal/study"
	"cram/internal/ui/plain"
)

var question = quiz.Question{
	ID:          "q1",
	Prompt:      "What is 2+2?",
	Kind:        quiz.KindRegular,
	Options:     []string{"2", "4", "3", "6"},
	Key:         quiz.Key{2},
	Explanation: "Basic arithmetic.",
}

// newTestPresenter wires a presenter over scripted input with a fixed
// random source.
func newTestPresenter(input string, out *bytes.Buffer) *plain.Presenter {
	return plain.New(strings.NewReader(input), out, plain.Options{Rand: rand.New(rand.NewSource(1))})
}

// TestAskReturnsRawAnswer passes the typed line through unchanged.
func TestAskReturnsRawAnswer(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("2\n", &out)

	response, err := p.Ask(question, 1)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if response.Raw != "2" || response.Hinted || response.Quit {
		t.Fatalf("unexpected response: %+v", response)
	}
	rendered := out.String()
	if !strings.Contains(rendered, "What is 2+2?") {
		t.Fatalf("prompt missing from output: %q", rendered)
	}
	for _, option := range []string{"1. 2", "2. 4", "3. 3", "4. 6"} {
		if !strings.Contains(rendered, option) {
			t.Fatalf("option %q missing from output: %q", option, rendered)
		}
	}
}

// TestAskQuitCommand maps "q" to a quitting response.
func TestAskQuitCommand(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("q\n", &out)

	response, err := p.Ask(question, 1)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !response.Quit {
		t.Fatalf("expected quit response, got %+v", response)
	}
}

// TestAskEOFQuits treats closed input as a quit request.
func TestAskEOFQuits(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("", &out)

	response, err := p.Ask(question, 1)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !response.Quit {
		t.Fatalf("expected quit on EOF, got %+v", response)
	}
}

// TestAskHintEliminatesWrongOptions marks the answer hinted and keeps the
// correct option visible with its original number.
func TestAskHintEliminatesWrongOptions(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("h\n2\n", &out)

	response, err := p.Ask(question, 1)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !response.Hinted {
		t.Fatalf("expected hinted response, got %+v", response)
	}
	if response.Raw != "2" {
		t.Fatalf("unexpected raw answer: %q", response.Raw)
	}
	hintPart := out.String()[strings.Index(out.String(), "Hint used"):]
	if !strings.Contains(hintPart, "2. 4") {
		t.Fatalf("correct option missing after hint: %q", hintPart)
	}
}

// TestAskRejectsEliminatedOption reprompts when the answer picks an option
// the hint removed. A true/false question has a single wrong option, so the
// hint's choice is deterministic.
func TestAskRejectsEliminatedOption(t *testing.T) {
	tf := quiz.Question{
		ID:      "q2",
		Prompt:  "The Earth is flat",
		Kind:    quiz.KindTrueFalse,
		Options: []string{"True", "False"},
		Key:     quiz.Key{2},
	}
	var out bytes.Buffer
	p := newTestPresenter("h\n1\n2\n", &out)

	response, err := p.Ask(tf, 1)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if !strings.Contains(out.String(), "Option 1 was eliminated by the hint") {
		t.Fatalf("expected eliminated-option notice: %q", out.String())
	}
	if response.Raw != "2" || !response.Hinted {
		t.Fatalf("unexpected response: %+v", response)
	}
}

// TestAskSecondHintRejected allows only one hint per question.
func TestAskSecondHintRejected(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("h\nh\n2\n", &out)

	response, err := p.Ask(question, 1)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if response.Raw != "2" {
		t.Fatalf("unexpected raw answer: %q", response.Raw)
	}
	if !strings.Contains(out.String(), "Hint already used") {
		t.Fatalf("expected second hint to be rejected: %q", out.String())
	}
}

// TestAskHintsDisabled rejects the hint command when hints are off.
func TestAskHintsDisabled(t *testing.T) {
	var out bytes.Buffer
	p := plain.New(strings.NewReader("h\n2\n"), &out, plain.Options{HintsDisabled: true})

	response, err := p.Ask(question, 1)
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if response.Hinted {
		t.Fatalf("expected unhinted response, got %+v", response)
	}
	if !strings.Contains(out.String(), "Hints are disabled") {
		t.Fatalf("expected disabled notice: %q", out.String())
	}
}

// TestReportResultShowsFeedback prints missed and extra options for
// imperfect answers.
func TestReportResultShowsFeedback(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("", &out)

	multi := question
	multi.Key = quiz.Key{1, 3}
	p.ReportResult(multi, quiz.Result{
		Correct: 1, Expected: 2, Score: 0.5,
		Matched: []int{1}, Extra: []int{2}, Missed: []int{3},
	})
	rendered := out.String()
	if !strings.Contains(rendered, "Partially correct (50%)") {
		t.Fatalf("expected partial verdict: %q", rendered)
	}
	if !strings.Contains(rendered, "Missed: 3. 3") {
		t.Fatalf("expected missed options: %q", rendered)
	}
	if !strings.Contains(rendered, "Not correct: 2. 4") {
		t.Fatalf("expected extra options: %q", rendered)
	}
	if !strings.Contains(rendered, "Explanation: Basic arithmetic.") {
		t.Fatalf("expected explanation: %q", rendered)
	}
}

// TestReportParseErrorExplainsFormat restates the accepted input format.
func TestReportParseErrorExplainsFormat(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("", &out)

	p.ReportParseError(question, quiz.ErrEmptyAnswer)
	if !strings.Contains(out.String(), "1-4") {
		t.Fatalf("expected format reminder: %q", out.String())
	}
}

// TestShowCardOutcomes covers acknowledge, repeat, and quit.
func TestShowCardOutcomes(t *testing.T) {
	card := &deck.VocabCard{Term: "heap", Definition: "a partially ordered tree", Formula: "2^h"}

	var out bytes.Buffer
	p := newTestPresenter("\n", &out)
	outcome, err := p.ShowCard(card)
	if err != nil {
		t.Fatalf("show card: %v", err)
	}
	if outcome != study.OutcomeCorrect {
		t.Fatalf("expected correct outcome, got %v", outcome)
	}
	if !strings.Contains(out.String(), "Formula: 2^h") {
		t.Fatalf("expected formula in output: %q", out.String())
	}

	out.Reset()
	p = newTestPresenter("r\n\n", &out)
	if outcome, err = p.ShowCard(card); err != nil || outcome != study.OutcomeCorrect {
		t.Fatalf("expected correct after repeat, got %v, %v", outcome, err)
	}
	if strings.Count(out.String(), "Term: heap") != 2 {
		t.Fatalf("expected the card to be repeated: %q", out.String())
	}

	out.Reset()
	p = newTestPresenter("q\n", &out)
	if outcome, err = p.ShowCard(card); err != nil || outcome != study.OutcomeQuit {
		t.Fatalf("expected quit, got %v, %v", outcome, err)
	}
}

// TestAskChoiceOutcomes covers correct, incorrect, and hinted choices.
func TestAskChoiceOutcomes(t *testing.T) {
	exercise := study.Exercise{
		Card:    &deck.VocabCard{Term: "heap", Definition: "a partially ordered tree"},
		Stage:   srs.StageDefinitionToTerm,
		Prompt:  "a partially ordered tree",
		Options: []string{"stack", "heap", "queue", "trie", "list"},
		Correct: 2,
	}

	var out bytes.Buffer
	p := newTestPresenter("2\n", &out)
	outcome, err := p.AskChoice(exercise)
	if err != nil {
		t.Fatalf("ask choice: %v", err)
	}
	if outcome != study.OutcomeCorrect {
		t.Fatalf("expected correct, got %v", outcome)
	}

	out.Reset()
	p = newTestPresenter("1\n", &out)
	if outcome, err = p.AskChoice(exercise); err != nil || outcome != study.OutcomeIncorrect {
		t.Fatalf("expected incorrect, got %v, %v", outcome, err)
	}
	if !strings.Contains(out.String(), "The correct answer was: 2. heap") {
		t.Fatalf("expected correction: %q", out.String())
	}
}

// TestAskChoiceHint compacts the options and reports a hinted outcome.
func TestAskChoiceHint(t *testing.T) {
	exercise := study.Exercise{
		Card:    &deck.VocabCard{Term: "heap", Definition: "a partially ordered tree"},
		Stage:   srs.StageDefinitionToTerm,
		Prompt:  "a partially ordered tree",
		Options: []string{"stack", "heap", "queue", "trie", "list"},
		Correct: 2,
	}
	var out bytes.Buffer
	p := newTestPresenter("h\n1\n", &out)

	// After the hint only three options remain; find where the correct
	// answer landed and select it.
	outcome, err := p.AskChoice(exercise)
	if err != nil {
		t.Fatalf("ask choice: %v", err)
	}
	// Choice 1 may or may not be the answer after compaction; either a
	// hinted or incorrect outcome is coherent, but never plain correct.
	if outcome == study.OutcomeCorrect {
		t.Fatalf("expected hinted or incorrect outcome, got plain correct")
	}
	if !strings.Contains(out.String(), "Hint used") {
		t.Fatalf("expected hint notice: %q", out.String())
	}
}

// TestAskChoiceInvalidInputReprompts rejects out-of-range choices.
func TestAskChoiceInvalidInputReprompts(t *testing.T) {
	exercise := study.Exercise{
		Card:    &deck.VocabCard{Term: "heap", Definition: "a partially ordered tree"},
		Stage:   srs.StageTermToDefinition,
		Prompt:  "heap",
		Options: []string{"a", "b", "c", "d", "e"},
		Correct: 1,
	}
	var out bytes.Buffer
	p := newTestPresenter("9\n1\n", &out)

	outcome, err := p.AskChoice(exercise)
	if err != nil {
		t.Fatalf("ask choice: %v", err)
	}
	if outcome != study.OutcomeCorrect {
		t.Fatalf("expected correct after reprompt, got %v", outcome)
	}
	if !strings.Contains(out.String(), "Invalid input") {
		t.Fatalf("expected invalid input notice: %q", out.String())
	}
}

// TestContinueReview maps y/yes to true and anything else to false.
func TestContinueReview(t *testing.T) {
	var out bytes.Buffer
	p := newTestPresenter("y\nn\n", &out)
	more, err := p.ContinueReview()
	if err != nil || !more {
		t.Fatalf("expected continue, got %v, %v", more, err)
	}
	more, err = p.ContinueReview()
	if err != nil || more {
		t.Fatalf("expected stop, got %v, %v", more, err)
	}
}
