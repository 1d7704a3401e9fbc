package study_test

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"cram/internal/deck"
	"cram/internal/srs"
	"cram/internal/study"
	"cram/internal/testutil"
)

// scriptedPresenter replays a fixed list of outcomes and records every
// exercise it was shown. When the script runs out it quits the session.
type scriptedPresenter struct {
	outcomes []study.Outcome
	shown    []string
	asked    []study.Exercise
	sets     []study.SetStats
	more     bool
}

func (p *scriptedPresenter) next() study.Outcome {
	if len(p.outcomes) == 0 {
		return study.OutcomeQuit
	}
	outcome := p.outcomes[0]
	p.outcomes = p.outcomes[1:]
	return outcome
}

func (p *scriptedPresenter) ShowCard(card *deck.VocabCard) (study.Outcome, error) {
	p.shown = append(p.shown, card.Term)
	return p.next(), nil
}

func (p *scriptedPresenter) AskChoice(exercise study.Exercise) (study.Outcome, error) {
	p.asked = append(p.asked, exercise)
	return p.next(), nil
}

func (p *scriptedPresenter) SetFinished(stats study.SetStats) {
	p.sets = append(p.sets, stats)
}

func (p *scriptedPresenter) ContinueReview() (bool, error) {
	return p.more, nil
}

// repeat builds a script of n identical outcomes.
func repeat(outcome study.Outcome, n int) []study.Outcome {
	script := make([]study.Outcome, n)
	for i := range script {
		script[i] = outcome
	}
	return script
}

// vocabDeck builds a fresh vocabulary deck with unreviewed cards.
func vocabDeck(terms ...string) *deck.Deck {
	d := &deck.Deck{Name: "terms", Kind: deck.KindVocabulary}
	for _, term := range terms {
		d.Cards = append(d.Cards, deck.VocabCard{
			Term:       term,
			Definition: "definition of " + term,
			Schedule:   srs.NewState(),
		})
	}
	return d
}

// newTestSession wires a deterministic session over the deck.
func newTestSession(t *testing.T, d *deck.Deck, presenter study.Presenter, setSize int) *study.Session {
	t.Helper()
	clock := testutil.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	session, err := study.NewSession(d, presenter, study.Options{
		SetSize: setSize,
		Rand:    rand.New(rand.NewSource(1)),
		Now:     clock.Now,
	})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return session
}

// TestNewSessionRejectsBadDecks verifies the deck kind and size checks.
func TestNewSessionRejectsBadDecks(t *testing.T) {
	mcq := &deck.Deck{Name: "mcq", Kind: deck.KindMCQ}
	if _, err := study.NewSession(mcq, &scriptedPresenter{}, study.Options{}); !errors.Is(err, study.ErrNotVocabulary) {
		t.Fatalf("expected ErrNotVocabulary, got %v", err)
	}
	empty := &deck.Deck{Name: "empty", Kind: deck.KindVocabulary}
	if _, err := study.NewSession(empty, &scriptedPresenter{}, study.Options{}); !errors.Is(err, study.ErrNoCards) {
		t.Fatalf("expected ErrNoCards, got %v", err)
	}
}

// TestInitialPassPresentsEveryCardTwice walks two sets with all answers
// correct and checks the review/choice split and schedule updates.
func TestInitialPassPresentsEveryCardTwice(t *testing.T) {
	d := vocabDeck("alpha", "beta", "gamma")
	// Phase 1 presents 4 + 2 exercises; the session stops when the script
	// runs out at the start of the review phase.
	presenter := &scriptedPresenter{outcomes: repeat(study.OutcomeCorrect, 6)}
	session := newTestSession(t, d, presenter, 2)

	summary, err := session.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Stopped {
		t.Fatalf("expected run to stop when the script ran out")
	}
	// First presentation of each new card is review mode; the repeat within
	// the same set graduates to a choice exercise.
	if len(presenter.shown) != 3 {
		t.Fatalf("expected 3 review presentations, got %v", presenter.shown)
	}
	// Three answered choice exercises plus the review-phase call that quit.
	if len(presenter.asked) != 4 {
		t.Fatalf("expected 4 choice exercises, got %d", len(presenter.asked))
	}
	if len(presenter.sets) != 2 {
		t.Fatalf("expected 2 completed sets, got %d", len(presenter.sets))
	}
	if presenter.sets[0].Cards != 4 || presenter.sets[0].Correct != 4 {
		t.Fatalf("unexpected first set stats: %+v", presenter.sets[0])
	}
	for i := range d.Cards {
		if d.Cards[i].Schedule.Repetitions != 2 {
			t.Fatalf("card %s has %d repetitions, want 2", d.Cards[i].Term, d.Cards[i].Schedule.Repetitions)
		}
	}
	if summary.Cards != 6 || summary.Correct != 6 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

// TestIncorrectCardCarriesForward re-presents a missed card in the next set.
func TestIncorrectCardCarriesForward(t *testing.T) {
	d := vocabDeck("alpha", "beta")
	// Round one: alpha wrong on first sight, everything else correct.
	// The carried set then re-presents alpha twice.
	script := []study.Outcome{
		study.OutcomeIncorrect, // alpha, review
		study.OutcomeCorrect,   // beta, review
		study.OutcomeCorrect,   // alpha again
		study.OutcomeCorrect,   // beta again
		study.OutcomeCorrect,   // alpha, carried set
		study.OutcomeCorrect,   // alpha, carried set repeat
	}
	presenter := &scriptedPresenter{outcomes: script}
	session := newTestSession(t, d, presenter, 2)

	summary, err := session.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Stopped {
		t.Fatalf("expected run to stop when the script ran out")
	}
	if len(presenter.sets) != 2 {
		t.Fatalf("expected a carried set, got %d sets", len(presenter.sets))
	}
	if presenter.sets[0].Incorrect != 1 {
		t.Fatalf("expected 1 incorrect in first set, got %+v", presenter.sets[0])
	}
	if presenter.sets[1].Cards != 2 {
		t.Fatalf("expected carried set of 2 presentations, got %+v", presenter.sets[1])
	}
}

// TestHintedAnswerCountsAsCorrectWithReducedQuality checks the SM-2 quality
// mapping for hinted answers.
func TestHintedAnswerCountsAsCorrectWithReducedQuality(t *testing.T) {
	d := vocabDeck("alpha")
	presenter := &scriptedPresenter{outcomes: []study.Outcome{study.OutcomeHinted, study.OutcomeHinted}}
	session := newTestSession(t, d, presenter, 1)

	if _, err := session.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if presenter.sets[0].Hinted != 2 || presenter.sets[0].Correct != 2 {
		t.Fatalf("unexpected stats: %+v", presenter.sets[0])
	}
	// Quality 3 keeps repetitions but lowers ease below the default.
	card := d.Cards[0]
	if card.Schedule.Repetitions != 2 {
		t.Fatalf("expected 2 repetitions, got %d", card.Schedule.Repetitions)
	}
	if card.Schedule.Ease >= 2.5 {
		t.Fatalf("expected ease below 2.5 after hints, got %v", card.Schedule.Ease)
	}
}

// TestQuitStopsSessionImmediately preserves progress made so far.
func TestQuitStopsSessionImmediately(t *testing.T) {
	d := vocabDeck("alpha", "beta")
	presenter := &scriptedPresenter{}
	session := newTestSession(t, d, presenter, 2)

	summary, err := session.Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !summary.Stopped {
		t.Fatalf("expected stopped summary")
	}
	if summary.Sets != 0 || summary.Cards != 0 {
		t.Fatalf("expected no completed sets, got %+v", summary)
	}
}

// TestExerciseShape checks the synthesized choice exercises.
func TestExerciseShape(t *testing.T) {
	d := vocabDeck("alpha", "beta", "gamma", "delta", "epsilon", "zeta")
	presenter := &scriptedPresenter{outcomes: repeat(study.OutcomeCorrect, 12)}
	session := newTestSession(t, d, presenter, 6)

	if _, err := session.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(presenter.asked) == 0 {
		t.Fatalf("expected choice exercises")
	}
	for _, exercise := range presenter.asked {
		if len(exercise.Options) != 5 {
			t.Fatalf("expected 5 options, got %d", len(exercise.Options))
		}
		if exercise.Correct < 1 || exercise.Correct > len(exercise.Options) {
			t.Fatalf("correct index %d out of range", exercise.Correct)
		}
		answer := exercise.Options[exercise.Correct-1]
		switch exercise.Stage {
		case srs.StageDefinitionToTerm:
			if exercise.Prompt != exercise.Card.Definition || answer != exercise.Card.Term {
				t.Fatalf("definition-to-term exercise mismatched: %+v", exercise)
			}
		case srs.StageTermToDefinition:
			if exercise.Prompt != exercise.Card.Term || answer != exercise.Card.Definition {
				t.Fatalf("term-to-definition exercise mismatched: %+v", exercise)
			}
		default:
			t.Fatalf("unexpected stage %v", exercise.Stage)
		}
		for i, option := range exercise.Options {
			if i != exercise.Correct-1 && option == answer {
				t.Fatalf("answer duplicated among distractors: %+v", exercise)
			}
		}
	}
}

// TestSmallDeckPadsDistractors fills missing distractors with placeholders.
func TestSmallDeckPadsDistractors(t *testing.T) {
	d := vocabDeck("alpha", "beta")
	presenter := &scriptedPresenter{outcomes: repeat(study.OutcomeCorrect, 4)}
	session := newTestSession(t, d, presenter, 2)

	if _, err := session.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(presenter.asked) == 0 {
		t.Fatalf("expected choice exercises")
	}
	for _, exercise := range presenter.asked {
		if len(exercise.Options) != 5 {
			t.Fatalf("expected padded options, got %d", len(exercise.Options))
		}
	}
}
