// Package study runs spaced-repetition sessions over vocabulary decks. Cards
// move through three stages: review (term and definition shown together),
// definition-to-term choice, and term-to-definition choice. Responses feed
// the SM-2 schedule on each card.
package study

import (
	"errors"
	"math/rand"
	"sort"
	"time"

	"cram/internal/deck"
	"cram/internal/srs"
)

// ErrNotVocabulary reports a deck that holds questions instead of cards.
var ErrNotVocabulary = errors.New("study: deck is not a vocabulary deck")

// ErrNoCards reports an empty vocabulary deck.
var ErrNoCards = errors.New("study: deck has no cards")

const (
	defaultSetSize = 7
	hardestCount   = 8
	choiceCount    = 5
)

// Outcome is the presenter's verdict for one exercise.
type Outcome int

const (
	// OutcomeCorrect is a correct unaided answer.
	OutcomeCorrect Outcome = iota
	// OutcomeHinted is a correct answer after a hint.
	OutcomeHinted
	// OutcomeIncorrect is a wrong answer.
	OutcomeIncorrect
	// OutcomeQuit stops the session early with progress kept.
	OutcomeQuit
)

// Presenter shows exercises to the learner and reports progress between
// sets. Implementations own all terminal interaction.
type Presenter interface {
	// ShowCard presents a review-stage card for acknowledgement.
	ShowCard(card *deck.VocabCard) (Outcome, error)
	// AskChoice presents a multiple-choice exercise.
	AskChoice(exercise Exercise) (Outcome, error)
	// SetFinished reports the statistics for a completed set.
	SetFinished(stats SetStats)
	// ContinueReview asks whether to run another randomized review set.
	ContinueReview() (bool, error)
}

// Options tunes a session. Zero values pick the defaults.
type Options struct {
	SetSize int
	Rand    *rand.Rand
	Now     func() time.Time
}

// Session drives one study run over a vocabulary deck. It mutates the deck's
// card schedules; the caller saves the deck afterwards.
type Session struct {
	deck      *deck.Deck
	presenter Presenter
	setSize   int
	rng       *rand.Rand
	now       func() time.Time

	practiced map[*deck.VocabCard]bool
	sets      []SetStats
	stopped   bool
}

// NewSession prepares a session over a vocabulary deck.
func NewSession(d *deck.Deck, presenter Presenter, opts Options) (*Session, error) {
	if d.Kind != deck.KindVocabulary {
		return nil, ErrNotVocabulary
	}
	if len(d.Cards) == 0 {
		return nil, ErrNoCards
	}
	setSize := opts.SetSize
	if setSize <= 0 {
		setSize = defaultSetSize
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		deck:      d,
		presenter: presenter,
		setSize:   setSize,
		rng:       rng,
		now:       now,
		practiced: make(map[*deck.VocabCard]bool),
	}, nil
}

// Run executes the initial pass over every card followed by randomized
// review sets, until the cards run out or the learner stops.
func (s *Session) Run() (Summary, error) {
	if err := s.initialPass(); err != nil {
		return s.summary(), err
	}
	if s.stopped {
		return s.summary(), nil
	}
	if err := s.randomizedReview(); err != nil {
		return s.summary(), err
	}
	return s.summary(), nil
}

// initialPass walks every card in sets, least-practiced first. Each set is
// studied twice back to back, and cards answered incorrectly carry forward
// into the next set.
func (s *Session) initialPass() error {
	cards := make([]*deck.VocabCard, len(s.deck.Cards))
	for i := range s.deck.Cards {
		cards[i] = &s.deck.Cards[i]
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Schedule.Repetitions < cards[j].Schedule.Repetitions
	})

	var carry []*deck.VocabCard
	next := 0
	for next < len(cards) || len(carry) > 0 {
		var set []*deck.VocabCard
		take := len(carry)
		if take > s.setSize {
			take = s.setSize
		}
		set = append(set, carry[:take]...)
		carry = carry[take:]
		for len(set) < s.setSize && next < len(cards) {
			set = append(set, cards[next])
			next++
		}
		if len(set) == 0 {
			return nil
		}

		// Each term twice: once to learn, once to confirm.
		round := make([]*deck.VocabCard, 0, 2*len(set))
		round = append(round, set...)
		round = append(round, set...)

		incorrect, err := s.studySet(round)
		if err != nil {
			return err
		}
		if s.stopped {
			return nil
		}
		for _, card := range set {
			if incorrect[card] {
				carry = append(carry, card)
			}
		}
	}
	return nil
}

// randomizedReview keeps building sets of the hardest reviewed cards plus a
// rotation of the rest until the learner declines another set.
func (s *Session) randomizedReview() error {
	for {
		set := s.randomizedSet()
		if len(set) == 0 {
			return nil
		}
		if _, err := s.studySet(set); err != nil {
			return err
		}
		if s.stopped {
			return nil
		}
		for _, card := range set {
			s.practiced[card] = true
		}
		more, err := s.presenter.ContinueReview()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// randomizedSet picks up to setSize not-recently-practiced cards plus the
// hardest reviewed cards, deduplicated.
func (s *Session) randomizedSet() []*deck.VocabCard {
	all := make([]*deck.VocabCard, len(s.deck.Cards))
	for i := range s.deck.Cards {
		all[i] = &s.deck.Cards[i]
	}

	var reviewed []*deck.VocabCard
	for _, card := range all {
		if card.Schedule.Repetitions > 0 {
			reviewed = append(reviewed, card)
		}
	}
	sort.SliceStable(reviewed, func(i, j int) bool {
		return reviewed[i].Schedule.Ease < reviewed[j].Schedule.Ease
	})
	hardest := reviewed
	if len(hardest) > hardestCount {
		hardest = hardest[:hardestCount]
	}
	inHardest := make(map[*deck.VocabCard]bool, len(hardest))
	for _, card := range hardest {
		inHardest[card] = true
	}

	var fresh []*deck.VocabCard
	for _, card := range all {
		if !inHardest[card] && !s.practiced[card] {
			fresh = append(fresh, card)
		}
	}
	if len(fresh) == 0 {
		// Everything outside the hardest set was seen recently; start the
		// rotation over.
		s.practiced = make(map[*deck.VocabCard]bool)
		for _, card := range all {
			if !inHardest[card] {
				fresh = append(fresh, card)
			}
		}
	}
	s.rng.Shuffle(len(fresh), func(i, j int) { fresh[i], fresh[j] = fresh[j], fresh[i] })
	if len(fresh) > s.setSize {
		fresh = fresh[:s.setSize]
	}

	set := make([]*deck.VocabCard, 0, len(fresh)+len(hardest))
	seen := make(map[*deck.VocabCard]bool, len(fresh)+len(hardest))
	for _, card := range append(fresh, hardest...) {
		if !seen[card] {
			set = append(set, card)
			seen[card] = true
		}
	}
	return set
}

// studySet presents every card in the set, applies the SM-2 update per
// response, and reports set statistics. It returns the cards answered
// incorrectly at least once.
func (s *Session) studySet(set []*deck.VocabCard) (map[*deck.VocabCard]bool, error) {
	stats := SetStats{Cards: len(set)}
	incorrect := make(map[*deck.VocabCard]bool)

	for _, card := range set {
		stage := srs.StageOf(card.Schedule)
		var outcome Outcome
		var err error
		if stage == srs.StageReview {
			outcome, err = s.presenter.ShowCard(card)
		} else {
			outcome, err = s.presenter.AskChoice(s.exercise(card, stage))
		}
		if err != nil {
			return incorrect, err
		}
		if outcome == OutcomeQuit {
			s.stopped = true
			return incorrect, nil
		}

		quality := srs.QualityIncorrect
		switch outcome {
		case OutcomeCorrect:
			quality = srs.QualityCorrect
			stats.Correct++
		case OutcomeHinted:
			quality = srs.QualityHinted
			stats.Correct++
			stats.Hinted++
		default:
			stats.Incorrect++
			incorrect[card] = true
		}
		card.Schedule = srs.Review(card.Schedule, quality, s.now())
	}

	stats.Stages = s.stageCounts()
	s.sets = append(s.sets, stats)
	s.presenter.SetFinished(stats)
	return incorrect, nil
}

// stageCounts tallies the whole deck's stage distribution.
func (s *Session) stageCounts() [3]int {
	var counts [3]int
	for i := range s.deck.Cards {
		counts[srs.StageOf(s.deck.Cards[i].Schedule)-1]++
	}
	return counts
}
