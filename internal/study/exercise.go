package study

import (
	"fmt"

	"cram/internal/deck"
	"cram/internal/srs"
)

// Exercise is one multiple-choice prompt synthesized from the deck. The
// correct answer sits at a random 1-based position among distractors drawn
// from the other cards.
type Exercise struct {
	Card    *deck.VocabCard
	Stage   srs.Stage
	Prompt  string
	Formula string
	Options []string
	Correct int
}

// exercise builds the choice exercise for a card at the given quiz stage.
// Definition-to-term shows the definition and offers terms;
// term-to-definition is the reverse.
func (s *Session) exercise(card *deck.VocabCard, stage srs.Stage) Exercise {
	prompt := card.Definition
	answer := card.Term
	if stage == srs.StageTermToDefinition {
		prompt = card.Term
		answer = card.Definition
	}

	wrong := s.distractors(card, stage, choiceCount-1)
	position := s.rng.Intn(len(wrong)+1) + 1
	options := make([]string, 0, len(wrong)+1)
	options = append(options, wrong[:position-1]...)
	options = append(options, answer)
	options = append(options, wrong[position-1:]...)

	return Exercise{
		Card:    card,
		Stage:   stage,
		Prompt:  prompt,
		Formula: card.Formula,
		Options: options,
		Correct: position,
	}
}

// distractors samples wrong answers from the other cards, padding with
// placeholders when the deck is too small.
func (s *Session) distractors(card *deck.VocabCard, stage srs.Stage, count int) []string {
	correct := card.Term
	if stage == srs.StageTermToDefinition {
		correct = card.Definition
	}

	var pool []string
	for i := range s.deck.Cards {
		candidate := s.deck.Cards[i].Term
		if stage == srs.StageTermToDefinition {
			candidate = s.deck.Cards[i].Definition
		}
		if candidate != correct {
			pool = append(pool, candidate)
		}
	}

	if len(pool) <= count {
		for len(pool) < count {
			pool = append(pool, fmt.Sprintf("[Option %d]", len(pool)+1))
		}
		return pool[:count]
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:count]
}
