// Package deck loads and saves study decks stored as flat CSV files. A deck
// is either a vocabulary deck (term/definition cards with spaced-repetition
// progress) or an MCQ deck (multiple-choice questions).
package deck

import (
	"fmt"

	"cram/internal/quiz"
	"cram/internal/srs"
)

// Kind discriminates the two deck schemas.
type Kind int

const (
	// KindVocabulary holds term/definition cards.
	KindVocabulary Kind = iota
	// KindMCQ holds multiple-choice questions.
	KindMCQ
)

// String returns the schema name.
func (k Kind) String() string {
	if k == KindMCQ {
		return "mcq"
	}
	return "vocabulary"
}

// VocabCard is one term/definition pair with its review schedule.
type VocabCard struct {
	Term       string
	Definition string
	// Formula is optional supplementary material shown with the card.
	Formula  string
	Schedule srs.State
}

// Issue reports a record that could not be loaded. The rest of the deck is
// unaffected.
type Issue struct {
	Line    int
	Message string
}

// String formats the issue with its source line.
func (issue Issue) String() string {
	return fmt.Sprintf("line %d: %s", issue.Line, issue.Message)
}

// Deck is one loaded study set. Exactly one of Cards or Questions is
// populated, matching Kind.
type Deck struct {
	Name      string
	Path      string
	Kind      Kind
	Cards     []VocabCard
	Questions []quiz.Question
	// Issues lists records skipped during loading.
	Issues []Issue
}

// Size returns the number of usable records.
func (d *Deck) Size() int {
	if d.Kind == KindMCQ {
		return len(d.Questions)
	}
	return len(d.Cards)
}
