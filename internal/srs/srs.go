// Package srs implements the SM-2 spaced-repetition schedule used for
// vocabulary cards.
package srs

import (
	"math"
	"time"
)

// Quality grades handed to Review by the study session.
const (
	QualityIncorrect = 1
	QualityHinted    = 3
	QualityCorrect   = 5
)

const (
	defaultEase = 2.5
	minimumEase = 1.3
)

// State holds the SM-2 scheduling fields for one card.
type State struct {
	Ease        float64
	Interval    int
	Repetitions int
	LastReview  time.Time
}

// NewState returns the schedule for a card that was never reviewed.
func NewState() State {
	return State{Ease: defaultEase, Interval: 1}
}

// Review applies the SM-2 update for a response of the given quality (0-5;
// quality >= 3 counts as a correct response) and stamps the review time.
func Review(state State, quality int, now time.Time) State {
	if quality < 3 {
		state.Repetitions = 0
		state.Interval = 1
	} else {
		state.Repetitions++
		switch state.Repetitions {
		case 1:
			state.Interval = 1
		case 2:
			state.Interval = 6
		default:
			state.Interval = int(float64(state.Interval) * state.Ease)
		}
	}
	// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02)), floored at 1.3.
	missed := float64(5 - quality)
	state.Ease = math.Max(minimumEase, state.Ease+(0.1-missed*(0.08+missed*0.02)))
	state.LastReview = now
	return state
}

// NextDue returns when the card should be reviewed again. An unreviewed card
// is due immediately.
func NextDue(state State, now time.Time) time.Time {
	if state.LastReview.IsZero() {
		return now
	}
	return state.LastReview.AddDate(0, 0, state.Interval)
}

// Stage is the learning stage a card sits in, derived from its schedule.
type Stage int

const (
	// StageReview shows term and definition together.
	StageReview Stage = iota + 1
	// StageDefinitionToTerm quizzes the term given its definition.
	StageDefinitionToTerm
	// StageTermToDefinition quizzes the definition given its term.
	StageTermToDefinition
)

// StageOf classifies a card: unreviewed or struggling cards stay in review
// mode, easing cards graduate through the two quiz directions.
func StageOf(state State) Stage {
	switch {
	case state.Repetitions == 0 || state.Ease < 2.0:
		return StageReview
	case state.Ease < 3.0:
		return StageDefinitionToTerm
	default:
		return StageTermToDefinition
	}
}

// String returns a short display name for the stage.
func (s Stage) String() string {
	switch s {
	case StageReview:
		return "review"
	case StageDefinitionToTerm:
		return "definition-to-term"
	case StageTermToDefinition:
		return "term-to-definition"
	default:
		return "unknown"
	}
}
