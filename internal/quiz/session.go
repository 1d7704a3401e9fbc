package quiz

import (
	"errors"
	"fmt"
)

// Response is what a presenter hands back for one prompt.
type Response struct {
	// Raw is the user's answer text, unparsed.
	Raw string
	// Hinted is true when the user took a hint before answering.
	Hinted bool
	// Quit requests stopping the session early.
	Quit bool
}

// Presenter owns all terminal interaction for a session. Ask is called again
// with an incremented attempt counter after ReportParseError, so a presenter
// may bound retries by returning a quitting response.
type Presenter interface {
	Ask(question Question, attempt int) (Response, error)
	ReportResult(question Question, result Result)
	ReportParseError(question Question, err error)
}

// Session sequences through a list of questions, parsing and scoring each
// answer. It is single-use: create one per deck run.
type Session struct {
	questions []Question
	presenter Presenter
	results   []Result
}

// NewSession creates a session over the given questions.
func NewSession(questions []Question, presenter Presenter) *Session {
	return &Session{questions: questions, presenter: presenter}
}

// Run asks every question in order and returns the accumulated results and
// their summary. A parse failure re-asks the same question; a quit response
// ends the session early with the results gathered so far.
func (s *Session) Run() ([]Result, Summary, error) {
	for _, question := range s.questions {
		result, quit, err := s.askOne(question)
		if err != nil {
			return s.results, Summarize(s.results), err
		}
		if quit {
			break
		}
		s.results = append(s.results, result)
	}
	return s.results, Summarize(s.results), nil
}

// askOne prompts for a single question until the input parses or the user
// quits.
func (s *Session) askOne(question Question) (Result, bool, error) {
	for attempt := 1; ; attempt++ {
		response, err := s.presenter.Ask(question, attempt)
		if err != nil {
			return Result{}, false, fmt.Errorf("ask question %s: %w", question.ID, err)
		}
		if response.Quit {
			return Result{}, true, nil
		}
		selection, err := ParseAnswer(response.Raw, question.OptionCount())
		if err != nil {
			if errors.Is(err, ErrEmptyAnswer) || errors.Is(err, ErrInvalidToken) {
				s.presenter.ReportParseError(question, err)
				continue
			}
			return Result{}, false, err
		}
		result := Score(selection, question.Key)
		result.Hinted = response.Hinted
		s.presenter.ReportResult(question, result)
		return result, false, nil
	}
}
