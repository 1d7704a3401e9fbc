// Package live renders an interactive quiz session with Bubble Tea. The
// model drives the quiz core directly: each submitted line is parsed and
// scored, and the accumulated results are read back by the caller after the
// program exits.
package live

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"cram/internal/quiz"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phaseDone
)

// Model is the Bubble Tea model for one quiz session.
type Model struct {
	questions []quiz.Question
	index     int
	phase     phase

	input      textinput.Model
	hints      bool
	hintUsed   bool
	eliminated map[int]bool
	rng        *rand.Rand

	results    []quiz.Result
	lastResult quiz.Result
	parseErr   error
	stopped    bool
	width      int
}

// Options configures the live model.
type Options struct {
	HintsDisabled bool
	Rand          *rand.Rand
}

// New builds a model over the deck's questions.
func New(questions []quiz.Question, opts Options) Model {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	input := textinput.New()
	input.Placeholder = "option numbers, e.g. 1,3"
	input.CharLimit = 32
	input.Focus()
	return Model{
		questions: questions,
		input:     input,
		hints:     !opts.HintsDisabled,
		rng:       rng,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input for all three phases.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		return m, nil
	case tea.KeyMsg:
		switch typed.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.stopped = true
			m.phase = phaseDone
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}
	if m.phase == phaseAnswering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit handles Enter for the current phase.
func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseFeedback:
		return m.advance()
	case phaseDone:
		return m, tea.Quit
	}

	raw := strings.TrimSpace(m.input.Value())
	switch strings.ToLower(raw) {
	case "q":
		m.stopped = true
		m.phase = phaseDone
		return m, tea.Quit
	case "h":
		m.input.SetValue("")
		if m.hints && !m.hintUsed {
			m = m.applyHint()
		}
		return m, nil
	}

	question := m.question()
	selection, err := quiz.ParseAnswer(raw, question.OptionCount())
	if err != nil {
		if errors.Is(err, quiz.ErrEmptyAnswer) || errors.Is(err, quiz.ErrInvalidToken) {
			m.parseErr = err
			m.input.SetValue("")
			return m, nil
		}
		m.stopped = true
		m.phase = phaseDone
		return m, tea.Quit
	}
	for _, index := range selection.Indices() {
		if m.eliminated[index] {
			m.parseErr = fmt.Errorf("option %d was eliminated by the hint", index)
			m.input.SetValue("")
			return m, nil
		}
	}
	m.parseErr = nil

	result := quiz.Score(selection, question.Key)
	result.Hinted = m.hintUsed
	m.results = append(m.results, result)
	m.lastResult = result
	m.phase = phaseFeedback
	return m, nil
}

// advance moves to the next question or finishes the session.
func (m Model) advance() (tea.Model, tea.Cmd) {
	m.index++
	m.hintUsed = false
	m.eliminated = nil
	m.parseErr = nil
	m.input.SetValue("")
	if m.index >= len(m.questions) {
		m.phase = phaseDone
		return m, tea.Quit
	}
	m.phase = phaseAnswering
	return m, nil
}

// applyHint eliminates about half of the wrong options for the current
// question.
func (m Model) applyHint() Model {
	question := m.question()
	var wrong []int
	for i := 1; i <= question.OptionCount(); i++ {
		if !question.Key.Contains(i) {
			wrong = append(wrong, i)
		}
	}
	count := len(wrong) / 2
	if count < 1 {
		count = 1
	}
	m.rng.Shuffle(len(wrong), func(i, j int) { wrong[i], wrong[j] = wrong[j], wrong[i] })
	m.eliminated = make(map[int]bool, count)
	for _, index := range wrong[:count] {
		m.eliminated[index] = true
	}
	m.hintUsed = true
	return m
}

// question returns the question currently on screen.
func (m Model) question() quiz.Question {
	return m.questions[m.index]
}

// Results returns the recorded results and their summary. Call after the
// program has finished.
func (m Model) Results() ([]quiz.Result, quiz.Summary) {
	return m.results, quiz.Summarize(m.results)
}

// Stopped reports whether the session ended before the last question.
func (m Model) Stopped() bool {
	return m.stopped
}
