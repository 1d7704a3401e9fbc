package live

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cram/internal/quiz"
)

var (
	promptStyle    = lipgloss.NewStyle().Bold(true)
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	faintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// View renders the current phase.
func (m Model) View() string {
	if m.phase == phaseDone {
		return m.renderSummary()
	}

	question := m.question()
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", faintStyle.Render(fmt.Sprintf("Question %d/%d", m.index+1, len(m.questions))))
	fmt.Fprintf(&b, "%s\n", promptStyle.Render(question.Prompt))
	for i, option := range question.Options {
		if m.eliminated[i+1] {
			continue
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, option)
	}
	b.WriteString("\n")

	if m.phase == phaseFeedback {
		b.WriteString(m.renderFeedback(question))
		return b.String()
	}

	if m.parseErr != nil {
		fmt.Fprintf(&b, "%s\n", incorrectStyle.Render(m.parseErr.Error()))
	}
	if len(question.Key) > 1 {
		b.WriteString("Select all that apply.\n")
	}
	b.WriteString(m.input.View() + "\n")
	b.WriteString(faintStyle.Render(m.helpLine()) + "\n")
	return b.String()
}

// renderFeedback shows the verdict for the last answer.
func (m Model) renderFeedback(question quiz.Question) string {
	var b strings.Builder
	result := m.lastResult
	switch {
	case result.Perfect && result.Hinted:
		b.WriteString(hintStyle.Render("✓ Correct (with hint)") + "\n")
	case result.Perfect:
		b.WriteString(correctStyle.Render("✓ Correct") + "\n")
	case result.Score > 0:
		b.WriteString(hintStyle.Render(fmt.Sprintf("~ Partially correct (%.0f%%)", result.Score*100)) + "\n")
	default:
		b.WriteString(incorrectStyle.Render("✗ Incorrect") + "\n")
	}
	if !result.Perfect {
		if len(result.Missed) > 0 {
			fmt.Fprintf(&b, "Missed: %s\n", optionList(question, result.Missed))
		}
		if len(result.Extra) > 0 {
			fmt.Fprintf(&b, "Not correct: %s\n", optionList(question, result.Extra))
		}
		fmt.Fprintf(&b, "Answer: %s\n", optionList(question, question.Key))
	}
	if question.Explanation != "" {
		b.WriteString(faintStyle.Render("Explanation: "+question.Explanation) + "\n")
	}
	b.WriteString(faintStyle.Render("press enter to continue") + "\n")
	return b.String()
}

// renderSummary shows the end-of-session totals.
func (m Model) renderSummary() string {
	summary := quiz.Summarize(m.results)
	var b strings.Builder
	b.WriteString(promptStyle.Render("Session summary") + "\n")
	fmt.Fprintf(&b, "Questions answered: %d\n", summary.Questions)
	b.WriteString(correctStyle.Render(fmt.Sprintf("Fully correct: %d", summary.Perfect)) + "\n")
	if summary.Partial > 0 {
		b.WriteString(hintStyle.Render(fmt.Sprintf("Partially correct: %d", summary.Partial)) + "\n")
	}
	b.WriteString(incorrectStyle.Render(fmt.Sprintf("Incorrect: %d", summary.Incorrect)) + "\n")
	if summary.Hinted > 0 {
		fmt.Fprintf(&b, "Hints used: %d\n", summary.Hinted)
	}
	fmt.Fprintf(&b, "Score: %.1f%%\n", summary.Score*100)
	return b.String()
}

// helpLine advertises the available commands.
func (m Model) helpLine() string {
	if m.hints && !m.hintUsed {
		return "enter to submit · h hint · q quit"
	}
	return "enter to submit · q quit"
}

// optionList renders option indices as "n. text" joined by commas.
func optionList(question quiz.Question, indices []int) string {
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
