// Package format converts raw question CSV files into the canonical
// multiple-choice deck schema.
package format

import (
	"math/rand"
	"strings"
	"time"
)

// Row is one record in the canonical multiple-choice schema.
type Row struct {
	Question      string
	OptionA       string
	OptionB       string
	OptionC       string
	OptionD       string
	CorrectAnswer string
}

// Stats counts conversion outcomes for one input file.
type Stats struct {
	TotalRows        int
	TrueFalse        int
	FillInBlank      int
	AlreadyFormatted int
	Skipped          int
}

// rowType classifies the shape of a raw input record.
type rowType int

const (
	rowUnknown rowType = iota
	rowFormattedMCQ
	rowTrueFalse
	rowFillInBlank
	rowCommaTrueFalse
	rowCommaFillInBlank
	rowOptionATrueFalse
	rowOptionAFillInBlank
	rowTwoColumnTrueFalse
	rowTwoColumnFillInBlank
)

// Formatter accumulates converted rows and conversion statistics.
type Formatter struct {
	rng   *rand.Rand
	rows  []Row
	stats Stats
}

// New returns a Formatter with a time-seeded distractor source.
func New() *Formatter {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a Formatter with a caller-provided random source so
// distractor placement can be made deterministic.
func NewWithSource(src rand.Source) *Formatter {
	return &Formatter{rng: rand.New(src)}
}

// Rows returns the rows converted so far.
func (f *Formatter) Rows() []Row {
	return f.rows
}

// Stats returns the conversion statistics so far.
func (f *Formatter) Stats() Stats {
	return f.stats
}

// isBinary reports whether the answer is a 0/1 truth marker.
func isBinary(answer string) bool {
	return answer == "0" || answer == "1"
}

// detectRowType classifies a raw record keyed by column name.
func detectRowType(row map[string]string, order []string) rowType {
	question := strings.TrimSpace(row["question"])
	optionA := strings.TrimSpace(row["option_a"])
	optionB := strings.TrimSpace(row["option_b"])
	answer := strings.TrimSpace(row["correct_answer"])

	if question != "" && optionA != "" && optionB != "" &&
		strings.TrimSpace(row["option_c"]) != "" && strings.TrimSpace(row["option_d"]) != "" &&
		answer != "" {
		return rowFormattedMCQ
	}

	// Answer stashed in the option_a column with nothing else filled in.
	if question != "" && optionA != "" && optionB == "" && answer == "" {
		if isBinary(optionA) {
			return rowOptionATrueFalse
		}
		return rowOptionAFillInBlank
	}

	// Both question and answer jammed into the question column.
	if before, after, found := strings.Cut(question, ","); found {
		tail := strings.TrimSpace(after)
		if strings.TrimSpace(before) != "" && tail != "" && !strings.Contains(tail, ",") {
			if isBinary(tail) {
				return rowCommaTrueFalse
			}
			return rowCommaFillInBlank
		}
	}

	if question != "" && answer != "" {
		if isBinary(answer) {
			return rowTrueFalse
		}
		return rowFillInBlank
	}

	// Two arbitrarily named non-empty columns: first is the question,
	// second is the answer.
	filled := filledColumns(row, order)
	if len(filled) == 2 {
		if isBinary(strings.TrimSpace(row[filled[1]])) {
			return rowTwoColumnTrueFalse
		}
		return rowTwoColumnFillInBlank
	}

	return rowUnknown
}

// filledColumns returns the names of non-empty columns in input order.
func filledColumns(row map[string]string, order []string) []string {
	var filled []string
	for _, name := range order {
		if strings.TrimSpace(row[name]) != "" {
			filled = append(filled, name)
		}
	}
	return filled
}

// Convert processes one raw record and returns the canonical row, or
// ok=false when the record has no recognizable shape.
func (f *Formatter) Convert(row map[string]string, order []string) (Row, bool) {
	f.stats.TotalRows++
	kind := detectRowType(row, order)

	question := strings.TrimSpace(row["question"])
	answer := strings.TrimSpace(row["correct_answer"])

	switch kind {
	case rowFormattedMCQ:
		f.stats.AlreadyFormatted++
		converted := Row{
			Question:      question,
			OptionA:       strings.TrimSpace(row["option_a"]),
			OptionB:       strings.TrimSpace(row["option_b"]),
			OptionC:       strings.TrimSpace(row["option_c"]),
			OptionD:       strings.TrimSpace(row["option_d"]),
			CorrectAnswer: answer,
		}
		f.rows = append(f.rows, converted)
		return converted, true
	case rowCommaTrueFalse, rowCommaFillInBlank:
		before, after, _ := strings.Cut(question, ",")
		question = strings.TrimSpace(before)
		answer = strings.TrimSpace(after)
	case rowOptionATrueFalse, rowOptionAFillInBlank:
		answer = strings.TrimSpace(row["option_a"])
	case rowTwoColumnTrueFalse, rowTwoColumnFillInBlank:
		filled := filledColumns(row, order)
		question = strings.TrimSpace(row[filled[0]])
		answer = strings.TrimSpace(row[filled[1]])
	case rowTrueFalse, rowFillInBlank:
	default:
		f.stats.Skipped++
		return Row{}, false
	}

	var converted Row
	if isBinary(answer) {
		converted = convertTrueFalse(question, answer)
		f.stats.TrueFalse++
	} else {
		converted = f.convertFillInBlank(question, answer)
		f.stats.FillInBlank++
	}
	f.rows = append(f.rows, converted)
	return converted, true
}

// convertTrueFalse maps a 0/1 answer onto the fixed True/False options.
// 1 means True (option a), 0 means False (option b).
func convertTrueFalse(question, answer string) Row {
	correct := "b"
	if answer == "1" {
		correct = "a"
	}
	return Row{
		Question:      question,
		OptionA:       "True",
		OptionB:       "False",
		CorrectAnswer: correct,
	}
}

// convertFillInBlank turns a free-text answer into a four-option question by
// placing the answer at a random position and surrounding it with
// distractors.
func (f *Formatter) convertFillInBlank(question, answer string) Row {
	letters := []string{"a", "b", "c", "d"}
	position := f.rng.Intn(len(letters))
	wrong := f.distractors(question, answer)

	options := make([]string, len(letters))
	options[position] = answer
	next := 0
	for i := range options {
		if i == position {
			continue
		}
		options[i] = wrong[next]
		next++
	}
	return Row{
		Question:      question,
		OptionA:       options[0],
		OptionB:       options[1],
		OptionC:       options[2],
		OptionD:       options[3],
		CorrectAnswer: letters[position],
	}
}
