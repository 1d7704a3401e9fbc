package deck

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cram/internal/quiz"
	"cram/internal/srs"
)

// lastReviewLayouts are the timestamp formats accepted in the last_review
// column. Decks written by this tool use RFC 3339; older decks carry bare
// ISO timestamps without a zone.
var lastReviewLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Load reads a deck file. The header row decides the schema: a question
// column means MCQ, a term column means vocabulary. Records that cannot be
// loaded are skipped and reported in Deck.Issues; the rest of the deck still
// loads.
func Load(path string) (*Deck, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck: %w", err)
	}
	defer file.Close()
	d, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("load deck %s: %w", path, err)
	}
	d.Path = path
	d.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return d, nil
}

// Read parses deck CSV from a reader.
func Read(r io.Reader) (*Deck, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty deck file")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	d := &Deck{}
	switch {
	case hasColumn(columns, "question"):
		d.Kind = KindMCQ
		err = readMCQ(reader, columns, d)
	case hasColumn(columns, "term"):
		d.Kind = KindVocabulary
		err = readVocabulary(reader, columns, d)
	default:
		return nil, fmt.Errorf("unrecognized header: need a question or term column")
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func hasColumn(columns map[string]int, name string) bool {
	_, ok := columns[name]
	return ok
}

// field returns a trimmed cell value, tolerating short rows.
func field(record []string, columns map[string]int, name string) string {
	index, ok := columns[name]
	if !ok || index >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[index])
}

func readMCQ(reader *csv.Reader, columns map[string]int, d *Deck) error {
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}
		question, issue := mcqRecord(record, columns, line)
		if issue != nil {
			d.Issues = append(d.Issues, *issue)
			continue
		}
		d.Questions = append(d.Questions, question)
	}
}

// mcqRecord builds one question from a CSV row. Option columns c and d both
// empty marks a true/false question; otherwise all four options must be
// present.
func mcqRecord(record []string, columns map[string]int, line int) (quiz.Question, *Issue) {
	prompt := field(record, columns, "question")
	if prompt == "" {
		return quiz.Question{}, &Issue{Line: line, Message: "question text is required"}
	}
	options := []string{
		field(record, columns, "option_a"),
		field(record, columns, "option_b"),
		field(record, columns, "option_c"),
		field(record, columns, "option_d"),
	}
	kind := quiz.KindRegular
	if options[2] == "" && options[3] == "" {
		kind = quiz.KindTrueFalse
		options = options[:2]
	}
	for i, option := range options {
		if option == "" {
			return quiz.Question{}, &Issue{
				Line:    line,
				Message: fmt.Sprintf("option_%c is empty: questions need 2 (true/false) or 4 options", 'a'+i),
			}
		}
	}
	key, err := quiz.ParseKey(field(record, columns, "correct_answer"), options)
	if err != nil {
		return quiz.Question{}, &Issue{Line: line, Message: err.Error()}
	}
	return quiz.Question{
		ID:          fmt.Sprintf("q%d", line),
		Prompt:      prompt,
		Kind:        kind,
		Options:     options,
		Key:         key,
		Explanation: field(record, columns, "explanation"),
	}, nil
}

func readVocabulary(reader *csv.Reader, columns map[string]int, d *Deck) error {
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read record: %w", err)
		}
		card, issue := vocabRecord(record, columns, line)
		if issue != nil {
			d.Issues = append(d.Issues, *issue)
			continue
		}
		d.Cards = append(d.Cards, card)
	}
}

func vocabRecord(record []string, columns map[string]int, line int) (VocabCard, *Issue) {
	card := VocabCard{
		Term:       field(record, columns, "term"),
		Definition: field(record, columns, "definition"),
		Formula:    field(record, columns, "formula"),
		Schedule:   srs.NewState(),
	}
	if card.Term == "" {
		return VocabCard{}, &Issue{Line: line, Message: "term is required"}
	}
	if card.Definition == "" {
		return VocabCard{}, &Issue{Line: line, Message: "definition is required"}
	}
	if raw := field(record, columns, "ease"); raw != "" {
		ease, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return VocabCard{}, &Issue{Line: line, Message: fmt.Sprintf("invalid ease %q", raw)}
		}
		card.Schedule.Ease = ease
	}
	if raw := field(record, columns, "repetitions"); raw != "" {
		repetitions, err := strconv.Atoi(raw)
		if err != nil {
			return VocabCard{}, &Issue{Line: line, Message: fmt.Sprintf("invalid repetitions %q", raw)}
		}
		card.Schedule.Repetitions = repetitions
	}
	if raw := field(record, columns, "last_review"); raw != "" {
		when, err := parseLastReview(raw)
		if err != nil {
			return VocabCard{}, &Issue{Line: line, Message: fmt.Sprintf("invalid last_review %q", raw)}
		}
		card.Schedule.LastReview = when
	}
	return card, nil
}

func parseLastReview(raw string) (time.Time, error) {
	for _, layout := range lastReviewLayouts {
		if when, err := time.Parse(layout, raw); err == nil {
			return when, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp")
}
