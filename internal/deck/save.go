package deck

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Save writes a vocabulary deck back to path, preserving review progress.
// The write goes through a temp file and rename so a crash never truncates
// the deck. MCQ decks are read-only and cannot be saved.
func Save(d *Deck, path string) error {
	if d.Kind != KindVocabulary {
		return fmt.Errorf("save deck: only vocabulary decks carry progress")
	}
	if path == "" {
		path = d.Path
	}
	if path == "" {
		return fmt.Errorf("save deck: no path")
	}

	hasFormulas := false
	for _, card := range d.Cards {
		if card.Formula != "" {
			hasFormulas = true
			break
		}
	}
	header := []string{"term", "definition", "ease", "repetitions", "last_review"}
	if hasFormulas {
		header = []string{"term", "definition", "formula", "ease", "repetitions", "last_review"}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save deck: %w", err)
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("save deck: %w", err)
	}

	writeErr := writeVocabulary(file, header, d.Cards, hasFormulas)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return fmt.Errorf("save deck: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("save deck: %w", err)
	}
	return nil
}

func writeVocabulary(file *os.File, header []string, cards []VocabCard, hasFormulas bool) error {
	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, card := range cards {
		lastReview := ""
		if !card.Schedule.LastReview.IsZero() {
			lastReview = card.Schedule.LastReview.UTC().Format(time.RFC3339)
		}
		record := []string{
			card.Term,
			card.Definition,
			strconv.FormatFloat(card.Schedule.Ease, 'f', -1, 64),
			strconv.Itoa(card.Schedule.Repetitions),
			lastReview,
		}
		if hasFormulas {
			record = append(record[:2], append([]string{card.Formula}, record[2:]...)...)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
