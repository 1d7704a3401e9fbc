package format

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoRows reports that no record in the input could be converted.
var ErrNoRows = errors.New("format: no convertible rows")

var canonicalHeader = []string{"question", "option_a", "option_b", "option_c", "option_d", "correct_answer"}

// Read converts every record from r, collecting rows and statistics on the
// Formatter. Unrecognized records are counted as skipped, not fatal.
func (f *Formatter) Read(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	if len(records) == 0 {
		return ErrNoRows
	}

	columns := []string{"question", "correct_answer"}
	if isHeader(records[0]) {
		columns = records[0]
		for i, name := range columns {
			columns[i] = strings.ToLower(strings.TrimSpace(name))
		}
		records = records[1:]
	}

	for _, record := range records {
		row := make(map[string]string, len(columns))
		for i, name := range columns {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		f.Convert(row, columns)
	}
	if len(f.rows) == 0 {
		return ErrNoRows
	}
	return nil
}

// isHeader reports whether the first record names the canonical columns
// rather than carrying data.
func isHeader(record []string) bool {
	for _, cell := range record {
		cell = strings.ToLower(strings.TrimSpace(cell))
		if cell == "question" || strings.HasPrefix(cell, "option_") {
			return true
		}
	}
	return false
}

// ConvertFile converts inputPath and writes the canonical deck into
// templatesDir, auto-incrementing the name when the target already exists.
// It returns the output path and the conversion statistics.
func ConvertFile(inputPath, templatesDir string) (string, Stats, error) {
	f := New()
	in, err := os.Open(inputPath)
	if err != nil {
		return "", Stats{}, fmt.Errorf("open input: %w", err)
	}
	defer in.Close()
	if err := f.Read(in); err != nil {
		return "", f.Stats(), err
	}

	outputPath, err := OutputPath(inputPath, templatesDir)
	if err != nil {
		return "", f.Stats(), err
	}
	if err := writeRows(outputPath, f.Rows()); err != nil {
		return "", f.Stats(), err
	}
	return outputPath, f.Stats(), nil
}

// OutputPath chooses the output file name under templatesDir, appending an
// incrementing suffix when the plain name is taken.
func OutputPath(inputPath, templatesDir string) (string, error) {
	if err := os.MkdirAll(templatesDir, 0o755); err != nil {
		return "", fmt.Errorf("create templates directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	candidate := filepath.Join(templatesDir, base+".csv")
	for counter := 1; ; counter++ {
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		} else if err != nil {
			return "", fmt.Errorf("check output path: %w", err)
		}
		candidate = filepath.Join(templatesDir, fmt.Sprintf("%s_%d.csv", base, counter))
	}
}

// writeRows writes the canonical header and converted rows.
func writeRows(path string, rows []Row) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	writer := csv.NewWriter(out)
	if err := writer.Write(canonicalHeader); err != nil {
		_ = out.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Question, row.OptionA, row.OptionB, row.OptionC, row.OptionD, row.CorrectAnswer}
		if err := writer.Write(record); err != nil {
			_ = out.Close()
			return fmt.Errorf("write row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = out.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return out.Close()
}
