package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"cram/internal/quiz"
)

// DatabaseFileName is the results database file under the results directory.
const DatabaseFileName = "cram.db"

// Attempt is one answered question inside a session.
type Attempt struct {
	QuestionID string    `json:"question_id"`
	Prompt     string    `json:"prompt"`
	Kind       string    `json:"kind"`
	Expected   int       `json:"expected"`
	Correct    int       `json:"correct"`
	Score      float64   `json:"score"`
	Perfect    bool      `json:"perfect"`
	Hinted     bool      `json:"hinted"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Session is a completed study session keyed by deck name.
type Session struct {
	ID         string    `json:"session_id"`
	Deck       string    `json:"deck"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Questions  int       `json:"questions"`
	Perfect    int       `json:"perfect"`
	Score      float64   `json:"score"`
	Attempts   []Attempt `json:"attempts"`
}

// NewSession starts a session record for a deck with a fresh ID.
func NewSession(deck string, startedAt time.Time) Session {
	return Session{ID: uuid.NewString(), Deck: deck, StartedAt: startedAt}
}

// AddResult folds one scored question into the session.
func (s *Session) AddResult(question quiz.Question, result quiz.Result, answeredAt time.Time) {
	s.Attempts = append(s.Attempts, Attempt{
		QuestionID: question.ID,
		Prompt:     question.Prompt,
		Kind:       question.Kind.String(),
		Expected:   result.Expected,
		Correct:    result.Correct,
		Score:      result.Score,
		Perfect:    result.Perfect,
		Hinted:     result.Hinted,
		AnsweredAt: answeredAt,
	})
}

// Finish stamps the end time and folds in the summary.
func (s *Session) Finish(summary quiz.Summary, finishedAt time.Time) {
	s.FinishedAt = finishedAt
	s.Questions = summary.Questions
	s.Perfect = summary.Perfect
	s.Score = summary.Score
}

// Store wraps the results database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the results database under resultsDir and
// ensures the schema exists.
func Open(ctx context.Context, resultsDir string) (*Store, error) {
	if resultsDir == "" {
		return nil, errors.New("results: results directory is required")
	}
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return nil, fmt.Errorf("create results directory: %w", err)
	}
	db, err := sql.Open("duckdb", filepath.Join(resultsDir, DatabaseFileName))
	if err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping results database: %w", err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure results schema: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenDB wraps an existing connection; used by tests with in-memory DuckDB.
func OpenDB(db *sql.DB) (*Store, error) {
	if err := EnsureSchema(db); err != nil {
		return nil, fmt.Errorf("ensure results schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordSession inserts a session and its attempts.
func (s *Store) RecordSession(ctx context.Context, session Session) error {
	if session.ID == "" {
		return errors.New("results: session id is required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO sessions (session_id, deck, started_at, finished_at, questions, perfect, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.Deck,
		session.StartedAt,
		session.FinishedAt,
		session.Questions,
		session.Perfect,
		session.Score,
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	for _, attempt := range session.Attempts {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO attempts (session_id, question_id, prompt, kind, expected, correct, score, perfect, hinted, answered_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID,
			attempt.QuestionID,
			attempt.Prompt,
			attempt.Kind,
			attempt.Expected,
			attempt.Correct,
			attempt.Score,
			attempt.Perfect,
			attempt.Hinted,
			attempt.AnsweredAt,
		); err != nil {
			return fmt.Errorf("insert attempt %s: %w", attempt.QuestionID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session insert: %w", err)
	}
	return nil
}

// HistoryEntry is one past session row for a deck.
type HistoryEntry struct {
	SessionID  string
	FinishedAt time.Time
	Questions  int
	Perfect    int
	Score      float64
}

// DeckHistory returns the most recent sessions for a deck, newest first.
func (s *Store) DeckHistory(ctx context.Context, deck string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT session_id, finished_at, questions, perfect, score
		 FROM sessions WHERE deck = ?
		 ORDER BY finished_at DESC LIMIT ?`,
		deck,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query deck history: %w", err)
	}
	defer rows.Close()

	var history []HistoryEntry
	for rows.Next() {
		var entry HistoryEntry
		if err := rows.Scan(&entry.SessionID, &entry.FinishedAt, &entry.Questions, &entry.Perfect, &entry.Score); err != nil {
			return nil, fmt.Errorf("scan deck history: %w", err)
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read deck history: %w", err)
	}
	return history, nil
}
