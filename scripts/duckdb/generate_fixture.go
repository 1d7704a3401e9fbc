// Command generate_fixture seeds a results directory with synthetic study
// sessions. It is a manual-testing aid for the report command: point it at a
// scratch directory and run `cram report` against the generated history.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"cram/internal/quiz"
	"cram/internal/results"
)

func main() {
	resultsDir := flag.String("out", "", "results directory to seed")
	deck := flag.String("deck", "algebra", "deck name for the generated sessions")
	sessions := flag.Int("sessions", 5, "number of sessions to generate")
	questions := flag.Int("questions", 10, "questions answered per session")
	seed := flag.Int64("seed", 1, "random seed for repeatable fixtures")
	flag.Parse()
	if *resultsDir == "" {
		fmt.Fprintln(os.Stderr, "usage: generate_fixture --out <results dir> [--deck name] [--sessions n] [--questions n]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := generate(ctx, *resultsDir, *deck, *sessions, *questions, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "generate fixture: %v\n", err)
		os.Exit(1)
	}
}

func generate(ctx context.Context, resultsDir, deck string, sessions, questions int, seed int64) error {
	store, err := results.Open(ctx, resultsDir)
	if err != nil {
		return err
	}
	defer store.Close()

	rng := rand.New(rand.NewSource(seed))
	// Space the sessions one day apart, ending yesterday.
	start := time.Now().AddDate(0, 0, -sessions)

	for i := 0; i < sessions; i++ {
		startedAt := start.AddDate(0, 0, i)
		session := results.NewSession(deck, startedAt)

		var summary quiz.Summary
		var total float64
		for j := 0; j < questions; j++ {
			question := fixtureQuestion(deck, j)
			result := fixtureResult(rng)
			session.AddResult(question, result, startedAt.Add(time.Duration(j)*30*time.Second))

			summary.Questions++
			total += result.Score
			switch {
			case result.Perfect:
				summary.Perfect++
			case result.Score > 0:
				summary.Partial++
			default:
				summary.Incorrect++
			}
			if result.Hinted {
				summary.Hinted++
			}
		}
		summary.Score = total / float64(questions)
		session.Finish(summary, startedAt.Add(time.Duration(questions)*30*time.Second))

		if err := store.RecordSession(ctx, session); err != nil {
			return err
		}
		if _, err := results.WriteArtifact(resultsDir, session); err != nil {
			return err
		}
		fmt.Printf("session %s: %d/%d perfect, score %.0f%%\n",
			session.ID, summary.Perfect, summary.Questions, summary.Score*100)
	}
	return nil
}

// fixtureQuestion builds a synthetic question identified by deck and index.
func fixtureQuestion(deck string, index int) quiz.Question {
	return quiz.Question{
		ID:      fmt.Sprintf("%s-%d", deck, index+1),
		Prompt:  fmt.Sprintf("Fixture question %d", index+1),
		Kind:    quiz.KindRegular,
		Options: []string{"alpha", "beta", "gamma", "delta"},
		Key:     quiz.Key{1},
	}
}

// fixtureResult draws a plausible outcome: mostly perfect answers with a
// sprinkling of partial credit, misses and hints.
func fixtureResult(rng *rand.Rand) quiz.Result {
	result := quiz.Result{Expected: 1}
	switch roll := rng.Intn(10); {
	case roll < 6:
		result.Correct = 1
		result.Score = 1
		result.Perfect = true
	case roll < 8:
		result.Correct = 1
		result.Score = 0.5
	default:
		result.Score = 0
	}
	if !result.Perfect && rng.Intn(4) == 0 {
		result.Hinted = true
	}
	return result
}
