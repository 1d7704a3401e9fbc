package quiz

// Summary aggregates the results of one session.
type Summary struct {
	Questions int
	Perfect   int
	Partial   int
	Incorrect int
	Hinted    int
	// Score is the mean per-question score, in [0, 1]. Zero when no
	// questions were answered.
	Score float64
}

// Summarize folds per-question results into a session summary.
func Summarize(results []Result) Summary {
	summary := Summary{Questions: len(results)}
	total := 0.0
	for _, result := range results {
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
	if summary.Questions > 0 {
		summary.Score = total / float64(summary.Questions)
	}
	return summary
}
