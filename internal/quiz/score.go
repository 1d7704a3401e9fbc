package quiz

import "sort"

// Result is the outcome of scoring one answered question.
type Result struct {
	// Correct counts selected indices that appear in the key.
	Correct int
	// Expected is the size of the answer key.
	Expected int
	// Score is the fraction of credit earned, in [0, 1].
	Score float64
	// Perfect is true only when the selection equals the key exactly.
	Perfect bool
	// Hinted marks answers given after a hint was taken.
	Hinted bool

	// Matched, Extra, and Missed break the selection down for feedback,
	// each sorted ascending.
	Matched []int
	Extra   []int
	Missed  []int
}

// Score compares a selection against an answer key. Single-answer keys demand
// an exact match for any credit. Multi-answer keys earn partial credit
// proportional to the matched fraction; extra selections never subtract from
// the score but do forfeit the perfect flag.
func Score(selection Selection, key Key) Result {
	result := Result{Expected: len(key)}
	for _, index := range key {
		if selection.Contains(index) {
			result.Matched = append(result.Matched, index)
		} else {
			result.Missed = append(result.Missed, index)
		}
	}
	for _, index := range selection.Indices() {
		if !key.Contains(index) {
			result.Extra = append(result.Extra, index)
		}
	}
	sort.Ints(result.Matched)
	result.Correct = len(result.Matched)
	result.Perfect = len(result.Missed) == 0 && len(result.Extra) == 0

	if len(key) == 1 {
		if result.Perfect {
			result.Score = 1
		}
		return result
	}
	result.Score = float64(result.Correct) / float64(len(key))
	if result.Score > 1 {
		result.Score = 1
	}
	return result
}
