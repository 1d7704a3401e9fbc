package format

import "strings"

// Distractor pools for the subject areas the raw decks cover.
var (
	complexityTerms = []string{
		"O(n)", "O(n^2)", "O(log n)", "O(1)", "O(n log n)",
		"Θ(n)", "Θ(n^2)", "Θ(log n)", "Θ(1)", "Θ(n log n)",
		"Ω(n)", "Ω(n^2)", "Ω(log n)", "Ω(1)", "Ω(n log n)",
	}
	strategyTerms = []string{
		"Incremental", "Divide-and-Conquer", "Dynamic Programming",
		"Greedy", "Brute Force", "Backtracking",
		"QuickSort", "MergeSort", "HeapSort", "BubbleSort",
	}
	heapTerms = []string{
		"floor(log n)", "ceil(log n)", "2^n", "2^(h+1)", "2^h",
	}
	mathTerms = []string{
		"n", "n^2", "n^3", "log n", "2^n", "n!",
		"floor(n)", "ceil(n)", "sqrt(n)",
		"2^(n+1)", "2^(n-1)", "n-1", "n+1",
		"Linear", "Quadratic", "Exponential", "Logarithmic",
	}
)

// distractors picks exactly three wrong answers for a fill-in-blank
// conversion, preferring terms from the pool that matches the question.
func (f *Formatter) distractors(question, answer string) []string {
	var wrong []string
	lower := strings.ToLower(question)

	contextual := func(pool []string) {
		for _, term := range pool {
			if len(wrong) == 2 {
				return
			}
			if !strings.EqualFold(term, answer) {
				wrong = append(wrong, term)
			}
		}
	}
	switch {
	case strings.Contains(lower, "sort") || strings.Contains(lower, "merge") || strings.Contains(lower, "quick"):
		contextual(strategyTerms)
	case strings.Contains(question, "O(") || strings.Contains(question, "Θ(") || strings.Contains(question, "Ω("):
		contextual(complexityTerms)
	case strings.Contains(lower, "heap"):
		contextual(heapTerms)
	}

	var candidates []string
	for _, pool := range [][]string{complexityTerms, strategyTerms, heapTerms, mathTerms} {
		for _, term := range pool {
			if strings.EqualFold(term, answer) || contains(wrong, term) {
				continue
			}
			candidates = append(candidates, term)
		}
	}
	for len(wrong) < 3 && len(candidates) > 0 {
		pick := f.rng.Intn(len(candidates))
		wrong = append(wrong, candidates[pick])
		candidates = append(candidates[:pick], candidates[pick+1:]...)
	}
	return wrong[:3]
}

func contains(terms []string, term string) bool {
	for _, t := range terms {
		if t == term {
			return true
		}
	}
	return false
}
