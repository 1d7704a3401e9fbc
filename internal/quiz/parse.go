package quiz

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Selection is the set of option indices a user picked for one question.
type Selection map[int]struct{}

// ErrEmptyAnswer indicates empty or whitespace-only user input.
var ErrEmptyAnswer = errors.New("empty answer")

// ErrInvalidToken indicates user input containing a token that is not an
// option number in range.
var ErrInvalidToken = errors.New("invalid answer token")

// tokenSplit separates answer tokens on any run of commas and whitespace.
var tokenSplit = regexp.MustCompile(`[,\s]+`)

// ParseAnswer normalizes free-text user input into a Selection. Tokens may be
// separated by commas, whitespace, or any mixture; order and duplicates are
// ignored. Each token must be an integer in [1, optionCount]. Selecting more
// tokens than there are options is not rejected here; the scorer decides what
// extra selections are worth.
func ParseAnswer(raw string, optionCount int) (Selection, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, ErrEmptyAnswer
	}
	selection := Selection{}
	for _, token := range tokenSplit.Split(trimmed, -1) {
		if token == "" {
			continue
		}
		index, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidToken, token)
		}
		if index < 1 || index > optionCount {
			return nil, fmt.Errorf("%w: %d is out of range 1-%d", ErrInvalidToken, index, optionCount)
		}
		selection[index] = struct{}{}
	}
	if len(selection) == 0 {
		return nil, ErrEmptyAnswer
	}
	return selection, nil
}

// Contains reports whether the selection includes the given option index.
func (s Selection) Contains(index int) bool {
	_, ok := s[index]
	return ok
}

// Indices returns the selected indices sorted ascending.
func (s Selection) Indices() []int {
	indices := make([]int, 0, len(s))
	for index := range s {
		indices = append(indices, index)
	}
	sort.Ints(indices)
	return indices
}
