package quiz

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Key is the canonical correct-answer set for a question: 1-based option
// indices, deduplicated and sorted ascending.
type Key []int

// ErrMalformedKey indicates a stored answer key that cannot be resolved
// against the question's options.
var ErrMalformedKey = errors.New("malformed answer key")

// letterIndex maps a stored answer letter to its 1-based option index.
var letterIndex = map[string]int{"a": 1, "b": 2, "c": 3, "d": 4}

// ParseKey parses a stored answer field such as "a" or "a,c" into a Key.
// Every referenced letter must name a non-empty option; options carries the
// question's option texts in stored order (2 for true/false, 4 otherwise).
func ParseKey(raw string, options []string) (Key, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty key", ErrMalformedKey)
	}
	seen := map[int]struct{}{}
	for _, part := range strings.Split(trimmed, ",") {
		letter := strings.ToLower(strings.TrimSpace(part))
		if letter == "" {
			continue
		}
		index, ok := letterIndex[letter]
		if !ok {
			return nil, fmt.Errorf("%w: unknown letter %q", ErrMalformedKey, part)
		}
		if index > len(options) || strings.TrimSpace(options[index-1]) == "" {
			return nil, fmt.Errorf("%w: letter %q references an empty option", ErrMalformedKey, letter)
		}
		seen[index] = struct{}{}
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrMalformedKey)
	}
	if len(options) == 2 && len(seen) != 1 {
		return nil, fmt.Errorf("%w: true/false key must hold exactly one answer", ErrMalformedKey)
	}
	key := make(Key, 0, len(seen))
	for index := range seen {
		key = append(key, index)
	}
	sort.Ints(key)
	return key, nil
}

// Contains reports whether the key includes the given option index.
func (k Key) Contains(index int) bool {
	for _, have := range k {
		if have == index {
			return true
		}
	}
	return false
}
