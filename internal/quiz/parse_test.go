package quiz

import (
	"errors"
	"reflect"
	"testing"
)

// TestParseAnswerSeparatorMix verifies every separator permutation of the same
// indices normalizes to the identical set.
func TestParseAnswerSeparatorMix(t *testing.T) {
	inputs := []string{"1,3", "3,1", "1 3", "3, 1", " 1 , 3 ", "1,,3", "1\t3"}
	for _, raw := range inputs {
		selection, err := ParseAnswer(raw, 4)
		if err != nil {
			t.Fatalf("parse %q: %v", raw, err)
		}
		if !reflect.DeepEqual(selection.Indices(), []int{1, 3}) {
			t.Fatalf("parse %q: expected {1, 3}, got %v", raw, selection.Indices())
		}
	}
}

// TestParseAnswerEmpty verifies empty and whitespace-only input fail with
// ErrEmptyAnswer.
func TestParseAnswerEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		if _, err := ParseAnswer(raw, 4); !errors.Is(err, ErrEmptyAnswer) {
			t.Fatalf("parse %q: expected empty answer error, got %v", raw, err)
		}
	}
}

// TestParseAnswerOutOfRange verifies out-of-range and non-numeric tokens fail
// with ErrInvalidToken.
func TestParseAnswerOutOfRange(t *testing.T) {
	cases := []struct {
		raw         string
		optionCount int
	}{
		{"5", 4},
		{"3", 2},
		{"0", 4},
		{"-1", 4},
		{"two", 4},
		{"1,x", 4},
	}
	for _, tc := range cases {
		if _, err := ParseAnswer(tc.raw, tc.optionCount); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("parse %q: expected invalid token error, got %v", tc.raw, err)
		}
	}
}

// TestParseAnswerDeduplicates verifies repeated indices collapse into a set.
func TestParseAnswerDeduplicates(t *testing.T) {
	selection, err := ParseAnswer("2,2, 2", 4)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(selection.Indices(), []int{2}) {
		t.Fatalf("expected {2}, got %v", selection.Indices())
	}
}

// TestParseAnswerOverSelectionAccepted verifies selecting every option parses;
// the scorer, not the parser, judges excess picks.
func TestParseAnswerOverSelectionAccepted(t *testing.T) {
	selection, err := ParseAnswer("1,2,3,4", 4)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(selection) != 4 {
		t.Fatalf("expected 4 indices, got %d", len(selection))
	}
}

// TestParseAnswerIdempotent verifies parsing the same input twice yields
// identical sets.
func TestParseAnswerIdempotent(t *testing.T) {
	raw := " 3 , 1 "
	first, err := ParseAnswer(raw, 4)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseAnswer(raw, 4)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first.Indices(), second.Indices()) {
		t.Fatalf("expected identical sets, got %v and %v", first.Indices(), second.Indices())
	}
}
