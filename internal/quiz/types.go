package quiz

// Kind discriminates the two supported question formats.
type Kind int

const (
	// KindRegular is a four-option multiple-choice question.
	KindRegular Kind = iota
	// KindTrueFalse is a two-option question whose options are always
	// presented as True (index 1) and False (index 2).
	KindTrueFalse
)

// String returns the kind name used in stored results.
func (k Kind) String() string {
	switch k {
	case KindTrueFalse:
		return "true_false"
	default:
		return "regular"
	}
}

// Question is a single multiple-choice question ready to be asked. Options
// hold either exactly 2 entries (true/false) or exactly 4, in stored order.
type Question struct {
	ID      string
	Prompt  string
	Kind    Kind
	Options []string
	Key     Key
	// Explanation is shown after the question is answered, when present.
	Explanation string
}

// OptionCount returns the number of selectable options.
func (q Question) OptionCount() int {
	return len(q.Options)
}
