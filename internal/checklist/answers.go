package checklist

// clean returns the answer value that carries no deficiency for p.
func clean(p Polarity) bool {
	switch p {
	case Positive:
		return true
	case Negative:
		return false
	}
	return false
}

// deficient reports whether answer counts against the resident for p.
func deficient(p Polarity, answer bool) bool {
	switch p {
	case Positive:
		return !answer
	case Negative:
		return answer
	}
	return false
}

// Score counts deficiencies over the checklist: a Positive criterion answered
// false, or a Negative criterion answered true. Keys missing from answers are
// treated as their clean value; keys not on the checklist are ignored.
func Score(answers map[string]bool) int {
	total := 0
	for _, c := range criteria {
		answer, ok := answers[c.Key]
		if !ok {
			answer = clean(c.Polarity)
		}
		if deficient(c.Polarity, answer) {
			total++
		}
	}
	return total
}

// Normalize returns a complete answer map over exactly the checklist keys:
// unknown keys are dropped, missing keys are filled with their clean value.
// The input map is not modified.
func Normalize(answers map[string]bool) map[string]bool {
	out := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		answer, ok := answers[c.Key]
		if !ok {
			answer = clean(c.Polarity)
		}
		out[c.Key] = answer
	}
	return out
}

// DefaultAnswers returns a complete answer map with every criterion at its
// clean value, scoring zero. Used when committing a "full marks" day.
func DefaultAnswers() map[string]bool {
	out := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		out[c.Key] = clean(c.Polarity)
	}
	return out
}
