// Package checklist defines the fixed daily conduct checklist and the
// deficiency scoring over its answers.
package checklist

// Polarity states which answer value counts against the resident.
type Polarity int

const (
	// Positive criteria describe expected behaviour; answering false is a deficiency.
	Positive Polarity = iota + 1
	// Negative criteria describe misconduct; answering true is a deficiency.
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	}
	return "unknown"
}

// Criterion is one evaluated aspect of daily conduct.
type Criterion struct {
	Key      string
	Label    string
	Polarity Polarity
}

// criteria is the authoritative checklist, in display order. The table is
// fixed at build time; answer maps are keyed by Criterion.Key.
var criteria = []Criterion{
	{Key: "bed", Label: "Bed made", Polarity: Positive},
	{Key: "desk", Label: "Desk tidy", Polarity: Positive},
	{Key: "bookshelf", Label: "Bookshelf in order", Polarity: Positive},
	{Key: "cleanliness", Label: "Room cleanliness", Polarity: Positive},
	{Key: "bullying", Label: "Bullying", Polarity: Negative},
	{Key: "programCompliance", Label: "Program compliance", Polarity: Positive},
	{Key: "classDismissal", Label: "Sent out of class", Polarity: Negative},
	{Key: "dressCode", Label: "Dress code", Polarity: Positive},
	{Key: "phoneCaught", Label: "Caught with phone", Polarity: Negative},
}

// Criteria returns the checklist in display order. The returned slice is a
// copy; callers may not mutate the authoritative table.
func Criteria() []Criterion {
	out := make([]Criterion, len(criteria))
	copy(out, criteria)
	return out
}

// ByKey looks up a criterion by its answer-map key.
func ByKey(key string) (Criterion, bool) {
	for _, c := range criteria {
		if c.Key == key {
			return c, true
		}
	}
	return Criterion{}, false
}

// Len returns the number of criteria on the checklist.
func Len() int {
	return len(criteria)
}
