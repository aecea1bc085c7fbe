package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCriteria_TableShape(t *testing.T) {
	cs := Criteria()
	require.Len(t, cs, 9)

	t.Run("keys are unique", func(t *testing.T) {
		seen := map[string]bool{}
		for _, c := range cs {
			assert.False(t, seen[c.Key], "duplicate key %q", c.Key)
			seen[c.Key] = true
		}
	})

	t.Run("every criterion has a closed polarity", func(t *testing.T) {
		for _, c := range cs {
			assert.Contains(t, []Polarity{Positive, Negative}, c.Polarity, "criterion %q", c.Key)
		}
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		cs[0].Key = "tampered"
		again := Criteria()
		assert.Equal(t, "bed", again[0].Key)
	})
}

func TestByKey(t *testing.T) {
	c, ok := ByKey("phoneCaught")
	require.True(t, ok)
	assert.Equal(t, Negative, c.Polarity)

	_, ok = ByKey("unknown")
	assert.False(t, ok)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name    string
		answers map[string]bool
		want    int
	}{
		{
			name:    "clean day scores zero",
			answers: DefaultAnswers(),
			want:    0,
		},
		{
			name: "positive false and negative true each count",
			answers: map[string]bool{
				"bed":         false,
				"desk":        true,
				"phoneCaught": true,
			},
			want: 2,
		},
		{
			name: "positive true and negative false count nothing",
			answers: map[string]bool{
				"bed":         true,
				"desk":        true,
				"phoneCaught": false,
			},
			want: 0,
		},
		{
			name:    "missing keys are treated as clean",
			answers: map[string]bool{},
			want:    0,
		},
		{
			name: "unknown keys are ignored",
			answers: map[string]bool{
				"bed":      false,
				"homework": true,
				"laundry":  false,
			},
			want: 1,
		},
		{
			name: "worst day scores one per criterion",
			answers: map[string]bool{
				"bed": false, "desk": false, "bookshelf": false,
				"cleanliness": false, "bullying": true,
				"programCompliance": false, "classDismissal": true,
				"dressCode": false, "phoneCaught": true,
			},
			want: 9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Score(tt.answers))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("drops unknown keys and fills missing ones", func(t *testing.T) {
		in := map[string]bool{
			"bed":      false,
			"homework": true,
		}
		out := Normalize(in)

		require.Len(t, out, Len())
		assert.NotContains(t, out, "homework")
		assert.False(t, out["bed"])
		assert.True(t, out["desk"], "missing positive criterion defaults to clean")
		assert.False(t, out["phoneCaught"], "missing negative criterion defaults to clean")
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := map[string]bool{"homework": true}
		_ = Normalize(in)
		assert.Equal(t, map[string]bool{"homework": true}, in)
	})

	t.Run("score is stable across normalization", func(t *testing.T) {
		in := map[string]bool{"bed": false, "phoneCaught": true, "homework": true}
		assert.Equal(t, Score(in), Score(Normalize(in)))
	})
}

func TestDefaultAnswers(t *testing.T) {
	answers := DefaultAnswers()
	require.Len(t, answers, Len())
	assert.Equal(t, 0, Score(answers))

	for _, c := range Criteria() {
		switch c.Polarity {
		case Positive:
			assert.True(t, answers[c.Key], "positive criterion %q", c.Key)
		case Negative:
			assert.False(t, answers[c.Key], "negative criterion %q", c.Key)
		}
	}
}
