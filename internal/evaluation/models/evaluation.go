// Package models holds the evaluation domain entities.
package models

import (
	"time"

	"conduct/internal/checklist"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
)

// Evaluation is one resident's conduct record for one calendar day.
//
// Invariants:
//   - at most one evaluation exists per (resident, day)
//   - Answers covers exactly the checklist keys
//   - Score equals the deficiency count derived from Answers
type Evaluation struct {
	ID         id.EvaluationID
	ResidentID id.ResidentID
	Day        id.Day
	Answers    map[string]bool
	Notes      string
	Score      int
	RecordedBy id.UserID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewEvaluation constructs an evaluation from normalized answers, deriving the
// score. Callers normalize raw answers via checklist.Normalize first. Notes is
// free text from the evaluator and may be empty.
func NewEvaluation(evalID id.EvaluationID, residentID id.ResidentID, day id.Day, answers map[string]bool, notes string, recordedBy id.UserID, now time.Time) (*Evaluation, error) {
	if evalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "evaluation id is required")
	}
	if residentID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "resident id is required")
	}
	if day.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "day is required")
	}
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}
	return &Evaluation{
		ID:         evalID,
		ResidentID: residentID,
		Day:        day,
		Answers:    answers,
		Notes:      notes,
		Score:      checklist.Score(answers),
		RecordedBy: recordedBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// ApplyAnswers replaces the answer set and notes and rederives the score.
func (e *Evaluation) ApplyAnswers(answers map[string]bool, notes string, recordedBy id.UserID, now time.Time) error {
	if err := validateAnswers(answers); err != nil {
		return err
	}
	e.Answers = answers
	e.Notes = notes
	e.Score = checklist.Score(answers)
	e.RecordedBy = recordedBy
	e.UpdatedAt = now
	return nil
}

func validateAnswers(answers map[string]bool) error {
	if len(answers) != checklist.Len() {
		return dErrors.New(dErrors.CodeInvariantViolation, "answers must cover the full checklist")
	}
	for key := range answers {
		if _, ok := checklist.ByKey(key); !ok {
			return dErrors.Newf(dErrors.CodeInvariantViolation, "unknown checklist key %q", key)
		}
	}
	return nil
}

// Clone returns a deep copy, so in-memory stores never share answer maps with
// callers.
func (e *Evaluation) Clone() *Evaluation {
	if e == nil {
		return nil
	}
	cp := *e
	cp.Answers = make(map[string]bool, len(e.Answers))
	for k, v := range e.Answers {
		cp.Answers[k] = v
	}
	return &cp
}
