package models

import (
	id "conduct/pkg/domain"
)

// BulkStatus is the per-resident selection on the bulk commit screen.
type BulkStatus string

const (
	// BulkStatusPending means no decision was made; the resident is skipped.
	BulkStatusPending BulkStatus = "pending"
	// BulkStatusFull commits a clean day with every criterion at its clean value.
	BulkStatusFull BulkStatus = "full"
	// BulkStatusDeficient commits the explicit answers carried on the item.
	BulkStatusDeficient BulkStatus = "deficient"
	// BulkStatusAbsent means the resident was away; nothing is written.
	BulkStatusAbsent BulkStatus = "absent"
)

// Valid reports whether s is one of the known bulk statuses.
func (s BulkStatus) Valid() bool {
	switch s {
	case BulkStatusPending, BulkStatusFull, BulkStatusDeficient, BulkStatusAbsent:
		return true
	}
	return false
}

// BatchItem is one resident's entry in a bulk commit.
type BatchItem struct {
	ResidentID id.ResidentID
	Status     BulkStatus
	Answers    map[string]bool
	Notes      string
}

// UpsertResult reports where a single upsert landed.
type UpsertResult struct {
	ID        id.EvaluationID
	WasUpdate bool
}

// BatchItemResult is the per-item outcome of a bulk commit. Exactly one of
// Skipped, Err, or Result describes the outcome.
type BatchItemResult struct {
	ResidentID id.ResidentID
	Status     BulkStatus
	Skipped    bool
	Result     *UpsertResult
	Err        error
}
