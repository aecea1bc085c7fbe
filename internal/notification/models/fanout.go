package models

import (
	id "conduct/pkg/domain"
)

// RecipientFailure records one recipient whose notification write failed.
type RecipientFailure struct {
	UserID id.UserID
	Err    error
}

// FanoutReport summarizes one fan-out run. Failed recipients are reported,
// never propagated to the operation that triggered the fan-out.
type FanoutReport struct {
	Recipients int
	Delivered  int
	Failures   []RecipientFailure
}

// MarkAllReport summarizes a best-effort mark-all-read pass.
type MarkAllReport struct {
	Marked   int
	Failures []RecipientFailure
}
