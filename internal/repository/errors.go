package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist. It hides
// the underlying storage (sql.ErrNoRows etc.) from the service layer.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateVote is returned when an insert loses to the uniqueness
// constraint guarding one-vote-per-voter. The constraint check inside the
// storage engine is the race-resolution point; a raw constraint violation is
// always translated to this error and never leaks upward.
var ErrDuplicateVote = errors.New("duplicate vote")
