package services

import "fmt"

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// Service errors
var (
	ErrInvalidRating       = &ServiceError{Message: "ratings must be between 1 and 5"}
	ErrEmptyComment        = &ServiceError{Message: "comment text is required"}
	ErrUnknownVotingType   = &ServiceError{Message: "unknown voting type"}
	ErrUnverifiedIdentity  = &ServiceError{Message: "identity assertion is not verified"}
)

// DuplicateVoteError signals that the voter already has a ledger entry for
// this position (or this club). It is a correctness outcome, not a transient
// failure: the caller must never retry, with the same candidate or another.
type DuplicateVoteError struct {
	Subject string // position name for elections, club name for polls
}

func (e *DuplicateVoteError) Error() string {
	return fmt.Sprintf("you have already voted for %s", e.Subject)
}

// VotingClosedError signals that the voting session gate denied the vote.
// Message carries the gate's configured text for the current phase.
type VotingClosedError struct {
	Status  string
	Message string
}

func (e *VotingClosedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "voting is currently closed"
}
