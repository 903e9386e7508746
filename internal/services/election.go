package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/campusvote/pollz/internal/anonymize"
	"github.com/campusvote/pollz/internal/logger"
	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// ElectionService orchestrates anonymous election voting. It is the only
// legitimate writer of the anonymous-vote ledger: the session gate is
// enforced here, not in the storage layer, so any other ledger writer would
// bypass it.
type ElectionService struct {
	log         logger.Logger
	repo        repository.ElectionRepository
	hasher      *anonymize.Hasher
	sessions    SessionServicer
	broadcaster Broadcaster
}

// NewElectionService creates a new ElectionService
func NewElectionService(log logger.Logger, repo repository.ElectionRepository, hasher *anonymize.Hasher, sessions SessionServicer) *ElectionService {
	return &ElectionService{
		log:      log,
		repo:     repo,
		hasher:   hasher,
		sessions: sessions,
	}
}

// SetBroadcaster sets the broadcaster for live tally updates
func (s *ElectionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// VoteReceipt is returned to the voter after a successful cast. VoterID is
// a truncated voter-hash prefix for the voter's own reference; the
// verification block lets anyone recompute the stored signature.
type VoteReceipt struct {
	VoteID       int64        `json:"vote_id"`
	VoterID      string       `json:"voter_id"`
	Candidate    string       `json:"candidate"`
	Position     string       `json:"position"`
	VoteCount    int          `json:"vote_count"`
	Verification Verification `json:"verification"`
}

// Verification holds the integrity fields of a receipt
type Verification struct {
	Signature string `json:"signature"`
	Timestamp string `json:"timestamp"`
}

// PositionVoteStatus reports whether the requesting user has voted for one
// position. VoterID is only revealed once the user has voted.
type PositionVoteStatus struct {
	PositionID   int     `json:"position_id"`
	PositionName string  `json:"position_name"`
	HasVoted     bool    `json:"has_voted"`
	VoterID      *string `json:"voter_id"`
}

// ListPositions returns all active election positions
func (s *ElectionService) ListPositions(ctx context.Context) ([]models.ElectionPosition, error) {
	return s.repo.ListPositions(ctx)
}

// ListCandidates returns active candidates, optionally for one position
func (s *ElectionService) ListCandidates(ctx context.Context, positionID int) ([]models.ElectionCandidate, error) {
	return s.repo.ListCandidates(ctx, positionID)
}

// CastVote casts an anonymous vote for a candidate on behalf of an
// authenticated user. No side effects occur if any step before the ledger
// insert fails; a flag-update failure after the insert is logged and
// swallowed, because the ledger entry is the canonical vote and the profile
// flag is only a convenience cache.
func (s *ElectionService) CastVote(ctx context.Context, userID, candidateID int, clientIP string) (*VoteReceipt, error) {
	candidate, err := s.repo.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}

	status, err := s.sessions.Status(ctx, models.VotingTypeElection)
	if err != nil {
		return nil, err
	}
	if !status.IsVotingAllowed {
		return nil, &VotingClosedError{Status: status.Status, Message: status.Message}
	}

	voterHash := s.hasher.VoterHash(userID, candidate.PositionID)

	// Friendly pre-check. The unique index on (voter_hash, position_id)
	// remains the authority if a concurrent cast slips in between.
	voted, err := s.repo.HasVoted(ctx, voterHash, candidate.PositionID)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, &DuplicateVoteError{Subject: candidate.PositionName}
	}

	votedAt := time.Now().UTC().Format(time.RFC3339Nano)
	signature := anonymize.Signature(voterHash, candidate.ID, votedAt)

	vote := &models.AnonymousVote{
		VoterHash:   voterHash,
		CandidateID: candidate.ID,
		PositionID:  candidate.PositionID,
		Signature:   signature,
		VotedAt:     votedAt,
		IPHash:      s.hasher.IPHash(clientIP),
	}

	voteID, newCount, err := s.repo.CastAnonymousVote(ctx, vote)
	if stderrors.Is(err, repository.ErrDuplicateVote) {
		return nil, &DuplicateVoteError{Subject: candidate.PositionName}
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Anonymous vote recorded",
		"voter_id", anonymize.VoterIDPrefix(voterHash),
		"position", candidate.PositionName,
		"vote_count", newCount)

	// Advisory only; the vote already stands.
	if err := s.repo.SetVoteFlag(ctx, userID, candidate.PositionID); err != nil {
		s.log.Warn("Failed to update profile vote flag", "position_id", candidate.PositionID, "error", err)
	}

	s.broadcastTally(ctx, candidate.PositionID)

	return &VoteReceipt{
		VoteID:    voteID,
		VoterID:   anonymize.VoterIDPrefix(voterHash),
		Candidate: candidate.Name,
		Position:  candidate.PositionName,
		VoteCount: newCount,
		Verification: Verification{
			Signature: signature,
			Timestamp: votedAt,
		},
	}, nil
}

// VoteStatus reports, per active position, whether the user has voted. The
// answer is re-derived from the ledger via the deterministic voter hash, not
// from the profile flags, so it stays correct even if a flag write was lost.
func (s *ElectionService) VoteStatus(ctx context.Context, userID int) ([]PositionVoteStatus, error) {
	positions, err := s.repo.ListPositions(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]PositionVoteStatus, 0, len(positions))
	for _, position := range positions {
		voterHash := s.hasher.VoterHash(userID, position.ID)
		voted, err := s.repo.HasVoted(ctx, voterHash, position.ID)
		if err != nil {
			return nil, err
		}
		status := PositionVoteStatus{
			PositionID:   position.ID,
			PositionName: position.Name,
			HasVoted:     voted,
		}
		if voted {
			prefix := anonymize.VoterIDPrefix(voterHash)
			status.VoterID = &prefix
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// VerifyResult is the outcome of recomputing a stored vote's signature
type VerifyResult struct {
	VoteID    int64  `json:"vote_id"`
	Valid     bool   `json:"valid"`
	Signature string `json:"signature"`
	Timestamp string `json:"timestamp"`
}

// VerifyVote recomputes a stored vote's signature over its stored fields and
// compares it with the stored one. This audits against corruption; it is not
// tamper-proof, since the signature inputs are all readable from the ledger.
func (s *ElectionService) VerifyVote(ctx context.Context, voteID int64) (*VerifyResult, error) {
	vote, err := s.repo.GetAnonymousVote(ctx, voteID)
	if err != nil {
		return nil, err
	}
	expected := anonymize.Signature(vote.VoterHash, vote.CandidateID, vote.VotedAt)
	return &VerifyResult{
		VoteID:    vote.ID,
		Valid:     expected == vote.Signature,
		Signature: vote.Signature,
		Timestamp: vote.VotedAt,
	}, nil
}

// GetVote returns a ledger entry (anonymous by construction)
func (s *ElectionService) GetVote(ctx context.Context, voteID int64) (*models.AnonymousVote, error) {
	return s.repo.GetAnonymousVote(ctx, voteID)
}

// PositionStats holds live tallies for one position
type PositionStats struct {
	PositionID   int                    `json:"position_id"`
	PositionName string                 `json:"position_name"`
	TotalVotes   int                    `json:"total_votes"`
	Candidates   []CandidateTally       `json:"candidates"`
}

// CandidateTally is one candidate's share of a position's votes
type CandidateTally struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// LiveStats returns current tallies for every active position
func (s *ElectionService) LiveStats(ctx context.Context) ([]PositionStats, error) {
	positions, err := s.repo.ListPositions(ctx)
	if err != nil {
		return nil, err
	}

	stats := make([]PositionStats, 0, len(positions))
	for _, position := range positions {
		ps, err := s.positionStats(ctx, position)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *ps)
	}
	return stats, nil
}

func (s *ElectionService) positionStats(ctx context.Context, position models.ElectionPosition) (*PositionStats, error) {
	candidates, err := s.repo.ListCandidates(ctx, position.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountVotesForPosition(ctx, position.ID)
	if err != nil {
		return nil, err
	}

	ps := &PositionStats{
		PositionID:   position.ID,
		PositionName: position.Name,
		TotalVotes:   total,
		Candidates:   make([]CandidateTally, 0, len(candidates)),
	}
	for _, c := range candidates {
		tally := CandidateTally{ID: c.ID, Name: c.Name, Votes: c.VoteCount}
		if total > 0 {
			tally.Percentage = float64(c.VoteCount) / float64(total) * 100
		}
		ps.Candidates = append(ps.Candidates, tally)
	}
	return ps, nil
}

// CreatePosition creates a new election position
func (s *ElectionService) CreatePosition(ctx context.Context, name, description string) (int64, error) {
	return s.repo.CreatePosition(ctx, name, description)
}

// CreateCandidate creates a new election candidate for an existing position
func (s *ElectionService) CreateCandidate(ctx context.Context, name string, positionID int, party, manifesto string, agenda []string, image string) (int64, error) {
	if _, err := s.repo.GetPosition(ctx, positionID); err != nil {
		return 0, err
	}
	return s.repo.CreateCandidate(ctx, name, positionID, party, manifesto, agenda, image)
}

func (s *ElectionService) broadcastTally(ctx context.Context, positionID int) {
	if s.broadcaster == nil {
		return
	}
	candidates, err := s.repo.ListCandidates(ctx, positionID)
	if err != nil {
		s.log.Warn("Failed to load candidates for tally broadcast", "position_id", positionID, "error", err)
		return
	}
	s.broadcaster.BroadcastTally(positionID, candidates)
}
