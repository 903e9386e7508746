package services

import (
	"context"
	"time"

	"github.com/campusvote/pollz/internal/logger"
	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// Broadcaster pushes updates to connected clients
type Broadcaster interface {
	BroadcastSessionStatus(status models.SessionStatus)
	BroadcastTally(positionID int, candidates []models.ElectionCandidate)
}

// SessionService is the voting session gate. It derives a status from the
// stored session config and the wall clock on every query; nothing about the
// state machine is persisted, so there are no missed transitions to chase.
type SessionService struct {
	log         logger.Logger
	repo        repository.SessionRepository
	broadcaster Broadcaster
}

// NewSessionService creates a new SessionService
func NewSessionService(log logger.Logger, repo repository.SessionRepository) *SessionService {
	return &SessionService{log: log, repo: repo}
}

// SetBroadcaster sets the broadcaster for pushing status changes to clients
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// StatusFor derives the session status at a given instant. Pure function:
// the active flag is checked first, then the configured window if any.
func StatusFor(session *models.VotingSession, now time.Time) (string, string) {
	if !session.Active {
		return models.StatusInactive, session.MessageInactive
	}
	if session.StartTime != nil && now.Before(*session.StartTime) {
		return models.StatusNotStarted, session.MessageBeforeStart
	}
	if session.EndTime != nil && now.After(*session.EndTime) {
		return models.StatusEnded, session.MessageAfterEnd
	}
	return models.StatusActive, session.MessageDuring
}

// Status returns the current status for a voting type. A voting type with no
// configured session is inactive.
func (s *SessionService) Status(ctx context.Context, votingType string) (*models.SessionStatus, error) {
	session, err := s.repo.GetSession(ctx, votingType)
	if err == repository.ErrNotFound {
		return &models.SessionStatus{
			VotingType:      votingType,
			Status:          models.StatusInactive,
			Message:         "Voting session not configured.",
			IsVotingAllowed: false,
		}, nil
	}
	if err != nil {
		return nil, err
	}

	status, message := StatusFor(session, time.Now().UTC())
	return &models.SessionStatus{
		VotingType:      votingType,
		Status:          status,
		Message:         message,
		IsVotingAllowed: status == models.StatusActive,
		SessionName:     session.Name,
		StartTime:       session.StartTime,
		EndTime:         session.EndTime,
	}, nil
}

// AllStatuses returns the current status for every configured voting type
func (s *SessionService) AllStatuses(ctx context.Context) (map[string]*models.SessionStatus, error) {
	statuses := make(map[string]*models.SessionStatus, len(models.VotingTypes))
	for _, votingType := range models.VotingTypes {
		status, err := s.Status(ctx, votingType)
		if err != nil {
			return nil, err
		}
		statuses[votingType] = status
	}
	return statuses, nil
}

// Upsert replaces the session config for a voting type and broadcasts the
// resulting status
func (s *SessionService) Upsert(ctx context.Context, session *models.VotingSession) (*models.SessionStatus, error) {
	if !isKnownVotingType(session.VotingType) {
		return nil, ErrUnknownVotingType
	}
	if err := s.repo.UpsertSession(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info("Voting session updated", "voting_type", session.VotingType, "name", session.Name, "active", session.Active)
	return s.statusAndBroadcast(ctx, session.VotingType)
}

// SetActive toggles a session's manual active flag and broadcasts the
// resulting status
func (s *SessionService) SetActive(ctx context.Context, votingType string, active bool) (*models.SessionStatus, error) {
	if !isKnownVotingType(votingType) {
		return nil, ErrUnknownVotingType
	}
	if err := s.repo.SetSessionActive(ctx, votingType, active); err != nil {
		return nil, err
	}
	s.log.Info("Voting session toggled", "voting_type", votingType, "active", active)
	return s.statusAndBroadcast(ctx, votingType)
}

func (s *SessionService) statusAndBroadcast(ctx context.Context, votingType string) (*models.SessionStatus, error) {
	status, err := s.Status(ctx, votingType)
	if err != nil {
		return nil, err
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastSessionStatus(*status)
	}
	return status, nil
}

func isKnownVotingType(votingType string) bool {
	for _, t := range models.VotingTypes {
		if t == votingType {
			return true
		}
	}
	return false
}
