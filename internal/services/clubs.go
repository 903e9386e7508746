package services

import (
	"context"
	stderrors "errors"

	"github.com/campusvote/pollz/internal/logger"
	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// ClubService handles department/club popularity polls. Same shape as the
// election flow minus the anonymization: the vote row links to the user, and
// uniqueness is per (user, club).
type ClubService struct {
	log      logger.Logger
	repo     repository.ClubRepository
	sessions SessionServicer
}

// NewClubService creates a new ClubService
func NewClubService(log logger.Logger, repo repository.ClubRepository, sessions SessionServicer) *ClubService {
	return &ClubService{log: log, repo: repo, sessions: sessions}
}

// List returns active clubs matching the filter
func (s *ClubService) List(ctx context.Context, filter repository.ClubFilter) ([]models.Club, error) {
	return s.repo.ListClubs(ctx, filter)
}

// Get returns a club with its comments
func (s *ClubService) Get(ctx context.Context, id int) (*models.Club, []models.Comment, error) {
	club, err := s.repo.GetClub(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.repo.ListClubComments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return club, comments, nil
}

// Vote records a user's vote for a club and returns the club's new count
func (s *ClubService) Vote(ctx context.Context, userID, clubID int) (*models.Club, error) {
	club, err := s.repo.GetClub(ctx, clubID)
	if err != nil {
		return nil, err
	}

	status, err := s.sessions.Status(ctx, models.VotingTypeClubs)
	if err != nil {
		return nil, err
	}
	if !status.IsVotingAllowed {
		return nil, &VotingClosedError{Status: status.Status, Message: status.Message}
	}

	newCount, err := s.repo.CastClubVote(ctx, userID, clubID)
	if stderrors.Is(err, repository.ErrDuplicateVote) {
		return nil, &DuplicateVoteError{Subject: club.Name}
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("Club vote recorded", "club", club.Name, "vote_count", newCount)
	club.VoteCount = newCount
	return club, nil
}

// Comment adds a user comment to a club
func (s *ClubService) Comment(ctx context.Context, userID, clubID int, text string, anonymous bool) error {
	if text == "" {
		return ErrEmptyComment
	}
	if _, err := s.repo.GetClub(ctx, clubID); err != nil {
		return err
	}
	_, err := s.repo.AddClubComment(ctx, userID, clubID, text, anonymous)
	return err
}

// Create creates a new department/club entry
func (s *ClubService) Create(ctx context.Context, club *models.Club) (int64, error) {
	return s.repo.CreateClub(ctx, club)
}
