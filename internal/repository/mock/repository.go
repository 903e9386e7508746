package mock

import (
	"context"

	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
// This provides a flexible way to test error paths without complex database
// manipulation.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SetVoteFlagError = errors.New("database error")
//	svc := services.NewElectionService(log, mockRepo, hasher, sessions)
//	receipt, err := svc.CastVote(ctx, userID, candID, ip)
//	// the cast succeeds; the flag failure is logged, not returned
type Repository struct {
	repository.FullRepository

	// ===== Session Errors =====
	GetSessionError       error
	UpsertSessionError    error
	SetSessionActiveError error

	// ===== Election Errors =====
	ListPositionsError          error
	GetPositionError            error
	GetCandidateError           error
	ListCandidatesError         error
	HasVotedError               error
	CastAnonymousVoteError      error
	GetAnonymousVoteError       error
	CountVotesForCandidateError error
	CountVotesForPositionError  error
	SetVoteFlagError            error
	GetVoteFlagsError           error

	// ===== User Errors =====
	GetUserByEmailError error
	GetUserError        error
	CreateUserError     error

	// ===== Course Errors =====
	GetCourseError          error
	UpsertCourseRatingError error

	// ===== Club Errors =====
	GetClubError      error
	CastClubVoteError error

	// ===== Stats Errors =====
	GetVotingStatsError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{FullRepository: real}
}

func (m *Repository) GetSession(ctx context.Context, votingType string) (*models.VotingSession, error) {
	if m.GetSessionError != nil {
		return nil, m.GetSessionError
	}
	return m.FullRepository.GetSession(ctx, votingType)
}

func (m *Repository) UpsertSession(ctx context.Context, s *models.VotingSession) error {
	if m.UpsertSessionError != nil {
		return m.UpsertSessionError
	}
	return m.FullRepository.UpsertSession(ctx, s)
}

func (m *Repository) SetSessionActive(ctx context.Context, votingType string, active bool) error {
	if m.SetSessionActiveError != nil {
		return m.SetSessionActiveError
	}
	return m.FullRepository.SetSessionActive(ctx, votingType, active)
}

func (m *Repository) ListPositions(ctx context.Context) ([]models.ElectionPosition, error) {
	if m.ListPositionsError != nil {
		return nil, m.ListPositionsError
	}
	return m.FullRepository.ListPositions(ctx)
}

func (m *Repository) GetPosition(ctx context.Context, id int) (*models.ElectionPosition, error) {
	if m.GetPositionError != nil {
		return nil, m.GetPositionError
	}
	return m.FullRepository.GetPosition(ctx, id)
}

func (m *Repository) GetCandidate(ctx context.Context, id int) (*models.ElectionCandidate, error) {
	if m.GetCandidateError != nil {
		return nil, m.GetCandidateError
	}
	return m.FullRepository.GetCandidate(ctx, id)
}

func (m *Repository) ListCandidates(ctx context.Context, positionID int) ([]models.ElectionCandidate, error) {
	if m.ListCandidatesError != nil {
		return nil, m.ListCandidatesError
	}
	return m.FullRepository.ListCandidates(ctx, positionID)
}

func (m *Repository) HasVoted(ctx context.Context, voterHash string, positionID int) (bool, error) {
	if m.HasVotedError != nil {
		return false, m.HasVotedError
	}
	return m.FullRepository.HasVoted(ctx, voterHash, positionID)
}

func (m *Repository) CastAnonymousVote(ctx context.Context, v *models.AnonymousVote) (int64, int, error) {
	if m.CastAnonymousVoteError != nil {
		return 0, 0, m.CastAnonymousVoteError
	}
	return m.FullRepository.CastAnonymousVote(ctx, v)
}

func (m *Repository) GetAnonymousVote(ctx context.Context, id int64) (*models.AnonymousVote, error) {
	if m.GetAnonymousVoteError != nil {
		return nil, m.GetAnonymousVoteError
	}
	return m.FullRepository.GetAnonymousVote(ctx, id)
}

func (m *Repository) CountVotesForCandidate(ctx context.Context, candidateID int) (int, error) {
	if m.CountVotesForCandidateError != nil {
		return 0, m.CountVotesForCandidateError
	}
	return m.FullRepository.CountVotesForCandidate(ctx, candidateID)
}

func (m *Repository) CountVotesForPosition(ctx context.Context, positionID int) (int, error) {
	if m.CountVotesForPositionError != nil {
		return 0, m.CountVotesForPositionError
	}
	return m.FullRepository.CountVotesForPosition(ctx, positionID)
}

func (m *Repository) SetVoteFlag(ctx context.Context, userID, positionID int) error {
	if m.SetVoteFlagError != nil {
		return m.SetVoteFlagError
	}
	return m.FullRepository.SetVoteFlag(ctx, userID, positionID)
}

func (m *Repository) GetVoteFlags(ctx context.Context, userID int) (map[int]bool, error) {
	if m.GetVoteFlagsError != nil {
		return nil, m.GetVoteFlagsError
	}
	return m.FullRepository.GetVoteFlags(ctx, userID)
}

func (m *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetUserByEmailError != nil {
		return nil, m.GetUserByEmailError
	}
	return m.FullRepository.GetUserByEmail(ctx, email)
}

func (m *Repository) GetUser(ctx context.Context, id int) (*models.User, error) {
	if m.GetUserError != nil {
		return nil, m.GetUserError
	}
	return m.FullRepository.GetUser(ctx, id)
}

func (m *Repository) CreateUser(ctx context.Context, u *models.User) (int, error) {
	if m.CreateUserError != nil {
		return 0, m.CreateUserError
	}
	return m.FullRepository.CreateUser(ctx, u)
}

func (m *Repository) GetCourse(ctx context.Context, id int) (*models.Course, error) {
	if m.GetCourseError != nil {
		return nil, m.GetCourseError
	}
	return m.FullRepository.GetCourse(ctx, id)
}

func (m *Repository) UpsertCourseRating(ctx context.Context, rating *models.CourseRating) (bool, error) {
	if m.UpsertCourseRatingError != nil {
		return false, m.UpsertCourseRatingError
	}
	return m.FullRepository.UpsertCourseRating(ctx, rating)
}

func (m *Repository) GetClub(ctx context.Context, id int) (*models.Club, error) {
	if m.GetClubError != nil {
		return nil, m.GetClubError
	}
	return m.FullRepository.GetClub(ctx, id)
}

func (m *Repository) CastClubVote(ctx context.Context, userID, clubID int) (int, error) {
	if m.CastClubVoteError != nil {
		return 0, m.CastClubVoteError
	}
	return m.FullRepository.CastClubVote(ctx, userID, clubID)
}

func (m *Repository) GetVotingStats(ctx context.Context) (map[string]interface{}, error) {
	if m.GetVotingStatsError != nil {
		return nil, m.GetVotingStatsError
	}
	return m.FullRepository.GetVotingStats(ctx)
}
