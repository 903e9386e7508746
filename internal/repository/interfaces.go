package repository

import (
	"context"

	"github.com/campusvote/pollz/internal/models"
)

// SessionRepository defines voting-session data operations
type SessionRepository interface {
	GetSession(ctx context.Context, votingType string) (*models.VotingSession, error)
	UpsertSession(ctx context.Context, s *models.VotingSession) error
	SetSessionActive(ctx context.Context, votingType string, active bool) error
}

// ElectionRepository defines election data operations. CastAnonymousVote is
// the only writer of the anonymous-vote ledger.
type ElectionRepository interface {
	ListPositions(ctx context.Context) ([]models.ElectionPosition, error)
	GetPosition(ctx context.Context, id int) (*models.ElectionPosition, error)
	CreatePosition(ctx context.Context, name, description string) (int64, error)
	ListCandidates(ctx context.Context, positionID int) ([]models.ElectionCandidate, error)
	GetCandidate(ctx context.Context, id int) (*models.ElectionCandidate, error)
	CreateCandidate(ctx context.Context, name string, positionID int, party, manifesto string, agenda []string, image string) (int64, error)
	HasVoted(ctx context.Context, voterHash string, positionID int) (bool, error)
	CastAnonymousVote(ctx context.Context, v *models.AnonymousVote) (voteID int64, newCount int, err error)
	GetAnonymousVote(ctx context.Context, id int64) (*models.AnonymousVote, error)
	CountVotesForCandidate(ctx context.Context, candidateID int) (int, error)
	CountVotesForPosition(ctx context.Context, positionID int) (int, error)
	CountAnonymousVotes(ctx context.Context) (int, error)
	SetVoteFlag(ctx context.Context, userID, positionID int) error
	GetVoteFlags(ctx context.Context, userID int) (map[int]bool, error)
}

// UserRepository defines user data operations
type UserRepository interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (int, error)
	CountUsers(ctx context.Context) (int, error)
	GetVoteFlags(ctx context.Context, userID int) (map[int]bool, error)
}

// CourseRepository defines department and course data operations
type CourseRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	CreateDepartment(ctx context.Context, name, shortName, description string) (int64, error)
	ListCourses(ctx context.Context, filter CourseFilter) ([]models.Course, error)
	GetCourse(ctx context.Context, id int) (*models.Course, error)
	CreateCourse(ctx context.Context, code, name string, departmentID int, instructor, description string) (int64, error)
	UpsertCourseRating(ctx context.Context, rating *models.CourseRating) (created bool, err error)
	AddCourseComment(ctx context.Context, userID, courseID int, text string, anonymous bool) (int64, error)
	ListCourseComments(ctx context.Context, courseID int) ([]models.Comment, error)
}

// ClubRepository defines department/club poll data operations
type ClubRepository interface {
	ListClubs(ctx context.Context, filter ClubFilter) ([]models.Club, error)
	GetClub(ctx context.Context, id int) (*models.Club, error)
	CreateClub(ctx context.Context, c *models.Club) (int64, error)
	CastClubVote(ctx context.Context, userID, clubID int) (newCount int, err error)
	AddClubComment(ctx context.Context, userID, clubID int, text string, anonymous bool) (int64, error)
	ListClubComments(ctx context.Context, clubID int) ([]models.Comment, error)
}

// StatsRepository defines statistics operations
type StatsRepository interface {
	GetVotingStats(ctx context.Context) (map[string]interface{}, error)
}

// FullRepository combines all repository interfaces
// Use this when a service needs access to multiple domains
type FullRepository interface {
	SessionRepository
	ElectionRepository
	UserRepository
	CourseRepository
	ClubRepository
	StatsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
