package services

import (
	"context"

	"github.com/campusvote/pollz/internal/models"
	"github.com/campusvote/pollz/internal/repository"
)

// SessionServicer defines the voting session gate interface
type SessionServicer interface {
	Status(ctx context.Context, votingType string) (*models.SessionStatus, error)
	AllStatuses(ctx context.Context) (map[string]*models.SessionStatus, error)
	Upsert(ctx context.Context, session *models.VotingSession) (*models.SessionStatus, error)
	SetActive(ctx context.Context, votingType string, active bool) (*models.SessionStatus, error)
}

// ElectionServicer defines the interface for election operations
type ElectionServicer interface {
	ListPositions(ctx context.Context) ([]models.ElectionPosition, error)
	ListCandidates(ctx context.Context, positionID int) ([]models.ElectionCandidate, error)
	CastVote(ctx context.Context, userID, candidateID int, clientIP string) (*VoteReceipt, error)
	VoteStatus(ctx context.Context, userID int) ([]PositionVoteStatus, error)
	VerifyVote(ctx context.Context, voteID int64) (*VerifyResult, error)
	GetVote(ctx context.Context, voteID int64) (*models.AnonymousVote, error)
	LiveStats(ctx context.Context) ([]PositionStats, error)
	CreatePosition(ctx context.Context, name, description string) (int64, error)
	CreateCandidate(ctx context.Context, name string, positionID int, party, manifesto string, agenda []string, image string) (int64, error)
}

// ClubServicer defines the interface for club poll operations
type ClubServicer interface {
	List(ctx context.Context, filter repository.ClubFilter) ([]models.Club, error)
	Get(ctx context.Context, id int) (*models.Club, []models.Comment, error)
	Vote(ctx context.Context, userID, clubID int) (*models.Club, error)
	Comment(ctx context.Context, userID, clubID int, text string, anonymous bool) error
	Create(ctx context.Context, club *models.Club) (int64, error)
}

// CourseServicer defines the interface for course rating operations
type CourseServicer interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	List(ctx context.Context, filter repository.CourseFilter) ([]models.Course, error)
	Get(ctx context.Context, id int) (*models.Course, []models.Comment, error)
	Rate(ctx context.Context, userID, courseID int, grading, toughness, overall float64) (*RateResult, error)
	Comment(ctx context.Context, userID, courseID int, text string, anonymous bool) error
	CreateDepartment(ctx context.Context, name, shortName, description string) (int64, error)
	CreateCourse(ctx context.Context, code, name string, departmentID int, instructor, description string) (int64, error)
}

// UserServicer defines the interface for user operations
type UserServicer interface {
	GetOrCreate(ctx context.Context, identity Identity) (*models.User, error)
	GetProfile(ctx context.Context, userID int) (*Profile, error)
}

// StatsServicer defines the interface for statistics operations
type StatsServicer interface {
	VotingStats(ctx context.Context) (map[string]interface{}, error)
}

// Compile-time checks that services implement their interfaces
var (
	_ SessionServicer  = (*SessionService)(nil)
	_ ElectionServicer = (*ElectionService)(nil)
	_ ClubServicer     = (*ClubService)(nil)
	_ CourseServicer   = (*CourseService)(nil)
	_ UserServicer     = (*UserService)(nil)
	_ StatsServicer    = (*StatsService)(nil)
)
